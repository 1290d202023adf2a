package scheduling

import (
	"fmt"

	"github.com/mhafidz976/penjadwalan2/models"
)

// ScopeMode задает дискриминатор области конфликта: какие занятия считаются
// претендующими на "одно и то же место" помимо (день, интервал).
//
// ScopeNone повторяет историческое поведение системы: тег класса в ключ
// конфликта не входит, лаборатория и преподаватель заняты целиком.
// ScopeClass сужает конфликт до одинаковой учебной группы.
type ScopeMode string

const (
	ScopeNone  ScopeMode = "none"
	ScopeClass ScopeMode = "class"
)

// ParseScopeMode разбирает значение переменной SCHEDULE_SCOPE.
// Пустая строка означает режим по умолчанию.
func ParseScopeMode(raw string) (ScopeMode, error) {
	switch ScopeMode(raw) {
	case "", ScopeNone:
		return ScopeNone, nil
	case ScopeClass:
		return ScopeClass, nil
	}
	return "", fmt.Errorf("unknown schedule scope %q", raw)
}

// Key возвращает значение дискриминатора для занятия. Оно сохраняется в
// колонку scope_key, поэтому уникальные индексы хранилища отслеживают
// настроенную проекцию без смены схемы.
func (m ScopeMode) Key(s *models.Schedule) string {
	if m == ScopeClass {
		return s.ClassName
	}
	return ""
}
