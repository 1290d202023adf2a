package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Day - закрытое перечисление учебных дней недели.
type Day string

const (
	DaySenin  Day = "Senin"
	DaySelasa Day = "Selasa"
	DayRabu   Day = "Rabu"
	DayKamis  Day = "Kamis"
	DayJumat  Day = "Jumat"
	DaySabtu  Day = "Sabtu"
)

// Days перечисляет дни в порядке учебной недели (для экспорта и отображения).
var Days = []Day{DaySenin, DaySelasa, DayRabu, DayKamis, DayJumat, DaySabtu}

// Valid проверяет, что день входит в перечисление.
func (d Day) Valid() bool {
	for _, known := range Days {
		if d == known {
			return true
		}
	}
	return false
}

// Index возвращает порядковый номер дня в неделе (0 = Senin, -1 если день неизвестен).
func (d Day) Index() int {
	for i, known := range Days {
		if d == known {
			return i
		}
	}
	return -1
}

// Границы дневной сетки, в которую должны укладываться занятия.
const (
	gridOpen  = 6 * 60  // 06:00
	gridClose = 22 * 60 // 22:00
)

// TimeSlot - интервал занятия в формате "HH:MM-HH:MM" (полуоткрытый).
// Конфликты проверяются по точному совпадению интервала: пересекающиеся,
// но не равные интервалы конфликтом не считаются.
type TimeSlot string

// ParseTimeSlot разбирает и канонизирует строку интервала.
// Интервал обязан лежать внутри дневной сетки и иметь начало строго раньше конца.
func ParseTimeSlot(raw string) (TimeSlot, error) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 2 {
		return "", fmt.Errorf("time slot %q: expected format HH:MM-HH:MM", raw)
	}
	start, err := parseMinutes(strings.TrimSpace(parts[0]))
	if err != nil {
		return "", fmt.Errorf("time slot %q: %v", raw, err)
	}
	end, err := parseMinutes(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", fmt.Errorf("time slot %q: %v", raw, err)
	}
	if start >= end {
		return "", fmt.Errorf("time slot %q: start must be before end", raw)
	}
	if start < gridOpen || end > gridClose {
		return "", fmt.Errorf("time slot %q: outside of daily grid 06:00-22:00", raw)
	}
	return TimeSlot(fmt.Sprintf("%02d:%02d-%02d:%02d", start/60, start%60, end/60, end%60)), nil
}

func parseMinutes(hhmm string) (int, error) {
	pieces := strings.Split(hhmm, ":")
	if len(pieces) != 2 || len(pieces[0]) == 0 || len(pieces[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	h, err := strconv.Atoi(pieces[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", hhmm)
	}
	m, err := strconv.Atoi(pieces[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", hhmm)
	}
	return h*60 + m, nil
}

// Schedule представляет занятие: закрепление курса, преподавателя и
// лаборатории за конкретным днем и интервалом времени.
//
// Уникальные индексы по лаборатории и по преподавателю дублируют проверку
// конфликтов на уровне хранилища: гонка двух записей, прошедших предпроверку,
// ломается на коммите второй.
type Schedule struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	CourseID   uint     `json:"course_id" gorm:"not null"`
	LecturerID uint     `json:"lecturer_id" gorm:"not null;uniqueIndex:idx_lecturer_slot"`
	LabID      uint     `json:"lab_id" gorm:"not null;uniqueIndex:idx_lab_slot"`
	Day        Day      `json:"day" gorm:"size:10;not null;uniqueIndex:idx_lab_slot;uniqueIndex:idx_lecturer_slot"`
	TimeSlot   TimeSlot `json:"time_slot" gorm:"size:20;not null;uniqueIndex:idx_lab_slot;uniqueIndex:idx_lecturer_slot"`
	ClassName  string   `json:"class_name" gorm:"size:5;not null"` // A, B, C
	// ScopeKey - производная колонка-дискриминатор: пустая строка либо
	// class_name, в зависимости от настройки области конфликта.
	ScopeKey  string    `json:"-" gorm:"size:5;not null;default:'';uniqueIndex:idx_lab_slot;uniqueIndex:idx_lecturer_slot"`
	CreatedAt time.Time `json:"created_at"`

	Course     *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Lecturer   *User   `json:"lecturer,omitempty" gorm:"foreignKey:LecturerID"`
	Laboratory *Lab    `json:"laboratory,omitempty" gorm:"foreignKey:LabID"`
}

// ScheduleInput используется для привязки данных при создании и обновлении занятия.
type ScheduleInput struct {
	CourseID   uint   `json:"course_id" binding:"required"`
	LecturerID uint   `json:"lecturer_id" binding:"required"`
	LabID      uint   `json:"lab_id" binding:"required"`
	Day        string `json:"day" binding:"required"`
	TimeSlot   string `json:"time_slot" binding:"required"`
	ClassName  string `json:"class_name" binding:"required"`
}

// ScheduleFilter описывает необязательные предикаты выборки занятий.
// Заполненные поля комбинируются по "И"; пустые не ограничивают выборку.
type ScheduleFilter struct {
	LabID     uint
	Day       Day
	TimeSlot  TimeSlot
	ClassName string
	Semester  int // фильтр по семестру курса, через join с каталогом курсов
}
