package scheduling

import (
	"errors"

	"github.com/mhafidz976/penjadwalan2/models"
	"gorm.io/gorm"
)

// Check проверяет кандидата на конфликты с живыми занятиями в рамках
// транзакции tx. Чистая проверка без побочных эффектов: хранилище не
// изменяется. excludeID > 0 исключает из сравнения само обновляемое занятие.
//
// Сначала проверяется занятость лаборатории, затем занятость преподавателя:
// если нарушены обе, наружу уходит конфликт лаборатории.
func (s *Service) Check(tx *gorm.DB, candidate *models.Schedule, excludeID uint) (*ConflictError, error) {
	scopeKey := s.scope.Key(candidate)

	var occupied models.Schedule
	q := tx.Where("lab_id = ? AND day = ? AND time_slot = ? AND scope_key = ?",
		candidate.LabID, candidate.Day, candidate.TimeSlot, scopeKey)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.First(&occupied).Error
	switch {
	case err == nil:
		return &ConflictError{Kind: ConflictLab, With: occupied}, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	occupied = models.Schedule{}
	q = tx.Where("lecturer_id = ? AND day = ? AND time_slot = ? AND scope_key = ?",
		candidate.LecturerID, candidate.Day, candidate.TimeSlot, scopeKey)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err = q.First(&occupied).Error
	switch {
	case err == nil:
		return &ConflictError{Kind: ConflictLecturer, With: occupied}, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	return nil, nil
}
