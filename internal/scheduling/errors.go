package scheduling

import (
	"errors"
	"fmt"

	"github.com/mhafidz976/penjadwalan2/models"
)

var (
	// ErrNotFound - целевое занятие не существует.
	ErrNotFound = errors.New("schedule not found")
	// ErrValidation - некорректные поля или висячая ссылка на каталог.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized - роль вызывающего не дает права на операцию.
	ErrUnauthorized = errors.New("operation not allowed for this role")
)

// ConflictKind различает, по какому измерению занято место.
type ConflictKind string

const (
	ConflictLab      ConflictKind = "lab_booked"
	ConflictLecturer ConflictKind = "lecturer_booked"
)

// ConflictError сообщает о нарушении эксклюзивности и несет конфликтующее
// занятие для диагностики на вызывающей стороне.
type ConflictError struct {
	Kind ConflictKind
	With models.Schedule
}

func (e *ConflictError) Error() string {
	switch e.Kind {
	case ConflictLab:
		return fmt.Sprintf("lab %d is already booked at %s %s by schedule %d",
			e.With.LabID, e.With.Day, e.With.TimeSlot, e.With.ID)
	case ConflictLecturer:
		return fmt.Sprintf("lecturer %d already has schedule %d at %s %s",
			e.With.LecturerID, e.With.ID, e.With.Day, e.With.TimeSlot)
	}
	return fmt.Sprintf("schedule conflicts with schedule %d", e.With.ID)
}
