package scheduling

import (
	"github.com/mhafidz976/penjadwalan2/models"
	"gorm.io/gorm"
)

// List возвращает занятия, видимые вызывающему, с учетом фильтров.
//
// Для роли lecturer выборка сначала сужается до собственных занятий -
// это граница доступа, она применяется до пользовательских фильтров и
// не может быть обойдена их значениями. Админ и сотрудники видят все.
//
// Порядок детерминирован: по возрастанию идентификатора.
func (s *Service) List(viewer Viewer, filter models.ScheduleFilter) ([]models.Schedule, error) {
	if !viewer.Role.Valid() {
		return nil, ErrUnauthorized
	}

	q := s.db.Model(&models.Schedule{}).
		Preload("Course").Preload("Lecturer").Preload("Laboratory").
		Order("schedules.id ASC")

	if viewer.Role == models.RoleLecturer {
		q = q.Where("schedules.lecturer_id = ?", viewer.ID)
	}

	q = applyFilter(q, filter)

	var schedules []models.Schedule
	if err := q.Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// applyFilter накладывает заполненные предикаты; они комбинируются по "И".
// Фильтр по семестру требует join с каталогом курсов - только чтение.
func applyFilter(q *gorm.DB, filter models.ScheduleFilter) *gorm.DB {
	if filter.LabID != 0 {
		q = q.Where("schedules.lab_id = ?", filter.LabID)
	}
	if filter.Day != "" {
		q = q.Where("schedules.day = ?", filter.Day)
	}
	if filter.TimeSlot != "" {
		q = q.Where("schedules.time_slot = ?", filter.TimeSlot)
	}
	if filter.ClassName != "" {
		q = q.Where("schedules.class_name = ?", filter.ClassName)
	}
	if filter.Semester != 0 {
		q = q.Joins("JOIN courses ON courses.id = schedules.course_id").
			Where("courses.semester = ?", filter.Semester)
	}
	return q
}
