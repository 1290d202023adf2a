package scheduling

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mhafidz976/penjadwalan2/models"
	"gorm.io/gorm"
)

// Viewer - кто выполняет запрос: роль и идентификатор пользователя.
type Viewer struct {
	ID   uint
	Role models.Role
}

// writeRoles - роли, которым разрешено изменять расписание.
var writeRoles = map[models.Role]bool{
	models.RoleAdmin: true,
	models.RoleStaff: true,
}

// Service управляет жизненным циклом занятий: создание, обновление и
// удаление проходят через проверку конфликтов и выполняются как единая
// критическая секция. Чтение конкурентно и мьютексом не ограничено.
type Service struct {
	db    *gorm.DB
	scope ScopeMode

	// Сериализует последовательность "проверить, затем записать".
	// Уникальные индексы idx_lab_slot / idx_lecturer_slot остаются
	// авторитетной страховкой на случай второго процесса с той же БД.
	writeMu sync.Mutex
}

func New(db *gorm.DB, scope ScopeMode) *Service {
	return &Service{db: db, scope: scope}
}

// Create добавляет занятие. При любой ошибке хранилище остается без изменений.
func (s *Service) Create(viewer Viewer, input models.ScheduleInput) (*models.Schedule, error) {
	if err := s.authorizeWrite(viewer); err != nil {
		return nil, err
	}
	candidate, err := buildSchedule(input)
	if err != nil {
		return nil, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := resolveReferences(tx, candidate); err != nil {
			return err
		}
		conflict, err := s.Check(tx, candidate, 0)
		if err != nil {
			return err
		}
		if conflict != nil {
			return conflict
		}
		candidate.ScopeKey = s.scope.Key(candidate)
		return tx.Create(candidate).Error
	})
	if err != nil {
		return nil, s.classifyWriteError(err, candidate, 0)
	}
	return candidate, nil
}

// Update заменяет поля занятия id. Идентификатор и время создания не меняются.
func (s *Service) Update(viewer Viewer, id uint, input models.ScheduleInput) (*models.Schedule, error) {
	if err := s.authorizeWrite(viewer); err != nil {
		return nil, err
	}
	candidate, err := buildSchedule(input)
	if err != nil {
		return nil, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Schedule
		if err := tx.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		candidate.ID = existing.ID
		candidate.CreatedAt = existing.CreatedAt

		if err := resolveReferences(tx, candidate); err != nil {
			return err
		}
		conflict, err := s.Check(tx, candidate, existing.ID)
		if err != nil {
			return err
		}
		if conflict != nil {
			return conflict
		}
		candidate.ScopeKey = s.scope.Key(candidate)
		return tx.Save(candidate).Error
	})
	if err != nil {
		return nil, s.classifyWriteError(err, candidate, id)
	}
	return candidate, nil
}

// Delete удаляет занятие. Удаление несуществующего id возвращает ErrNotFound
// и ничего не меняет; каскадных эффектов нет.
func (s *Service) Delete(viewer Viewer, id uint) error {
	if err := s.authorizeWrite(viewer); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	res := s.db.Delete(&models.Schedule{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Get возвращает занятие по идентификатору вместе со связанными записями
// каталогов. Преподаватель может читать только свои занятия.
func (s *Service) Get(viewer Viewer, id uint) (*models.Schedule, error) {
	if !viewer.Role.Valid() {
		return nil, ErrUnauthorized
	}
	var schedule models.Schedule
	q := s.db.Preload("Course").Preload("Lecturer").Preload("Laboratory")
	if viewer.Role == models.RoleLecturer {
		q = q.Where("lecturer_id = ?", viewer.ID)
	}
	if err := q.First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &schedule, nil
}

// CheckInput прогоняет кандидата через проверку конфликтов, ничего не
// записывая. Используется для предпросмотра вариантов размещения.
func (s *Service) CheckInput(input models.ScheduleInput) (*ConflictError, error) {
	candidate, err := buildSchedule(input)
	if err != nil {
		return nil, err
	}
	return s.Check(s.db, candidate, 0)
}

func (s *Service) authorizeWrite(viewer Viewer) error {
	if !writeRoles[viewer.Role] {
		return ErrUnauthorized
	}
	return nil
}

// classifyWriteError переводит срабатывание уникального индекса в тот же
// ConflictError, что и предпроверка: проигравший гонку пишущий получает
// осмысленный конфликт, а не голую ошибку БД.
func (s *Service) classifyWriteError(err error, candidate *models.Schedule, excludeID uint) error {
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	conflict, checkErr := s.Check(s.db, candidate, excludeID)
	if checkErr == nil && conflict != nil {
		return conflict
	}
	return err
}

// buildSchedule валидирует форму полей кандидата и канонизирует интервал.
func buildSchedule(input models.ScheduleInput) (*models.Schedule, error) {
	day := models.Day(input.Day)
	if !day.Valid() {
		return nil, fmt.Errorf("unknown day %q: %w", input.Day, ErrValidation)
	}
	slot, err := models.ParseTimeSlot(input.TimeSlot)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrValidation)
	}
	if input.ClassName == "" {
		return nil, fmt.Errorf("class name is required: %w", ErrValidation)
	}
	return &models.Schedule{
		CourseID:   input.CourseID,
		LecturerID: input.LecturerID,
		LabID:      input.LabID,
		Day:        day,
		TimeSlot:   slot,
		ClassName:  input.ClassName,
	}, nil
}

// resolveReferences проверяет ссылочную целостность кандидата: курс,
// преподаватель и лаборатория должны существовать на момент записи,
// а преподаватель - иметь роль lecturer.
func resolveReferences(tx *gorm.DB, candidate *models.Schedule) error {
	var course models.Course
	if err := tx.First(&course, candidate.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("course %d does not exist: %w", candidate.CourseID, ErrValidation)
		}
		return err
	}
	var lecturer models.User
	if err := tx.First(&lecturer, candidate.LecturerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lecturer %d does not exist: %w", candidate.LecturerID, ErrValidation)
		}
		return err
	}
	if lecturer.Role != models.RoleLecturer {
		return fmt.Errorf("user %d is not a lecturer: %w", candidate.LecturerID, ErrValidation)
	}
	var lab models.Lab
	if err := tx.First(&lab, candidate.LabID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lab %d does not exist: %w", candidate.LabID, ErrValidation)
		}
		return err
	}
	return nil
}
