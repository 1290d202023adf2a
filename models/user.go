package models

// Role - закрытый набор ролей пользователя в системе.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleLecturer Role = "lecturer"
)

// Valid проверяет, что роль входит в допустимый набор.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleLecturer:
		return true
	}
	return false
}

// User представляет учетную запись пользователя: администратора,
// сотрудника лаборатории или преподавателя.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"size:80;unique;not null"`
	Password string `json:"-" gorm:"size:120;not null"` // bcrypt-хэш, никогда не отдается наружу
	Role     Role   `json:"role" gorm:"size:20;not null"`
	FullName string `json:"full_name" gorm:"size:100;not null"`

	Schedules []Schedule `json:"schedules,omitempty" gorm:"foreignKey:LecturerID"`
}

// CreateUserInput используется для привязки данных при создании пользователя.
type CreateUserInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     Role   `json:"role" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
}

// UpdateUserInput используется при обновлении пользователя.
// Пароль не обязателен: пустое значение оставляет старый хэш.
type UpdateUserInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
	Role     Role   `json:"role" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
}
