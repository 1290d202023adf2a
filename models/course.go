package models

// Course представляет учебный курс (практикум), закрепляемый за занятием.
type Course struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Code       string `json:"code" gorm:"size:20;unique;not null"`
	CourseName string `json:"course_name" gorm:"size:100;not null"`
	Semester   int    `json:"semester" gorm:"not null"` // 1-8
	SKS        int    `json:"sks" gorm:"not null"`      // кредитная нагрузка, 1-4

	Schedules []Schedule `json:"schedules,omitempty" gorm:"foreignKey:CourseID"`
}

// CourseInput используется для привязки данных при создании и обновлении курса.
type CourseInput struct {
	Code       string `json:"code" binding:"required"`
	CourseName string `json:"course_name" binding:"required"`
	Semester   int    `json:"semester" binding:"required,min=1,max=8"`
	SKS        int    `json:"sks" binding:"required,min=1,max=4"`
}
