package models

// Lab представляет компьютерную лабораторию, в которой проводятся занятия.
type Lab struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	LabName  string `json:"lab_name" gorm:"size:50;not null"`
	Capacity int    `json:"capacity" gorm:"not null"`

	Schedules []Schedule `json:"schedules,omitempty" gorm:"foreignKey:LabID"`
}

// LabInput используется для привязки данных при создании и обновлении лаборатории.
type LabInput struct {
	LabName  string `json:"lab_name" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}
