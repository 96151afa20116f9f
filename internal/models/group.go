package models

// StudentGroup представляет учебную группу. Учебный план группы определяет,
// какие записи CurriculumSubject (и, как следствие, какие занятия) для нее
// допустимы.
type StudentGroup struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"size:20;not null"`
	Course       int    `json:"course" gorm:"not null"` // 1-6
	DepartmentID uint   `json:"departmentId" gorm:"not null"`
	CurriculumID uint   `json:"curriculumId" gorm:"not null"`

	Department Department `json:"department" gorm:"foreignKey:DepartmentID"`
	Curriculum Curriculum `json:"curriculum" gorm:"foreignKey:CurriculumID"`
}
