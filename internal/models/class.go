package models

import "time"

// Class представляет одно занятие: встречу по дисциплине учебного плана в
// аудитории у преподавателя для одной или нескольких групп. Длительность у
// занятия не хранится, слот в 90 минут — соглашение слоя отображения.
type Class struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	Datetime            time.Time `json:"datetime" gorm:"not null;index"`
	CurriculumSubjectID uint      `json:"curriculumSubjectId" gorm:"not null;index"`
	ClassTypeID         uint      `json:"classTypeId" gorm:"not null"`
	ClassroomID         uint      `json:"classroomId" gorm:"not null"`
	EmployeeID          uint      `json:"employeeId" gorm:"not null;index"`

	CurriculumSubject CurriculumSubject `json:"curriculumSubject" gorm:"foreignKey:CurriculumSubjectID"`
	ClassType         ClassType         `json:"classType" gorm:"foreignKey:ClassTypeID"`
	Classroom         Classroom         `json:"classroom" gorm:"foreignKey:ClassroomID"`
	Employee          Employee          `json:"employee" gorm:"foreignKey:EmployeeID"`
	Groups            []StudentGroup    `json:"groups" gorm:"many2many:group_class;"`
}

// ClassGroup — строка таблицы связей занятие-группа. Явная модель нужна
// планировщику: замена всего набора групп занятия выполняется одной
// транзакционной операцией над этой таблицей, а не поэлементным диффом.
type ClassGroup struct {
	ClassID uint `gorm:"primaryKey"`
	GroupID uint `gorm:"primaryKey;column:student_group_id"`
}

func (ClassGroup) TableName() string { return "group_class" }
