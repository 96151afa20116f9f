package models

import "time"

// Employee представляет сотрудника: администратора, работника деканата или
// преподавателя. Занятия ведет только сотрудник с ролью teacher.
type Employee struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Surname      string    `json:"surname" gorm:"size:50;not null"`
	Name         string    `json:"name" gorm:"size:50;not null"`
	SecondName   string    `json:"secondName" gorm:"size:50"`
	BirthDate    time.Time `json:"birthDate" gorm:"not null"`
	Email        string    `json:"email" gorm:"size:100;not null;uniqueIndex"`
	Password     string    `json:"-" gorm:"size:100;not null"`
	RoleID       uint      `json:"roleId" gorm:"not null"`
	PositionID   uint      `json:"positionId" gorm:"not null"`
	DepartmentID uint      `json:"departmentId" gorm:"not null"`

	Role       Role       `json:"role" gorm:"foreignKey:RoleID"`
	Position   Position   `json:"position" gorm:"foreignKey:PositionID"`
	Department Department `json:"department" gorm:"foreignKey:DepartmentID"`
}

// FullName возвращает "Фамилия И. О." для списков расписания.
func (e Employee) FullName() string {
	name := e.Surname
	if e.Name != "" {
		name += " " + string([]rune(e.Name)[:1]) + "."
	}
	if e.SecondName != "" {
		name += " " + string([]rune(e.SecondName)[:1]) + "."
	}
	return name
}
