package models

import "time"

// Student представляет студента. Студент состоит ровно в одной группе.
type Student struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Surname       string    `json:"surname" gorm:"size:50;not null"`
	Name          string    `json:"name" gorm:"size:50;not null"`
	SecondName    string    `json:"secondName" gorm:"size:50"`
	BirthDate     time.Time `json:"birthDate" gorm:"not null"`
	Email         string    `json:"email" gorm:"size:100;not null;uniqueIndex"`
	Password      string    `json:"-" gorm:"size:100;not null"`
	StudentCardID int       `json:"studentCardId" gorm:"not null;uniqueIndex"`
	GroupID       uint      `json:"groupId" gorm:"not null;index"`

	Group StudentGroup `json:"group" gorm:"foreignKey:GroupID"`
}
