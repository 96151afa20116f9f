package models

import "time"

// Direction определяет направление прохода через контрольную точку
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// ControlPoint представляет турникет/проходную учебного корпуса
type ControlPoint struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"size:50;not null"`
	BuildingID uint   `json:"buildingId" gorm:"not null"`

	Building Building `json:"building" gorm:"foreignKey:BuildingID"`
}

// ControlPointRecord представляет один проход студента через контрольную
// точку. По этим записям строится предзаполнение журнала посещаемости и
// колонка "последний вход" в отчете о длительном отсутствии.
type ControlPointRecord struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Datetime       time.Time `json:"datetime" gorm:"not null;index"`
	Direction      Direction `json:"direction" gorm:"size:20;not null"`
	ControlPointID uint      `json:"controlPointId" gorm:"not null"`
	StudentID      uint      `json:"studentId" gorm:"not null;index"`

	ControlPoint ControlPoint `json:"controlPoint" gorm:"foreignKey:ControlPointID"`
	Student      Student      `json:"-" gorm:"foreignKey:StudentID"`
}
