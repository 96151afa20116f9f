package models

import "time"

// AttendanceStatus определяет отметку студента за занятие
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusExcused AttendanceStatus = "excused"
)

// Valid сообщает, является ли значение одной из трех допустимых отметок.
func (s AttendanceStatus) Valid() bool {
	return s == StatusPresent || s == StatusAbsent || s == StatusExcused
}

// AttendanceRecord представляет отметку одного студента за одно занятие.
// Ключ записи — пара (занятие, студент): повторная запись перезаписывает
// статус, истории отметок нет. Записи никогда не удаляются, в том числе
// при изменении состава групп занятия — это исторический факт, а не
// проекция текущего расписания.
type AttendanceRecord struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	ClassID   uint             `json:"classId" gorm:"not null;uniqueIndex:idx_attendance_class_student"`
	StudentID uint             `json:"studentId" gorm:"not null;uniqueIndex:idx_attendance_class_student"`
	Status    AttendanceStatus `json:"status" gorm:"size:20;not null"`
	Time      time.Time        `json:"time" gorm:"not null"` // момент выставления отметки

	Class   Class   `json:"-" gorm:"foreignKey:ClassID"`
	Student Student `json:"-" gorm:"foreignKey:StudentID"`
}
