package repository

import (
	"time"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttendanceRepository хранит отметки посещаемости. Запись ключуется парой
// (занятие, студент): повторная запись той же пары перезаписывает статус.
type AttendanceRepository struct{ db *gorm.DB }

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// UpsertBatch записывает журнал одного занятия целиком: либо применяются все
// записи, либо ни одной. Конфликт по (class_id, student_id) обновляет статус
// и время отметки, поэтому повторная запись того же журнала идемпотентна.
func (r *AttendanceRepository) UpsertBatch(records []models.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "class_id"}, {Name: "student_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "time"}),
		}).Create(&records).Error
	})
}

func (r *AttendanceRepository) ListByClass(classID uint) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := r.db.Where("class_id = ?", classID).Find(&records).Error
	return records, err
}

// ListForStudentByClasses возвращает отметки студента по списку занятий.
func (r *AttendanceRepository) ListForStudentByClasses(studentID uint, classIDs []uint) ([]models.AttendanceRecord, error) {
	if len(classIDs) == 0 {
		return nil, nil
	}
	var records []models.AttendanceRecord
	err := r.db.Where("student_id = ? AND class_id IN ?", studentID, classIDs).Find(&records).Error
	return records, err
}

// ListByClasses возвращает все отметки по списку занятий.
func (r *AttendanceRepository) ListByClasses(classIDs []uint) ([]models.AttendanceRecord, error) {
	if len(classIDs) == 0 {
		return nil, nil
	}
	var records []models.AttendanceRecord
	err := r.db.Where("class_id IN ?", classIDs).Find(&records).Error
	return records, err
}

// LastPresentClassTime возвращает время последнего занятия, на котором
// студент был отмечен присутствовавшим, или nil, если таких отметок нет.
// Различие "nil" и "давно" существенно для отчета о длительном отсутствии.
func (r *AttendanceRepository) LastPresentClassTime(studentID uint) (*time.Time, error) {
	var rec struct{ Datetime time.Time }
	err := r.db.Model(&models.AttendanceRecord{}).
		Select("classes.datetime").
		Joins("JOIN classes ON classes.id = attendance_records.class_id").
		Where("attendance_records.student_id = ? AND attendance_records.status = ?", studentID, models.StatusPresent).
		Order("classes.datetime DESC").
		Limit(1).
		Scan(&rec).Error
	if err != nil {
		return nil, err
	}
	if rec.Datetime.IsZero() {
		return nil, nil
	}
	return &rec.Datetime, nil
}

// ExistsForClassAndGroups сообщает, есть ли у занятия отметки студентов из
// указанных групп. Используется планировщиком для предупреждения при
// отцеплении группы с уже заполненным журналом.
func (r *AttendanceRepository) ExistsForClassAndGroups(classID uint, groupIDs []uint) (bool, error) {
	if len(groupIDs) == 0 {
		return false, nil
	}
	var count int64
	err := r.db.Model(&models.AttendanceRecord{}).
		Joins("JOIN students ON students.id = attendance_records.student_id").
		Where("attendance_records.class_id = ? AND students.group_id IN ?", classID, groupIDs).
		Count(&count).Error
	return count > 0, err
}
