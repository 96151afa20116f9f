package repository

import (
	"time"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ControlPointRepository хранит контрольные точки и записи проходов
type ControlPointRepository struct{ db *gorm.DB }

func NewControlPointRepository(db *gorm.DB) *ControlPointRepository {
	return &ControlPointRepository{db: db}
}

func (r *ControlPointRepository) ListPoints() ([]models.ControlPoint, error) {
	var points []models.ControlPoint
	err := r.db.Preload("Building").Order("id").Find(&points).Error
	return points, err
}

func (r *ControlPointRepository) CreatePoint(p *models.ControlPoint) error {
	return r.db.Create(p).Error
}

func (r *ControlPointRepository) UpdatePoint(p *models.ControlPoint) error {
	return r.db.Omit(clause.Associations).Save(p).Error
}

func (r *ControlPointRepository) DeletePoint(id uint) error {
	return r.db.Delete(&models.ControlPoint{}, id).Error
}

func (r *ControlPointRepository) CreateRecord(rec *models.ControlPointRecord) error {
	return r.db.Create(rec).Error
}

// LastEntryTime возвращает время последнего входа студента в корпус или nil.
func (r *ControlPointRepository) LastEntryTime(studentID uint) (*time.Time, error) {
	var rec models.ControlPointRecord
	err := r.db.Where("student_id = ? AND direction = ?", studentID, models.DirectionIn).
		Order("datetime DESC").
		First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec.Datetime, nil
}

// RecordsForStudentsBetween возвращает проходы студентов в интервале,
// сгруппировать по студенту — забота вызывающего.
func (r *ControlPointRepository) RecordsForStudentsBetween(studentIDs []uint, from, to time.Time) ([]models.ControlPointRecord, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	var records []models.ControlPointRecord
	err := r.db.Where("student_id IN ? AND datetime >= ? AND datetime <= ?", studentIDs, from, to).
		Order("datetime").
		Find(&records).Error
	return records, err
}
