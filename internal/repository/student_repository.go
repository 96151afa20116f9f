package repository

import (
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StudentRepository хранит студентов
type StudentRepository struct{ db *gorm.DB }

func NewStudentRepository(db *gorm.DB) *StudentRepository { return &StudentRepository{db: db} }

func (r *StudentRepository) List(groupID uint) ([]models.Student, error) {
	q := r.db.Preload("Group")
	if groupID != 0 {
		q = q.Where("group_id = ?", groupID)
	}
	var students []models.Student
	err := q.Order("surname, name").Find(&students).Error
	return students, err
}

func (r *StudentRepository) GetByID(id uint) (*models.Student, error) {
	var s models.Student
	if err := r.db.Preload("Group").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StudentRepository) GetByEmail(email string) (*models.Student, error) {
	var s models.Student
	if err := r.db.Preload("Group").Where("email = ?", email).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StudentRepository) ListByGroup(groupID uint) ([]models.Student, error) {
	var students []models.Student
	err := r.db.Where("group_id = ?", groupID).Order("surname, name").Find(&students).Error
	return students, err
}

func (r *StudentRepository) Create(s *models.Student) error { return r.db.Create(s).Error }

// Update не трогает ассоциации: перевод в другую группу должен записать
// именно новый group_id, а не id прелоаженной старой группы.
func (r *StudentRepository) Update(s *models.Student) error {
	return r.db.Omit(clause.Associations).Save(s).Error
}

func (r *StudentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Student{}, id).Error
}
