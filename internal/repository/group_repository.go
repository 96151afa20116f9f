package repository

import (
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GroupRepository хранит учебные группы
type GroupRepository struct{ db *gorm.DB }

func NewGroupRepository(db *gorm.DB) *GroupRepository { return &GroupRepository{db: db} }

func (r *GroupRepository) List(departmentID, curriculumID uint) ([]models.StudentGroup, error) {
	q := r.db.Preload("Department").Preload("Curriculum")
	if departmentID != 0 {
		q = q.Where("department_id = ?", departmentID)
	}
	if curriculumID != 0 {
		q = q.Where("curriculum_id = ?", curriculumID)
	}
	var groups []models.StudentGroup
	err := q.Order("name").Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) GetByID(id uint) (*models.StudentGroup, error) {
	var g models.StudentGroup
	if err := r.db.Preload("Department").Preload("Curriculum").First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepository) ListByIDs(ids []uint) ([]models.StudentGroup, error) {
	var groups []models.StudentGroup
	err := r.db.Where("id IN ?", ids).Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) ListByCurriculum(curriculumID uint) ([]models.StudentGroup, error) {
	var groups []models.StudentGroup
	err := r.db.Where("curriculum_id = ?", curriculumID).Order("name").Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) ListByDepartment(departmentID uint) ([]models.StudentGroup, error) {
	var groups []models.StudentGroup
	err := r.db.Preload("Curriculum").Where("department_id = ?", departmentID).Order("name").Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) Create(g *models.StudentGroup) error { return r.db.Create(g).Error }

// Update не трогает ассоциации: группа читается с прелоадом, и их каскадная
// запись вернула бы внешним ключам прежние значения.
func (r *GroupRepository) Update(g *models.StudentGroup) error {
	return r.db.Omit(clause.Associations).Save(g).Error
}

func (r *GroupRepository) Delete(id uint) error {
	return r.db.Delete(&models.StudentGroup{}, id).Error
}
