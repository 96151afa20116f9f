package repository

import (
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CurriculumRepository хранит учебные планы и их привязки дисциплин к
// семестрам. Проекции графа план → семестры → дисциплины → группы читает
// CurriculumService.
type CurriculumRepository struct{ db *gorm.DB }

func NewCurriculumRepository(db *gorm.DB) *CurriculumRepository {
	return &CurriculumRepository{db: db}
}

func (r *CurriculumRepository) List() ([]models.Curriculum, error) {
	var items []models.Curriculum
	err := r.db.Preload("Specialization").Preload("EducationForm").
		Order("academic_year DESC, name").Find(&items).Error
	return items, err
}

func (r *CurriculumRepository) GetByID(id uint) (*models.Curriculum, error) {
	var c models.Curriculum
	if err := r.db.Preload("Specialization").Preload("EducationForm").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CurriculumRepository) Create(c *models.Curriculum) error { return r.db.Create(c).Error }

// Update пишет только скалярные поля плана: план приходит сюда прочитанным с
// прелоадом, и каскад ассоциаций вернул бы измененным внешним ключам старые
// значения из вложенных структур.
func (r *CurriculumRepository) Update(c *models.Curriculum) error {
	return r.db.Omit(clause.Associations).Save(c).Error
}

func (r *CurriculumRepository) Delete(id uint) error {
	return r.db.Delete(&models.Curriculum{}, id).Error
}

func (r *CurriculumRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Curriculum{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// SemestersForCurriculum возвращает семестры, на которые у плана есть хотя бы
// одна дисциплина: учебный год по убыванию, внутри года осень раньше весны.
func (r *CurriculumRepository) SemestersForCurriculum(curriculumID uint) ([]models.Semester, error) {
	var semesters []models.Semester
	err := r.db.
		Joins("JOIN curriculum_subjects cs ON cs.semester_id = semesters.id").
		Where("cs.curriculum_id = ?", curriculumID).
		Distinct("semesters.*").
		Order("semesters.academic_year DESC, semesters.type ASC").
		Find(&semesters).Error
	return semesters, err
}

// SubjectsForSemester возвращает привязки дисциплин строго по паре
// (план, семестр). Фильтр по обоим ключам обязателен: дисциплины других
// семестров того же плана сюда попадать не должны.
func (r *CurriculumRepository) SubjectsForSemester(curriculumID, semesterID uint) ([]models.CurriculumSubject, error) {
	var subjects []models.CurriculumSubject
	err := r.db.Preload("Subject").Preload("Semester").
		Where("curriculum_id = ? AND semester_id = ?", curriculumID, semesterID).
		Order("id").
		Find(&subjects).Error
	return subjects, err
}

// CurriculumSubjects возвращает все привязки плана.
func (r *CurriculumRepository) CurriculumSubjects(curriculumID uint) ([]models.CurriculumSubject, error) {
	var subjects []models.CurriculumSubject
	err := r.db.Preload("Subject").Preload("Semester").
		Where("curriculum_id = ?", curriculumID).
		Order("id").
		Find(&subjects).Error
	return subjects, err
}

func (r *CurriculumRepository) GetCurriculumSubject(id uint) (*models.CurriculumSubject, error) {
	var cs models.CurriculumSubject
	if err := r.db.Preload("Subject").Preload("Semester").Preload("Curriculum").First(&cs, id).Error; err != nil {
		return nil, err
	}
	return &cs, nil
}

func (r *CurriculumRepository) CreateCurriculumSubject(cs *models.CurriculumSubject) error {
	return r.db.Create(cs).Error
}

func (r *CurriculumRepository) UpdateCurriculumSubject(cs *models.CurriculumSubject) error {
	return r.db.Omit(clause.Associations).Save(cs).Error
}

func (r *CurriculumRepository) DeleteCurriculumSubject(id uint) error {
	return r.db.Delete(&models.CurriculumSubject{}, id).Error
}

// TripleExists проверяет, существует ли уже привязка (план, дисциплина,
// семестр), кроме записи exceptID (0 — без исключения).
func (r *CurriculumRepository) TripleExists(curriculumID, subjectID, semesterID, exceptID uint) (bool, error) {
	var count int64
	q := r.db.Model(&models.CurriculumSubject{}).
		Where("curriculum_id = ? AND subject_id = ? AND semester_id = ?", curriculumID, subjectID, semesterID)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}
