package repository

import (
	"time"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClassRepository хранит занятия и их связи с группами. Замена набора групп
// занятия всегда выполняется в одной транзакции с записью скалярных полей:
// читатель не должен увидеть занятие с новым временем, но старыми группами.
type ClassRepository struct{ db *gorm.DB }

func NewClassRepository(db *gorm.DB) *ClassRepository { return &ClassRepository{db: db} }

func (r *ClassRepository) preloaded() *gorm.DB {
	return r.db.
		Preload("CurriculumSubject.Subject").
		Preload("CurriculumSubject.Semester").
		Preload("ClassType").
		Preload("Classroom").
		Preload("Employee").
		Preload("Groups")
}

func (r *ClassRepository) GetByID(id uint) (*models.Class, error) {
	var c models.Class
	if err := r.preloaded().First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListForStaff возвращает занятия плана и семестра с необязательными
// фильтрами по привязке дисциплины и дню.
func (r *ClassRepository) ListForStaff(curriculumID, semesterID, curriculumSubjectID uint, day *time.Time) ([]models.Class, error) {
	q := r.preloaded().
		Joins("JOIN curriculum_subjects cs ON cs.id = classes.curriculum_subject_id").
		Where("cs.curriculum_id = ? AND cs.semester_id = ?", curriculumID, semesterID)
	if curriculumSubjectID != 0 {
		q = q.Where("classes.curriculum_subject_id = ?", curriculumSubjectID)
	}
	if day != nil {
		start := day.Truncate(24 * time.Hour)
		q = q.Where("classes.datetime >= ? AND classes.datetime < ?", start, start.AddDate(0, 0, 1))
	}
	var classes []models.Class
	err := q.Order("classes.datetime").Find(&classes).Error
	return classes, err
}

// CreateWithGroups сохраняет занятие вместе со строками таблицы связей.
func (r *ClassRepository) CreateWithGroups(c *models.Class, groupIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(c).Error; err != nil {
			return err
		}
		return insertClassGroups(tx, c.ID, groupIDs)
	})
}

// UpdateWithGroups перезаписывает скалярные поля занятия и полностью заменяет
// набор групп: связи, не вошедшие в groupIDs, отцепляются. Ассоциации при
// записи пропускаются целиком: занятие обычно прочитано с прелоадом, и
// каскад ассоциаций молча возвращал бы внешним ключам старые значения.
func (r *ClassRepository) UpdateWithGroups(c *models.Class, groupIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(c).Error; err != nil {
			return err
		}
		if err := tx.Where("class_id = ?", c.ID).Delete(&models.ClassGroup{}).Error; err != nil {
			return err
		}
		return insertClassGroups(tx, c.ID, groupIDs)
	})
}

func insertClassGroups(tx *gorm.DB, classID uint, groupIDs []uint) error {
	links := make([]models.ClassGroup, 0, len(groupIDs))
	for _, gid := range groupIDs {
		links = append(links, models.ClassGroup{ClassID: classID, GroupID: gid})
	}
	return tx.Create(&links).Error
}

// Delete удаляет занятие и его связи с группами. Записи посещаемости не
// трогаются: они остаются доступными по идентификаторам занятия и студента.
func (r *ClassRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", id).Delete(&models.ClassGroup{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Class{}, id).Error
	})
}

func (r *ClassRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Class{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ClassesForGroupInWindow возвращает занятия группы в окне [start, end]
// (обе границы включительно, end расширяется до конца дня вызывающим).
func (r *ClassRepository) ClassesForGroupInWindow(groupID uint, start, end time.Time) ([]models.Class, error) {
	var classes []models.Class
	err := r.db.
		Preload("CurriculumSubject.Subject").
		Joins("JOIN group_class gc ON gc.class_id = classes.id").
		Where("gc.student_group_id = ? AND classes.datetime >= ? AND classes.datetime < ?", groupID, start, end).
		Order("classes.datetime").
		Find(&classes).Error
	return classes, err
}

// ClassesForGroupSemester возвращает занятия группы в рамках семестра.
func (r *ClassRepository) ClassesForGroupSemester(groupID, semesterID uint) ([]models.Class, error) {
	var classes []models.Class
	err := r.db.
		Preload("CurriculumSubject.Subject").
		Joins("JOIN group_class gc ON gc.class_id = classes.id").
		Joins("JOIN curriculum_subjects cs ON cs.id = classes.curriculum_subject_id").
		Where("gc.student_group_id = ? AND cs.semester_id = ?", groupID, semesterID).
		Order("classes.datetime").
		Find(&classes).Error
	return classes, err
}

// SemestersByTeacher возвращает семестры, в которых у преподавателя есть
// занятия: учебный год по убыванию, внутри года осень раньше весны.
func (r *ClassRepository) SemestersByTeacher(teacherID uint) ([]models.Semester, error) {
	var semesters []models.Semester
	err := r.db.
		Joins("JOIN curriculum_subjects cs ON cs.semester_id = semesters.id").
		Joins("JOIN classes ON classes.curriculum_subject_id = cs.id").
		Where("classes.employee_id = ?", teacherID).
		Distinct("semesters.*").
		Order("semesters.academic_year DESC, semesters.type ASC").
		Find(&semesters).Error
	return semesters, err
}

// SubjectsByTeacherAndSemester возвращает дисциплины, которые преподаватель
// ведет в семестре.
func (r *ClassRepository) SubjectsByTeacherAndSemester(teacherID, semesterID uint) ([]models.Subject, error) {
	var subjects []models.Subject
	err := r.db.
		Joins("JOIN curriculum_subjects cs ON cs.subject_id = subjects.id").
		Joins("JOIN classes ON classes.curriculum_subject_id = cs.id").
		Where("classes.employee_id = ? AND cs.semester_id = ?", teacherID, semesterID).
		Distinct("subjects.*").
		Order("subjects.name").
		Find(&subjects).Error
	return subjects, err
}

// GroupsByTeacherSubjectSemester возвращает группы, у которых преподаватель
// ведет дисциплину в семестре.
func (r *ClassRepository) GroupsByTeacherSubjectSemester(teacherID, subjectID, semesterID uint) ([]models.StudentGroup, error) {
	var groups []models.StudentGroup
	err := r.db.
		Joins("JOIN group_class gc ON gc.student_group_id = student_groups.id").
		Joins("JOIN classes ON classes.id = gc.class_id").
		Joins("JOIN curriculum_subjects cs ON cs.id = classes.curriculum_subject_id").
		Where("classes.employee_id = ? AND cs.subject_id = ? AND cs.semester_id = ?", teacherID, subjectID, semesterID).
		Distinct("student_groups.*").
		Order("student_groups.name").
		Find(&groups).Error
	return groups, err
}

// ClassesByTeacherSubjectSemester возвращает занятия преподавателя по
// дисциплине в семестре, при day != nil — только за указанный день.
func (r *ClassRepository) ClassesByTeacherSubjectSemester(teacherID, subjectID, semesterID uint, day *time.Time) ([]models.Class, error) {
	q := r.preloaded().
		Joins("JOIN curriculum_subjects cs ON cs.id = classes.curriculum_subject_id").
		Where("classes.employee_id = ? AND cs.subject_id = ? AND cs.semester_id = ?", teacherID, subjectID, semesterID)
	if day != nil {
		start := day.Truncate(24 * time.Hour)
		q = q.Where("classes.datetime >= ? AND classes.datetime < ?", start, start.AddDate(0, 0, 1))
	}
	var classes []models.Class
	err := q.Order("classes.datetime").Find(&classes).Error
	return classes, err
}
