package services

import (
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/apperrors"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/repository"
)

// CurriculumService отвечает за граф учебного плана: план → семестры →
// привязки дисциплин → группы. Проекции без побочных эффектов; мутации
// ограничены привязками дисциплин.
type CurriculumService struct {
	curriculumRepo *repository.CurriculumRepository
	groupRepo      *repository.GroupRepository
	subjectRepo    *repository.CatalogRepository[models.Subject]
	semesterRepo   *repository.CatalogRepository[models.Semester]
}

func NewCurriculumService(
	curriculumRepo *repository.CurriculumRepository,
	groupRepo *repository.GroupRepository,
	subjectRepo *repository.CatalogRepository[models.Subject],
	semesterRepo *repository.CatalogRepository[models.Semester],
) *CurriculumService {
	return &CurriculumService{
		curriculumRepo: curriculumRepo,
		groupRepo:      groupRepo,
		subjectRepo:    subjectRepo,
		semesterRepo:   semesterRepo,
	}
}

func (s *CurriculumService) requireCurriculum(curriculumID uint) error {
	ok, err := s.curriculumRepo.Exists(curriculumID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewNotFoundError("curriculum", curriculumID)
	}
	return nil
}

// SemestersForCurriculum возвращает семестры плана: учебный год по убыванию,
// внутри года осень раньше весны.
func (s *CurriculumService) SemestersForCurriculum(curriculumID uint) ([]models.Semester, error) {
	if err := s.requireCurriculum(curriculumID); err != nil {
		return nil, err
	}
	return s.curriculumRepo.SemestersForCurriculum(curriculumID)
}

// SubjectsForSemester возвращает привязки дисциплин строго по паре
// (план, семестр). Возврат дисциплин чужого семестра — класс ошибок
// "тихие неверные данные", поэтому фильтр всегда по обоим ключам.
func (s *CurriculumService) SubjectsForSemester(curriculumID, semesterID uint) ([]models.CurriculumSubject, error) {
	if err := s.requireCurriculum(curriculumID); err != nil {
		return nil, err
	}
	return s.curriculumRepo.SubjectsForSemester(curriculumID, semesterID)
}

// GroupsForCurriculum возвращает группы, обучающиеся по плану: кандидатов
// для планировщика занятий.
func (s *CurriculumService) GroupsForCurriculum(curriculumID uint) ([]models.StudentGroup, error) {
	if err := s.requireCurriculum(curriculumID); err != nil {
		return nil, err
	}
	return s.groupRepo.ListByCurriculum(curriculumID)
}

// CurriculumSubjects возвращает все привязки плана.
func (s *CurriculumService) CurriculumSubjects(curriculumID uint) ([]models.CurriculumSubject, error) {
	if err := s.requireCurriculum(curriculumID); err != nil {
		return nil, err
	}
	return s.curriculumRepo.CurriculumSubjects(curriculumID)
}

// AddSubject привязывает дисциплину к семестру плана. Тройка (план,
// дисциплина, семестр) уникальна: дисциплина встречается в семестре плана
// не более одного раза.
func (s *CurriculumService) AddSubject(curriculumID, subjectID, semesterID uint, hours int) (*models.CurriculumSubject, error) {
	if hours <= 0 {
		return nil, apperrors.NewValidationError("hours", "must be a positive integer")
	}
	if err := s.requireCurriculum(curriculumID); err != nil {
		return nil, err
	}
	if ok, err := s.subjectRepo.Exists(subjectID); err != nil {
		return nil, err
	} else if !ok {
		return nil, apperrors.NewNotFoundError("subject", subjectID)
	}
	if ok, err := s.semesterRepo.Exists(semesterID); err != nil {
		return nil, err
	} else if !ok {
		return nil, apperrors.NewNotFoundError("semester", semesterID)
	}

	if exists, err := s.curriculumRepo.TripleExists(curriculumID, subjectID, semesterID, 0); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.NewConsistencyError(
			"subject %d is already bound to semester %d of curriculum %d", subjectID, semesterID, curriculumID)
	}

	cs := &models.CurriculumSubject{
		CurriculumID: curriculumID,
		SubjectID:    subjectID,
		SemesterID:   semesterID,
		Hours:        hours,
	}
	if err := s.curriculumRepo.CreateCurriculumSubject(cs); err != nil {
		return nil, err
	}
	return s.curriculumRepo.GetCurriculumSubject(cs.ID)
}

// UpdateSubject изменяет привязку с сохранением уникальности тройки.
func (s *CurriculumService) UpdateSubject(id, subjectID, semesterID uint, hours int) (*models.CurriculumSubject, error) {
	cs, err := s.curriculumRepo.GetCurriculumSubject(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("curriculum_subject", id)
		}
		return nil, err
	}

	if hours <= 0 {
		return nil, apperrors.NewValidationError("hours", "must be a positive integer")
	}
	if subjectID != 0 {
		if ok, err := s.subjectRepo.Exists(subjectID); err != nil {
			return nil, err
		} else if !ok {
			return nil, apperrors.NewNotFoundError("subject", subjectID)
		}
		cs.SubjectID = subjectID
	}
	if semesterID != 0 {
		if ok, err := s.semesterRepo.Exists(semesterID); err != nil {
			return nil, err
		} else if !ok {
			return nil, apperrors.NewNotFoundError("semester", semesterID)
		}
		cs.SemesterID = semesterID
	}
	cs.Hours = hours

	if exists, err := s.curriculumRepo.TripleExists(cs.CurriculumID, cs.SubjectID, cs.SemesterID, cs.ID); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.NewConsistencyError(
			"subject %d is already bound to semester %d of curriculum %d", cs.SubjectID, cs.SemesterID, cs.CurriculumID)
	}

	if err := s.curriculumRepo.UpdateCurriculumSubject(cs); err != nil {
		return nil, err
	}
	return s.curriculumRepo.GetCurriculumSubject(cs.ID)
}

// RemoveSubject удаляет привязку дисциплины из плана.
func (s *CurriculumService) RemoveSubject(id uint) error {
	if _, err := s.curriculumRepo.GetCurriculumSubject(id); err != nil {
		if repository.IsNotFound(err) {
			return apperrors.NewNotFoundError("curriculum_subject", id)
		}
		return err
	}
	return s.curriculumRepo.DeleteCurriculumSubject(id)
}
