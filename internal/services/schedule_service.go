package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/apperrors"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/repository"
	"github.com/cr1stal-7/Attendance-control-system-sub000/pkg/cache"
)

// ScheduleService проверяет и сохраняет занятия вместе с набором групп и
// отдает каскадные списки вариантов: план → семестры → дисциплины → группы.
// Каждый уровень фильтруется предыдущим выбором, поэтому занятие с парой
// (дисциплина, группа) из разных планов собрать через эти списки нельзя;
// на записи инвариант проверяется повторно.
type ScheduleService struct {
	classRepo      *repository.ClassRepository
	curriculumRepo *repository.CurriculumRepository
	groupRepo      *repository.GroupRepository
	employeeRepo   *repository.EmployeeRepository
	attendanceRepo *repository.AttendanceRepository
	classTypeRepo  *repository.CatalogRepository[models.ClassType]
	classroomRepo  *repository.CatalogRepository[models.Classroom]
	reportCache    *cache.Cache
}

func NewScheduleService(
	classRepo *repository.ClassRepository,
	curriculumRepo *repository.CurriculumRepository,
	groupRepo *repository.GroupRepository,
	employeeRepo *repository.EmployeeRepository,
	attendanceRepo *repository.AttendanceRepository,
	classTypeRepo *repository.CatalogRepository[models.ClassType],
	classroomRepo *repository.CatalogRepository[models.Classroom],
	reportCache *cache.Cache,
) *ScheduleService {
	return &ScheduleService{
		classRepo:      classRepo,
		curriculumRepo: curriculumRepo,
		groupRepo:      groupRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		classTypeRepo:  classTypeRepo,
		classroomRepo:  classroomRepo,
		reportCache:    reportCache,
	}
}

// ClassInput — контракт создания/обновления занятия. Ограничений на дату в
// прошлом нет: это политика вызывающего, не планировщика.
type ClassInput struct {
	Datetime            time.Time
	CurriculumSubjectID uint
	ClassTypeID         uint
	ClassroomID         uint
	EmployeeID          uint
	GroupIDs            []uint
}

// validate проверяет вход в фиксированном порядке: сначала обязательность
// полей, затем разрешение ссылок, последним — межсущностный инвариант
// "все группы принадлежат плану дисциплины".
func (s *ScheduleService) validate(input ClassInput) (*models.CurriculumSubject, error) {
	switch {
	case input.Datetime.IsZero():
		return nil, apperrors.NewValidationError("datetime", "required")
	case input.CurriculumSubjectID == 0:
		return nil, apperrors.NewValidationError("idCurriculumSubject", "required")
	case input.ClassTypeID == 0:
		return nil, apperrors.NewValidationError("idClassType", "required")
	case input.ClassroomID == 0:
		return nil, apperrors.NewValidationError("idClassroom", "required")
	case input.EmployeeID == 0:
		return nil, apperrors.NewValidationError("idEmployee", "required")
	case len(input.GroupIDs) == 0:
		return nil, apperrors.NewValidationError("groupIds", "at least one group is required")
	}

	cs, err := s.curriculumRepo.GetCurriculumSubject(input.CurriculumSubjectID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("curriculum_subject", input.CurriculumSubjectID)
		}
		return nil, err
	}
	if ok, err := s.classTypeRepo.Exists(input.ClassTypeID); err != nil {
		return nil, err
	} else if !ok {
		return nil, apperrors.NewNotFoundError("class_type", input.ClassTypeID)
	}
	if ok, err := s.classroomRepo.Exists(input.ClassroomID); err != nil {
		return nil, err
	} else if !ok {
		return nil, apperrors.NewNotFoundError("classroom", input.ClassroomID)
	}

	teacher, err := s.employeeRepo.GetByID(input.EmployeeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("employee", input.EmployeeID)
		}
		return nil, err
	}
	if teacher.Role.Name != models.RoleTeacher {
		return nil, apperrors.NewConsistencyError("employee %d does not have the teacher role", teacher.ID)
	}

	groups, err := s.groupRepo.ListByIDs(input.GroupIDs)
	if err != nil {
		return nil, err
	}
	found := make(map[uint]models.StudentGroup, len(groups))
	for _, g := range groups {
		found[g.ID] = g
	}
	for _, gid := range input.GroupIDs {
		g, ok := found[gid]
		if !ok {
			return nil, apperrors.NewNotFoundError("group", gid)
		}
		if g.CurriculumID != cs.CurriculumID {
			return nil, apperrors.NewConsistencyError(
				"group %q belongs to curriculum %d, class subject belongs to curriculum %d",
				g.Name, g.CurriculumID, cs.CurriculumID)
		}
	}
	return cs, nil
}

// CreateClass проверяет вход и сохраняет занятие вместе со связями групп в
// одной транзакции. При любой ошибке ничего не записывается.
func (s *ScheduleService) CreateClass(input ClassInput) (*models.Class, error) {
	if _, err := s.validate(input); err != nil {
		return nil, err
	}

	class := &models.Class{
		Datetime:            input.Datetime,
		CurriculumSubjectID: input.CurriculumSubjectID,
		ClassTypeID:         input.ClassTypeID,
		ClassroomID:         input.ClassroomID,
		EmployeeID:          input.EmployeeID,
	}
	if err := s.classRepo.CreateWithGroups(class, uniqueIDs(input.GroupIDs)); err != nil {
		return nil, err
	}
	s.invalidateReports()
	return s.classRepo.GetByID(class.ID)
}

// UpdateClass перезаписывает занятие: скалярные поля и набор групп меняются
// атомарно, старый набор связей полностью заменяется новым. Если у
// отцепляемой группы уже есть отметки по этому занятию, обновление
// проходит, но возвращает предупреждение: отметки остаются историческим
// фактом и продолжают читаться по идентификаторам занятия и студента.
func (s *ScheduleService) UpdateClass(id uint, input ClassInput) (*models.Class, []string, error) {
	existing, err := s.classRepo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil, apperrors.NewNotFoundError("class", id)
		}
		return nil, nil, err
	}
	if _, err := s.validate(input); err != nil {
		return nil, nil, err
	}

	newSet := make(map[uint]bool, len(input.GroupIDs))
	for _, gid := range input.GroupIDs {
		newSet[gid] = true
	}
	var detached []uint
	detachedNames := map[uint]string{}
	for _, g := range existing.Groups {
		if !newSet[g.ID] {
			detached = append(detached, g.ID)
			detachedNames[g.ID] = g.Name
		}
	}

	var warnings []string
	if len(detached) > 0 {
		hasRecords, err := s.attendanceRepo.ExistsForClassAndGroups(id, detached)
		if err != nil {
			return nil, nil, err
		}
		if hasRecords {
			for _, gid := range detached {
				warnings = append(warnings, fmt.Sprintf(
					"group %q is detached but already has attendance records for this class; the records are kept", detachedNames[gid]))
			}
		}
	}

	existing.Datetime = input.Datetime
	existing.CurriculumSubjectID = input.CurriculumSubjectID
	existing.ClassTypeID = input.ClassTypeID
	existing.ClassroomID = input.ClassroomID
	existing.EmployeeID = input.EmployeeID
	existing.Groups = nil

	if err := s.classRepo.UpdateWithGroups(existing, uniqueIDs(input.GroupIDs)); err != nil {
		return nil, nil, err
	}
	s.invalidateReports()

	updated, err := s.classRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	return updated, warnings, nil
}

// DeleteClass удаляет занятие и его связи с группами. Отметки посещаемости
// не каскадируются: посещаемость — факт прошлого, а не проекция текущего
// расписания.
func (s *ScheduleService) DeleteClass(id uint) error {
	ok, err := s.classRepo.Exists(id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewNotFoundError("class", id)
	}
	if err := s.classRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateReports()
	return nil
}

// ListClasses возвращает занятия для панели расписания.
func (s *ScheduleService) ListClasses(curriculumID, semesterID, curriculumSubjectID uint, day *time.Time) ([]models.Class, error) {
	return s.classRepo.ListForStaff(curriculumID, semesterID, curriculumSubjectID, day)
}

func (s *ScheduleService) GetClass(id uint) (*models.Class, error) {
	c, err := s.classRepo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("class", id)
		}
		return nil, err
	}
	return c, nil
}

// GroupOptions возвращает группы, допустимые для привязки дисциплины:
// только группы плана, которому принадлежит привязка. Это тот же фильтр,
// которым проверяется запись, поэтому список и валидация не расходятся.
func (s *ScheduleService) GroupOptions(curriculumSubjectID uint) ([]models.StudentGroup, error) {
	cs, err := s.curriculumRepo.GetCurriculumSubject(curriculumSubjectID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("curriculum_subject", curriculumSubjectID)
		}
		return nil, err
	}
	return s.groupRepo.ListByCurriculum(cs.CurriculumID)
}

// TeacherOption — элемент списка преподавателей для формы расписания.
type TeacherOption struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullName"`
}

// TeacherOptions возвращает сотрудников с ролью teacher в виде пар
// (id, "Фамилия И. О.") для выпадающего списка.
func (s *ScheduleService) TeacherOptions() ([]TeacherOption, error) {
	teachers, err := s.employeeRepo.ListTeachers()
	if err != nil {
		return nil, err
	}
	options := make([]TeacherOption, 0, len(teachers))
	for _, t := range teachers {
		options = append(options, TeacherOption{ID: t.ID, FullName: t.FullName()})
	}
	return options, nil
}

func (s *ScheduleService) invalidateReports() {
	s.reportCache.Invalidate(context.Background(), "report:*")
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
