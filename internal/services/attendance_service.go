package services

import (
	"context"
	"time"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/apperrors"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/repository"
	"github.com/cr1stal-7/Attendance-control-system-sub000/pkg/cache"
)

// AttendanceService принимает журналы посещаемости от преподавателей.
// Журнал пишется на все занятие разом и применяется по принципу "все или
// ничего": наполовину записанный список искажает агрегаты.
type AttendanceService struct {
	attendanceRepo *repository.AttendanceRepository
	classRepo      *repository.ClassRepository
	studentRepo    *repository.StudentRepository
	cpRepo         *repository.ControlPointRepository
	reportCache    *cache.Cache
}

func NewAttendanceService(
	attendanceRepo *repository.AttendanceRepository,
	classRepo *repository.ClassRepository,
	studentRepo *repository.StudentRepository,
	cpRepo *repository.ControlPointRepository,
	reportCache *cache.Cache,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		classRepo:      classRepo,
		studentRepo:    studentRepo,
		cpRepo:         cpRepo,
		reportCache:    reportCache,
	}
}

// AttendanceEntry — одна строка журнала в запросе преподавателя
type AttendanceEntry struct {
	StudentID uint
	Status    models.AttendanceStatus
}

// RosterRow — строка журнала для формы преподавателя. Suggested отмечает
// статусы, восстановленные по проходным, а не выставленные вручную.
type RosterRow struct {
	StudentID  uint                    `json:"studentId"`
	Surname    string                  `json:"surname"`
	Name       string                  `json:"name"`
	SecondName string                  `json:"secondName"`
	Status     models.AttendanceStatus `json:"status"`
	Suggested  bool                    `json:"suggested"`
}

func (s *AttendanceService) requireOwnership(classID, teacherID uint) (*models.Class, error) {
	class, err := s.classRepo.GetByID(classID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("class", classID)
		}
		return nil, err
	}
	if class.EmployeeID != teacherID {
		return nil, apperrors.NewConsistencyError("class %d is not led by employee %d", classID, teacherID)
	}
	return class, nil
}

// Roster возвращает список студентов группы с текущими отметками занятия.
// Для студентов без отметки статус предзаполняется по записям проходных
// в границах слота занятия.
func (s *AttendanceService) Roster(teacherID, classID, groupID uint) (*models.Class, []RosterRow, error) {
	class, err := s.requireOwnership(classID, teacherID)
	if err != nil {
		return nil, nil, err
	}

	attached := false
	for _, g := range class.Groups {
		if g.ID == groupID {
			attached = true
			break
		}
	}
	if !attached {
		return nil, nil, apperrors.NewConsistencyError("group %d is not attached to class %d", groupID, classID)
	}

	students, err := s.studentRepo.ListByGroup(groupID)
	if err != nil {
		return nil, nil, err
	}

	existing, err := s.attendanceRepo.ListByClass(classID)
	if err != nil {
		return nil, nil, err
	}
	recorded := make(map[uint]models.AttendanceStatus, len(existing))
	for _, rec := range existing {
		recorded[rec.StudentID] = rec.Status
	}

	classStart := class.Datetime
	classEnd := classStart.Add(ClassSlotDuration)

	studentIDs := make([]uint, 0, len(students))
	for _, st := range students {
		if _, ok := recorded[st.ID]; !ok {
			studentIDs = append(studentIDs, st.ID)
		}
	}
	passRecords, err := s.cpRepo.RecordsForStudentsBetween(studentIDs, classStart.Add(-ClassSlotDuration), classEnd.Add(ClassSlotDuration))
	if err != nil {
		return nil, nil, err
	}
	byStudent := make(map[uint][]models.ControlPointRecord)
	for _, rec := range passRecords {
		byStudent[rec.StudentID] = append(byStudent[rec.StudentID], rec)
	}

	rows := make([]RosterRow, 0, len(students))
	for _, st := range students {
		row := RosterRow{
			StudentID:  st.ID,
			Surname:    st.Surname,
			Name:       st.Name,
			SecondName: st.SecondName,
		}
		if status, ok := recorded[st.ID]; ok {
			row.Status = status
		} else {
			row.Status = DetermineStatus(byStudent[st.ID], classStart, classEnd)
			row.Suggested = true
		}
		rows = append(rows, row)
	}
	return class, rows, nil
}

// SaveBatch записывает журнал одного занятия. Каждый студент обязан состоять
// в группе, привязанной к занятию; членство проверяется на момент записи,
// поэтому для только что отцепленной группы запись будет отклонена — это
// осознанная, документированная гонка, а не блокировка расписания.
func (s *AttendanceService) SaveBatch(teacherID, classID uint, entries []AttendanceEntry) error {
	if len(entries) == 0 {
		return apperrors.NewValidationError("entries", "at least one record is required")
	}
	for _, e := range entries {
		if !e.Status.Valid() {
			return apperrors.NewValidationError("status", "must be one of present, absent, excused")
		}
	}

	// Повторы студента в одном журнале схлопываются до последней строки:
	// ON CONFLICT в Postgres не может обновить одну строку дважды за один
	// INSERT, а семантика журнала и так "последняя отметка побеждает".
	index := make(map[uint]int, len(entries))
	deduped := make([]AttendanceEntry, 0, len(entries))
	for _, e := range entries {
		if i, ok := index[e.StudentID]; ok {
			deduped[i] = e
			continue
		}
		index[e.StudentID] = len(deduped)
		deduped = append(deduped, e)
	}
	entries = deduped

	class, err := s.requireOwnership(classID, teacherID)
	if err != nil {
		return err
	}

	classGroups := make(map[uint]bool, len(class.Groups))
	for _, g := range class.Groups {
		classGroups[g.ID] = true
	}

	now := time.Now()
	records := make([]models.AttendanceRecord, 0, len(entries))
	for _, e := range entries {
		student, err := s.studentRepo.GetByID(e.StudentID)
		if err != nil {
			if repository.IsNotFound(err) {
				return apperrors.NewNotFoundError("student", e.StudentID)
			}
			return err
		}
		if !classGroups[student.GroupID] {
			return apperrors.NewConsistencyError(
				"student %d is not enrolled in any group attached to class %d", student.ID, classID)
		}
		records = append(records, models.AttendanceRecord{
			ClassID:   classID,
			StudentID: e.StudentID,
			Status:    e.Status,
			Time:      now,
		})
	}

	if err := s.attendanceRepo.UpsertBatch(records); err != nil {
		return err
	}
	s.reportCache.Invalidate(context.Background(), "report:*")
	return nil
}
