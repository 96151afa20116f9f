package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/apperrors"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/repository"
	"github.com/cr1stal-7/Attendance-control-system-sub000/pkg/cache"
)

// Пороговые значения посещаемости группы: ниже RiskThreshold группа попадает
// в список риска, ниже WatchThreshold — на контроль.
const (
	RiskThreshold  = 70
	WatchThreshold = 90
)

// StatisticsService считает агрегаты поверх сырых отметок. Сам сервис ничего
// не пишет: проценты, группы риска и длительные отсутствия — проекции журнала
// и расписания. Готовые отчеты кэшируются в Redis и сбрасываются при любой
// мутации расписания или журнала.
type StatisticsService struct {
	attendanceRepo *repository.AttendanceRepository
	classRepo      *repository.ClassRepository
	studentRepo    *repository.StudentRepository
	groupRepo      *repository.GroupRepository
	departmentRepo *repository.CatalogRepository[models.Department]
	cpRepo         *repository.ControlPointRepository
	reportCache    *cache.Cache
	cacheTTL       time.Duration
}

func NewStatisticsService(
	attendanceRepo *repository.AttendanceRepository,
	classRepo *repository.ClassRepository,
	studentRepo *repository.StudentRepository,
	groupRepo *repository.GroupRepository,
	departmentRepo *repository.CatalogRepository[models.Department],
	cpRepo *repository.ControlPointRepository,
	reportCache *cache.Cache,
	cacheTTL time.Duration,
) *StatisticsService {
	return &StatisticsService{
		attendanceRepo: attendanceRepo,
		classRepo:      classRepo,
		studentRepo:    studentRepo,
		groupRepo:      groupRepo,
		departmentRepo: departmentRepo,
		cpRepo:         cpRepo,
		reportCache:    reportCache,
		cacheTTL:       cacheTTL,
	}
}

// ParseWindow разбирает границы отчетного окна. Обе даты включительны:
// правая граница расширяется до начала следующего дня и дальше используется
// как исключающая.
func ParseWindow(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("startDate", "must be a date in YYYY-MM-DD format")
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("endDate", "must be a date in YYYY-MM-DD format")
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, apperrors.NewRangeError("start date %s is after end date %s", startStr, endStr)
	}
	return start, end.AddDate(0, 0, 1), nil
}

// percentage округляет долю посещенных занятий до целых процентов.
// При нуле занятий процента нет: nil и 0 означают разное.
func percentage(present, total int) *int {
	if total == 0 {
		return nil
	}
	p := int(math.Round(float64(present) * 100 / float64(total)))
	return &p
}

// SubjectStats — сводка студента по одной дисциплине.
type SubjectStats struct {
	SubjectID            uint   `json:"subjectId"`
	Subject              string `json:"subject"`
	TotalClasses         int    `json:"totalClasses"`
	MissedClasses        int    `json:"missedClasses"`
	AttendancePercentage *int   `json:"attendancePercentage"`
}

// StudentSemesterStats возвращает сводку студента по дисциплинам семестра.
// Занятие без отметки считается пропущенным: журнал — единственный источник
// присутствия.
func (s *StatisticsService) StudentSemesterStats(studentID, semesterID uint) ([]SubjectStats, error) {
	student, err := s.studentRepo.GetByID(studentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("student", studentID)
		}
		return nil, err
	}

	classes, err := s.classRepo.ClassesForGroupSemester(student.GroupID, semesterID)
	if err != nil {
		return nil, err
	}
	classIDs := make([]uint, len(classes))
	for i, c := range classes {
		classIDs[i] = c.ID
	}
	records, err := s.attendanceRepo.ListForStudentByClasses(studentID, classIDs)
	if err != nil {
		return nil, err
	}
	present := make(map[uint]bool, len(records))
	for _, rec := range records {
		if rec.Status == models.StatusPresent {
			present[rec.ClassID] = true
		}
	}

	bySubject := map[uint]*SubjectStats{}
	for _, c := range classes {
		st, ok := bySubject[c.CurriculumSubject.SubjectID]
		if !ok {
			st = &SubjectStats{
				SubjectID: c.CurriculumSubject.SubjectID,
				Subject:   c.CurriculumSubject.Subject.Name,
			}
			bySubject[c.CurriculumSubject.SubjectID] = st
		}
		st.TotalClasses++
		if !present[c.ID] {
			st.MissedClasses++
		}
	}

	stats := make([]SubjectStats, 0, len(bySubject))
	for _, st := range bySubject {
		st.AttendancePercentage = percentage(st.TotalClasses-st.MissedClasses, st.TotalClasses)
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Subject < stats[j].Subject })
	return stats, nil
}

// ClassMark — одно занятие в детализации студента по дисциплине. Пустой
// статус означает, что журнал занятия еще не заполнен.
type ClassMark struct {
	Date   time.Time               `json:"date"`
	Status models.AttendanceStatus `json:"status,omitempty"`
}

// StudentSubjectDetail возвращает занятия дисциплины в семестре с отметками
// студента по датам.
func (s *StatisticsService) StudentSubjectDetail(studentID, semesterID, subjectID uint) ([]ClassMark, error) {
	student, err := s.studentRepo.GetByID(studentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("student", studentID)
		}
		return nil, err
	}

	classes, err := s.classRepo.ClassesForGroupSemester(student.GroupID, semesterID)
	if err != nil {
		return nil, err
	}
	var subjectClasses []models.Class
	for _, c := range classes {
		if c.CurriculumSubject.SubjectID == subjectID {
			subjectClasses = append(subjectClasses, c)
		}
	}
	classIDs := make([]uint, len(subjectClasses))
	for i, c := range subjectClasses {
		classIDs[i] = c.ID
	}
	records, err := s.attendanceRepo.ListForStudentByClasses(studentID, classIDs)
	if err != nil {
		return nil, err
	}
	statuses := make(map[uint]models.AttendanceStatus, len(records))
	for _, rec := range records {
		statuses[rec.ClassID] = rec.Status
	}

	marks := make([]ClassMark, 0, len(subjectClasses))
	for _, c := range subjectClasses {
		marks = append(marks, ClassMark{Date: c.Datetime, Status: statuses[c.ID]})
	}
	return marks, nil
}

// GroupReportRow — строка группового отчета: студент и его проценты по
// каждой дисциплине окна плюс итог по всем занятиям.
type GroupReportRow struct {
	StudentID  uint             `json:"studentId"`
	Surname    string           `json:"surname"`
	Name       string           `json:"name"`
	SecondName string           `json:"secondName"`
	BySubject  map[string]*int  `json:"bySubject"`
	Overall    *int             `json:"overall"`
}

// GroupReport — посещаемость группы за отчетное окно.
type GroupReport struct {
	Group     string           `json:"group"`
	StartDate string           `json:"startDate"`
	EndDate   string           `json:"endDate"`
	Subjects  []string         `json:"subjects"`
	Rows      []GroupReportRow `json:"rows"`
}

// GroupAttendanceReport строит отчет по группе за окно [start, end).
// Знаменатель каждого процента — все занятия дисциплины в окне, а не только
// занятия с заполненным журналом.
func (s *StatisticsService) GroupAttendanceReport(ctx context.Context, groupID uint, start, end time.Time) (*GroupReport, error) {
	group, err := s.groupRepo.GetByID(groupID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("group", groupID)
		}
		return nil, err
	}

	cacheKey := fmt.Sprintf("report:group:%d:%s:%s", groupID, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if raw, ok := s.reportCache.Get(ctx, cacheKey); ok {
		var cached GroupReport
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
	}

	classes, err := s.classRepo.ClassesForGroupInWindow(groupID, start, end)
	if err != nil {
		return nil, err
	}
	students, err := s.studentRepo.ListByGroup(groupID)
	if err != nil {
		return nil, err
	}
	classIDs := make([]uint, len(classes))
	for i, c := range classes {
		classIDs[i] = c.ID
	}
	records, err := s.attendanceRepo.ListByClasses(classIDs)
	if err != nil {
		return nil, err
	}

	classSubject := make(map[uint]string, len(classes))
	totalBySubject := map[string]int{}
	for _, c := range classes {
		name := c.CurriculumSubject.Subject.Name
		classSubject[c.ID] = name
		totalBySubject[name]++
	}
	subjects := make([]string, 0, len(totalBySubject))
	for name := range totalBySubject {
		subjects = append(subjects, name)
	}
	sort.Strings(subjects)

	type key struct {
		studentID uint
		subject   string
	}
	presentCount := map[key]int{}
	presentTotal := map[uint]int{}
	for _, rec := range records {
		if rec.Status != models.StatusPresent {
			continue
		}
		subject, ok := classSubject[rec.ClassID]
		if !ok {
			continue
		}
		presentCount[key{rec.StudentID, subject}]++
		presentTotal[rec.StudentID]++
	}

	report := &GroupReport{
		Group:     group.Name,
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.AddDate(0, 0, -1).Format("2006-01-02"),
		Subjects:  subjects,
		Rows:      []GroupReportRow{},
	}
	for _, st := range students {
		row := GroupReportRow{
			StudentID:  st.ID,
			Surname:    st.Surname,
			Name:       st.Name,
			SecondName: st.SecondName,
			BySubject:  make(map[string]*int, len(subjects)),
		}
		for _, subject := range subjects {
			row.BySubject[subject] = percentage(presentCount[key{st.ID, subject}], totalBySubject[subject])
		}
		row.Overall = percentage(presentTotal[st.ID], len(classes))
		report.Rows = append(report.Rows, row)
	}

	if raw, err := json.Marshal(report); err == nil {
		s.reportCache.Set(ctx, cacheKey, string(raw), s.cacheTTL)
	}
	return report, nil
}

// RiskGroup — группа с посещаемостью ниже порога.
type RiskGroup struct {
	GroupID    uint   `json:"groupId"`
	Group      string `json:"group"`
	Attendance int    `json:"attendance"`
	Level      string `json:"level"`
}

// FacultyReport — сводка по факультету (кафедре) за отчетное окно.
type FacultyReport struct {
	Department    string          `json:"department"`
	StartDate     string          `json:"startDate"`
	EndDate       string          `json:"endDate"`
	SubjectsCount int             `json:"subjectsCount"`
	AvgAttendance *int            `json:"avgAttendance"`
	BySubject     map[string]*int `json:"bySubject"`
	RiskGroups    []RiskGroup     `json:"riskGroups"`
}

// FacultyAttendanceReport строит сводку по всем группам кафедры. Процент
// группы — доля отметок "присутствовал" среди всех пар (занятие, студент)
// окна; группы без занятий в окне в среднее не входят.
func (s *StatisticsService) FacultyAttendanceReport(ctx context.Context, departmentID uint, start, end time.Time) (*FacultyReport, error) {
	department, err := s.departmentRepo.GetByID(departmentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("department", departmentID)
		}
		return nil, err
	}

	cacheKey := fmt.Sprintf("report:faculty:%d:%s:%s", departmentID, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if raw, ok := s.reportCache.Get(ctx, cacheKey); ok {
		var cached FacultyReport
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
	}

	groups, err := s.groupRepo.ListByDepartment(departmentID)
	if err != nil {
		return nil, err
	}

	report := &FacultyReport{
		Department: department.Name,
		StartDate:  start.Format("2006-01-02"),
		EndDate:    end.AddDate(0, 0, -1).Format("2006-01-02"),
		BySubject:  map[string]*int{},
		RiskGroups: []RiskGroup{},
	}
	// Накопители по дисциплине: сумма групповых процентов и число групп,
	// у которых дисциплина встречалась в окне.
	subjectSum := map[string]int{}
	subjectGroups := map[string]int{}
	var pctSum, pctCount int

	for _, group := range groups {
		classes, err := s.classRepo.ClassesForGroupInWindow(group.ID, start, end)
		if err != nil {
			return nil, err
		}
		if len(classes) == 0 {
			continue
		}
		students, err := s.studentRepo.ListByGroup(group.ID)
		if err != nil {
			return nil, err
		}
		classIDs := make([]uint, len(classes))
		classSubject := make(map[uint]string, len(classes))
		subjectTotal := map[string]int{}
		for i, c := range classes {
			classIDs[i] = c.ID
			name := c.CurriculumSubject.Subject.Name
			classSubject[c.ID] = name
			subjectTotal[name]++
		}
		records, err := s.attendanceRepo.ListByClasses(classIDs)
		if err != nil {
			return nil, err
		}
		presentCount := 0
		subjectPresent := map[string]int{}
		for _, rec := range records {
			if rec.Status != models.StatusPresent {
				continue
			}
			presentCount++
			subjectPresent[classSubject[rec.ClassID]]++
		}

		for name, total := range subjectTotal {
			if pct := percentage(subjectPresent[name], total*len(students)); pct != nil {
				subjectSum[name] += *pct
				subjectGroups[name]++
			}
		}

		pct := percentage(presentCount, len(classes)*len(students))
		if pct == nil {
			continue
		}
		pctSum += *pct
		pctCount++

		if *pct < WatchThreshold {
			level := "watch"
			if *pct < RiskThreshold {
				level = "risk"
			}
			report.RiskGroups = append(report.RiskGroups, RiskGroup{
				GroupID:    group.ID,
				Group:      group.Name,
				Attendance: *pct,
				Level:      level,
			})
		}
	}

	report.SubjectsCount = len(subjectGroups)
	for name, sum := range subjectSum {
		avg := int(math.Round(float64(sum) / float64(subjectGroups[name])))
		report.BySubject[name] = &avg
	}
	if pctCount > 0 {
		avg := int(math.Round(float64(pctSum) / float64(pctCount)))
		report.AvgAttendance = &avg
	}
	sort.Slice(report.RiskGroups, func(i, j int) bool {
		return report.RiskGroups[i].Attendance < report.RiskGroups[j].Attendance
	})

	if raw, err := json.Marshal(report); err == nil {
		s.reportCache.Set(ctx, cacheKey, string(raw), s.cacheTTL)
	}
	return report, nil
}

// LongAbsenceRow — студент с признаками длительного отсутствия. LastClassDate
// — последнее занятие с отметкой "присутствовал" (nil — таких отметок нет
// вовсе), LastDate — последний зафиксированный вход через проходную.
type LongAbsenceRow struct {
	StudentID     uint       `json:"studentId"`
	Surname       string     `json:"surname"`
	Name          string     `json:"name"`
	SecondName    string     `json:"secondName"`
	GroupName     string     `json:"groupName"`
	LastClassDate *time.Time `json:"lastClassDate"`
	LastDate      *time.Time `json:"lastDate"`
}

// LongAbsence возвращает студентов кафедры, отсутствующих daysThreshold дней
// и дольше (порог включительно). Сюда попадают две категории: студенты без
// единой отметки "присутствовал" и студенты, чье последнее присутствие
// отстоит от now на порог и больше. Никогда не появлявшиеся идут первыми.
func (s *StatisticsService) LongAbsence(departmentID uint, daysThreshold int, now time.Time) ([]LongAbsenceRow, error) {
	if daysThreshold <= 0 {
		return nil, apperrors.NewValidationError("daysThreshold", "must be a positive integer")
	}
	if ok, err := s.departmentRepo.Exists(departmentID); err != nil {
		return nil, err
	} else if !ok {
		return nil, apperrors.NewNotFoundError("department", departmentID)
	}

	groups, err := s.groupRepo.ListByDepartment(departmentID)
	if err != nil {
		return nil, err
	}

	cutoff := time.Duration(daysThreshold) * 24 * time.Hour
	rows := []LongAbsenceRow{}
	for _, group := range groups {
		students, err := s.studentRepo.ListByGroup(group.ID)
		if err != nil {
			return nil, err
		}
		for _, st := range students {
			lastPresent, err := s.attendanceRepo.LastPresentClassTime(st.ID)
			if err != nil {
				return nil, err
			}
			if lastPresent != nil && now.Sub(*lastPresent) < cutoff {
				continue
			}
			lastEntry, err := s.cpRepo.LastEntryTime(st.ID)
			if err != nil {
				return nil, err
			}
			rows = append(rows, LongAbsenceRow{
				StudentID:     st.ID,
				Surname:       st.Surname,
				Name:          st.Name,
				SecondName:    st.SecondName,
				GroupName:     group.Name,
				LastClassDate: lastPresent,
				LastDate:      lastEntry,
			})
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].LastClassDate, rows[j].LastClassDate
		switch {
		case a == nil && b == nil:
			return rows[i].Surname < rows[j].Surname
		case a == nil:
			return true
		case b == nil:
			return false
		default:
			return a.Before(*b)
		}
	})
	return rows, nil
}
