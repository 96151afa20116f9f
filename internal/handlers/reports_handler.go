package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/apperrors"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/repository"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/services"
)

// ReportsHandler обслуживает отчеты деканата и личную статистику студента.
type ReportsHandler struct {
	statistics    *services.StatisticsService
	curriculum    *services.CurriculumService
	groupRepo     *repository.GroupRepository
	defaultDays   int
}

func NewReportsHandler(
	statistics *services.StatisticsService,
	curriculum *services.CurriculumService,
	groupRepo *repository.GroupRepository,
	defaultDays int,
) *ReportsHandler {
	return &ReportsHandler{
		statistics:  statistics,
		curriculum:  curriculum,
		groupRepo:   groupRepo,
		defaultDays: defaultDays,
	}
}

func parseWindowQuery(c *gin.Context) (time.Time, time.Time, bool) {
	start, end, err := services.ParseWindow(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		respondError(c, err)
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// GroupReport возвращает посещаемость группы за отчетное окно
// GET /api/staff/reports/group/:id?startDate=&endDate=
func (h *ReportsHandler) GroupReport(c *gin.Context) {
	groupID, ok := parseID(c, "id")
	if !ok {
		return
	}
	start, end, ok := parseWindowQuery(c)
	if !ok {
		return
	}
	report, err := h.statistics.GroupAttendanceReport(c.Request.Context(), groupID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// FacultyReport возвращает сводку по кафедре: среднюю посещаемость и группы
// риска
// GET /api/staff/reports/faculty/:id?startDate=&endDate=
func (h *ReportsHandler) FacultyReport(c *gin.Context) {
	departmentID, ok := parseID(c, "id")
	if !ok {
		return
	}
	start, end, ok := parseWindowQuery(c)
	if !ok {
		return
	}
	report, err := h.statistics.FacultyAttendanceReport(c.Request.Context(), departmentID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// LongAbsence возвращает студентов кафедры с длительным отсутствием
// GET /api/staff/reports/long-absence/:id?daysThreshold=
func (h *ReportsHandler) LongAbsence(c *gin.Context) {
	departmentID, ok := parseID(c, "id")
	if !ok {
		return
	}
	days := h.defaultDays
	if raw := c.Query("daysThreshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, apperrors.NewValidationError("daysThreshold", "must be a positive integer"))
			return
		}
		days = parsed
	}
	rows, err := h.statistics.LongAbsence(departmentID, days, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"daysThreshold": days,
		"students":      rows,
	})
}

// StudentSemesters возвращает семестры учебного плана группы студента
// GET /api/student/semesters
func (h *ReportsHandler) StudentSemesters(c *gin.Context) {
	identity := CurrentIdentity(c)
	group, err := h.groupRepo.GetByID(identity.GroupID)
	if err != nil {
		if repository.IsNotFound(err) {
			respondError(c, apperrors.NewNotFoundError("group", identity.GroupID))
			return
		}
		respondError(c, err)
		return
	}
	items, err := h.curriculum.SemestersForCurriculum(group.CurriculumID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// StudentStats возвращает сводку студента по дисциплинам семестра
// GET /api/student/semesters/:semesterId/stats
func (h *ReportsHandler) StudentStats(c *gin.Context) {
	identity := CurrentIdentity(c)
	semesterID, ok := parseID(c, "semesterId")
	if !ok {
		return
	}
	stats, err := h.statistics.StudentSemesterStats(identity.ID, semesterID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// StudentSubjectDetail возвращает отметки студента по занятиям дисциплины
// GET /api/student/semesters/:semesterId/subjects/:subjectId
func (h *ReportsHandler) StudentSubjectDetail(c *gin.Context) {
	identity := CurrentIdentity(c)
	semesterID, ok := parseID(c, "semesterId")
	if !ok {
		return
	}
	subjectID, ok := parseID(c, "subjectId")
	if !ok {
		return
	}
	marks, err := h.statistics.StudentSubjectDetail(identity.ID, semesterID, subjectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, marks)
}
