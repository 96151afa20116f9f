package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/repository"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/services"
)

// AttendanceHandler обслуживает журнал преподавателя: каскад выбора
// семестр → дисциплина → группа → занятие, форму журнала и запись отметок.
type AttendanceHandler struct {
	service   *services.AttendanceService
	classRepo *repository.ClassRepository
}

func NewAttendanceHandler(service *services.AttendanceService, classRepo *repository.ClassRepository) *AttendanceHandler {
	return &AttendanceHandler{service: service, classRepo: classRepo}
}

// Semesters возвращает семестры, в которых у преподавателя есть занятия
// GET /api/teacher/semesters
func (h *AttendanceHandler) Semesters(c *gin.Context) {
	identity := CurrentIdentity(c)
	items, err := h.classRepo.SemestersByTeacher(identity.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Subjects возвращает дисциплины преподавателя в семестре
// GET /api/teacher/semesters/:semesterId/subjects
func (h *AttendanceHandler) Subjects(c *gin.Context) {
	identity := CurrentIdentity(c)
	semesterID, ok := parseID(c, "semesterId")
	if !ok {
		return
	}
	items, err := h.classRepo.SubjectsByTeacherAndSemester(identity.ID, semesterID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Groups возвращает группы преподавателя по дисциплине в семестре
// GET /api/teacher/semesters/:semesterId/subjects/:subjectId/groups
func (h *AttendanceHandler) Groups(c *gin.Context) {
	identity := CurrentIdentity(c)
	semesterID, ok := parseID(c, "semesterId")
	if !ok {
		return
	}
	subjectID, ok := parseID(c, "subjectId")
	if !ok {
		return
	}
	items, err := h.classRepo.GroupsByTeacherSubjectSemester(identity.ID, subjectID, semesterID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Classes возвращает занятия преподавателя по дисциплине в семестре
// GET /api/teacher/semesters/:semesterId/subjects/:subjectId/classes?date=
func (h *AttendanceHandler) Classes(c *gin.Context) {
	identity := CurrentIdentity(c)
	semesterID, ok := parseID(c, "semesterId")
	if !ok {
		return
	}
	subjectID, ok := parseID(c, "subjectId")
	if !ok {
		return
	}
	day, ok := parseDay(c)
	if !ok {
		return
	}
	items, err := h.classRepo.ClassesByTeacherSubjectSemester(identity.ID, subjectID, semesterID, day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Roster возвращает форму журнала: студентов группы с отметками занятия,
// предзаполненными по записям проходных
// GET /api/teacher/classes/:id/roster?groupId=
func (h *AttendanceHandler) Roster(c *gin.Context) {
	identity := CurrentIdentity(c)
	classID, ok := parseID(c, "id")
	if !ok {
		return
	}
	groupID, ok := parseQueryID(c, "groupId")
	if !ok {
		return
	}
	if groupID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "groupId is required"})
		return
	}

	class, rows, err := h.service.Roster(identity.ID, classID, groupID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"class":    class,
		"students": rows,
	})
}

type attendanceEntryRequest struct {
	StudentID uint                    `json:"studentId" binding:"required"`
	ClassID   uint                    `json:"classId"`
	Status    models.AttendanceStatus `json:"status" binding:"required"`
}

// Save записывает журнал занятия целиком: либо применяются все отметки,
// либо ни одной. Тело — массив строк одного занятия; classId в строке
// необязателен, но если задан, обязан совпадать с занятием из пути.
// Повторная отправка того же журнала перезаписывает статусы.
// POST /api/teacher/classes/:id/attendance
func (h *AttendanceHandler) Save(c *gin.Context) {
	identity := CurrentIdentity(c)
	classID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req []attendanceEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries := make([]services.AttendanceEntry, len(req))
	for i, r := range req {
		if r.ClassID != 0 && r.ClassID != classID {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "all records must belong to the class from the path",
				"kind":  "validation",
				"field": "classId",
			})
			return
		}
		entries[i] = services.AttendanceEntry{StudentID: r.StudentID, Status: r.Status}
	}
	if err := h.service.SaveBatch(identity.ID, classID, entries); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "attendance saved", "count": len(entries)})
}
