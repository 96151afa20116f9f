package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/services"
)

// ScheduleHandler обслуживает расписание занятий для работников деканата.
type ScheduleHandler struct {
	service *services.ScheduleService
}

func NewScheduleHandler(service *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// classRequest — тело создания/обновления занятия. Поля обязательны все:
// частичного обновления у занятия нет, набор групп заменяется целиком.
type classRequest struct {
	Datetime            time.Time `json:"datetime" binding:"required"`
	CurriculumSubjectID uint      `json:"idCurriculumSubject" binding:"required"`
	ClassTypeID         uint      `json:"idClassType" binding:"required"`
	ClassroomID         uint      `json:"idClassroom" binding:"required"`
	EmployeeID          uint      `json:"idEmployee" binding:"required"`
	GroupIDs            []uint    `json:"groupIds" binding:"required,min=1"`
}

func (r classRequest) toInput() services.ClassInput {
	return services.ClassInput{
		Datetime:            r.Datetime,
		CurriculumSubjectID: r.CurriculumSubjectID,
		ClassTypeID:         r.ClassTypeID,
		ClassroomID:         r.ClassroomID,
		EmployeeID:          r.EmployeeID,
		GroupIDs:            r.GroupIDs,
	}
}

// parseDay читает необязательный query-параметр date (YYYY-MM-DD).
func parseDay(c *gin.Context) (*time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return nil, true
	}
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
		return nil, false
	}
	return &day, true
}

// List возвращает занятия плана и семестра
// GET /api/staff/classes?curriculumId=&semesterId=&curriculumSubjectId=&date=
func (h *ScheduleHandler) List(c *gin.Context) {
	curriculumID, ok := parseQueryID(c, "curriculumId")
	if !ok {
		return
	}
	semesterID, ok := parseQueryID(c, "semesterId")
	if !ok {
		return
	}
	if curriculumID == 0 || semesterID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "curriculumId and semesterId are required"})
		return
	}
	curriculumSubjectID, ok := parseQueryID(c, "curriculumSubjectId")
	if !ok {
		return
	}
	day, ok := parseDay(c)
	if !ok {
		return
	}

	items, err := h.service.ListClasses(curriculumID, semesterID, curriculumSubjectID, day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get возвращает занятие
// GET /api/staff/classes/:id
func (h *ScheduleHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, err := h.service.GetClass(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create создает занятие
// POST /api/staff/classes
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req classRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.service.CreateClass(req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update изменяет занятие. Если при смене состава групп отцепляется группа с
// уже заполненным журналом, занятие сохраняется, а ответ содержит warnings.
// PUT /api/staff/classes/:id
func (h *ScheduleHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req classRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, warnings, err := h.service.UpdateClass(id, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	body := gin.H{"class": item}
	if len(warnings) > 0 {
		body["warnings"] = warnings
	}
	c.JSON(http.StatusOK, body)
}

// Delete удаляет занятие; отметки посещаемости остаются
// DELETE /api/staff/classes/:id
func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteClass(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GroupOptions возвращает группы, допустимые для привязки дисциплины
// GET /api/staff/curriculum-subjects/:id/groups
func (h *ScheduleHandler) GroupOptions(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	items, err := h.service.GroupOptions(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// TeacherOptions возвращает сотрудников с ролью teacher
// GET /api/staff/teachers
func (h *ScheduleHandler) TeacherOptions(c *gin.Context) {
	items, err := h.service.TeacherOptions()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
