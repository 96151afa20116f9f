package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/apperrors"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/repository"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/services"
)

// CurriculumHandler обслуживает учебные планы и их каскадные списки:
// план → семестры → дисциплины → группы.
type CurriculumHandler struct {
	curriculumRepo *repository.CurriculumRepository
	service        *services.CurriculumService
}

func NewCurriculumHandler(curriculumRepo *repository.CurriculumRepository, service *services.CurriculumService) *CurriculumHandler {
	return &CurriculumHandler{curriculumRepo: curriculumRepo, service: service}
}

type curriculumRequest struct {
	Name             string `json:"name" binding:"required"`
	AcademicYear     string `json:"academicYear" binding:"required,academic_year"`
	DurationYears    int    `json:"durationYears" binding:"required,min=1,max=6"`
	SpecializationID uint   `json:"specializationId" binding:"required"`
	EducationFormID  uint   `json:"educationFormId" binding:"required"`
}

// List возвращает все учебные планы
// GET /api/staff/curricula
func (h *CurriculumHandler) List(c *gin.Context) {
	items, err := h.curriculumRepo.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get возвращает учебный план
// GET /api/staff/curricula/:id
func (h *CurriculumHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, err := h.curriculumRepo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			respondError(c, apperrors.NewNotFoundError("curriculum", id))
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create создает учебный план
// POST /api/staff/curricula
func (h *CurriculumHandler) Create(c *gin.Context) {
	var req curriculumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item := &models.Curriculum{
		Name:             req.Name,
		AcademicYear:     req.AcademicYear,
		DurationYears:    req.DurationYears,
		SpecializationID: req.SpecializationID,
		EducationFormID:  req.EducationFormID,
	}
	if err := h.curriculumRepo.Create(item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update изменяет учебный план
// PUT /api/staff/curricula/:id
func (h *CurriculumHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, err := h.curriculumRepo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			respondError(c, apperrors.NewNotFoundError("curriculum", id))
			return
		}
		respondError(c, err)
		return
	}

	var req curriculumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item.Name = req.Name
	item.AcademicYear = req.AcademicYear
	item.DurationYears = req.DurationYears
	item.SpecializationID = req.SpecializationID
	item.EducationFormID = req.EducationFormID

	if err := h.curriculumRepo.Update(item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete удаляет учебный план
// DELETE /api/staff/curricula/:id
func (h *CurriculumHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if exists, err := h.curriculumRepo.Exists(id); err != nil {
		respondError(c, err)
		return
	} else if !exists {
		respondError(c, apperrors.NewNotFoundError("curriculum", id))
		return
	}
	if err := h.curriculumRepo.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Semesters возвращает семестры плана
// GET /api/staff/curricula/:id/semesters
func (h *CurriculumHandler) Semesters(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	items, err := h.service.SemestersForCurriculum(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// SemesterSubjects возвращает привязки дисциплин пары (план, семестр)
// GET /api/staff/curricula/:id/semesters/:semesterId/subjects
func (h *CurriculumHandler) SemesterSubjects(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	semesterID, ok := parseID(c, "semesterId")
	if !ok {
		return
	}
	items, err := h.service.SubjectsForSemester(id, semesterID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Groups возвращает группы плана
// GET /api/staff/curricula/:id/groups
func (h *CurriculumHandler) Groups(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	items, err := h.service.GroupsForCurriculum(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Subjects возвращает все привязки плана
// GET /api/staff/curricula/:id/subjects
func (h *CurriculumHandler) Subjects(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	items, err := h.service.CurriculumSubjects(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type curriculumSubjectRequest struct {
	SubjectID  uint `json:"subjectId" binding:"required"`
	SemesterID uint `json:"semesterId" binding:"required"`
	Hours      int  `json:"hours" binding:"required"`
}

// AddSubject привязывает дисциплину к семестру плана
// POST /api/staff/curricula/:id/subjects
func (h *CurriculumHandler) AddSubject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req curriculumSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.service.AddSubject(id, req.SubjectID, req.SemesterID, req.Hours)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateSubject изменяет привязку дисциплины
// PUT /api/staff/curriculum-subjects/:id
func (h *CurriculumHandler) UpdateSubject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req curriculumSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.service.UpdateSubject(id, req.SubjectID, req.SemesterID, req.Hours)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// RemoveSubject удаляет привязку дисциплины
// DELETE /api/staff/curriculum-subjects/:id
func (h *CurriculumHandler) RemoveSubject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.RemoveSubject(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
