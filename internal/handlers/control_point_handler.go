package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/apperrors"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/repository"
)

// ControlPointHandler обслуживает контрольные точки корпусов и прием записей
// проходов. Записи обычно шлет интеграция с турнстайлами, поэтому прием
// вынесен в отдельный эндпоинт с минимальной логикой.
type ControlPointHandler struct {
	cpRepo      *repository.ControlPointRepository
	studentRepo *repository.StudentRepository
}

func NewControlPointHandler(cpRepo *repository.ControlPointRepository, studentRepo *repository.StudentRepository) *ControlPointHandler {
	return &ControlPointHandler{cpRepo: cpRepo, studentRepo: studentRepo}
}

// List возвращает контрольные точки
// GET /api/admin/control-points
func (h *ControlPointHandler) List(c *gin.Context) {
	items, err := h.cpRepo.ListPoints()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type controlPointRequest struct {
	Name       string `json:"name" binding:"required"`
	BuildingID uint   `json:"buildingId" binding:"required"`
}

// Create создает контрольную точку
// POST /api/admin/control-points
func (h *ControlPointHandler) Create(c *gin.Context) {
	var req controlPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	point := &models.ControlPoint{Name: req.Name, BuildingID: req.BuildingID}
	if err := h.cpRepo.CreatePoint(point); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, point)
}

// Delete удаляет контрольную точку
// DELETE /api/admin/control-points/:id
func (h *ControlPointHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.cpRepo.DeletePoint(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type passRecordRequest struct {
	Datetime       time.Time        `json:"datetime" binding:"required"`
	Direction      models.Direction `json:"direction" binding:"required,oneof=in out"`
	ControlPointID uint             `json:"controlPointId" binding:"required"`
	StudentID      uint             `json:"studentId" binding:"required"`
}

// CreateRecord принимает запись прохода студента через контрольную точку
// POST /api/admin/control-points/records
func (h *ControlPointHandler) CreateRecord(c *gin.Context) {
	var req passRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.studentRepo.GetByID(req.StudentID); err != nil {
		if repository.IsNotFound(err) {
			respondError(c, apperrors.NewNotFoundError("student", req.StudentID))
			return
		}
		respondError(c, err)
		return
	}

	record := &models.ControlPointRecord{
		Datetime:       req.Datetime,
		Direction:      req.Direction,
		ControlPointID: req.ControlPointID,
		StudentID:      req.StudentID,
	}
	if err := h.cpRepo.CreateRecord(record); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}
