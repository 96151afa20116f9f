package handlers

import (
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/apperrors"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/repository"
)

// parseID читает числовой path-параметр.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}

// parseQueryID читает необязательный числовой query-параметр (0 — не задан).
func parseQueryID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}

// CatalogHandler — общий CRUD-обработчик справочника. Справочники ведет
// администратор; структура записи определяется типом модели.
type CatalogHandler[T any] struct {
	repo   *repository.CatalogRepository[T]
	entity string
}

func NewCatalogHandler[T any](repo *repository.CatalogRepository[T], entity string) *CatalogHandler[T] {
	return &CatalogHandler[T]{repo: repo, entity: entity}
}

// Register вешает маршруты справочника на группу.
func (h *CatalogHandler[T]) Register(rg *gin.RouterGroup, path string) {
	rg.GET(path, h.List)
	rg.GET(path+"/:id", h.Get)
	rg.POST(path, h.Create)
	rg.PUT(path+"/:id", h.Update)
	rg.DELETE(path+"/:id", h.Delete)
}

func (h *CatalogHandler[T]) List(c *gin.Context) {
	items, err := h.repo.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler[T]) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, err := h.repo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			respondError(c, apperrors.NewNotFoundError(h.entity, id))
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler[T]) Create(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.repo.Create(&item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *CatalogHandler[T]) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if exists, err := h.repo.Exists(id); err != nil {
		respondError(c, err)
		return
	} else if !exists {
		respondError(c, apperrors.NewNotFoundError(h.entity, id))
		return
	}

	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	setID(&item, id)
	if err := h.repo.Update(&item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler[T]) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if exists, err := h.repo.Exists(id); err != nil {
		respondError(c, err)
		return
	} else if !exists {
		respondError(c, apperrors.NewNotFoundError(h.entity, id))
		return
	}
	if err := h.repo.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// setID выставляет первичный ключ записи из path-параметра, чтобы тело
// запроса не могло перезаписать чужую строку.
func setID(item any, id uint) {
	v := reflect.ValueOf(item).Elem().FieldByName("ID")
	if v.IsValid() && v.CanSet() && v.Kind() == reflect.Uint {
		v.SetUint(uint64(id))
	}
}
