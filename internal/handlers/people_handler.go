package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/apperrors"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/repository"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/services"
)

// PeopleHandler обслуживает административный учет: группы, студентов и
// сотрудников. Пароли хэшируются на создании и никогда не возвращаются.
type PeopleHandler struct {
	groupRepo    *repository.GroupRepository
	studentRepo  *repository.StudentRepository
	employeeRepo *repository.EmployeeRepository
}

func NewPeopleHandler(
	groupRepo *repository.GroupRepository,
	studentRepo *repository.StudentRepository,
	employeeRepo *repository.EmployeeRepository,
) *PeopleHandler {
	return &PeopleHandler{
		groupRepo:    groupRepo,
		studentRepo:  studentRepo,
		employeeRepo: employeeRepo,
	}
}

type groupRequest struct {
	Name         string `json:"name" binding:"required"`
	Course       int    `json:"course" binding:"required,min=1,max=6"`
	DepartmentID uint   `json:"departmentId" binding:"required"`
	CurriculumID uint   `json:"curriculumId" binding:"required"`
}

// ListGroups возвращает группы с фильтрами по кафедре и плану
// GET /api/admin/groups?departmentId=&curriculumId=
func (h *PeopleHandler) ListGroups(c *gin.Context) {
	departmentID, ok := parseQueryID(c, "departmentId")
	if !ok {
		return
	}
	curriculumID, ok := parseQueryID(c, "curriculumId")
	if !ok {
		return
	}
	items, err := h.groupRepo.List(departmentID, curriculumID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateGroup создает группу
// POST /api/admin/groups
func (h *PeopleHandler) CreateGroup(c *gin.Context) {
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	group := &models.StudentGroup{
		Name:         req.Name,
		Course:       req.Course,
		DepartmentID: req.DepartmentID,
		CurriculumID: req.CurriculumID,
	}
	if err := h.groupRepo.Create(group); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

// UpdateGroup изменяет группу
// PUT /api/admin/groups/:id
func (h *PeopleHandler) UpdateGroup(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	group, err := h.groupRepo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			respondError(c, apperrors.NewNotFoundError("group", id))
			return
		}
		respondError(c, err)
		return
	}
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	group.Name = req.Name
	group.Course = req.Course
	group.DepartmentID = req.DepartmentID
	group.CurriculumID = req.CurriculumID
	if err := h.groupRepo.Update(group); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// DeleteGroup удаляет группу
// DELETE /api/admin/groups/:id
func (h *PeopleHandler) DeleteGroup(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, err := h.groupRepo.GetByID(id); err != nil {
		if repository.IsNotFound(err) {
			respondError(c, apperrors.NewNotFoundError("group", id))
			return
		}
		respondError(c, err)
		return
	}
	if err := h.groupRepo.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type studentRequest struct {
	Surname       string    `json:"surname" binding:"required"`
	Name          string    `json:"name" binding:"required"`
	SecondName    string    `json:"secondName"`
	BirthDate     time.Time `json:"birthDate" binding:"required"`
	Email         string    `json:"email" binding:"required,email"`
	Password      string    `json:"password"`
	StudentCardID int       `json:"studentCardId" binding:"required"`
	GroupID       uint      `json:"groupId" binding:"required"`
}

// ListStudents возвращает студентов с фильтром по группе
// GET /api/admin/students?groupId=
func (h *PeopleHandler) ListStudents(c *gin.Context) {
	groupID, ok := parseQueryID(c, "groupId")
	if !ok {
		return
	}
	items, err := h.studentRepo.List(groupID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateStudent создает студента
// POST /api/admin/students
func (h *PeopleHandler) CreateStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Password) < 8 {
		respondError(c, apperrors.NewValidationError("password", "must be at least 8 characters"))
		return
	}
	hash, err := services.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	student := &models.Student{
		Surname:       req.Surname,
		Name:          req.Name,
		SecondName:    req.SecondName,
		BirthDate:     req.BirthDate,
		Email:         req.Email,
		Password:      hash,
		StudentCardID: req.StudentCardID,
		GroupID:       req.GroupID,
	}
	if err := h.studentRepo.Create(student); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, student)
}

// UpdateStudent изменяет студента; пустой пароль оставляет прежний
// PUT /api/admin/students/:id
func (h *PeopleHandler) UpdateStudent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	student, err := h.studentRepo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			respondError(c, apperrors.NewNotFoundError("student", id))
			return
		}
		respondError(c, err)
		return
	}
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	student.Surname = req.Surname
	student.Name = req.Name
	student.SecondName = req.SecondName
	student.BirthDate = req.BirthDate
	student.Email = req.Email
	student.StudentCardID = req.StudentCardID
	student.GroupID = req.GroupID
	if req.Password != "" {
		hash, err := services.HashPassword(req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		student.Password = hash
	}
	if err := h.studentRepo.Update(student); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// DeleteStudent удаляет студента
// DELETE /api/admin/students/:id
func (h *PeopleHandler) DeleteStudent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, err := h.studentRepo.GetByID(id); err != nil {
		if repository.IsNotFound(err) {
			respondError(c, apperrors.NewNotFoundError("student", id))
			return
		}
		respondError(c, err)
		return
	}
	if err := h.studentRepo.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type employeeRequest struct {
	Surname      string    `json:"surname" binding:"required"`
	Name         string    `json:"name" binding:"required"`
	SecondName   string    `json:"secondName"`
	BirthDate    time.Time `json:"birthDate" binding:"required"`
	Email        string    `json:"email" binding:"required,email"`
	Password     string    `json:"password"`
	RoleID       uint      `json:"roleId" binding:"required"`
	PositionID   uint      `json:"positionId" binding:"required"`
	DepartmentID uint      `json:"departmentId" binding:"required"`
}

// ListEmployees возвращает сотрудников с фильтром по кафедре
// GET /api/admin/employees?departmentId=
func (h *PeopleHandler) ListEmployees(c *gin.Context) {
	departmentID, ok := parseQueryID(c, "departmentId")
	if !ok {
		return
	}
	items, err := h.employeeRepo.List(departmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateEmployee создает сотрудника
// POST /api/admin/employees
func (h *PeopleHandler) CreateEmployee(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Password) < 8 {
		respondError(c, apperrors.NewValidationError("password", "must be at least 8 characters"))
		return
	}
	hash, err := services.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	employee := &models.Employee{
		Surname:      req.Surname,
		Name:         req.Name,
		SecondName:   req.SecondName,
		BirthDate:    req.BirthDate,
		Email:        req.Email,
		Password:     hash,
		RoleID:       req.RoleID,
		PositionID:   req.PositionID,
		DepartmentID: req.DepartmentID,
	}
	if err := h.employeeRepo.Create(employee); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, employee)
}

// UpdateEmployee изменяет сотрудника; пустой пароль оставляет прежний
// PUT /api/admin/employees/:id
func (h *PeopleHandler) UpdateEmployee(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	employee, err := h.employeeRepo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			respondError(c, apperrors.NewNotFoundError("employee", id))
			return
		}
		respondError(c, err)
		return
	}
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	employee.Surname = req.Surname
	employee.Name = req.Name
	employee.SecondName = req.SecondName
	employee.BirthDate = req.BirthDate
	employee.Email = req.Email
	employee.RoleID = req.RoleID
	employee.PositionID = req.PositionID
	employee.DepartmentID = req.DepartmentID
	if req.Password != "" {
		hash, err := services.HashPassword(req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		employee.Password = hash
	}
	if err := h.employeeRepo.Update(employee); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee удаляет сотрудника
// DELETE /api/admin/employees/:id
func (h *PeopleHandler) DeleteEmployee(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, err := h.employeeRepo.GetByID(id); err != nil {
		if repository.IsNotFound(err) {
			respondError(c, apperrors.NewNotFoundError("employee", id))
			return
		}
		respondError(c, err)
		return
	}
	if err := h.employeeRepo.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
