package repository

import (
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmployeeRepository хранит сотрудников
type EmployeeRepository struct{ db *gorm.DB }

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository { return &EmployeeRepository{db: db} }

func (r *EmployeeRepository) List(departmentID uint) ([]models.Employee, error) {
	q := r.db.Preload("Role").Preload("Position").Preload("Department")
	if departmentID != 0 {
		q = q.Where("department_id = ?", departmentID)
	}
	var employees []models.Employee
	err := q.Order("surname, name").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetByID(id uint) (*models.Employee, error) {
	var e models.Employee
	if err := r.db.Preload("Role").Preload("Position").Preload("Department").First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) GetByEmail(email string) (*models.Employee, error) {
	var e models.Employee
	if err := r.db.Preload("Role").Preload("Department").Where("email = ?", email).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// ListTeachers возвращает сотрудников с ролью teacher для списков планировщика.
func (r *EmployeeRepository) ListTeachers() ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.Joins("JOIN roles ON roles.id = employees.role_id").
		Where("roles.name = ?", models.RoleTeacher).
		Order("surname, name").
		Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) Create(e *models.Employee) error { return r.db.Create(e).Error }

// Update не трогает ассоциации: смена роли, должности или факультета должна
// записать новые внешние ключи, а не значения из прелоаженных структур.
func (r *EmployeeRepository) Update(e *models.Employee) error {
	return r.db.Omit(clause.Associations).Save(e).Error
}

func (r *EmployeeRepository) Delete(id uint) error {
	return r.db.Delete(&models.Employee{}, id).Error
}
