package repository

import (
	"gorm.io/gorm"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"
)

// Repos собирает все репозитории приложения поверх одного подключения.
type Repos struct {
	Curriculum   *CurriculumRepository
	Group        *GroupRepository
	Student      *StudentRepository
	Employee     *EmployeeRepository
	Class        *ClassRepository
	Attendance   *AttendanceRepository
	ControlPoint *ControlPointRepository

	Buildings       *CatalogRepository[models.Building]
	Classrooms      *CatalogRepository[models.Classroom]
	Positions       *CatalogRepository[models.Position]
	Subjects        *CatalogRepository[models.Subject]
	ClassTypes      *CatalogRepository[models.ClassType]
	EducationForms  *CatalogRepository[models.EducationForm]
	Departments     *CatalogRepository[models.Department]
	Specializations *CatalogRepository[models.Specialization]
	Semesters       *CatalogRepository[models.Semester]
}

// NewRepos создает репозитории поверх подключения к базе.
func NewRepos(db *gorm.DB) *Repos {
	return &Repos{
		Curriculum:   NewCurriculumRepository(db),
		Group:        NewGroupRepository(db),
		Student:      NewStudentRepository(db),
		Employee:     NewEmployeeRepository(db),
		Class:        NewClassRepository(db),
		Attendance:   NewAttendanceRepository(db),
		ControlPoint: NewControlPointRepository(db),

		Buildings:       NewCatalogRepository[models.Building](db),
		Classrooms:      NewCatalogRepository[models.Classroom](db),
		Positions:       NewCatalogRepository[models.Position](db),
		Subjects:        NewCatalogRepository[models.Subject](db),
		ClassTypes:      NewCatalogRepository[models.ClassType](db),
		EducationForms:  NewCatalogRepository[models.EducationForm](db),
		Departments:     NewCatalogRepository[models.Department](db),
		Specializations: NewCatalogRepository[models.Specialization](db),
		Semesters:       NewCatalogRepository[models.Semester](db),
	}
}
