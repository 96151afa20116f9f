package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/repository"
	"github.com/cr1stal-7/Attendance-control-system-sub000/pkg/cache"
)

// fixture поднимает базу в памяти и собирает сервисы поверх нее.
type fixture struct {
	db    *gorm.DB
	repos *repository.Repos

	curriculum *CurriculumService
	schedule   *ScheduleService
	attendance *AttendanceService
	statistics *StatisticsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Building{},
		&models.Classroom{},
		&models.Position{},
		&models.Role{},
		&models.Subject{},
		&models.ClassType{},
		&models.EducationForm{},
		&models.Department{},
		&models.Specialization{},
		&models.Curriculum{},
		&models.Semester{},
		&models.CurriculumSubject{},
		&models.StudentGroup{},
		&models.Employee{},
		&models.Student{},
		&models.Class{},
		&models.AttendanceRecord{},
		&models.ControlPoint{},
		&models.ControlPointRecord{},
	))

	repos := repository.NewRepos(db)
	reportCache := cache.New("") // кэш отключен

	f := &fixture{db: db, repos: repos}
	f.curriculum = NewCurriculumService(repos.Curriculum, repos.Group, repos.Subjects, repos.Semesters)
	f.schedule = NewScheduleService(
		repos.Class, repos.Curriculum, repos.Group, repos.Employee,
		repos.Attendance, repos.ClassTypes, repos.Classrooms, reportCache,
	)
	f.attendance = NewAttendanceService(repos.Attendance, repos.Class, repos.Student, repos.ControlPoint, reportCache)
	f.statistics = NewStatisticsService(
		repos.Attendance, repos.Class, repos.Student, repos.Group,
		repos.Departments, repos.ControlPoint, reportCache, time.Minute,
	)
	return f
}

// seedBase создает минимальный набор справочников: корпус, аудиторию,
// кафедру, роли, преподавателя, план с одной дисциплиной в семестре и группу
// этого плана.
type baseData struct {
	department models.Department
	curriculum models.Curriculum
	semester   models.Semester
	subject    models.Subject
	cs         models.CurriculumSubject
	group      models.StudentGroup
	teacher    models.Employee
	classType  models.ClassType
	classroom  models.Classroom
}

func (f *fixture) seedBase(t *testing.T) *baseData {
	t.Helper()

	d := &baseData{}
	building := models.Building{Name: "Главный корпус"}
	require.NoError(t, f.db.Create(&building).Error)
	d.classroom = models.Classroom{Name: "101", BuildingID: building.ID}
	require.NoError(t, f.db.Create(&d.classroom).Error)

	d.department = models.Department{Name: "Кафедра информатики"}
	require.NoError(t, f.db.Create(&d.department).Error)

	position := models.Position{Name: "Доцент"}
	require.NoError(t, f.db.Create(&position).Error)

	teacherRole := models.Role{Name: models.RoleTeacher}
	require.NoError(t, f.db.Create(&teacherRole).Error)

	specialization := models.Specialization{Name: "Программная инженерия", Code: "09.03.04"}
	require.NoError(t, f.db.Create(&specialization).Error)
	form := models.EducationForm{Name: "Очная"}
	require.NoError(t, f.db.Create(&form).Error)

	d.curriculum = models.Curriculum{
		Name:             "ПИ-2023",
		AcademicYear:     "2023/2024",
		DurationYears:    4,
		SpecializationID: specialization.ID,
		EducationFormID:  form.ID,
	}
	require.NoError(t, f.db.Create(&d.curriculum).Error)

	d.semester = models.Semester{AcademicYear: "2023/2024", Type: models.SemesterAutumn}
	require.NoError(t, f.db.Create(&d.semester).Error)

	d.subject = models.Subject{Name: "Базы данных"}
	require.NoError(t, f.db.Create(&d.subject).Error)

	d.cs = models.CurriculumSubject{
		CurriculumID: d.curriculum.ID,
		SubjectID:    d.subject.ID,
		SemesterID:   d.semester.ID,
		Hours:        72,
	}
	require.NoError(t, f.db.Create(&d.cs).Error)

	d.group = models.StudentGroup{
		Name:         "ПИ-31",
		Course:       3,
		DepartmentID: d.department.ID,
		CurriculumID: d.curriculum.ID,
	}
	require.NoError(t, f.db.Create(&d.group).Error)

	d.teacher = models.Employee{
		Surname:      "Иванов",
		Name:         "Иван",
		SecondName:   "Иванович",
		BirthDate:    time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
		Email:        "ivanov@example.edu",
		Password:     "hash",
		RoleID:       teacherRole.ID,
		PositionID:   position.ID,
		DepartmentID: d.department.ID,
	}
	require.NoError(t, f.db.Create(&d.teacher).Error)

	d.classType = models.ClassType{Name: "Лекция"}
	require.NoError(t, f.db.Create(&d.classType).Error)

	return d
}

// seedStudent создает студента в группе.
func (f *fixture) seedStudent(t *testing.T, groupID uint, n int) models.Student {
	t.Helper()
	s := models.Student{
		Surname:       fmt.Sprintf("Студентов%d", n),
		Name:          "Тест",
		BirthDate:     time.Date(2003, 6, 1, 0, 0, 0, 0, time.UTC),
		Email:         fmt.Sprintf("student%d-%d@example.edu", groupID, n),
		Password:      "hash",
		StudentCardID: int(groupID)*1000 + n,
		GroupID:       groupID,
	}
	require.NoError(t, f.db.Create(&s).Error)
	return s
}

// seedClass создает занятие по привязке d.cs для перечисленных групп.
func (f *fixture) seedClass(t *testing.T, d *baseData, at time.Time, groupIDs ...uint) *models.Class {
	t.Helper()
	class, err := f.schedule.CreateClass(ClassInput{
		Datetime:            at,
		CurriculumSubjectID: d.cs.ID,
		ClassTypeID:         d.classType.ID,
		ClassroomID:         d.classroom.ID,
		EmployeeID:          d.teacher.ID,
		GroupIDs:            groupIDs,
	})
	require.NoError(t, err)
	return class
}
