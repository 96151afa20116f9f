package main

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"
)

// Наполняет локальную базу демонстрационными данными для ручной проверки:
// справочники, план с дисциплинами, группа со студентами, расписание на
// неделю и частично заполненный журнал.
func main() {
	db, err := gorm.Open(sqlite.Open("attendance.db"), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
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
	)
	if err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	mustHash := func(p string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		return string(h)
	}

	// Справочники
	building := models.Building{Name: "Главный корпус"}
	db.Create(&building)
	room := models.Classroom{Name: "305", BuildingID: building.ID}
	db.Create(&room)

	roles := map[string]models.Role{}
	for _, name := range []string{models.RoleAdmin, models.RoleStaff, models.RoleTeacher, models.RoleStudent} {
		r := models.Role{Name: name}
		db.Create(&r)
		roles[name] = r
	}
	position := models.Position{Name: "Доцент"}
	db.Create(&position)
	department := models.Department{Name: "Кафедра программной инженерии"}
	db.Create(&department)
	specialization := models.Specialization{Name: "Программная инженерия", Code: "09.03.04"}
	db.Create(&specialization)
	form := models.EducationForm{Name: "Очная"}
	db.Create(&form)
	lecture := models.ClassType{Name: "Лекция"}
	db.Create(&lecture)

	// Учебный план
	curriculum := models.Curriculum{
		Name: "ПИ-2023", AcademicYear: "2023/2024", DurationYears: 4,
		SpecializationID: specialization.ID, EducationFormID: form.ID,
	}
	db.Create(&curriculum)
	semester := models.Semester{AcademicYear: "2023/2024", Type: models.SemesterAutumn}
	db.Create(&semester)

	subjects := []string{"Базы данных", "Компьютерные сети", "Операционные системы"}
	var bindings []models.CurriculumSubject
	for _, name := range subjects {
		subject := models.Subject{Name: name}
		db.Create(&subject)
		cs := models.CurriculumSubject{
			CurriculumID: curriculum.ID, SubjectID: subject.ID,
			SemesterID: semester.ID, Hours: 72,
		}
		db.Create(&cs)
		bindings = append(bindings, cs)
	}

	// Люди
	admin := models.Employee{
		Surname: "Админов", Name: "Антон", BirthDate: time.Date(1979, 3, 3, 0, 0, 0, 0, time.UTC),
		Email: "admin@example.edu", Password: mustHash("admin12345"),
		RoleID: roles[models.RoleAdmin].ID, PositionID: position.ID, DepartmentID: department.ID,
	}
	db.Create(&admin)
	teacher := models.Employee{
		Surname: "Иванов", Name: "Иван", SecondName: "Иванович",
		BirthDate: time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
		Email:     "ivanov@example.edu", Password: mustHash("teacher12345"),
		RoleID: roles[models.RoleTeacher].ID, PositionID: position.ID, DepartmentID: department.ID,
	}
	db.Create(&teacher)

	group := models.StudentGroup{Name: "ПИ-31", Course: 3, DepartmentID: department.ID, CurriculumID: curriculum.ID}
	db.Create(&group)

	var students []models.Student
	for i := 1; i <= 5; i++ {
		s := models.Student{
			Surname: fmt.Sprintf("Студентов%d", i), Name: "Тест",
			BirthDate:     time.Date(2003, 6, 1, 0, 0, 0, 0, time.UTC),
			Email:         fmt.Sprintf("student%d@example.edu", i),
			Password:      mustHash("student12345"),
			StudentCardID: 202300 + i, GroupID: group.ID,
		}
		db.Create(&s)
		students = append(students, s)
	}

	// Расписание на неделю и журнал первого занятия
	base := time.Now().AddDate(0, 0, -7).Truncate(24 * time.Hour).Add(10 * time.Hour)
	for day, cs := range bindings {
		class := models.Class{
			Datetime: base.AddDate(0, 0, day), CurriculumSubjectID: cs.ID,
			ClassTypeID: lecture.ID, ClassroomID: room.ID, EmployeeID: teacher.ID,
		}
		db.Create(&class)
		db.Create(&models.ClassGroup{ClassID: class.ID, GroupID: group.ID})

		if day == 0 {
			for i, s := range students {
				status := models.StatusPresent
				if i%3 == 2 {
					status = models.StatusAbsent
				}
				db.Create(&models.AttendanceRecord{
					ClassID: class.ID, StudentID: s.ID, Status: status, Time: class.Datetime,
				})
			}
		}
	}

	point := models.ControlPoint{Name: "Турникет 1", BuildingID: building.ID}
	db.Create(&point)
	db.Create(&models.ControlPointRecord{
		Datetime: base.Add(-20 * time.Minute), Direction: models.DirectionIn,
		ControlPointID: point.ID, StudentID: students[0].ID,
	})

	fmt.Println("Демо-данные записаны: admin@example.edu / ivanov@example.edu / studentN@example.edu")
}
