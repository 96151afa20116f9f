package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Position{},
		&models.Role{},
		&models.EducationForm{},
		&models.Department{},
		&models.Specialization{},
		&models.Curriculum{},
		&models.StudentGroup{},
		&models.Employee{},
		&models.Student{},
	))
	return db
}

// Обновления людей и групп идут через чтение с прелоадом и последующий Save.
// Ассоциации при записи должны пропускаться: иначе gorm перезапишет новые
// внешние ключи идентификаторами прелоаженных структур.
func TestUpdatesPersistForeignKeyChanges(t *testing.T) {
	db := openTestDB(t)

	deptA := models.Department{Name: "Кафедра информатики"}
	require.NoError(t, db.Create(&deptA).Error)
	deptB := models.Department{Name: "Кафедра математики"}
	require.NoError(t, db.Create(&deptB).Error)

	spec := models.Specialization{Name: "Программная инженерия", Code: "09.03.04"}
	require.NoError(t, db.Create(&spec).Error)
	form := models.EducationForm{Name: "Очная"}
	require.NoError(t, db.Create(&form).Error)
	planA := models.Curriculum{Name: "ПИ-2023", AcademicYear: "2023/2024", DurationYears: 4, SpecializationID: spec.ID, EducationFormID: form.ID}
	require.NoError(t, db.Create(&planA).Error)
	planB := models.Curriculum{Name: "ПИ-2024", AcademicYear: "2024/2025", DurationYears: 4, SpecializationID: spec.ID, EducationFormID: form.ID}
	require.NoError(t, db.Create(&planB).Error)

	t.Run("группа меняет кафедру и план", func(t *testing.T) {
		repo := NewGroupRepository(db)
		created := models.StudentGroup{Name: "ПИ-31", Course: 3, DepartmentID: deptA.ID, CurriculumID: planA.ID}
		require.NoError(t, repo.Create(&created))

		g, err := repo.GetByID(created.ID)
		require.NoError(t, err)
		g.DepartmentID = deptB.ID
		g.CurriculumID = planB.ID
		require.NoError(t, repo.Update(g))

		var stored models.StudentGroup
		require.NoError(t, db.First(&stored, g.ID).Error)
		assert.Equal(t, deptB.ID, stored.DepartmentID)
		assert.Equal(t, planB.ID, stored.CurriculumID)
	})

	t.Run("студент переводится в другую группу", func(t *testing.T) {
		groups := NewGroupRepository(db)
		groupB := models.StudentGroup{Name: "ПИ-32", Course: 3, DepartmentID: deptA.ID, CurriculumID: planA.ID}
		require.NoError(t, groups.Create(&groupB))

		groupA := models.StudentGroup{Name: "ПИ-31а", Course: 3, DepartmentID: deptA.ID, CurriculumID: planA.ID}
		require.NoError(t, groups.Create(&groupA))

		repo := NewStudentRepository(db)
		created := models.Student{
			Surname: "Студентов", Name: "Тест",
			BirthDate: time.Date(2003, 6, 1, 0, 0, 0, 0, time.UTC),
			Email:     "student@example.edu", Password: "hash",
			StudentCardID: 1001, GroupID: groupA.ID,
		}
		require.NoError(t, repo.Create(&created))

		s, err := repo.GetByID(created.ID)
		require.NoError(t, err)
		s.GroupID = groupB.ID
		require.NoError(t, repo.Update(s))

		var stored models.Student
		require.NoError(t, db.First(&stored, s.ID).Error)
		assert.Equal(t, groupB.ID, stored.GroupID)
	})

	t.Run("сотрудник меняет роль и кафедру", func(t *testing.T) {
		teacherRole := models.Role{Name: models.RoleTeacher}
		require.NoError(t, db.Create(&teacherRole).Error)
		staffRole := models.Role{Name: models.RoleStaff}
		require.NoError(t, db.Create(&staffRole).Error)
		position := models.Position{Name: "Доцент"}
		require.NoError(t, db.Create(&position).Error)

		repo := NewEmployeeRepository(db)
		created := models.Employee{
			Surname: "Иванов", Name: "Иван",
			BirthDate: time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
			Email:     "ivanov@example.edu", Password: "hash",
			RoleID: teacherRole.ID, PositionID: position.ID, DepartmentID: deptA.ID,
		}
		require.NoError(t, repo.Create(&created))

		e, err := repo.GetByID(created.ID)
		require.NoError(t, err)
		e.RoleID = staffRole.ID
		e.DepartmentID = deptB.ID
		require.NoError(t, repo.Update(e))

		var stored models.Employee
		require.NoError(t, db.First(&stored, e.ID).Error)
		assert.Equal(t, staffRole.ID, stored.RoleID)
		assert.Equal(t, deptB.ID, stored.DepartmentID)
	})
}
