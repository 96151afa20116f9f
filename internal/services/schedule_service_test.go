package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/apperrors"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"
)

func classAt(d *baseData, at time.Time, groupIDs ...uint) ClassInput {
	return ClassInput{
		Datetime:            at,
		CurriculumSubjectID: d.cs.ID,
		ClassTypeID:         d.classType.ID,
		ClassroomID:         d.classroom.ID,
		EmployeeID:          d.teacher.ID,
		GroupIDs:            groupIDs,
	}
}

func TestCreateClassWithGroups(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	groupB := models.StudentGroup{Name: "ПИ-32", Course: 3, DepartmentID: d.department.ID, CurriculumID: d.curriculum.ID}
	require.NoError(t, f.db.Create(&groupB).Error)

	at := time.Date(2023, 10, 2, 10, 0, 0, 0, time.UTC)
	class, err := f.schedule.CreateClass(classAt(d, at, d.group.ID, groupB.ID))
	require.NoError(t, err)
	require.Len(t, class.Groups, 2)
	assert.Equal(t, d.subject.Name, class.CurriculumSubject.Subject.Name)
}

func TestCreateClassValidationOrder(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)
	at := time.Date(2023, 10, 2, 10, 0, 0, 0, time.UTC)

	t.Run("обязательные поля", func(t *testing.T) {
		input := classAt(d, at, d.group.ID)
		input.Datetime = time.Time{}
		_, err := f.schedule.CreateClass(input)
		require.Error(t, err)
		var ve *apperrors.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "datetime", ve.Field)
	})

	t.Run("пустой набор групп", func(t *testing.T) {
		input := classAt(d, at)
		_, err := f.schedule.CreateClass(input)
		var ve *apperrors.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "groupIds", ve.Field)
	})

	t.Run("несуществующая привязка", func(t *testing.T) {
		input := classAt(d, at, d.group.ID)
		input.CurriculumSubjectID = 9999
		_, err := f.schedule.CreateClass(input)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	t.Run("сотрудник без роли teacher", func(t *testing.T) {
		staffRole := models.Role{Name: models.RoleStaff}
		require.NoError(t, f.db.Create(&staffRole).Error)
		clerk := models.Employee{
			Surname: "Петров", Name: "Петр",
			BirthDate: time.Date(1985, 1, 1, 0, 0, 0, 0, time.UTC),
			Email:     "petrov@example.edu", Password: "hash",
			RoleID: staffRole.ID, PositionID: d.teacher.PositionID, DepartmentID: d.department.ID,
		}
		require.NoError(t, f.db.Create(&clerk).Error)

		input := classAt(d, at, d.group.ID)
		input.EmployeeID = clerk.ID
		_, err := f.schedule.CreateClass(input)
		assert.Equal(t, apperrors.KindConsistency, apperrors.KindOf(err))
	})
}

func TestCreateClassRejectsForeignCurriculumGroup(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	otherCurriculum := models.Curriculum{
		Name: "ИВТ-2023", AcademicYear: "2023/2024", DurationYears: 4,
		SpecializationID: d.curriculum.SpecializationID, EducationFormID: d.curriculum.EducationFormID,
	}
	require.NoError(t, f.db.Create(&otherCurriculum).Error)
	foreignGroup := models.StudentGroup{Name: "ИВТ-31", Course: 3, DepartmentID: d.department.ID, CurriculumID: otherCurriculum.ID}
	require.NoError(t, f.db.Create(&foreignGroup).Error)

	at := time.Date(2023, 10, 2, 10, 0, 0, 0, time.UTC)
	_, err := f.schedule.CreateClass(classAt(d, at, d.group.ID, foreignGroup.ID))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConsistency, apperrors.KindOf(err))

	// Ничего не записано: ни занятия, ни связей.
	var count int64
	require.NoError(t, f.db.Model(&models.Class{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, f.db.Model(&models.ClassGroup{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateClassReplacesGroupSet(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	groupB := models.StudentGroup{Name: "ПИ-32", Course: 3, DepartmentID: d.department.ID, CurriculumID: d.curriculum.ID}
	require.NoError(t, f.db.Create(&groupB).Error)
	groupC := models.StudentGroup{Name: "ПИ-33", Course: 3, DepartmentID: d.department.ID, CurriculumID: d.curriculum.ID}
	require.NoError(t, f.db.Create(&groupC).Error)

	at := time.Date(2023, 10, 2, 10, 0, 0, 0, time.UTC)
	class := f.seedClass(t, d, at, d.group.ID, groupB.ID)

	// {A, B} -> {B, C}
	updated, warnings, err := f.schedule.UpdateClass(class.ID, classAt(d, at, groupB.ID, groupC.ID))
	require.NoError(t, err)
	assert.Empty(t, warnings)

	ids := make([]uint, 0, 2)
	for _, g := range updated.Groups {
		ids = append(ids, g.ID)
	}
	assert.ElementsMatch(t, []uint{groupB.ID, groupC.ID}, ids)
}

func TestUpdateClassPersistsReferenceChanges(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	at := time.Date(2023, 10, 2, 10, 0, 0, 0, time.UTC)
	class := f.seedClass(t, d, at, d.group.ID)

	// Занятие переносится в другую аудиторию, на другую привязку и к
	// другому преподавателю. Занятие к этому моменту прочитано с прелоадом
	// старых ссылок, и новые внешние ключи не должны откатиться к ним.
	otherRoom := models.Classroom{Name: "202", BuildingID: d.classroom.BuildingID}
	require.NoError(t, f.db.Create(&otherRoom).Error)
	subj2 := models.Subject{Name: "Сети"}
	require.NoError(t, f.db.Create(&subj2).Error)
	cs2 := models.CurriculumSubject{
		CurriculumID: d.curriculum.ID, SubjectID: subj2.ID, SemesterID: d.semester.ID, Hours: 36,
	}
	require.NoError(t, f.db.Create(&cs2).Error)
	teacher2 := models.Employee{
		Surname: "Сидоров", Name: "Семен",
		BirthDate: time.Date(1979, 1, 1, 0, 0, 0, 0, time.UTC),
		Email:     "sidorov@example.edu", Password: "hash",
		RoleID: d.teacher.RoleID, PositionID: d.teacher.PositionID, DepartmentID: d.department.ID,
	}
	require.NoError(t, f.db.Create(&teacher2).Error)

	input := classAt(d, at.Add(time.Hour), d.group.ID)
	input.CurriculumSubjectID = cs2.ID
	input.ClassroomID = otherRoom.ID
	input.EmployeeID = teacher2.ID
	updated, warnings, err := f.schedule.UpdateClass(class.ID, input)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, otherRoom.ID, updated.ClassroomID)

	var stored models.Class
	require.NoError(t, f.db.First(&stored, class.ID).Error)
	assert.Equal(t, cs2.ID, stored.CurriculumSubjectID)
	assert.Equal(t, otherRoom.ID, stored.ClassroomID)
	assert.Equal(t, teacher2.ID, stored.EmployeeID)
	assert.True(t, stored.Datetime.Equal(at.Add(time.Hour)))
}

func TestUpdateClassWarnsOnDetachedGroupWithRecords(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	groupB := models.StudentGroup{Name: "ПИ-32", Course: 3, DepartmentID: d.department.ID, CurriculumID: d.curriculum.ID}
	require.NoError(t, f.db.Create(&groupB).Error)

	at := time.Date(2023, 10, 2, 10, 0, 0, 0, time.UTC)
	class := f.seedClass(t, d, at, d.group.ID, groupB.ID)
	student := f.seedStudent(t, d.group.ID, 1)

	require.NoError(t, f.attendance.SaveBatch(d.teacher.ID, class.ID, []AttendanceEntry{
		{StudentID: student.ID, Status: models.StatusPresent},
	}))

	// Отцепляем группу студента: обновление проходит с предупреждением,
	// отметка остается читаемой.
	_, warnings, err := f.schedule.UpdateClass(class.ID, classAt(d, at, groupB.ID))
	require.NoError(t, err)
	require.NotEmpty(t, warnings)

	records, err := f.repos.Attendance.ListByClass(class.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, student.ID, records[0].StudentID)
}

func TestDeleteClassKeepsAttendance(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	at := time.Date(2023, 10, 2, 10, 0, 0, 0, time.UTC)
	class := f.seedClass(t, d, at, d.group.ID)
	student := f.seedStudent(t, d.group.ID, 1)
	require.NoError(t, f.attendance.SaveBatch(d.teacher.ID, class.ID, []AttendanceEntry{
		{StudentID: student.ID, Status: models.StatusAbsent},
	}))

	require.NoError(t, f.schedule.DeleteClass(class.ID))

	_, err := f.schedule.GetClass(class.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	var linkCount int64
	require.NoError(t, f.db.Model(&models.ClassGroup{}).Where("class_id = ?", class.ID).Count(&linkCount).Error)
	assert.Zero(t, linkCount)

	records, err := f.repos.Attendance.ListByClass(class.ID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestTeacherOptionsUseShortName(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	options, err := f.schedule.TeacherOptions()
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, d.teacher.ID, options[0].ID)
	assert.Equal(t, "Иванов И. И.", options[0].FullName)
}

func TestGroupOptionsMatchValidation(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	otherCurriculum := models.Curriculum{
		Name: "ИВТ-2023", AcademicYear: "2023/2024", DurationYears: 4,
		SpecializationID: d.curriculum.SpecializationID, EducationFormID: d.curriculum.EducationFormID,
	}
	require.NoError(t, f.db.Create(&otherCurriculum).Error)
	foreignGroup := models.StudentGroup{Name: "ИВТ-31", Course: 3, DepartmentID: d.department.ID, CurriculumID: otherCurriculum.ID}
	require.NoError(t, f.db.Create(&foreignGroup).Error)

	options, err := f.schedule.GroupOptions(d.cs.ID)
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, d.group.ID, options[0].ID)
}
