package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/apperrors"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"
)

func TestSaveBatchUpsert(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	at := time.Date(2023, 10, 2, 10, 0, 0, 0, time.UTC)
	class := f.seedClass(t, d, at, d.group.ID)
	s1 := f.seedStudent(t, d.group.ID, 1)
	s2 := f.seedStudent(t, d.group.ID, 2)

	require.NoError(t, f.attendance.SaveBatch(d.teacher.ID, class.ID, []AttendanceEntry{
		{StudentID: s1.ID, Status: models.StatusPresent},
		{StudentID: s2.ID, Status: models.StatusAbsent},
	}))

	// Повторная запись той же пары (занятие, студент) перезаписывает статус,
	// не создавая вторую строку.
	require.NoError(t, f.attendance.SaveBatch(d.teacher.ID, class.ID, []AttendanceEntry{
		{StudentID: s2.ID, Status: models.StatusExcused},
	}))

	records, err := f.repos.Attendance.ListByClass(class.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	byStudent := map[uint]models.AttendanceStatus{}
	for _, r := range records {
		byStudent[r.StudentID] = r.Status
	}
	assert.Equal(t, models.StatusPresent, byStudent[s1.ID])
	assert.Equal(t, models.StatusExcused, byStudent[s2.ID])
}

func TestSaveBatchAllOrNothing(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	at := time.Date(2023, 10, 2, 10, 0, 0, 0, time.UTC)
	class := f.seedClass(t, d, at, d.group.ID)
	s1 := f.seedStudent(t, d.group.ID, 1)

	otherGroup := models.StudentGroup{Name: "ПИ-32", Course: 3, DepartmentID: d.department.ID, CurriculumID: d.curriculum.ID}
	require.NoError(t, f.db.Create(&otherGroup).Error)
	outsider := f.seedStudent(t, otherGroup.ID, 1)

	// Второй студент не состоит в группах занятия: пакет отклоняется целиком.
	err := f.attendance.SaveBatch(d.teacher.ID, class.ID, []AttendanceEntry{
		{StudentID: s1.ID, Status: models.StatusPresent},
		{StudentID: outsider.ID, Status: models.StatusPresent},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConsistency, apperrors.KindOf(err))

	records, listErr := f.repos.Attendance.ListByClass(class.ID)
	require.NoError(t, listErr)
	assert.Empty(t, records)
}

func TestSaveBatchCollapsesDuplicateStudents(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	at := time.Date(2023, 10, 2, 10, 0, 0, 0, time.UTC)
	class := f.seedClass(t, d, at, d.group.ID)
	s1 := f.seedStudent(t, d.group.ID, 1)

	// Один студент дважды в одном пакете: побеждает последняя строка, а
	// вставка не пытается обновить одну строку дважды за один запрос.
	require.NoError(t, f.attendance.SaveBatch(d.teacher.ID, class.ID, []AttendanceEntry{
		{StudentID: s1.ID, Status: models.StatusAbsent},
		{StudentID: s1.ID, Status: models.StatusPresent},
	}))

	records, err := f.repos.Attendance.ListByClass(class.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.StatusPresent, records[0].Status)
}

func TestSaveBatchValidation(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	at := time.Date(2023, 10, 2, 10, 0, 0, 0, time.UTC)
	class := f.seedClass(t, d, at, d.group.ID)
	s1 := f.seedStudent(t, d.group.ID, 1)

	t.Run("пустой пакет", func(t *testing.T) {
		err := f.attendance.SaveBatch(d.teacher.ID, class.ID, nil)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("неизвестный статус", func(t *testing.T) {
		err := f.attendance.SaveBatch(d.teacher.ID, class.ID, []AttendanceEntry{
			{StudentID: s1.ID, Status: "late"},
		})
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("несуществующее занятие", func(t *testing.T) {
		err := f.attendance.SaveBatch(d.teacher.ID, 9999, []AttendanceEntry{
			{StudentID: s1.ID, Status: models.StatusPresent},
		})
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	t.Run("несуществующий студент", func(t *testing.T) {
		err := f.attendance.SaveBatch(d.teacher.ID, class.ID, []AttendanceEntry{
			{StudentID: 9999, Status: models.StatusPresent},
		})
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}

func TestSaveBatchRequiresOwnership(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	at := time.Date(2023, 10, 2, 10, 0, 0, 0, time.UTC)
	class := f.seedClass(t, d, at, d.group.ID)
	s1 := f.seedStudent(t, d.group.ID, 1)

	other := models.Employee{
		Surname: "Сидоров", Name: "Семен",
		BirthDate: time.Date(1975, 1, 1, 0, 0, 0, 0, time.UTC),
		Email:     "sidorov@example.edu", Password: "hash",
		RoleID: d.teacher.RoleID, PositionID: d.teacher.PositionID, DepartmentID: d.department.ID,
	}
	require.NoError(t, f.db.Create(&other).Error)

	err := f.attendance.SaveBatch(other.ID, class.ID, []AttendanceEntry{
		{StudentID: s1.ID, Status: models.StatusPresent},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConsistency, apperrors.KindOf(err))
}

func TestRosterPrefillsFromPassRecords(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	classStart := time.Date(2023, 10, 2, 10, 0, 0, 0, time.UTC)
	class := f.seedClass(t, d, classStart, d.group.ID)
	s1 := f.seedStudent(t, d.group.ID, 1) // был в корпусе все занятие
	s2 := f.seedStudent(t, d.group.ID, 2) // не появлялся
	s3 := f.seedStudent(t, d.group.ID, 3) // отмечен вручную

	building := models.Building{Name: "Корпус Б"}
	require.NoError(t, f.db.Create(&building).Error)
	point := models.ControlPoint{Name: "Турникет 1", BuildingID: building.ID}
	require.NoError(t, f.db.Create(&point).Error)
	require.NoError(t, f.repos.ControlPoint.CreateRecord(&models.ControlPointRecord{
		Datetime: classStart.Add(-15 * time.Minute), Direction: models.DirectionIn,
		ControlPointID: point.ID, StudentID: s1.ID,
	}))

	require.NoError(t, f.attendance.SaveBatch(d.teacher.ID, class.ID, []AttendanceEntry{
		{StudentID: s3.ID, Status: models.StatusExcused},
	}))

	_, rows, err := f.attendance.Roster(d.teacher.ID, class.ID, d.group.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byStudent := map[uint]RosterRow{}
	for _, r := range rows {
		byStudent[r.StudentID] = r
	}
	assert.Equal(t, models.StatusPresent, byStudent[s1.ID].Status)
	assert.True(t, byStudent[s1.ID].Suggested)
	assert.Equal(t, models.StatusAbsent, byStudent[s2.ID].Status)
	assert.True(t, byStudent[s2.ID].Suggested)
	assert.Equal(t, models.StatusExcused, byStudent[s3.ID].Status)
	assert.False(t, byStudent[s3.ID].Suggested)
}

func TestRosterRejectsForeignGroup(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	at := time.Date(2023, 10, 2, 10, 0, 0, 0, time.UTC)
	class := f.seedClass(t, d, at, d.group.ID)

	otherGroup := models.StudentGroup{Name: "ПИ-32", Course: 3, DepartmentID: d.department.ID, CurriculumID: d.curriculum.ID}
	require.NoError(t, f.db.Create(&otherGroup).Error)

	_, _, err := f.attendance.Roster(d.teacher.ID, class.ID, otherGroup.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConsistency, apperrors.KindOf(err))
}
