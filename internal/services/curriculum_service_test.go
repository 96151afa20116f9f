package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/apperrors"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"
)

func TestCurriculumSemesterOrdering(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	spring2023 := models.Semester{AcademicYear: "2023/2024", Type: models.SemesterSpring}
	require.NoError(t, f.db.Create(&spring2023).Error)
	autumn2024 := models.Semester{AcademicYear: "2024/2025", Type: models.SemesterAutumn}
	require.NoError(t, f.db.Create(&autumn2024).Error)

	subj2 := models.Subject{Name: "Сети"}
	require.NoError(t, f.db.Create(&subj2).Error)

	for _, semID := range []uint{spring2023.ID, autumn2024.ID} {
		_, err := f.curriculum.AddSubject(d.curriculum.ID, subj2.ID, semID, 36)
		require.NoError(t, err)
	}

	semesters, err := f.curriculum.SemestersForCurriculum(d.curriculum.ID)
	require.NoError(t, err)
	require.Len(t, semesters, 3)

	// Свежий учебный год первым, внутри года осень раньше весны.
	assert.Equal(t, "2024/2025", semesters[0].AcademicYear)
	assert.Equal(t, "2023/2024", semesters[1].AcademicYear)
	assert.Equal(t, models.SemesterAutumn, semesters[1].Type)
	assert.Equal(t, models.SemesterSpring, semesters[2].Type)
}

func TestSubjectsForSemesterFiltersBothKeys(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	otherSemester := models.Semester{AcademicYear: "2023/2024", Type: models.SemesterSpring}
	require.NoError(t, f.db.Create(&otherSemester).Error)
	otherSubject := models.Subject{Name: "Философия"}
	require.NoError(t, f.db.Create(&otherSubject).Error)
	_, err := f.curriculum.AddSubject(d.curriculum.ID, otherSubject.ID, otherSemester.ID, 36)
	require.NoError(t, err)

	subjects, err := f.curriculum.SubjectsForSemester(d.curriculum.ID, d.semester.ID)
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, d.subject.ID, subjects[0].SubjectID)
}

func TestAddSubjectRejectsDuplicateTriple(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	_, err := f.curriculum.AddSubject(d.curriculum.ID, d.subject.ID, d.semester.ID, 36)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConsistency, apperrors.KindOf(err))
}

func TestAddSubjectValidation(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	_, err := f.curriculum.AddSubject(d.curriculum.ID, d.subject.ID, d.semester.ID, 0)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = f.curriculum.AddSubject(d.curriculum.ID, 9999, d.semester.ID, 36)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	_, err = f.curriculum.AddSubject(9999, d.subject.ID, d.semester.ID, 36)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestUpdateSubjectKeepsTripleUnique(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	subj2 := models.Subject{Name: "Сети"}
	require.NoError(t, f.db.Create(&subj2).Error)
	second, err := f.curriculum.AddSubject(d.curriculum.ID, subj2.ID, d.semester.ID, 36)
	require.NoError(t, err)

	// Перенос второй привязки на дисциплину первой в том же семестре.
	_, err = f.curriculum.UpdateSubject(second.ID, d.subject.ID, d.semester.ID, 36)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConsistency, apperrors.KindOf(err))

	// Обновление без смены дисциплины и семестра проходит.
	updated, err := f.curriculum.UpdateSubject(second.ID, subj2.ID, d.semester.ID, 54)
	require.NoError(t, err)
	assert.Equal(t, 54, updated.Hours)
}

func TestUpdateSubjectPersistsNewSubject(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	subj2 := models.Subject{Name: "Сети"}
	require.NoError(t, f.db.Create(&subj2).Error)

	// Привязка читается с прелоадом старой дисциплины; новый subject_id
	// не должен откатиться к ней при записи.
	updated, err := f.curriculum.UpdateSubject(d.cs.ID, subj2.ID, d.semester.ID, 72)
	require.NoError(t, err)
	assert.Equal(t, subj2.ID, updated.SubjectID)

	var stored models.CurriculumSubject
	require.NoError(t, f.db.First(&stored, d.cs.ID).Error)
	assert.Equal(t, subj2.ID, stored.SubjectID)
}

func TestRemoveSubject(t *testing.T) {
	f := newFixture(t)
	d := f.seedBase(t)

	require.NoError(t, f.curriculum.RemoveSubject(d.cs.ID))

	err := f.curriculum.RemoveSubject(d.cs.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
