package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"
)

func newAuthFixture(t *testing.T) (*fixture, *AuthService, *baseData) {
	f := newFixture(t)
	d := f.seedBase(t)
	auth := NewAuthService(f.repos.Employee, f.repos.Student, "test-secret", time.Hour)
	return f, auth, d
}

func TestLoginEmployee(t *testing.T) {
	f, auth, d := newAuthFixture(t)

	hash, err := HashPassword("correct-password")
	require.NoError(t, err)
	d.teacher.Password = hash
	require.NoError(t, f.repos.Employee.Update(&d.teacher))

	token, identity, err := auth.Login(d.teacher.Email, "correct-password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, AccountEmployee, identity.Kind)
	assert.Equal(t, models.RoleTeacher, identity.Role)
	assert.Equal(t, d.department.ID, identity.DepartmentID)

	restored, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, identity.ID, restored.ID)
	assert.Equal(t, identity.Role, restored.Role)
}

func TestLoginStudent(t *testing.T) {
	f, auth, d := newAuthFixture(t)

	student := f.seedStudent(t, d.group.ID, 1)
	hash, err := HashPassword("student-password")
	require.NoError(t, err)
	student.Password = hash
	require.NoError(t, f.repos.Student.Update(&student))

	token, identity, err := auth.Login(student.Email, "student-password")
	require.NoError(t, err)
	assert.Equal(t, AccountStudent, identity.Kind)
	assert.Equal(t, models.RoleStudent, identity.Role)
	assert.Equal(t, d.group.ID, identity.GroupID)

	restored, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, AccountStudent, restored.Kind)
	assert.Equal(t, student.ID, restored.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f, auth, d := newAuthFixture(t)

	hash, err := HashPassword("correct-password")
	require.NoError(t, err)
	d.teacher.Password = hash
	require.NoError(t, f.repos.Employee.Update(&d.teacher))

	_, _, err = auth.Login(d.teacher.Email, "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login("nobody@example.edu", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, auth, _ := newAuthFixture(t)

	_, err := auth.ValidateToken("not-a-token")
	assert.Error(t, err)

	// Токен, подписанный другим секретом.
	other := NewAuthService(nil, nil, "other-secret", time.Hour)
	token, err := other.issueToken(AccountEmployee, 1, models.RoleStaff)
	require.NoError(t, err)
	_, err = auth.ValidateToken(token)
	assert.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	f, auth, d := newAuthFixture(t)

	hash, err := HashPassword("old-password")
	require.NoError(t, err)
	d.teacher.Password = hash
	require.NoError(t, f.repos.Employee.Update(&d.teacher))

	identity := &Identity{Kind: AccountEmployee, ID: d.teacher.ID}

	err = auth.ChangePassword(identity, "wrong-old", "new-password-123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = auth.ChangePassword(identity, "old-password", "short")
	assert.Error(t, err)

	require.NoError(t, auth.ChangePassword(identity, "old-password", "new-password-123"))

	_, _, err = auth.Login(d.teacher.Email, "new-password-123")
	assert.NoError(t, err)
}
