package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/apperrors"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/repository"
)

// Вид учетной записи в токене.
const (
	AccountEmployee = "employee"
	AccountStudent  = "student"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Identity — проверенная личность запроса, восстановленная из токена.
// Для сотрудника Role — имя его роли, для студента роль всегда student.
type Identity struct {
	Kind         string
	ID           uint
	Role         string
	DepartmentID uint
	GroupID      uint
}

// AuthService аутентифицирует сотрудников и студентов. Почта уникальна
// внутри каждой таблицы; при входе сначала ищется сотрудник, затем студент.
type AuthService struct {
	employeeRepo *repository.EmployeeRepository
	studentRepo  *repository.StudentRepository
	jwtSecret    []byte
	tokenTTL     time.Duration
}

func NewAuthService(
	employeeRepo *repository.EmployeeRepository,
	studentRepo *repository.StudentRepository,
	jwtSecret string,
	tokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		employeeRepo: employeeRepo,
		studentRepo:  studentRepo,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     tokenTTL,
	}
}

type tokenClaims struct {
	Kind string `json:"typ"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *AuthService) issueToken(kind string, id uint, role string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Kind: kind,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(id), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// Login проверяет пару email/пароль и выдает JWT. Несуществующая почта и
// неверный пароль неразличимы для вызывающего.
func (s *AuthService) Login(email, password string) (string, *Identity, error) {
	if employee, err := s.employeeRepo.GetByEmail(email); err == nil {
		if bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(password)) != nil {
			return "", nil, ErrInvalidCredentials
		}
		token, err := s.issueToken(AccountEmployee, employee.ID, employee.Role.Name)
		if err != nil {
			return "", nil, err
		}
		return token, &Identity{
			Kind:         AccountEmployee,
			ID:           employee.ID,
			Role:         employee.Role.Name,
			DepartmentID: employee.DepartmentID,
		}, nil
	} else if !repository.IsNotFound(err) {
		return "", nil, err
	}

	student, err := s.studentRepo.GetByEmail(email)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.issueToken(AccountStudent, student.ID, models.RoleStudent)
	if err != nil {
		return "", nil, err
	}
	return token, &Identity{
		Kind:    AccountStudent,
		ID:      student.ID,
		Role:    models.RoleStudent,
		GroupID: student.GroupID,
	}, nil
}

// ValidateToken разбирает и проверяет JWT, восстанавливая Identity.
// Принадлежность кафедре и группе перечитывается из базы: токен живет сутки,
// а перевод между кафедрами должен действовать немедленно.
func (s *AuthService) ValidateToken(tokenString string) (*Identity, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	subject, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, errors.New("invalid token subject")
	}
	id := uint(subject)

	switch claims.Kind {
	case AccountEmployee:
		employee, err := s.employeeRepo.GetByID(id)
		if err != nil {
			return nil, errors.New("account no longer exists")
		}
		return &Identity{
			Kind:         AccountEmployee,
			ID:           employee.ID,
			Role:         employee.Role.Name,
			DepartmentID: employee.DepartmentID,
		}, nil
	case AccountStudent:
		student, err := s.studentRepo.GetByID(id)
		if err != nil {
			return nil, errors.New("account no longer exists")
		}
		return &Identity{
			Kind:    AccountStudent,
			ID:      student.ID,
			Role:    models.RoleStudent,
			GroupID: student.GroupID,
		}, nil
	}
	return nil, errors.New("unknown account kind")
}

// ChangePassword меняет пароль учетной записи после проверки старого.
func (s *AuthService) ChangePassword(identity *Identity, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.NewValidationError("newPassword", "must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	switch identity.Kind {
	case AccountEmployee:
		employee, err := s.employeeRepo.GetByID(identity.ID)
		if err != nil {
			return err
		}
		if bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(oldPassword)) != nil {
			return ErrInvalidCredentials
		}
		employee.Password = string(hash)
		return s.employeeRepo.Update(employee)
	case AccountStudent:
		student, err := s.studentRepo.GetByID(identity.ID)
		if err != nil {
			return err
		}
		if bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(oldPassword)) != nil {
			return ErrInvalidCredentials
		}
		student.Password = string(hash)
		return s.studentRepo.Update(student)
	}
	return errors.New("unknown account kind")
}

// HashPassword хэширует пароль для создания учетной записи.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}
