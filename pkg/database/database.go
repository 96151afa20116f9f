package database

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database представляет подключение к базе данных
type Database struct {
	DB *gorm.DB
}

// New открывает подключение: PostgreSQL по DSN, либо локальный SQLite-файл,
// если DSN пуст (режим разработки).
func New(dsn, sqlitePath string) (*Database, error) {
	var (
		db  *gorm.DB
		err error
	)

	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	if dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		slog.Warn("DB_URL не задан, используется локальный SQLite", "path", sqlitePath)
		if mkErr := os.MkdirAll(filepath.Dir(sqlitePath), 0o755); mkErr != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", mkErr)
		}
		db, err = gorm.Open(sqlite.Open(sqlitePath), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	database := &Database{DB: db}
	if err := database.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return database, nil
}

// Migrate выполняет миграцию всех моделей
func (d *Database) Migrate() error {
	return d.DB.AutoMigrate(
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
}

// Close закрывает подключение к базе данных
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SeedRoles создает базовые роли, если их еще нет.
func (d *Database) SeedRoles() error {
	for _, name := range []string{models.RoleAdmin, models.RoleStaff, models.RoleTeacher, models.RoleStudent} {
		var role models.Role
		err := d.DB.Where("name = ?", name).First(&role).Error
		if err == gorm.ErrRecordNotFound {
			if err := d.DB.Create(&models.Role{Name: name}).Error; err != nil {
				return fmt.Errorf("failed to seed role %s: %w", name, err)
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
