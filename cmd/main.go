package main

import (
	"log/slog"
	"os"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/config"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/handlers"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/repository"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/services"
	"github.com/cr1stal-7/Attendance-control-system-sub000/pkg/cache"
	"github.com/cr1stal-7/Attendance-control-system-sub000/pkg/database"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Не удалось загрузить конфигурацию", "error", err)
		os.Exit(1)
	}

	// Подключаемся к базе данных
	db, err := database.New(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		slog.Error("Не удалось подключиться к базе данных", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Создаем базовые роли
	if err := db.SeedRoles(); err != nil {
		slog.Error("Не удалось создать базовые роли", "error", err)
		os.Exit(1)
	}

	// Кэш отчетов (работает и без Redis)
	reportCache := cache.New(cfg.RedisAddr)

	// Создаем репозитории
	repos := repository.NewRepos(db.DB)

	// Создаем сервисы
	authService := services.NewAuthService(repos.Employee, repos.Student, cfg.JWTSecret, cfg.JWTExpiration)
	curriculumService := services.NewCurriculumService(repos.Curriculum, repos.Group, repos.Subjects, repos.Semesters)
	scheduleService := services.NewScheduleService(
		repos.Class, repos.Curriculum, repos.Group, repos.Employee,
		repos.Attendance, repos.ClassTypes, repos.Classrooms, reportCache,
	)
	attendanceService := services.NewAttendanceService(
		repos.Attendance, repos.Class, repos.Student, repos.ControlPoint, reportCache,
	)
	statisticsService := services.NewStatisticsService(
		repos.Attendance, repos.Class, repos.Student, repos.Group,
		repos.Departments, repos.ControlPoint, reportCache, cfg.ReportCacheTTL,
	)

	// Создаем обработчики и маршруты
	h := handlers.BuildHandlers(
		repos,
		curriculumService,
		scheduleService,
		attendanceService,
		statisticsService,
		authService,
		cfg.AbsenceDaysThreshold,
	)
	router := handlers.NewRouter(h, authService)

	addr := cfg.Host + ":" + cfg.Port
	slog.Info("Сервер запускается", "addr", addr)
	if err := router.Run(addr); err != nil {
		slog.Error("Сервер остановлен с ошибкой", "error", err)
		os.Exit(1)
	}
}
