package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/repository"
	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/services"
)

// Handlers собирает все обработчики приложения для маршрутизации.
type Handlers struct {
	Auth         *AuthHandler
	Curriculum   *CurriculumHandler
	Schedule     *ScheduleHandler
	Attendance   *AttendanceHandler
	Reports      *ReportsHandler
	People       *PeopleHandler
	ControlPoint *ControlPointHandler

	Buildings       *CatalogHandler[models.Building]
	Classrooms      *CatalogHandler[models.Classroom]
	Positions       *CatalogHandler[models.Position]
	Subjects        *CatalogHandler[models.Subject]
	ClassTypes      *CatalogHandler[models.ClassType]
	EducationForms  *CatalogHandler[models.EducationForm]
	Departments     *CatalogHandler[models.Department]
	Specializations *CatalogHandler[models.Specialization]
	Semesters       *CatalogHandler[models.Semester]
}

// NewRouter строит дерево маршрутов. Доступ разграничен по ролям: справочники
// и учетные записи ведет администратор, расписание и отчеты — деканат,
// журнал — преподаватель, студент видит только свою статистику.
func NewRouter(h *Handlers, auth *services.AuthService) *gin.Engine {
	RegisterValidations()

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(), CORSMiddleware())

	api := router.Group("/api")

	api.POST("/auth/login", h.Auth.Login)

	authed := api.Group("")
	authed.Use(AuthMiddleware(auth))
	authed.GET("/auth/profile", h.Auth.Profile)
	authed.POST("/auth/change-password", h.Auth.ChangePassword)

	admin := authed.Group("/admin")
	admin.Use(RequireRoles(models.RoleAdmin))
	{
		h.Buildings.Register(admin, "/buildings")
		h.Classrooms.Register(admin, "/classrooms")
		h.Positions.Register(admin, "/positions")
		h.Subjects.Register(admin, "/subjects")
		h.ClassTypes.Register(admin, "/class-types")
		h.EducationForms.Register(admin, "/education-forms")
		h.Departments.Register(admin, "/departments")
		h.Specializations.Register(admin, "/specializations")
		h.Semesters.Register(admin, "/semesters")

		admin.GET("/groups", h.People.ListGroups)
		admin.POST("/groups", h.People.CreateGroup)
		admin.PUT("/groups/:id", h.People.UpdateGroup)
		admin.DELETE("/groups/:id", h.People.DeleteGroup)

		admin.GET("/students", h.People.ListStudents)
		admin.POST("/students", h.People.CreateStudent)
		admin.PUT("/students/:id", h.People.UpdateStudent)
		admin.DELETE("/students/:id", h.People.DeleteStudent)

		admin.GET("/employees", h.People.ListEmployees)
		admin.POST("/employees", h.People.CreateEmployee)
		admin.PUT("/employees/:id", h.People.UpdateEmployee)
		admin.DELETE("/employees/:id", h.People.DeleteEmployee)

		admin.GET("/control-points", h.ControlPoint.List)
		admin.POST("/control-points", h.ControlPoint.Create)
		admin.DELETE("/control-points/:id", h.ControlPoint.Delete)
		admin.POST("/control-points/records", h.ControlPoint.CreateRecord)
	}

	staff := authed.Group("/staff")
	staff.Use(RequireRoles(models.RoleStaff, models.RoleAdmin))
	{
		staff.GET("/curricula", h.Curriculum.List)
		staff.GET("/curricula/:id", h.Curriculum.Get)
		staff.POST("/curricula", h.Curriculum.Create)
		staff.PUT("/curricula/:id", h.Curriculum.Update)
		staff.DELETE("/curricula/:id", h.Curriculum.Delete)
		staff.GET("/curricula/:id/semesters", h.Curriculum.Semesters)
		staff.GET("/curricula/:id/semesters/:semesterId/subjects", h.Curriculum.SemesterSubjects)
		staff.GET("/curricula/:id/groups", h.Curriculum.Groups)
		staff.GET("/curricula/:id/subjects", h.Curriculum.Subjects)
		staff.POST("/curricula/:id/subjects", h.Curriculum.AddSubject)
		staff.PUT("/curriculum-subjects/:id", h.Curriculum.UpdateSubject)
		staff.DELETE("/curriculum-subjects/:id", h.Curriculum.RemoveSubject)
		staff.GET("/curriculum-subjects/:id/groups", h.Schedule.GroupOptions)

		staff.GET("/classes", h.Schedule.List)
		staff.GET("/classes/:id", h.Schedule.Get)
		staff.POST("/classes", h.Schedule.Create)
		staff.PUT("/classes/:id", h.Schedule.Update)
		staff.DELETE("/classes/:id", h.Schedule.Delete)
		staff.GET("/teachers", h.Schedule.TeacherOptions)

		staff.GET("/reports/group/:id", h.Reports.GroupReport)
		staff.GET("/reports/faculty/:id", h.Reports.FacultyReport)
		staff.GET("/reports/long-absence/:id", h.Reports.LongAbsence)
	}

	teacher := authed.Group("/teacher")
	teacher.Use(RequireRoles(models.RoleTeacher))
	{
		teacher.GET("/semesters", h.Attendance.Semesters)
		teacher.GET("/semesters/:semesterId/subjects", h.Attendance.Subjects)
		teacher.GET("/semesters/:semesterId/subjects/:subjectId/groups", h.Attendance.Groups)
		teacher.GET("/semesters/:semesterId/subjects/:subjectId/classes", h.Attendance.Classes)
		teacher.GET("/classes/:id/roster", h.Attendance.Roster)
		teacher.POST("/classes/:id/attendance", h.Attendance.Save)
	}

	student := authed.Group("/student")
	student.Use(requireStudent())
	{
		student.GET("/semesters", h.Reports.StudentSemesters)
		student.GET("/semesters/:semesterId/stats", h.Reports.StudentStats)
		student.GET("/semesters/:semesterId/subjects/:subjectId", h.Reports.StudentSubjectDetail)
	}

	return router
}

// requireStudent пропускает только учетные записи студентов.
func requireStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil || identity.Kind != services.AccountStudent {
			c.AbortWithStatusJSON(403, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

// BuildHandlers собирает обработчики из репозиториев и сервисов.
func BuildHandlers(
	db *repository.Repos,
	curriculumService *services.CurriculumService,
	scheduleService *services.ScheduleService,
	attendanceService *services.AttendanceService,
	statisticsService *services.StatisticsService,
	authService *services.AuthService,
	defaultAbsenceDays int,
) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(authService),
		Curriculum:   NewCurriculumHandler(db.Curriculum, curriculumService),
		Schedule:     NewScheduleHandler(scheduleService),
		Attendance:   NewAttendanceHandler(attendanceService, db.Class),
		Reports:      NewReportsHandler(statisticsService, curriculumService, db.Group, defaultAbsenceDays),
		People:       NewPeopleHandler(db.Group, db.Student, db.Employee),
		ControlPoint: NewControlPointHandler(db.ControlPoint, db.Student),

		Buildings:       NewCatalogHandler(db.Buildings, "building"),
		Classrooms:      NewCatalogHandler(db.Classrooms, "classroom"),
		Positions:       NewCatalogHandler(db.Positions, "position"),
		Subjects:        NewCatalogHandler(db.Subjects, "subject"),
		ClassTypes:      NewCatalogHandler(db.ClassTypes, "class_type"),
		EducationForms:  NewCatalogHandler(db.EducationForms, "education_form"),
		Departments:     NewCatalogHandler(db.Departments, "department"),
		Specializations: NewCatalogHandler(db.Specializations, "specialization"),
		Semesters:       NewCatalogHandler(db.Semesters, "semester"),
	}
}
