package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/clinicops/clinic-scheduler/internal/audit"
	"github.com/clinicops/clinic-scheduler/internal/cache"
	"github.com/clinicops/clinic-scheduler/internal/config"
	"github.com/clinicops/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicops/clinic-scheduler/internal/handlers"
	infraRepo "github.com/clinicops/clinic-scheduler/internal/infra/repository"
	"github.com/clinicops/clinic-scheduler/internal/middleware"
	"github.com/clinicops/clinic-scheduler/internal/policy"
	"github.com/clinicops/clinic-scheduler/internal/slot"
	ucAppointment "github.com/clinicops/clinic-scheduler/internal/usecase/appointment"
	ucDirectory "github.com/clinicops/clinic-scheduler/internal/usecase/directory"
	ucUser "github.com/clinicops/clinic-scheduler/internal/usecase/user"
)

type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    zerolog.Logger
	Cache  cache.Store
	Audit  *audit.Dispatcher
	Gate   policy.Gate
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	gate := d.Gate
	if gate == nil {
		gate = policy.NewRoleGate()
	}

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Log),
		middleware.Recovery(d.Log),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	directoryRepo := infraRepo.NewDirectoryGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)

	refCache := cache.NewReadThrough(d.Cache, cfg.ReferenceCacheTTL, d.Log)
	locks := slot.NewLocker()

	workingDay := appointment.WorkingDay{
		Open:  cfg.ClinicOpen,
		Close: cfg.ClinicClose,
		Step:  time.Duration(cfg.SlotMinutes) * time.Minute,
	}

	// ======================================================
	// USE CASES
	// ======================================================
	listByDoctorDate := ucAppointment.NewListByDoctorDate(appointmentRepo, directoryRepo)

	users := ucUser.NewUsers(userRepo, d.Audit, d.Log)
	patients := ucDirectory.NewPatients(directoryRepo, d.Audit, d.Log)
	doctors := ucDirectory.NewDoctors(directoryRepo, refCache, d.Audit, d.Log)
	specialties := ucDirectory.NewSpecialties(directoryRepo, refCache, d.Audit, d.Log)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(users, doctors, cfg)
	meHandler := handlers.NewMeHandler(users, doctors, listByDoctorDate, cfg.ClinicTimezone)
	directoryHandler := handlers.NewDirectoryHandler(patients, doctors, specialties, users)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.NewBookAppointment(appointmentRepo, directoryRepo, locks, d.Audit, d.Log, cfg.ClinicTimezone),
		ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit, d.Log),
		ucAppointment.NewMarkNoShow(appointmentRepo, d.Audit, d.Log),
		ucAppointment.NewCompleteVisit(appointmentRepo, directoryRepo, d.Audit, d.Log),
		listByDoctorDate,
		ucAppointment.NewListByPatient(appointmentRepo, directoryRepo),
		ucAppointment.NewListByStatus(appointmentRepo),
		ucAppointment.NewGetAvailability(appointmentRepo, directoryRepo, workingDay, cfg.ClinicTimezone),
		ucAppointment.NewGetConsultation(appointmentRepo),
		ucAppointment.NewGetInvoice(appointmentRepo),
		appointmentRepo,
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			allow := func(op policy.Operation) gin.HandlerFunc {
				return middleware.Require(gate, op)
			}

			// ------------------------------
			// IDENTITY
			// ------------------------------
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/appointments", allow(policy.OpReadOwnSchedule), meHandler.Appointments)
			secured.POST("/users", allow(policy.OpManageUsers), authHandler.CreateUser)

			// ------------------------------
			// DIRECTORY
			// ------------------------------
			secured.POST("/patients", allow(policy.OpRegisterPatient), directoryHandler.CreatePatient)
			secured.GET("/patients", allow(policy.OpReadDirectory), directoryHandler.ListPatients)
			secured.GET("/patients/:id", allow(policy.OpReadDirectory), directoryHandler.GetPatient)
			secured.GET("/patients/:id/appointments", allow(policy.OpListAppointments), appointmentHandler.ListByPatient)

			secured.POST("/specialties", allow(policy.OpManageDoctors), directoryHandler.CreateSpecialty)
			secured.GET("/specialties", allow(policy.OpReadDirectory), directoryHandler.ListSpecialties)

			secured.POST("/doctors", allow(policy.OpManageDoctors), directoryHandler.CreateDoctor)
			secured.GET("/doctors", allow(policy.OpReadDirectory), directoryHandler.ListDoctors)
			secured.GET("/doctors/:id", allow(policy.OpReadDirectory), directoryHandler.GetDoctor)
			secured.PATCH("/doctors/:id/fee", allow(policy.OpManageDoctors), directoryHandler.UpdateFee)
			secured.PUT("/doctors/:id/user", allow(policy.OpManageUsers), directoryHandler.LinkUser)
			secured.GET("/doctors/:id/appointments", allow(policy.OpListAppointments), appointmentHandler.ListByDoctorDate)
			secured.GET("/doctors/:id/availability", allow(policy.OpReadDirectory), appointmentHandler.Availability)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", allow(policy.OpBookAppointment), appointmentHandler.Book)
			secured.GET("/appointments", allow(policy.OpListAllAppointments), appointmentHandler.ListByStatus)
			secured.PATCH("/appointments/:id/cancel", allow(policy.OpCancelAppointment), appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/no-show", allow(policy.OpMarkNoShow), appointmentHandler.MarkNoShow)
			secured.POST("/appointments/:id/complete", allow(policy.OpCompleteVisit), appointmentHandler.Complete)
			secured.GET("/appointments/:id/consultation", allow(policy.OpReadConsultation), appointmentHandler.Consultation)
			secured.GET("/appointments/:id/invoice", allow(policy.OpReadInvoice), appointmentHandler.Invoice)

			secured.GET("/audit-logs", allow(policy.OpReadAuditLog), auditLogsHandler.List)
		}
	}
}
