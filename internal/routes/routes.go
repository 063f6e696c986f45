package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-portal/internal/audit"
	"github.com/BruksfildServices01/clinic-portal/internal/auth"
	"github.com/BruksfildServices01/clinic-portal/internal/config"
	"github.com/BruksfildServices01/clinic-portal/internal/handlers"
	"github.com/BruksfildServices01/clinic-portal/internal/infra/idempotency"
	"github.com/BruksfildServices01/clinic-portal/internal/infra/imagestore"
	infraRepo "github.com/BruksfildServices01/clinic-portal/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-portal/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinic-portal/internal/usecase/appointment"
	ucPatient "github.com/BruksfildServices01/clinic-portal/internal/usecase/patient"
	"github.com/BruksfildServices01/clinic-portal/internal/validators"
)

// Deps are the process-wide singletons built by main.
type Deps struct {
	DB          *gorm.DB
	Config      *config.Config
	Log         *zap.Logger
	Audit       *audit.Dispatcher
	Idempotency idempotency.Store
	Images      imagestore.Store
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	if err := validators.Register(); err != nil {
		d.Log.Fatal("register validators", zap.Error(err))
	}

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	patientRepo := infraRepo.NewPatientGormRepository(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(appointmentRepo, d.Audit)

	listPatientsUC := ucPatient.NewListPatients(patientRepo)
	getPatientUC := ucPatient.NewGetPatient(patientRepo)
	createPatientUC := ucPatient.NewCreatePatient(patientRepo, d.Images, cfg.ImageMaxDim, d.Audit)
	updatePatientUC := ucPatient.NewUpdatePatient(patientRepo, d.Images, cfg.ImageMaxDim, d.Audit)
	deletePatientUC := ucPatient.NewDeletePatient(patientRepo, d.Images, d.Audit, d.Log)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		listAppointmentsUC,
		createAppointmentUC,
		deleteAppointmentUC,
		d.Idempotency,
		d.Log,
	)

	patientHandler := handlers.NewPatientHandler(
		listPatientsUC,
		getPatientUC,
		createPatientUC,
		updatePatientUC,
		deletePatientUC,
		d.Images,
		d.Log,
	)

	authHandler := handlers.NewAuthHandler(d.DB, cfg, d.Log)
	meHandler := handlers.NewMeHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRatePerMin, 5)

	// ======================================================
	// ROUTES
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/appointments", appointmentHandler.List)
		api.POST("/appointments", appointmentHandler.Create)
		api.DELETE("/appointments/:id", appointmentHandler.Delete)

		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", middleware.RateLimit(loginLimiter), authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		secured.GET("/me", meHandler.GetMe)
		secured.GET("/audit-logs", middleware.RequireRoles(auth.RoleAdmin), auditLogsHandler.List)

		patients := api.Group("/patients")
		if cfg.AuthEnabled {
			patients.Use(
				middleware.AuthMiddleware(cfg),
				middleware.RequireRoles(auth.ClinicRoles...),
			)
		}
		{
			patients.GET("", patientHandler.List)
			patients.POST("", patientHandler.Create)
			patients.GET("/:id", patientHandler.Get)
			patients.PUT("/:id", patientHandler.Update)
			patients.DELETE("/:id", patientHandler.Delete)
		}
	}
}
