package http

import (
	"net/http"

	"healthcare-records/internal/delivery/http/handler"
	"healthcare-records/internal/delivery/http/middleware"
	"healthcare-records/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	patientHandler      *handler.PatientHandler
	doctorHandler       *handler.DoctorHandler
	mappingHandler      *handler.MappingHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
	loggingMiddleware   *middleware.LoggingMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	mappingHandler *handler.MappingHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		patientHandler:      patientHandler,
		doctorHandler:       doctorHandler,
		mappingHandler:      mappingHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
		loggingMiddleware:   loggingMiddleware,
	}
}

func (r *Router) Setup() http.Handler {
	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Route not found")
	})
	r.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, response.CodeInvalidRequest, "Method not allowed")
	})

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public, rate limited)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Use(r.rateLimitMiddleware.Handle)
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Patients (owner only)
	protected.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	protected.HandleFunc("/patients", r.patientHandler.GetMyPatients).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	protected.HandleFunc("/patients/{id}", r.patientHandler.DeletePatient).Methods(http.MethodDelete)

	// Doctors (shared directory)
	protected.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	protected.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	protected.HandleFunc("/doctors/{id}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)

	// Patient-doctor mappings
	protected.HandleFunc("/mappings", r.mappingHandler.CreateMapping).Methods(http.MethodPost)
	protected.HandleFunc("/mappings", r.mappingHandler.GetAllMappings).Methods(http.MethodGet)
	protected.HandleFunc("/mappings/{patient_id}", r.mappingHandler.GetPatientMappings).Methods(http.MethodGet)
	protected.HandleFunc("/mappings/{id}", r.mappingHandler.DeleteMapping).Methods(http.MethodDelete)

	// Audit trail of the caller
	protected.HandleFunc("/audit-logs", r.auditLogHandler.GetMyAuditLogs).Methods(http.MethodGet)
	protected.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// CORS wraps the router so preflight requests are answered before route matching
	var h http.Handler = r.router
	h = r.corsMiddleware.Handle(h)
	h = r.loggingMiddleware.Handle(h)
	h = r.loggingMiddleware.Recover(h)
	return middleware.RequestID(h)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
