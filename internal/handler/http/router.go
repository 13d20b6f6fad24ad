package http

import (
	"log/slog"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/handler/http/middleware"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Payroll    PayrollHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Shift      ShiftHandler
	Files      FileHandler
}

func NewRouter(logger *slog.Logger, allowedOrigins []string, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition", "X-Payslip-URL"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// signed links, no bearer token
	r.Get("/files/*", h.Files.Serve)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentEncoding("application/json"))
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		// Employee self-service
		r.Get("/me/payslips/{month}", h.Payroll.GetMyPayslip)

		// Admin only
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminOnly)

			r.Route("/payroll", func(r chi.Router) {
				r.Route("/salaries", func(r chi.Router) {
					r.Get("/", h.Payroll.ListSalaries)
					r.Post("/calculate", h.Payroll.Calculate)
					r.Post("/calculate-batch", h.Payroll.CalculateBatch)
					r.Post("/finalize", h.Payroll.FinalizeMonth)

					r.Route("/{employeeCode}/{month}", func(r chi.Router) {
						r.Get("/", h.Payroll.GetSalary)
						r.Post("/finalize", h.Payroll.Finalize)
						r.Get("/payslip", h.Payroll.GetPayslip)
					})
				})

				r.Get("/export", h.Payroll.Export)

				r.Post("/holds", h.Payroll.CreateHold)
				r.Post("/holds/{employeeCode}/{month}/release", h.Payroll.ReleaseHold)

				r.Put("/adjustments", h.Payroll.UpsertAdjustment)
				r.Get("/adjustments/{employeeCode}/{month}", h.Payroll.ListAdjustments)
				r.Delete("/adjustments/{id}", h.Payroll.DeleteAdjustment)

				r.Put("/overtime/{employeeCode}/{month}", h.Payroll.SetOvertime)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/regularizations", h.Attendance.SubmitRegularizations)
				r.Get("/regularizations/{employeeCode}", h.Attendance.ListRegularizations)
				r.Delete("/regularizations/{employeeCode}/{date}", h.Attendance.DeleteRegularization)

				r.Get("/{employeeCode}/daily", h.Attendance.GetDaily)
				r.Get("/{employeeCode}/monthly", h.Attendance.GetMonthly)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/{employeeCode}/balance", h.Leave.GetBalance)
				r.Put("/usage", h.Leave.ApproveMonthlyUsage)
				r.Put("/entitlements", h.Leave.UpsertEntitlement)
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", h.Shift.List)
				r.Get("/resolve", h.Shift.Resolve)
				r.Get("/assignments", h.Shift.ListAssignments)
				r.Post("/assignments", h.Shift.CreateAssignment)
				r.Delete("/assignments/{id}", h.Shift.DeleteAssignment)
			})
		})
	})

	return r
}
