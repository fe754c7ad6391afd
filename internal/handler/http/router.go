package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AllowedOrigins []string
	Env            string
	Version        string
}

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Dashboard  DashboardHandler
	Timesheet  TimesheetHandler
	Leave      LeaveHandler
	Evaluation EvaluationHandler
	Learning   LearningHandler
	Report     ReportHandler
	Events     EventsHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrkecil"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth/login", func(r chi.Router) {
			r.Post("/admin", h.Auth.LoginAdmin)
			r.Post("/employee", h.Auth.LoginEmployee)
		})

		// SSE authenticates with its own short-lived token
		r.Get("/events/stream", h.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.SessionRequired(JWTService))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/logout", h.Auth.Logout)
				r.Get("/me", h.Auth.Me)
				r.With(middleware.AdminOnly).Put("/admin-pin", h.Auth.ChangeAdminPIN)
			})

			r.Get("/events/token", h.Events.GetSSEToken)

			r.Get("/dashboard", h.Dashboard.GetDashboard)

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Get("/daily", h.Attendance.GetDaily)
				r.Get("/stats", h.Attendance.GetStats)
				r.Get("/range", h.Attendance.GetRange)
				r.With(middleware.RequireScope("employeeID")).Get("/week/{employeeID}", h.Attendance.GetWeek)
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequireManager).Get("/", h.Employee.ListEmployees)
				r.With(middleware.RequireScope("id")).Get("/{id}", h.Employee.GetEmployee)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.CreateEmployee)
					r.Post("/import", h.Employee.ImportEmployees)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Delete("/{id}", h.Employee.DeleteEmployee)
				})
				r.With(middleware.RequirePermission(user.PermissionInternManage)).Post("/{id}/convert", h.Employee.ConvertIntern)
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Get("/", h.Timesheet.List)
				r.Post("/submit", h.Timesheet.Submit)
				r.With(middleware.RequirePermission(user.PermissionTimesheetReview)).Post("/review", h.Timesheet.Review)
				r.With(middleware.RequireScope("employeeID")).Get("/{employeeID}", h.Timesheet.GetWeek)
				r.With(middleware.RequireScope("employeeID")).Get("/{employeeID}/export.csv", h.Report.TimesheetCSV)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", h.Leave.ListRequests)
				r.Post("/", h.Leave.CreateRequest)
				r.Get("/{id}", h.Leave.GetRequest)
				r.Delete("/{id}", h.Leave.DeleteRequest)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					r.Post("/{id}/approve", h.Leave.ApproveRequest)
					r.Post("/{id}/reject", h.Leave.RejectRequest)
				})
			})

			r.Route("/evaluations/{employeeID}", func(r chi.Router) {
				r.Use(middleware.RequireScope("employeeID"))
				r.Get("/", h.Evaluation.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEvaluate))
					r.Post("/", h.Evaluation.Add)
					r.Delete("/{index}", h.Evaluation.Delete)
				})
			})

			r.Route("/learning-logs", func(r chi.Router) {
				r.Get("/", h.Learning.List)
				r.Post("/", h.Learning.Create)
				r.Get("/{id}", h.Learning.Get)
				r.Delete("/{id}", h.Learning.Delete)
				r.With(middleware.RequirePermission(user.PermissionEvaluate)).Post("/{id}/comment", h.Learning.Comment)
			})

			r.Route("/exports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionExport))
				r.Get("/attendance.csv", h.Report.AttendanceCSV)
				r.Get("/attendance.xlsx", h.Report.AttendanceXLSX)
				r.Get("/employees.csv", h.Report.EmployeesCSV)
				r.Get("/interns.csv", h.Report.InternsCSV)
				r.Post("/archive", h.Report.ArchiveDay)
			})
		})
	})
	return r
}
