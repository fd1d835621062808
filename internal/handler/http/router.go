package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/attendly/attendance-backend-go/internal/config"
	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/handler/http/middleware"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Attendance   AttendanceHandler
	Leave        LeaveHandler
	Overtime     OvertimeHandler
	Makeup       MakeupHandler
	Approval     ApprovalHandler
	Notification NotificationHandler
	Company      CompanyHandler
	Schedule     ScheduleHandler
	Employee     EmployeeHandler
	Policy       PolicyHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
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
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Get("/my", h.Attendance.GetMyAttendance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(employee.RoleManager, employee.RoleHRAdmin, employee.RoleCEO))
					r.Get("/", h.Attendance.List)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/", h.Leave.CreateRequest)
				r.Get("/my", h.Leave.GetMyRequests)
				r.Get("/balances", h.Leave.GetMyBalances)
				r.Get("/{id}", h.Leave.GetRequest)
				r.Post("/{id}/cancel", h.Leave.CancelRequest)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(employee.RoleManager, employee.RoleHRAdmin, employee.RoleCEO))
					r.Get("/", h.Leave.ListRequests)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(employee.RoleHRAdmin))
					r.Post("/entitlement/{relationID}/refresh", h.Leave.RefreshEntitlement)
					r.Post("/balances/adjust", h.Leave.AdjustBalance)
				})
			})

			r.Route("/overtime", func(r chi.Router) {
				r.Post("/", h.Overtime.CreateRequest)
				r.Get("/my", h.Overtime.GetMyRequests)
				r.Get("/{id}", h.Overtime.GetRequest)
				r.Post("/{id}/cancel", h.Overtime.CancelRequest)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(employee.RoleManager, employee.RoleHRAdmin, employee.RoleCEO))
					r.Get("/", h.Overtime.ListRequests)
				})
			})

			r.Route("/makeup", func(r chi.Router) {
				r.Post("/", h.Makeup.CreateRequest)
				r.Get("/my", h.Makeup.GetMyRequests)
				r.Get("/{id}", h.Makeup.GetRequest)
				r.Post("/{id}/cancel", h.Makeup.CancelRequest)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(employee.RoleManager, employee.RoleHRAdmin, employee.RoleCEO))
					r.Get("/", h.Makeup.ListRequests)
				})
			})

			r.Route("/approvals", func(r chi.Router) {
				r.Get("/pending", h.Approval.ListPending)
				r.Post("/{stepID}/approve", h.Approval.Approve)
				r.Post("/{stepID}/reject", h.Approval.Reject)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Post("/{id}/read", h.Notification.MarkRead)
			})

			r.Route("/companies", func(r chi.Router) {
				r.Get("/{id}", h.Company.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(employee.RoleHRAdmin))
					r.Get("/", h.Company.List)
					r.Post("/", h.Company.Create)
					r.Put("/{id}", h.Company.Update)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/{id}", h.Schedule.Get)
				r.Get("/company/{companyID}", h.Schedule.ListByCompany)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(employee.RoleHRAdmin))
					r.Post("/", h.Schedule.Create)
					r.Put("/{id}", h.Schedule.Update)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/relations/my", h.Employee.ListMyRelations)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(employee.RoleHRAdmin))
					r.Post("/", h.Employee.Create)
					r.Get("/{id}", h.Employee.Get)
					r.Put("/{id}", h.Employee.Update)
					r.Post("/relations", h.Employee.CreateRelation)
					r.Get("/relations/{id}", h.Employee.GetRelation)
					r.Put("/relations/{id}", h.Employee.UpdateRelation)
					r.Post("/managerial-relationships", h.Employee.CreateManagerialRelationship)
					r.Post("/approver-assignments", h.Employee.UpsertApproverAssignment)
				})
			})

			r.Route("/policies", func(r chi.Router) {
				r.Get("/", h.Policy.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(employee.RoleHRAdmin))
					r.Post("/", h.Policy.Create)
					r.Put("/{id}", h.Policy.Update)
				})
			})
		})
	})

	return r
}
