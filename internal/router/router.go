package router // package router defines how HTTP routes are registered for the API

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/eldercare-records/internal/config"
	"github.com/iliyamo/eldercare-records/internal/handler"
	"github.com/iliyamo/eldercare-records/internal/middleware"
)

// Handlers groups every route handler of the API.
type Handlers struct {
	Auth        *handler.AuthHandler
	Caregivers  *handler.CaregiverHandler
	Elderly     *handler.ElderlyHandler
	Assignments *handler.AssignmentHandler
}

// Options carries what the middleware chain needs besides handlers.
type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	RateLimit      config.RateLimitConfig
	Redis          *redis.Client // nil disables login throttling
	Users          middleware.UserResolver
	Log            *zap.Logger
}

// UseCommon installs the server-wide middleware: request ids, panic
// recovery, CORS and request logging.
func UseCommon(e *echo.Echo, opts Options) {
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: origins(opts.AllowedOrigins),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLogger(opts.Log))
}

// RegisterRoutes mounts the health check, the auth endpoints and the
// bearer-protected record endpoints.
func RegisterRoutes(e *echo.Echo, h Handlers, opts Options) {
	e.GET("/healthz", handler.Health)

	requireUser := middleware.JWTAuth(opts.JWTSecret, opts.Users, opts.Log)
	throttle := middleware.FixedWindow(opts.RateLimit, opts.Redis, opts.Log)

	a := e.Group("/auth")
	a.POST("/register", h.Auth.Register, throttle)
	a.POST("/login", h.Auth.Login, throttle)
	a.POST("/refresh", h.Auth.Refresh)
	a.POST("/logout", h.Auth.Logout)
	a.GET("/me", h.Auth.Me, requireUser)

	cg := e.Group("/caregivers", requireUser)
	cg.POST("", h.Caregivers.Create)
	cg.GET("", h.Caregivers.List)
	cg.GET("/:id", h.Caregivers.Get)
	cg.PUT("/:id/update-salary", h.Caregivers.UpdateSalary)
	cg.GET("/:id/generate-pdf", h.Caregivers.PDF)
	cg.GET("/:id/generate-xlsx", h.Caregivers.XLSX)
	cg.DELETE("/:id", h.Caregivers.Delete)

	el := e.Group("/elderly", requireUser)
	el.POST("", h.Elderly.Create)
	el.GET("", h.Elderly.List)
	el.GET("/:id", h.Elderly.Get)
	el.DELETE("/:id", h.Elderly.Delete)
	el.POST("/:id/tasks", h.Elderly.CreateTask)
	el.GET("/:id/tasks", h.Elderly.ListTasks)
	el.PUT("/:id/tasks/:task_id/status", h.Elderly.UpdateTaskStatus)
	el.DELETE("/:id/tasks/:task_id", h.Elderly.DeleteTask)
	el.POST("/:id/medications", h.Elderly.CreateMedication)
	el.GET("/:id/medications", h.Elderly.ListMedications)
	el.DELETE("/:id/medications/:medication_id", h.Elderly.DeleteMedication)

	as := e.Group("/caregiver-assignments", requireUser)
	as.POST("", h.Assignments.Create)
	as.GET("", h.Assignments.List)
	as.GET("/:id", h.Assignments.Get)
	as.DELETE("/:id", h.Assignments.Delete)
}

func origins(list []string) []string {
	out := make([]string, 0, len(list))
	for _, o := range list {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
