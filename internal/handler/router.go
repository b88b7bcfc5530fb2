package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/caviteventure/caviteventure-api/internal/model"
)

// RouterConfig bundles everything the router mounts.
type RouterConfig struct {
	AuthHandler    *AuthHandler
	UserHandler    *UserHandler
	EventHandler   *EventHandler
	SiteHandler    *SiteHandler
	Middleware     *Middleware
	Logger         *zerolog.Logger
	AllowedOrigins []string
	UploadDir      string
}

// NewRouter wires the HTTP surface.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", cfg.SiteHandler.Health)

	// Session issuing: one contract, three role-gated entry points.
	adminRole := model.RoleAdmin
	superAdminRole := model.RoleSuperAdmin
	r.Post("/signin", cfg.AuthHandler.SignIn(nil))
	r.Post("/admin-signin", cfg.AuthHandler.SignIn(&adminRole))
	r.Post("/superadmin-signin", cfg.AuthHandler.SignIn(&superAdminRole))

	r.Post("/auth/signup", cfg.AuthHandler.SignUp)
	r.Post("/auth/verify", cfg.AuthHandler.VerifyAccount)

	r.Post("/sendVerificationCode", cfg.AuthHandler.SendVerificationCode)
	r.Post("/verifyCode", cfg.AuthHandler.VerifyCode)
	r.Post("/changePassword", cfg.AuthHandler.ChangePassword)

	r.Get("/approved-events", cfg.EventHandler.ListApproved)

	r.Post("/logVisit", cfg.SiteHandler.LogVisit)
	r.Get("/visitCount", cfg.SiteHandler.VisitCount)
	r.Post("/visitCount", cfg.SiteHandler.IncrementVisitCount)

	// Signed-in users.
	r.Group(func(r chi.Router) {
		r.Use(cfg.Middleware.Authenticate)

		r.Get("/user", cfg.UserHandler.GetProfile)
		r.Patch("/user", cfg.UserHandler.UpdateProfile)
		r.Post("/events", cfg.EventHandler.Submit)
	})

	// Reviewers.
	r.Group(func(r chi.Router) {
		r.Use(cfg.Middleware.Authenticate)
		r.Use(cfg.Middleware.RequireRole(model.RoleAdmin, model.RoleSuperAdmin))

		r.Get("/pendingevents", cfg.EventHandler.ListPending)
		r.Patch("/pendingevents", cfg.EventHandler.Approve)
		r.Delete("/pendingevents", cfg.EventHandler.Discard)
		r.Post("/approved-events", cfg.EventHandler.CreateApproved)
		r.Get("/statistics", cfg.SiteHandler.Statistics)
	})

	if cfg.UploadDir != "" {
		fileServer := http.FileServer(http.Dir(cfg.UploadDir))
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))
	}

	return r
}
