package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rmateos/taskdeck-be/internal/api/handlers"
	"github.com/rmateos/taskdeck-be/internal/auth"
	"github.com/rmateos/taskdeck-be/internal/services"
	"github.com/rmateos/taskdeck-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(hub *websocket.Hub, userSvc services.UserServiceProvider, taskSvc services.TaskServiceProvider, reportSvc services.ReportServiceProvider, eventSvc services.EventServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userSvc, eventSvc)
	taskHandler := handlers.NewTaskHandler(taskSvc)
	accountHandler := handlers.NewAccountHandler(reportSvc, eventSvc)
	wsHandler := handlers.NewWebSocketHandler(hub)

	// Public pages
	r.Get("/", userHandler.Landing)
	r.Get("/signup", userHandler.SignupForm)
	r.Post("/signup", userHandler.Signup)
	r.Get("/login", userHandler.LoginForm)
	r.Post("/login", userHandler.Login)
	r.Get("/logout", userHandler.Logout)

	// Page-style routes: missing sessions redirect to /login
	r.Group(func(r chi.Router) {
		r.Use(auth.RequirePage())
		r.Get("/dashboard", taskHandler.Dashboard)
		r.Post("/tasks", taskHandler.Create)
		r.Get("/tasks/{id}/complete", taskHandler.Complete)
		r.Get("/tasks/{id}/delete", taskHandler.Delete)
	})

	// AJAX-style routes: missing sessions get a structured 401
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSession())
		r.Post("/tasks/{id}/update", taskHandler.Update)
		r.Post("/tasks/multi-delete", taskHandler.MultiDelete)
		r.Get("/account", accountHandler.Account)
		r.Get("/activity", accountHandler.Activity)
		r.Get("/events/ws", wsHandler.Serve)
	})

	return r
}
