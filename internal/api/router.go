package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/secondli/secondli-be/internal/api/handlers"
	"github.com/secondli/secondli-be/internal/auth"
	"github.com/secondli/secondli-be/internal/models"
	"github.com/secondli/secondli-be/internal/storage"
	"github.com/secondli/secondli-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router. Authorization is
// declared per route here rather than inside handler bodies.
func NewRouter(store storage.Store, sessions *auth.Manager, hub *websocket.Hub, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Cookies must survive cross-origin requests from the web client.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(store, sessions)
	propertyHandler := handlers.NewPropertyHandler(store, hub)
	agentHandler := handlers.NewAgentHandler(store)
	communityHandler := handlers.NewCommunityHandler(store)
	eventHandler := handlers.NewEventHandler(store)
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Route("/api", func(r chi.Router) {
		// Every request resolves its session cookie once.
		r.Use(sessions.Authenticate)

		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.With(sessions.RequireAuth).Get("/user", authHandler.Me)
		r.With(sessions.RequireAuth).Post("/agent-profile", authHandler.CreateAgentProfile)

		r.Route("/properties", func(r chi.Router) {
			r.Get("/", propertyHandler.List)
			r.Post("/search", propertyHandler.Search)
			r.With(sessions.RequireAuth).Post("/", propertyHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", propertyHandler.Get)
				r.With(sessions.RequireAuth).Put("/", propertyHandler.Update)
			})
		})

		r.Route("/agents", func(r chi.Router) {
			r.Get("/", agentHandler.List)
			r.Get("/{id}", agentHandler.Get)
		})

		r.Route("/communities", func(r chi.Router) {
			r.Get("/", communityHandler.List)
			r.Get("/{id}", communityHandler.Get)
			r.With(sessions.RequireRole(models.UserTypeAdmin)).Post("/", communityHandler.Create)
		})

		r.Get("/events", eventHandler.GetRecent)
		r.Get("/ws", wsHandler.Serve)
	})

	return r
}
