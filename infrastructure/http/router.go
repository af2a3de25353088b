package http

import (
	"net/http"
	"time"

	"chatline/auth"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires every route of the service. Auth endpoints that issue
// tokens stay public; everything else sits behind RequireAuth.
func NewRouter(authH *AuthHandler, msgH *MessageHandler, tokens *auth.TokenManager) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewareChi.RequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/signup", authH.Signup)
			ar.Post("/login", authH.Login)
			ar.Post("/logout", authH.Logout)

			ar.Group(func(pr chi.Router) {
				pr.Use(RequireAuth(tokens))
				pr.Get("/check", authH.Check)
				pr.Put("/update-profile", authH.UpdateProfile)
			})
		})

		api.Group(func(pr chi.Router) {
			pr.Use(RequireAuth(tokens))
			pr.Use(middlewareChi.Timeout(30 * time.Second))

			pr.Get("/contacts", msgH.Contacts)
			pr.Route("/messages/{userID}", func(mr chi.Router) {
				mr.Get("/", msgH.Thread)
				mr.Post("/", msgH.Send)
			})
		})
	})

	r.Get("/healthz", Healthz)

	return r
}
