package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ray-auth-api/internal/application/account"
	"github.com/ray-auth-api/internal/application/session"
	"github.com/ray-auth-api/internal/application/verification"
	"github.com/ray-auth-api/internal/config"
	"github.com/ray-auth-api/internal/transport/http/handler"
	appmiddleware "github.com/ray-auth-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // session cookie rides on cross-origin requests
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	cookies := handler.CookiePolicy{Secure: cfg.Production()}
	if deps.JWTProvider != nil {
		cookies.MaxAge = deps.JWTProvider.Expiry()
	}

	accountSvc := account.NewService(account.ServiceDeps{
		Repo:   deps.AccountRepo,
		Mailer: deps.Mailer,
		Tokens: deps.JWTProvider,
	})
	sessionSvc := session.NewService(deps.JWTProvider)
	verifySvc := verification.NewService(verification.ServiceDeps{
		Repo:   deps.AccountRepo,
		Mailer: deps.Mailer,
	})

	healthH := handler.NewHealthHandler()
	accountH := handler.NewAccountHandler(accountSvc, cookies)
	sessionH := handler.NewSessionHandler(accountSvc, sessionSvc, cookies)
	verifyH := handler.NewEmailVerifyHandler(verifySvc)
	resetH := handler.NewPasswordResetHandler(verifySvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/accounts", accountH.Register)
		r.With(sensitiveRL.Limit).Post("/sessions/login", sessionH.Login)
		r.Post("/sessions/logout", sessionH.Logout)
		r.Get("/sessions", sessionH.Status)
		r.With(sensitiveRL.Limit).Post("/password-reset/{action}", resetH.Action)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/accounts/me", accountH.Me)
			r.Post("/verify-email/{action}", verifyH.Action)
		})
	})

	return r
}
