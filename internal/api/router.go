package api

import (
	"net/http"
	"time"

	"contest_hub/internal/api/handler"
	apimiddleware "contest_hub/internal/api/middleware"
	"contest_hub/internal/app/service"
	"contest_hub/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	guard *apimiddleware.Guard,
	contestService *service.ContestService,
	roleService *service.RoleService,
	paymentService *service.PaymentService,
	checkoutService *service.CheckoutService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Parses the bearer token when present; RequireAuth decides per route
	// whether a verified principal is mandatory.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	contestHandler := handler.NewContestHandler(contestService)
	roleHandler := handler.NewRoleHandler(roleService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)

	r.Post("/contests", contestHandler.Create)
	r.Get("/contests", contestHandler.List)
	r.Get("/approved-contests", contestHandler.ListApproved)
	r.With(guard.RequireAuth).Get("/contests/{id}", contestHandler.Get)
	r.Patch("/contests/{id}", contestHandler.UpdateStatus)
	r.With(guard.RequireAuth).Patch("/edit-contests/{id}", contestHandler.Edit)
	r.Delete("/contests/{id}", contestHandler.Delete)

	r.Post("/roles", roleHandler.Register)
	r.Get("/roles", roleHandler.List)
	r.With(guard.RequireAuth, guard.RequireAdmin).Patch("/roles/{id}", roleHandler.UpdateRole)

	r.With(guard.RequireAuth).Post("/payments", paymentHandler.Record)
	r.With(guard.RequireAuth).Get("/payments", paymentHandler.ListOwn)

	r.Post("/create-checkout-session", checkoutHandler.CreateSession)

	return r
}
