package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/foodmind/foodmind-backend/internal/middleware"
)

const maxBodyBytes = 1 << 20

type RouterConfig struct {
	JWTSecret      string
	APIKey         string
	AllowedOrigins string
	TrustProxy     bool
}

type Handlers struct {
	Auth           *AuthHandler
	Profile        *ProfileHandler
	Meals          *MealHandler
	Recommendation *RecommendationHandler
	Dashboard      *DashboardHandler
	Foods          *FoodHandler
}

func NewRouter(cfg RouterConfig, h Handlers) *mux.Router {
	loginRL := middleware.NewRateLimiter(5, 15*time.Minute)
	forgotRL := middleware.NewRateLimiter(3, time.Hour)
	confirmRL := middleware.NewRateLimiter(5, 15*time.Minute)
	for _, rl := range []*middleware.RateLimiter{loginRL, forgotRL, confirmRL} {
		rl.TrustForwardedFor = cfg.TrustProxy
	}

	r := mux.NewRouter()

	// Global middleware: CORS → Security Headers → MaxBytesReader
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			next.ServeHTTP(w, r)
		})
	})

	r.HandleFunc("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet, http.MethodOptions)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.APIKeyMiddleware(cfg.APIKey))

	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/auth/login", loginRL.Middleware(http.HandlerFunc(h.Auth.Login))).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/auth/forgot-password", forgotRL.Middleware(http.HandlerFunc(h.Auth.ForgotPassword))).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/auth/confirm-forgot-password", confirmRL.Middleware(http.HandlerFunc(h.Auth.ConfirmForgotPassword))).Methods(http.MethodPost, http.MethodOptions)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	protected.HandleFunc("/profile", h.Profile.Get).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/profile", h.Profile.Update).Methods(http.MethodPut, http.MethodOptions)
	protected.HandleFunc("/profile/history", h.Profile.History).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/foods", h.Foods.List).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/meals", h.Meals.Log).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/meals/history", h.Meals.History).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/recommendations", h.Recommendation.Recommend).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/dashboard", h.Dashboard.Get).Methods(http.MethodGet, http.MethodOptions)

	return r
}
