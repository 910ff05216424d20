package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/foodmind/foodmind-backend/internal/config"
	"github.com/foodmind/foodmind-backend/internal/db"
	"github.com/foodmind/foodmind-backend/internal/handler"
	"github.com/foodmind/foodmind-backend/internal/nutrition"
	"github.com/foodmind/foodmind-backend/internal/repository"
	"github.com/foodmind/foodmind-backend/internal/service"
)

func main() {
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	accountRepo := repository.NewAccountRepository(database)
	profileRepo := repository.NewProfileRepository(database)
	historyRepo := repository.NewMetricHistoryRepository(database)
	mealLogRepo := repository.NewMealLogRepository(database)
	foodRepo := repository.NewFoodRepository(database)
	resetRepo := repository.NewPasswordResetRepository(database)

	if cfg.ResendAPIKey == "" {
		log.Println("RESEND_API_KEY is not set, password reset emails will fail")
	}
	emailService := service.NewEmailService(cfg.ResendAPIKey, cfg.EmailFrom)

	combos := nutrition.NewComboGenerator(nil)

	router := handler.NewRouter(handler.RouterConfig{
		JWTSecret:      cfg.JWTSecret,
		APIKey:         cfg.APIKey,
		AllowedOrigins: cfg.AllowedOrigins,
		TrustProxy:     cfg.TrustProxy,
	}, handler.Handlers{
		Auth:           handler.NewAuthHandler(cfg.JWTSecret, accountRepo, service.NewPasswordResetService(accountRepo, resetRepo, emailService)),
		Profile:        handler.NewProfileHandler(service.NewProfileService(profileRepo, historyRepo)),
		Meals:          handler.NewMealHandler(service.NewMealLogService(mealLogRepo)),
		Recommendation: handler.NewRecommendationHandler(service.NewRecommendationService(profileRepo, mealLogRepo, foodRepo, combos)),
		Dashboard:      handler.NewDashboardHandler(service.NewDashboardService(profileRepo, historyRepo, mealLogRepo)),
		Foods:          handler.NewFoodHandler(foodRepo),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("server starting on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
	log.Println("server stopped")
}
