package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medcore/hospital-api/internal/config"
	admissionHandler "github.com/medcore/hospital-api/internal/handler/admission"
	authHandler "github.com/medcore/hospital-api/internal/handler/auth"
	patientHandler "github.com/medcore/hospital-api/internal/handler/patient"
	prescriptionHandler "github.com/medcore/hospital-api/internal/handler/prescription"
	referralHandler "github.com/medcore/hospital-api/internal/handler/referral"
	statsHandler "github.com/medcore/hospital-api/internal/handler/stats"
	userHandler "github.com/medcore/hospital-api/internal/handler/user"
	wardHandler "github.com/medcore/hospital-api/internal/handler/ward"
	"github.com/medcore/hospital-api/internal/middleware"
	"github.com/medcore/hospital-api/internal/repository/postgres"
	"github.com/medcore/hospital-api/internal/router"
	admissionService "github.com/medcore/hospital-api/internal/service/admission"
	authService "github.com/medcore/hospital-api/internal/service/auth"
	patientService "github.com/medcore/hospital-api/internal/service/patient"
	prescriptionService "github.com/medcore/hospital-api/internal/service/prescription"
	referralService "github.com/medcore/hospital-api/internal/service/referral"
	statsService "github.com/medcore/hospital-api/internal/service/stats"
	userService "github.com/medcore/hospital-api/internal/service/user"
	wardService "github.com/medcore/hospital-api/internal/service/ward"
	"github.com/medcore/hospital-api/pkg/auth"
	"github.com/medcore/hospital-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(cfg.Log)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	wardRepo := postgres.NewWardRepository(db)
	admissionRepo := postgres.NewAdmissionRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	referralRepo := postgres.NewReferralRepository(db)
	statsRepo := postgres.NewStatsRepository(db)

	jwtSvc := auth.NewJWTService(cfg.JWT)

	authSvc := authService.NewService(userRepo, jwtSvc)
	userSvc := userService.NewService(userRepo)
	patientSvc := patientService.NewService(patientRepo)
	wardSvc := wardService.NewService(wardRepo)
	admissionSvc := admissionService.NewService(admissionRepo, patientRepo, wardRepo)
	prescriptionSvc := prescriptionService.NewService(prescriptionRepo, patientRepo)
	referralSvc := referralService.NewService(referralRepo, patientRepo, userRepo)
	statsSvc := statsService.NewService(statsRepo)

	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	r := router.New(
		authMiddleware,
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RPS,
			RateLimitBurst: cfg.RateLimit.Burst,
			CORSConfig:     middleware.DefaultCORSConfig(),
			MetricsPrefix:  "hospital_api",
			Timeout:        time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		},
		[]router.AnonymousHandler{
			authHandler.NewHandler(authSvc),
		},
		[]router.Handler{
			userHandler.NewHandler(userSvc),
			patientHandler.NewHandler(patientSvc),
			wardHandler.NewHandler(wardSvc),
			admissionHandler.NewHandler(admissionSvc),
			prescriptionHandler.NewHandler(prescriptionSvc),
			referralHandler.NewHandler(referralSvc),
			statsHandler.NewHandler(statsSvc),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
