package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/inkstudio/studio-backend-go/internal/config"
	appHTTP "github.com/inkstudio/studio-backend-go/internal/handler/http"
	"github.com/inkstudio/studio-backend-go/internal/pkg/cron"
	"github.com/inkstudio/studio-backend-go/internal/pkg/database"
	"github.com/inkstudio/studio-backend-go/internal/pkg/email"
	"github.com/inkstudio/studio-backend-go/internal/pkg/geocoding"
	"github.com/inkstudio/studio-backend-go/internal/pkg/jwt"
	"github.com/inkstudio/studio-backend-go/internal/pkg/sse"
	"github.com/inkstudio/studio-backend-go/internal/repository/postgresql"
	availabilityService "github.com/inkstudio/studio-backend-go/internal/service/availability"
	commissionService "github.com/inkstudio/studio-backend-go/internal/service/commission"
	studioService "github.com/inkstudio/studio-backend-go/internal/service/studio"
	timeblockService "github.com/inkstudio/studio-backend-go/internal/service/timeblock"
	trackingService "github.com/inkstudio/studio-backend-go/internal/service/tracking"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	blockRepo := postgresql.NewTimeBlockRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	sessionRepo := postgresql.NewSessionRepository(db)
	txnRepo := postgresql.NewTransactionRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}
	geocoder := geocoding.NewClient(cfg.Geocoding.BaseURL, cfg.Geocoding.UserAgent)
	hub := sse.NewHub()

	blockSvc := timeblockService.NewTimeBlockService(db, blockRepo)
	availabilitySvc := availabilityService.NewService(settingsRepo, blockRepo)
	settingsSvc := studioService.NewSettingsService(db, settingsRepo, geocoder)
	trackingSvc := trackingService.NewTrackingService(db, sessionRepo, userRepo, settingsRepo, hub)
	ledgerSvc := commissionService.NewLedgerService(db, txnRepo, userRepo, emailService)

	timeBlockHandler := appHTTP.NewTimeBlockHandler(blockSvc)
	availabilityHandler := appHTTP.NewAvailabilityHandler(availabilitySvc)
	trackingHandler := appHTTP.NewTrackingHandler(trackingSvc, hub)
	studioHandler := appHTTP.NewStudioHandler(settingsSvc)
	commissionHandler := appHTTP.NewCommissionHandler(ledgerSvc)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("geofence-sweep", cfg.Tracking.SweepInterval, trackingSvc.SweepOpenSessions)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		timeBlockHandler,
		availabilityHandler,
		trackingHandler,
		studioHandler,
		commissionHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
