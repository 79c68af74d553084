package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parish/internal/config"
	"parish/internal/domain"
	"parish/internal/notify"
	"parish/internal/observability/logging"
	"parish/internal/observability/metrics"
	obsmw "parish/internal/observability/middleware"
	"parish/internal/paystack"
	"parish/internal/service"
	"parish/internal/session"
	"parish/internal/store"
	httpx "parish/internal/transport/http"
	"parish/pkg/db"
)

func main() {
	cfg := config.Load()

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting service")

	metrics.MustRegister("parish")

	gdb, err := db.Open(db.Config{DSN: cfg.DatabaseURL, LogSQL: cfg.LogSQL})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}

	if err := gdb.AutoMigrate(
		&domain.User{},
		&domain.PasswordReset{},
		&domain.Mass{},
		&domain.MassIntention{},
		&domain.Thanksgiving{},
		&domain.Event{},
		&domain.RSVP{},
		&domain.Payment{},
		&domain.PaymentGoal{},
		&domain.ActivityLog{},
		&domain.SystemNotification{},
		&domain.ChurchInfo{},
		&domain.Service{},
	); err != nil {
		logger.Error("automigrate", "error", err)
		os.Exit(1)
	}

	st := store.New(gdb)

	registry := notify.NewRegistry()
	defer registry.Close()

	hasher := service.NewHasher()
	gateway := paystack.New(cfg.PaystackBaseURL, cfg.PaystackSecretKey, 10*time.Second)
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, cfg.Production())

	auth := service.NewAuthService(st, hasher)
	booking := service.NewBookingService(st, registry)
	payments := service.NewPaymentService(st, gateway, registry, cfg.CallbackURL)
	events := service.NewEventService(st)
	activity := service.NewActivityService(st, registry)
	content := service.NewContentService(st)

	h := httpx.NewHandler(auth, booking, payments, events, activity, content, sessions, registry, logger)
	handler := obsmw.WithRequestLog(logger)(h.Router(cfg.CORSOrigins))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
