package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	resendadp "visitor-desk/internal/adapters/notify/resend"
	"visitor-desk/internal/platform/config"
	applogger "visitor-desk/internal/platform/logger"
	"visitor-desk/internal/ports/notify"
	"visitor-desk/internal/router"
)

func main() {
	cfg := config.Load()

	log, err := applogger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// Notifier: sin API key arrancamos sin correo (se loguea y listo)
	var notifier notify.Notifier
	if cfg.ResendAPIKey != "" {
		mailer, err := resendadp.NewMailer(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailFromName, log)
		if err != nil {
			log.Fatal("mailer init failed", zap.Error(err))
		}
		notifier = mailer
	} else {
		log.Warn("RESEND_API_KEY not set, email notifications disabled")
	}

	h := router.NewRouter(router.Options{
		Cfg:      cfg,
		Notifier: notifier,
		Logger:   log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}
