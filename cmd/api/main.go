package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ndtien/khovt/internal/ai"
	"github.com/ndtien/khovt/internal/config"
	"github.com/ndtien/khovt/internal/drive"
	"github.com/ndtien/khovt/internal/handlers"
	"github.com/ndtien/khovt/internal/scheduler"
	"github.com/ndtien/khovt/internal/services/inventory"
	"github.com/ndtien/khovt/internal/sheets"
	ws "github.com/ndtien/khovt/internal/websocket"
	"github.com/ndtien/khovt/pkg/logger"
)

func main() {
	log := logger.Must(logger.New())
	defer log.Sync()
	zap.ReplaceGlobals(log)

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	// 2. Connect the backing spreadsheet
	repo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, log.Named("sheets"))
	if err != nil {
		log.Fatal("failed to connect spreadsheet", zap.Error(err))
	}

	// 3. Optional integrations
	var driveSvc *drive.Service
	if cfg.Drive.FolderID != "" {
		driveSvc, err = drive.NewService(ctx, cfg.Sheets.CredentialsPath,
			cfg.Drive.FolderID, log.Named("drive"))
		if err != nil {
			log.Warn("drive archive disabled", zap.Error(err))
			driveSvc = nil
		}
	}

	var assistant *ai.Assistant
	if cfg.AI.APIKey != "" {
		assistant, err = ai.NewAssistant(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			log.Warn("assistant disabled", zap.Error(err))
			assistant = nil
		} else {
			defer assistant.Close()
		}
	}

	// 4. Inventory service with the first snapshot
	inv := inventory.NewService(repo, cfg.Sheets, log.Named("inventory"))
	if err := inv.Refresh(ctx); err != nil {
		log.Fatal("initial snapshot failed", zap.Error(err))
	}

	// 5. Live dashboard hub, nudged on every refresh
	hub := ws.NewHub(log.Named("ws"))
	go hub.Run()
	inv.SetRefreshHook(hub.NotifyRefresh)

	// 6. Background refresh follows direct spreadsheet edits
	sched, err := scheduler.New(cfg.RefreshSchedule, inv, log.Named("scheduler"))
	if err != nil {
		log.Fatal("bad refresh schedule", zap.Error(err))
	}
	sched.Start()

	// 7. HTTP server with graceful shutdown
	router := handlers.NewRouter(inv, driveSvc, assistant, hub, cfg, log.Named("http"))
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Info("server starting", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	sig := <-shutdown
	log.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown", zap.Error(err))
	}
	sched.Stop()

	log.Info("shutdown complete")
}
