package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/heatmapp/heatmapp/config"
	"github.com/heatmapp/heatmapp/models"
	"github.com/heatmapp/heatmapp/routes"
	"github.com/heatmapp/heatmapp/services"
	"github.com/heatmapp/heatmapp/utils"
)

// runScheduledStreakReset mirrors the HTTP cron trigger: run the sweep and
// drop the cached ranking when any streak changed.
func runScheduledStreakReset(db *gorm.DB) {
	result, err := services.ResetStreaks(db)
	if err != nil {
		utils.Sugar.Errorf("scheduled streak reset failed: %v", err)
		return
	}
	if result.Updated > 0 {
		utils.InvalidateByPrefix(utils.RankingCacheKey)
	}
	utils.Sugar.Infof("scheduled streak reset done: updated=%d reference=%s", result.Updated, result.Yesterday)
}

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Icon{},
		&models.IconPurchase{},
		&models.Post{},
		&models.NoisePost{},
		&models.GreenAreaPost{},
	)

	if err := models.SeedIcons(db); err != nil {
		utils.Sugar.Fatalf("failed to seed icon catalog: %v", err)
	}

	storage := utils.NewStorageClient(cfg)

	// Nightly in-process sweep; the HTTP cron endpoint stays available for
	// an external scheduler and both share the same non-overlap guard.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.CronSpec, func() { runScheduledStreakReset(db) }); err != nil {
		utils.Sugar.Fatalf("invalid cron spec %q: %v", cfg.CronSpec, err)
	}
	scheduler.Start()

	r := routes.SetupRouter(db, storage)

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		utils.Sugar.Infof("starting server on port %s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Sugar.Fatalf("server stopped with error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Sugar.Info("shutdown initiated")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Sugar.Errorf("HTTP server shutdown error: %v", err)
	}
	utils.Sugar.Info("server stopped")
}
