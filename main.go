package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/reviewtool/internal/config"
	"github.com/example/reviewtool/internal/database"
	"github.com/example/reviewtool/internal/excel"
	"github.com/example/reviewtool/internal/handlers"
	"github.com/example/reviewtool/internal/logger"
	"github.com/example/reviewtool/internal/notify"
	"github.com/example/reviewtool/internal/scheduler"
	"github.com/example/reviewtool/internal/server"
	"github.com/example/reviewtool/internal/service"
	"github.com/example/reviewtool/internal/spaced_repetition"
)

func main() {
	importPath := flag.String("import", "", "bulk-load learning items from an .xlsx or .csv file and exit")
	flag.Parse()

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	defer db.Close()

	itemRepo := database.NewLearningItemRepository(db)
	historyRepo := database.NewReviewHistoryRepository(db)
	svc := service.New(itemRepo, historyRepo, spaced_repetition.SystemClock(), log)

	if *importPath != "" {
		result, err := excel.ImportItems(context.Background(), svc, excel.DefaultImportConfig(*importPath))
		if err != nil {
			log.Fatal("import failed", "file", *importPath, "error", err)
		}
		log.Info("import finished",
			"file", *importPath,
			"processed", result.TotalProcessed,
			"created", result.Created,
			"skipped", result.Skipped)
		for _, e := range result.Errors {
			log.Warn("import row skipped", "detail", e)
		}
		return
	}

	if cfg.RemindersEnabled() {
		notifier, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Warn("telegram notifier disabled", "error", err)
		} else {
			sched := scheduler.New(svc, notifier, log)
			if err := sched.Start(cfg.ReminderHour); err != nil {
				log.Warn("reminder scheduler disabled", "error", err)
			} else {
				defer sched.Stop()
			}
		}
	}

	router := server.NewRouter(server.RouterConfig{
		ItemHandler:   handlers.NewItemHandler(svc, log),
		ReviewHandler: handlers.NewReviewHandler(svc, log),
		CORSOrigins:   cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", "error", err)
		}
	}()
	log.Info("server started", "port", cfg.Port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("shutting down", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
	log.Info("server stopped")
}
