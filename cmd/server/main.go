package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	httpadapter "portfolio/internal/adapter/http"
	"portfolio/internal/adapter/notify"
	repo "portfolio/internal/adapter/repository"
	"portfolio/internal/config"
	"portfolio/internal/model"
	"portfolio/internal/usecase"
	infra "portfolio/pkg/infrastructure"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := repo.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	validator, err := model.NewValidator()
	if err != nil {
		return fmt.Errorf("compile schemas: %w", err)
	}

	var notifier usecase.Notifier = notify.LogNotifier{}
	if cfg.TelegramEnabled() {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			return err
		}
		notifier = tg
		slog.Info("contact messages go to telegram", "chat_id", cfg.TelegramChatID)
	}

	renderer := infra.NewChromedpRenderer(cfg.ChromePath, cfg.RenderTimeout)

	h := httpadapter.NewHandler(store, validator,
		usecase.NewContactService(validator, notifier),
		usecase.NewResumeService(store, renderer),
		cfg.ResumePDFPath,
	)
	app := httpadapter.NewApp(h, httpadapter.Options{StaticDir: cfg.StaticDir})

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "port", cfg.Port, "store", cfg.StoreDriver)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
