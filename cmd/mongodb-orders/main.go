package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/corray333/orderflow/internal/config"
	"github.com/corray333/orderflow/internal/function"
)

func main() {
	config.MustInit()

	cfg, err := function.LoadConfig()
	if err != nil {
		slog.Error("Invalid function configuration", "error", err)
		os.Exit(1)
	}

	handler := function.NewHandler(cfg)

	server := &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("function.http.port"),
		Handler: handler.Routes(),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Starting orders function", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Orders function server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Orders function shutdown error", "error", err)
	} else {
		slog.Info("Orders function stopped gracefully")
	}
}
