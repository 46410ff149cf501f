package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/freekieb7/tinyhttp/admin"
	"github.com/freekieb7/tinyhttp/config"
	"github.com/freekieb7/tinyhttp/filesystem"
	"github.com/freekieb7/tinyhttp/handlers"
	"github.com/freekieb7/tinyhttp/http"
	"github.com/freekieb7/tinyhttp/telemetry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalln(err)
	}
}

func run() (err error) {
	// Handle SIGINT (CTRL+C) gracefully.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		return err
	}

	tel, err := telemetry.Setup(ctx, telemetry.Options{
		ServiceName: cfg.ServiceName,
		Export:      cfg.OTLP,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err = errors.Join(err, tel.Shutdown(shutdownCtx))
	}()

	var fs filesystem.Filesystem
	if cfg.Directory != "" {
		fs = filesystem.NewLocalFileSystem(cfg.Directory)
	}

	router := http.NewRouter()
	handlers.Register(router, fs)

	server := http.NewServer(cfg.ServiceName, router.Handler())
	server.Logger = tel.Logger

	serverErrCh := make(chan error, 2)
	go func() {
		serverErrCh <- server.ListenAndServe(cfg.Addr)
	}()

	var adminServer *admin.Server
	if cfg.AdminAddr != "" {
		adminServer = admin.NewServer(router, tel.Logger)
		go func() {
			serverErrCh <- adminServer.ListenAndServe(cfg.AdminAddr)
		}()
	}

	// Wait for interruption.
	select {
	case err = <-serverErrCh:
		// Error when starting a listener.
	case <-ctx.Done():
		// Stop receiving signal notifications as soon as possible.
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if adminServer != nil {
		err = errors.Join(err, adminServer.Shutdown(shutdownCtx))
	}
	return errors.Join(err, server.Shutdown(shutdownCtx))
}
