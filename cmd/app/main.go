package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"laundry/api"
	"laundry/cmd"
	httpin "laundry/internal/adapters/in/http"
	"laundry/internal/adapters/in/http/auth"
	"laundry/internal/adapters/in/ws"
	"laundry/internal/adapters/out/notify"
	"laundry/internal/adapters/out/postgres"
	"laundry/internal/adapters/out/rabbitmq"
	"laundry/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	if err := run(); err != nil {
		slog.Error("laundry service stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := cmd.LoadConfig(".env")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	db, err := postgres.Open(cfg.Database(), logger)
	if err != nil {
		return err
	}
	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	publisher, closePublisher, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	directory := notify.NewDirectory()
	bus := notify.NewBus(directory, logger)

	app := cmd.NewCompositionRoot(cfg, db, bus, publisher, logger)
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	doc, err := api.Load(context.Background())
	if err != nil {
		return err
	}

	e := newEcho(level)
	if err := httpin.NewServer(app.HTTPHandlers(), tokens, logger).Register(e, doc); err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}

	socket := ws.NewHandler(
		tokens,
		directory,
		app.CreateAssignOrderCommandHandler(),
		app.CreateAdvanceOrderStatusCommandHandler(),
		logger,
	)
	e.GET("/ws", socket.Serve)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "port", cfg.HTTPPort)
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort))
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	jobsErr := jobManager.StopAll(shutdownCtx)
	httpErr := e.Shutdown(shutdownCtx)
	return errors.Join(jobsErr, httpErr)
}

func newEcho(level slog.Level) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	switch {
	case level <= slog.LevelDebug:
		e.Logger.SetLevel(log.DEBUG)
	case level >= slog.LevelError:
		e.Logger.SetLevel(log.ERROR)
	default:
		e.Logger.SetLevel(log.WARN)
	}
	return e
}

// newPublisher connects to RabbitMQ, or logs-and-drops events when no broker
// is configured.
func newPublisher(cfg cmd.Config, logger *slog.Logger) (ports.EventPublisher, func(), error) {
	if cfg.AMQPURL == "" {
		logger.Warn("AMQP_URL not set, integration events are disabled")
		return rabbitmq.NewNopPublisher(logger), func() {}, nil
	}

	producer, err := rabbitmq.NewEventProducer(cfg.AMQPURL, cfg.AMQPExchange, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq: %w", err)
	}
	return producer, func() {
		if err := producer.Close(); err != nil {
			logger.Warn("close rabbitmq producer", "error", err)
		}
	}, nil
}
