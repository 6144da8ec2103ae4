package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	"github.com/corray333/orderflow/internal/dal/interfaces/iorderstore"
	"github.com/corray333/orderflow/internal/dal/postgres"
	"github.com/corray333/orderflow/internal/dal/rabbitmq"
	outboxrepo "github.com/corray333/orderflow/internal/dal/repositories/outbox/postgres"
	mongostore "github.com/corray333/orderflow/internal/dal/stores/mongo"
	postgresstore "github.com/corray333/orderflow/internal/dal/stores/postgres"
	"github.com/corray333/orderflow/internal/jaeger"
	"github.com/corray333/orderflow/internal/service/services/ordersvc"
	httptransport "github.com/corray333/orderflow/internal/transport/http"
	outboxworker "github.com/corray333/orderflow/internal/worker/outbox"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client         // nil with the document adapter
	rabbitClient   *rabbitmq.Client         // nil with the document adapter
	outboxWorker   *outboxworker.Worker     // nil with the document adapter
	tracerProvider *sdktrace.TracerProvider // nil unless tracing is enabled
}

// MustNewApp creates a new application. The storage adapter behind the
// gateway is selected by the storage.adapter config key: "postgres" for
// the relational tables, "mongo" for the document store behind the CRUD
// function.
func MustNewApp() *App {
	a := &App{}

	if viper.GetBool("tracing.enabled") {
		exporter := jaeger.MustNewJaeger()
		a.tracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(sdkresource.NewWithAttributes(
				semconv.SchemaURL,
				semconv.ServiceNameKey.String("orderflow"),
			)),
		)
		otel.SetTracerProvider(a.tracerProvider)
	}

	var store iorderstore.Store

	switch adapter := viper.GetString("storage.adapter"); adapter {
	case "mongo":
		store = mongostore.NewStore(viper.GetString("mongo.function_url"))
	case "postgres", "":
		a.postgresClient = postgres.MustNewClient()
		store = postgresstore.NewStore(a.postgresClient)

		a.rabbitClient = rabbitmq.MustNewClient()
		queueName := viper.GetString("rabbitmq.outbox.queue_name")
		if queueName == "" {
			queueName = "order-events"
		}
		if _, err := a.rabbitClient.DeclareQueue(rabbitmq.DeclareQueueConfig{
			Name:    queueName,
			Durable: true,
		}); err != nil {
			panic("failed to declare order events queue: " + err.Error())
		}

		a.outboxWorker = outboxworker.NewWorker(
			outboxrepo.NewOutboxRepository(a.postgresClient.Pool()),
			a.rabbitClient,
		)
	default:
		panic("unknown storage adapter: " + adapter)
	}

	a.orderSvc = ordersvc.MustNewOrderService(ordersvc.WithStore(store))

	a.transport = httptransport.NewHTTPTransport(a.orderSvc)
	a.transport.RegisterRoutes()

	return a
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	if a.outboxWorker != nil {
		go a.outboxWorker.Start(context.Background())
	}

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if a.outboxWorker != nil {
		a.outboxWorker.Stop()
	}

	if a.rabbitClient != nil {
		if err := a.rabbitClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		}
	}

	if a.postgresClient != nil {
		a.postgresClient.Close()
		slog.Info("Database connection closed gracefully")
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			slog.Error("Tracer provider shutdown error", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
}
