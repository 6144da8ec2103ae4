package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"

	"github.com/corray333/orderflow/internal/service/models/order"
	deleteorder "github.com/corray333/orderflow/internal/transport/http/delete_order"
	listorders "github.com/corray333/orderflow/internal/transport/http/list_orders"
	saveorder "github.com/corray333/orderflow/internal/transport/http/save_order"
	updateorder "github.com/corray333/orderflow/internal/transport/http/update_order"
	"github.com/corray333/orderflow/pkg/http/middleware/trace"
	"github.com/corray333/orderflow/pkg/logger"
)

type service interface {
	SaveOrder(ctx context.Context, o order.Order) error
	GetOrders(ctx context.Context) []order.Order
	DeleteOrder(ctx context.Context, orderID string) error
	UpdateOrder(ctx context.Context, o order.Order) error
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	service service
}

func NewHTTPTransport(service service) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:  server,
		router:  router,
		service: service,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Get("/orders", h.listOrders)
		r.Post("/orders", h.saveOrder)
		r.Put("/orders/{orderID}", h.updateOrder)
		r.Delete("/orders/{orderID}", h.deleteOrder)
	})
}

func (h *HTTPTransport) saveOrder(w http.ResponseWriter, r *http.Request) {
	saveorder.SaveOrder(w, r, h.service)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.service)
}

func (h *HTTPTransport) updateOrder(w http.ResponseWriter, r *http.Request) {
	updateorder.UpdateOrder(w, r, h.service)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	deleteorder.DeleteOrder(w, r, h.service)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	if viper.GetBool("tracing.enabled") {
		router.Use(trace.NewTraceMiddleware)
	}

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
