package listorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/orderflow/internal/service/models/order"
)

// service is an interface for the service layer.
type service interface {
	GetOrders(ctx context.Context) []order.Order
}

// ListOrders handles the get orders request. The read path never fails:
// a storage outage surfaces as an empty list.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	orders := service.GetOrders(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(orders); err != nil {
		slog.Error("Error writing response for list orders", "error", err)
	}
}
