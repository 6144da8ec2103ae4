package updateorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/corray333/orderflow/internal/service/models/order"
)

// service is an interface for the service layer.
type service interface {
	UpdateOrder(ctx context.Context, o order.Order) error
}

// UpdateOrder handles the update order request. The order in the body
// fully replaces the stored one, product list included.
func UpdateOrder(w http.ResponseWriter, r *http.Request, service service) {
	orderID := chi.URLParam(r, "orderID")

	var o order.Order
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for update order", "error", err)

		return
	}

	if o.ID == "" {
		o.ID = orderID
	}
	if o.ID != orderID {
		http.Error(w, "Order id mismatch", http.StatusBadRequest)

		return
	}

	if err := service.UpdateOrder(r.Context(), o); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
