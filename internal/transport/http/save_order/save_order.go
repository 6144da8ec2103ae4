package saveorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/orderflow/internal/service/models/order"
)

// service is an interface for the service layer.
type service interface {
	SaveOrder(ctx context.Context, o order.Order) error
}

// SaveOrder handles the create order request.
func SaveOrder(w http.ResponseWriter, r *http.Request, service service) {
	var o order.Order
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for save order", "error", err)

		return
	}

	if o.ID == "" {
		http.Error(w, "Order id is required", http.StatusBadRequest)

		return
	}

	if err := service.SaveOrder(r.Context(), o); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusCreated)
}
