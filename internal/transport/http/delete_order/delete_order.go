package deleteorder

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	DeleteOrder(ctx context.Context, orderID string) error
}

// DeleteOrder handles the delete order request.
func DeleteOrder(w http.ResponseWriter, r *http.Request, service service) {
	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		http.Error(w, "Order id is required", http.StatusBadRequest)

		return
	}

	if err := service.DeleteOrder(r.Context(), orderID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
