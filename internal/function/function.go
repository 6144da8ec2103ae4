package function

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/corray333/orderflow/internal/dal/dataapi"
)

// Handler is the network entry point of the document-store CRUD function.
// It accepts {operation, data?, orderId?} envelopes and dispatches to one
// of four collection operations.
type Handler struct {
	api *dataapi.Client
}

// NewHandler creates the function handler. The config must already be
// validated; see LoadConfig.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		api: dataapi.NewClient(dataapi.Config{
			BaseURL:    cfg.DataAPIURL,
			APIKey:     cfg.APIKey,
			DataSource: cfg.DataSource,
			Database:   cfg.Database,
			Collection: cfg.Collection,
		}),
	}
}

// Routes builds the function's HTTP surface: a single POST endpoint with
// permissive CORS, where the cors middleware answers pre-flight OPTIONS
// with empty success.
func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
	}))

	router.Post("/", h.handle)

	return router
}

// request is the inbound envelope. Data passes through to the collection
// untouched.
type request struct {
	Operation string          `json:"operation"`
	Data      json.RawMessage `json:"data,omitempty"`
	OrderID   string          `json:"orderId,omitempty"`
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("failed to decode request: %w", err))

		return
	}

	slog.Info("Document store operation", "operation", req.Operation, "order_id", req.OrderID)

	ctx := r.Context()

	switch req.Operation {
	case "save":
		id, err := orderID(req.Data)
		if err != nil {
			h.writeError(w, err)

			return
		}
		if err := h.api.ReplaceOne(ctx, map[string]any{"id": id}, req.Data, true); err != nil {
			h.writeError(w, err)

			return
		}
		h.writeSuccess(w, req.Data)

	case "getAll":
		docs, err := h.api.Find(ctx, map[string]any{})
		if err != nil {
			h.writeError(w, err)

			return
		}
		if docs == nil {
			docs = []json.RawMessage{}
		}
		data, err := json.Marshal(docs)
		if err != nil {
			h.writeError(w, err)

			return
		}
		h.writeSuccess(w, data)

	case "delete":
		if err := h.api.DeleteOne(ctx, map[string]any{"id": req.OrderID}); err != nil {
			h.writeError(w, err)

			return
		}
		h.writeSuccess(w, nil)

	case "update":
		id, err := orderID(req.Data)
		if err != nil {
			h.writeError(w, err)

			return
		}
		if err := h.api.ReplaceOne(ctx, map[string]any{"id": id}, req.Data, false); err != nil {
			h.writeError(w, err)

			return
		}
		h.writeSuccess(w, req.Data)

	default:
		h.writeError(w, fmt.Errorf("unknown operation: %s", req.Operation))
	}
}

// orderID extracts the id field from the raw order document.
func orderID(data json.RawMessage) (string, error) {
	var doc struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("failed to decode order data: %w", err)
	}
	if doc.ID == "" {
		return "", fmt.Errorf("order data carries no id")
	}

	return doc.ID, nil
}

func (h *Handler) writeSuccess(w http.ResponseWriter, data json.RawMessage) {
	body := map[string]any{"success": true}
	if data != nil {
		body["data"] = data
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to write function response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	slog.Error("Orders function operation failed", "error", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}); err != nil {
		slog.Error("Failed to write function error response", "error", err)
	}
}
