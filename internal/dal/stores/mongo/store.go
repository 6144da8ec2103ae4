package mongostore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/corray333/orderflow/internal/service/models/order"
	"github.com/corray333/orderflow/pkg/identifier"
)

// Store is the document adapter. It speaks the CRUD function's envelope
// over HTTP POST; the whole order document with embedded products is the
// unit of storage, so every write is a single atomic replace.
type Store struct {
	httpClient  *http.Client
	functionURL string
}

// NewStore creates the document order store targeting the CRUD function.
func NewStore(functionURL string) *Store {
	return &Store{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		functionURL: functionURL,
	}
}

// envelope is the function request body.
type envelope struct {
	Operation string          `json:"operation"`
	Data      json.RawMessage `json:"data,omitempty"`
	OrderID   string          `json:"orderId,omitempty"`
}

// functionResponse is the function response body.
type functionResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// SaveOrder upserts the whole order document.
func (s *Store) SaveOrder(ctx context.Context, o order.Order) error {
	_, err := s.call(ctx, "save", &o, "")

	return err
}

// GetOrders fetches all documents. Documents that fail to decode or whose
// id is not a well-formed UUID are skipped silently; the collection is not
// schema-enforced and a malformed record must not take down the list.
func (s *Store) GetOrders(ctx context.Context) ([]order.Order, error) {
	data, err := s.call(ctx, "getAll", nil, "")
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []order.Order{}, nil
	}

	var docs []json.RawMessage
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode order documents: %w", err)
	}

	orders := make([]order.Order, 0, len(docs))
	for _, raw := range docs {
		var doc orderDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			slog.Warn("Skipping undecodable order document", "error", err)

			continue
		}
		if !identifier.IsValidUUID(doc.ID) {
			slog.Warn("Skipping order document with malformed id", "id", doc.ID)

			continue
		}
		orders = append(orders, *doc.toModel())
	}

	return orders, nil
}

// DeleteOrder issues a single delete keyed by order id.
func (s *Store) DeleteOrder(ctx context.Context, orderID string) error {
	_, err := s.call(ctx, "delete", nil, orderID)

	return err
}

// UpdateOrder replaces the whole order document.
func (s *Store) UpdateOrder(ctx context.Context, o order.Order) error {
	_, err := s.call(ctx, "update", &o, "")

	return err
}

func (s *Store) call(
	ctx context.Context,
	operation string,
	data *order.Order,
	orderID string,
) (json.RawMessage, error) {
	env := envelope{Operation: operation, OrderID: orderID}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal order: %w", err)
		}
		env.Data = raw
	}

	payload, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, s.functionURL, bytes.NewReader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call orders function %s: %w", operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", operation, err)
	}

	var result functionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", operation, err)
	}

	if result.Error != "" {
		return nil, fmt.Errorf("orders function %s failed: %s", operation, result.Error)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("orders function %s failed with status %d", operation, resp.StatusCode)
	}
	if !result.Success {
		return nil, fmt.Errorf("orders function %s reported failure", operation)
	}

	return result.Data, nil
}
