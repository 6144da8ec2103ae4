package dataapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the MongoDB Atlas Data API action endpoints
// ({base}/action/{replaceOne|find|deleteOne}) for one collection.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	dataSource string
	database   string
	collection string
}

// Config carries everything needed to reach one Data API collection.
type Config struct {
	BaseURL    string
	APIKey     string
	DataSource string
	Database   string
	Collection string
}

// NewClient creates a Data API client.
func NewClient(cfg Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		dataSource: cfg.DataSource,
		database:   cfg.Database,
		collection: cfg.Collection,
	}
}

// actionRequest is the common Data API action body.
type actionRequest struct {
	DataSource  string          `json:"dataSource"`
	Database    string          `json:"database"`
	Collection  string          `json:"collection"`
	Filter      map[string]any  `json:"filter"`
	Replacement json.RawMessage `json:"replacement,omitempty"`
	Upsert      bool            `json:"upsert,omitempty"`
}

// ReplaceOne replaces the document matching filter with replacement,
// inserting it when upsert is set and no document matches.
func (c *Client) ReplaceOne(
	ctx context.Context,
	filter map[string]any,
	replacement json.RawMessage,
	upsert bool,
) error {
	req := actionRequest{
		DataSource:  c.dataSource,
		Database:    c.database,
		Collection:  c.collection,
		Filter:      filter,
		Replacement: replacement,
		Upsert:      upsert,
	}

	_, err := c.action(ctx, "replaceOne", req)

	return err
}

// Find returns all documents matching filter.
func (c *Client) Find(ctx context.Context, filter map[string]any) ([]json.RawMessage, error) {
	req := actionRequest{
		DataSource: c.dataSource,
		Database:   c.database,
		Collection: c.collection,
		Filter:     filter,
	}

	body, err := c.action(ctx, "find", req)
	if err != nil {
		return nil, err
	}

	var result struct {
		Documents []json.RawMessage `json:"documents"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode find response: %w", err)
	}

	return result.Documents, nil
}

// DeleteOne deletes the first document matching filter.
func (c *Client) DeleteOne(ctx context.Context, filter map[string]any) error {
	req := actionRequest{
		DataSource: c.dataSource,
		Database:   c.database,
		Collection: c.collection,
		Filter:     filter,
	}

	_, err := c.action(ctx, "deleteOne", req)

	return err
}

func (c *Client) action(ctx context.Context, action string, req actionRequest) ([]byte, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", action, err)
	}

	url := c.baseURL + "/action/" + action
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", action, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call data api %s: %w", action, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", action, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("data api %s failed with status %d: %s", action, resp.StatusCode, body)
	}

	return body, nil
}
