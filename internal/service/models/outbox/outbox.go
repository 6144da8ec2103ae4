package outbox

import (
	"encoding/json"
	"time"
)

// Order event types recorded in the outbox.
const (
	EventOrderSaved   = "order.saved"
	EventOrderUpdated = "order.updated"
	EventOrderDeleted = "order.deleted"
)

// Message is a pending order event awaiting publication to RabbitMQ.
type Message struct {
	ID           int64
	QueueName    string
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}

// orderEvent is the payload shape published for order lifecycle events.
type orderEvent struct {
	Event   string    `json:"event"`
	OrderID string    `json:"orderId"`
	At      time.Time `json:"at"`
}

// NewOrderEvent builds an outbox message for an order lifecycle event,
// routed by the event name and ready for immediate delivery.
func NewOrderEvent(event, orderID string, queueName string, maxRetries int) Message {
	now := time.Now()
	payload, _ := json.Marshal(orderEvent{
		Event:   event,
		OrderID: orderID,
		At:      now,
	})

	return Message{
		QueueName:   queueName,
		RoutingKey:  queueName,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  maxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}
}
