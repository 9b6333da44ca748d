package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderCreated              = "order.created"
	EventOrderCancelled            = "order.cancelled"
	EventOrderStatusUpdated        = "order.status_updated"
	EventOrderPaymentStatusUpdated = "order.payment_status_updated"
)

// OrderEvent is the payload published to the message broker on every order
// lifecycle change.
type OrderEvent struct {
	EventID       string        `json:"event_id"`
	Type          string        `json:"type"`
	OrderID       string        `json:"order_id"`
	UserID        string        `json:"user_id"`
	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	TotalAmount   float64       `json:"total_amount"`
	OccurredAt    string        `json:"occurred_at"`
}

func NewOrderEvent(eventType string, order *Order) OrderEvent {
	return OrderEvent{
		EventID:       uuid.NewString(),
		Type:          eventType,
		OrderID:       order.OrderID,
		UserID:        order.UserID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		TotalAmount:   order.TotalAmount,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
}
