package domain

import "time"

type OrderEventType string

const (
	OrderEventPurchased OrderEventType = "order.purchased"
	OrderEventDelivery  OrderEventType = "order.delivery"
	OrderEventCompleted OrderEventType = "order.completed"
	OrderEventCancelled OrderEventType = "order.cancelled"
)

// OrderEvent is published after the state change it describes has been committed.
type OrderEvent struct {
	Type        OrderEventType  `json:"type"`
	OrderID     int64           `json:"orderId"`
	OrderNumber string          `json:"orderNumber"`
	UserID      int64           `json:"userId"`
	Status      OrderStatusType `json:"status"`
	TotalAmount int64           `json:"totalAmount"`
	Delivered   int             `json:"delivered,omitempty"`
	Failed      int             `json:"failed,omitempty"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

func NewOrderEvent(t OrderEventType, order *Order) OrderEvent {
	return OrderEvent{
		Type:        t,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		OccurredAt:  time.Now().UTC(),
	}
}
