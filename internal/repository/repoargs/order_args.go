package repoargs

import (
	"encoding/json"
	"time"

	"github.com/fsdevblog/dzstore/internal/domain"
)

type OrderCreate struct {
	OrderNumber   string
	UserID        int64
	TotalAmount   int64
	Status        domain.OrderStatusType
	PaymentMethod string
	Notes         string
}

type OrderItemCreate struct {
	OrderID    int64
	ItemID     int64
	Quantity   int64
	UnitPrice  int64
	TotalPrice int64
}

// OrderStatusUpdate moves an order to Status only when its current status is one of From.
// A nil Notes leaves the stored notes untouched.
type OrderStatusUpdate struct {
	OrderID int64
	Status  domain.OrderStatusType
	From    []domain.OrderStatusType
	Notes   *string
}

type DeliveryAttempt struct {
	OrderItemID int64
	Status      domain.DeliveryStatusType
	Data        json.RawMessage
}

type OrderFilter struct {
	UserID *int64
	Status *domain.OrderStatusType
	Limit  uint
	Offset uint
}

type OrderStatusCount struct {
	Status      domain.OrderStatusType
	Count       int64
	TotalAmount int64
}

// RedeliveryFilter selects paid orders that still have undelivered line items.
type RedeliveryFilter struct {
	MaxAttempts        int
	IncludeUnattempted bool
	Limit              uint
}

type DeliveryFilter struct {
	SteamID    string
	PlayerName string
	Status     *domain.DeliveryStatusType
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      uint
	Offset     uint
}

// DeliveryRecord is a line item joined with its buyer and catalog item.
type DeliveryRecord struct {
	OrderItem   domain.OrderItem
	OrderNumber string
	Username    string
	SteamID     string
	ItemName    string
	Classname   string
}
