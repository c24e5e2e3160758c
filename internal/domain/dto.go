package domain

type OrderStatusType string

const (
	OrderStatusPending   OrderStatusType = "pending"
	OrderStatusPaid      OrderStatusType = "paid"
	OrderStatusCompleted OrderStatusType = "completed"
	OrderStatusCancelled OrderStatusType = "cancelled"
	OrderStatusRefunded  OrderStatusType = "refunded"
)

// IsTerminal reports whether no further transitions are allowed from the status.
func (s OrderStatusType) IsTerminal() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusCancelled, OrderStatusRefunded:
		return true
	default:
		return false
	}
}

func (s OrderStatusType) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCompleted, OrderStatusCancelled, OrderStatusRefunded:
		return true
	default:
		return false
	}
}

type DeliveryStatusType string

const (
	DeliveryStatusPending   DeliveryStatusType = "pending"
	DeliveryStatusDelivered DeliveryStatusType = "delivered"
	DeliveryStatusFailed    DeliveryStatusType = "failed"
	DeliveryStatusCancelled DeliveryStatusType = "cancelled"
)

// IsRetryable reports whether a line item with this status may be sent to the game server again.
func (s DeliveryStatusType) IsRetryable() bool {
	return s == DeliveryStatusPending || s == DeliveryStatusFailed
}

type TransactionType string

const (
	TransactionTypePurchase    TransactionType = "purchase"
	TransactionTypeRefund      TransactionType = "refund"
	TransactionTypeAdminAdjust TransactionType = "admin_adjust"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type ItemCategory string

const (
	ItemCategoryWeapon  ItemCategory = "weapon"
	ItemCategoryItem    ItemCategory = "item"
	ItemCategoryVehicle ItemCategory = "vehicle"
	ItemCategoryMoney   ItemCategory = "money"
)

func (c ItemCategory) IsValid() bool {
	switch c {
	case ItemCategoryWeapon, ItemCategoryItem, ItemCategoryVehicle, ItemCategoryMoney:
		return true
	default:
		return false
	}
}

const PaymentMethodPoints = "points"
