package domain

import (
	"encoding/json"
	"time"
)

type User struct {
	ID                int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Username          string
	EncryptedPassword string
	SteamID           string
	Points            int64
	Role              UserRole
	IsActive          bool
	IsBanned          bool
}

// IsRestricted reports whether the user is not allowed to spend points.
func (u *User) IsRestricted() bool {
	return !u.IsActive || u.IsBanned
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

type Item struct {
	ID             int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Name           string
	Description    string
	Price          int64
	Category       ItemCategory
	Classname      string
	Attachments    Attachments
	ImageURL       string
	SortOrder      int
	StockUnlimited bool
	StockQuantity  int64
	IsActive       bool
}

// HasStock reports whether qty units can be taken from the item stock.
func (i *Item) HasStock(qty int64) bool {
	return i.StockUnlimited || i.StockQuantity >= qty
}

type Order struct {
	ID            int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CompletedAt   *time.Time
	OrderNumber   string
	UserID        int64
	TotalAmount   int64
	Status        OrderStatusType
	PaymentMethod string
	Notes         string
}

type OrderItem struct {
	ID               int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
	OrderID          int64
	ItemID           int64
	Quantity         int64
	UnitPrice        int64
	TotalPrice       int64
	DeliveryStatus   DeliveryStatusType
	DeliveryAttempts int
	DeliveryData     json.RawMessage
	DeliveredAt      *time.Time
}

type PointTransaction struct {
	ID          int64
	CreatedAt   time.Time
	UserID      int64
	Amount      int64
	Type        TransactionType
	Description string
}

// StoreSettings is an immutable snapshot of runtime switches taken once per request.
type StoreSettings struct {
	AutoDelivery bool
	StoreEnabled bool
}

const (
	SettingAutoDelivery = "auto_delivery"
	SettingStoreEnabled = "store_enabled"
)

// StoreSettingsFromMap builds a snapshot from raw system_settings rows. Missing keys fall back to
// auto delivery off and store enabled.
func StoreSettingsFromMap(values map[string]string) StoreSettings {
	s := StoreSettings{StoreEnabled: true}
	if v, ok := values[SettingAutoDelivery]; ok {
		s.AutoDelivery = v == "true"
	}
	if v, ok := values[SettingStoreEnabled]; ok {
		s.StoreEnabled = v != "false"
	}
	return s
}
