package api

import (
	"encoding/json"
	"time"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/service"
)

type UserResponse struct {
	ID       int64           `json:"id"`
	Username string          `json:"username"`
	SteamID  string          `json:"steam_id"`
	Points   int64           `json:"points"`
	Role     domain.UserRole `json:"role"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		SteamID:  u.SteamID,
		Points:   u.Points,
		Role:     u.Role,
	}
}

type ItemResponse struct {
	ID             int64               `json:"id"`
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Price          int64               `json:"price"`
	Category       domain.ItemCategory `json:"category"`
	Classname      string              `json:"classname"`
	Attachments    domain.Attachments  `json:"attachments"`
	ImageURL       string              `json:"image_url,omitempty"`
	SortOrder      int                 `json:"sort_order"`
	StockUnlimited bool                `json:"stock_unlimited"`
	StockQuantity  int64               `json:"stock_quantity"`
	IsActive       bool                `json:"is_active"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func newItemResponse(i *domain.Item) ItemResponse {
	attachments := i.Attachments
	if attachments == nil {
		attachments = domain.Attachments{}
	}
	return ItemResponse{
		ID:             i.ID,
		Name:           i.Name,
		Description:    i.Description,
		Price:          i.Price,
		Category:       i.Category,
		Classname:      i.Classname,
		Attachments:    attachments,
		ImageURL:       i.ImageURL,
		SortOrder:      i.SortOrder,
		StockUnlimited: i.StockUnlimited,
		StockQuantity:  i.StockQuantity,
		IsActive:       i.IsActive,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

func newItemsResponse(items []domain.Item) []ItemResponse {
	res := make([]ItemResponse, len(items))
	for i := range items {
		res[i] = newItemResponse(&items[i])
	}
	return res
}

type OrderItemResponse struct {
	ID               int64                     `json:"id"`
	ItemID           int64                     `json:"item_id"`
	Quantity         int64                     `json:"quantity"`
	UnitPrice        int64                     `json:"unit_price"`
	TotalPrice       int64                     `json:"total_price"`
	DeliveryStatus   domain.DeliveryStatusType `json:"delivery_status"`
	DeliveryAttempts int                       `json:"delivery_attempts"`
	DeliveryData     json.RawMessage           `json:"delivery_data,omitempty"`
	DeliveredAt      *time.Time                `json:"delivered_at,omitempty"`
}

func newOrderItemResponse(i domain.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:               i.ID,
		ItemID:           i.ItemID,
		Quantity:         i.Quantity,
		UnitPrice:        i.UnitPrice,
		TotalPrice:       i.TotalPrice,
		DeliveryStatus:   i.DeliveryStatus,
		DeliveryAttempts: i.DeliveryAttempts,
		DeliveryData:     i.DeliveryData,
		DeliveredAt:      i.DeliveredAt,
	}
}

type OrderResponse struct {
	ID            int64                  `json:"id"`
	OrderNumber   string                 `json:"order_number"`
	UserID        int64                  `json:"user_id"`
	TotalAmount   int64                  `json:"total_amount"`
	Status        domain.OrderStatusType `json:"status"`
	PaymentMethod string                 `json:"payment_method"`
	Notes         string                 `json:"notes,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	CompletedAt   *time.Time             `json:"completed_at,omitempty"`
	Items         []OrderItemResponse    `json:"items,omitempty"`
}

func newOrderResponse(o *domain.Order, items []domain.OrderItem) OrderResponse {
	res := OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		UserID:        o.UserID,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
		CompletedAt:   o.CompletedAt,
	}
	for _, i := range items {
		res.Items = append(res.Items, newOrderItemResponse(i))
	}
	return res
}

func newOrdersResponse(orders []service.OrderDetails) []OrderResponse {
	res := make([]OrderResponse, len(orders))
	for i := range orders {
		res[i] = newOrderResponse(&orders[i].Order, orders[i].Items)
	}
	return res
}

type TransactionResponse struct {
	ID          int64                  `json:"id"`
	Amount      int64                  `json:"amount"`
	Type        domain.TransactionType `json:"type"`
	Description string                 `json:"description"`
	CreatedAt   time.Time              `json:"created_at"`
}

func newTransactionsResponse(txs []domain.PointTransaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txs))
	for i, t := range txs {
		res[i] = TransactionResponse{
			ID:          t.ID,
			Amount:      t.Amount,
			Type:        t.Type,
			Description: t.Description,
			CreatedAt:   t.CreatedAt,
		}
	}
	return res
}

type SettingsResponse struct {
	AutoDelivery bool `json:"auto_delivery"`
	StoreEnabled bool `json:"store_enabled"`
}

func newSettingsResponse(s domain.StoreSettings) SettingsResponse {
	return SettingsResponse{AutoDelivery: s.AutoDelivery, StoreEnabled: s.StoreEnabled}
}

type RetryResponse struct {
	Order     *OrderResponse `json:"order,omitempty"`
	Attempted int            `json:"attempted"`
	Delivered int            `json:"delivered"`
	Failed    int            `json:"failed"`
	Completed bool           `json:"completed"`
}

func newRetryResponse(stats *service.RetryStats) RetryResponse {
	res := RetryResponse{
		Attempted: stats.Attempted,
		Delivered: stats.Delivered,
		Failed:    stats.Failed,
		Completed: stats.Completed,
	}
	if stats.Order != nil {
		order := newOrderResponse(stats.Order, stats.Items)
		res.Order = &order
	}
	return res
}
