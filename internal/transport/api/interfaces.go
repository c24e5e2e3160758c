package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"encoding/json"
	"io"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/repository/repoargs"
	"github.com/fsdevblog/dzstore/internal/service"
	"github.com/fsdevblog/dzstore/internal/transport/gameapi"
)

type UserServicer interface {
	Register(ctx context.Context, args service.RegisterUserArgs) (*domain.User, string, error)
	Login(ctx context.Context, args service.LoginUserArgs) (*domain.User, string, error)
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

type CatalogServicer interface {
	ListActiveItems(ctx context.Context, category *domain.ItemCategory) ([]domain.Item, error)
	Categories(ctx context.Context) ([]repoargs.CategoryCount, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	CreateItem(ctx context.Context, args service.ItemArgs) (*domain.Item, error)
	UpdateItem(ctx context.Context, itemID int64, args service.ItemArgs) (*domain.Item, error)
	SetItemActive(ctx context.Context, itemID int64, active bool) error
	AttachImage(ctx context.Context, itemID int64, filename, contentType string, body io.Reader) (string, error)
}

type SettingsServicer interface {
	Snapshot(ctx context.Context) (domain.StoreSettings, error)
	Update(ctx context.Context, args service.UpdateSettingsArgs) (domain.StoreSettings, error)
}

type OrderServicer interface {
	Purchase(
		ctx context.Context,
		args service.PurchaseArgs,
		settings domain.StoreSettings,
	) (*service.PurchaseResult, error)
	ListUserOrders(ctx context.Context, userID int64, limit, offset uint) ([]service.OrderDetails, error)
	ListOrders(ctx context.Context, args service.OrderListArgs) ([]service.OrderDetails, error)
	Stats(ctx context.Context) ([]repoargs.OrderStatusCount, error)
	UpdateNotes(ctx context.Context, orderID int64, notes string) (*domain.Order, error)
}

type DeliveryServicer interface {
	DeliverOrder(ctx context.Context, userID, orderID int64) (*service.RetryStats, error)
	RetryOrder(ctx context.Context, orderID int64, opts service.RetryOptions) (*service.RetryStats, error)
	CancelOrder(ctx context.Context, args service.CancelOrderArgs) (*service.CancelResult, error)
	LocalHistory(ctx context.Context, filter repoargs.DeliveryFilter) ([]repoargs.DeliveryRecord, error)
}

type LedgerServicer interface {
	GetBalance(ctx context.Context, userID int64) (int64, error)
	History(ctx context.Context, userID int64, limit, offset uint) ([]domain.PointTransaction, error)
	AdjustPoints(ctx context.Context, userID, delta int64, description string) (int64, error)
	Reconcile(ctx context.Context, userID int64) (*service.LedgerReport, error)
}

// GameServer exposes the item giver endpoints used by admins directly.
type GameServer interface {
	History(ctx context.Context, q gameapi.HistoryQuery) (json.RawMessage, error)
	PlayerQueue(ctx context.Context, steamID string) (json.RawMessage, error)
	ClearPlayerQueue(ctx context.Context, steamID string) (json.RawMessage, error)
}

type ItemDeliverer interface {
	Deliver(ctx context.Context, req domain.DeliveryRequest) (domain.DeliveryResult, error)
}
