package service

import (
	"context"
	"io"
	"time"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

type UserRepository interface {
	CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// AddPoints atomically applies delta to the balance and returns the new balance.
	// Returns domain.ErrInsufficientFunds when the balance would go negative.
	AddPoints(ctx context.Context, userID int64, delta int64) (int64, error)
}

type PointTransactionRepository interface {
	Create(ctx context.Context, transaction repoargs.PointTransactionCreate) (*domain.PointTransaction, error)
	GetByUserID(ctx context.Context, userID int64, limit, offset uint) ([]domain.PointTransaction, error)
	Aggregate(ctx context.Context, userID int64) (*repoargs.LedgerAggregation, error)
}

type ItemRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Item, error)
	ListActive(ctx context.Context, category *domain.ItemCategory) ([]domain.Item, error)
	ListAll(ctx context.Context) ([]domain.Item, error)
	CategoryCounts(ctx context.Context) ([]repoargs.CategoryCount, error)
	Create(ctx context.Context, item repoargs.ItemUpsert) (*domain.Item, error)
	Update(ctx context.Context, id int64, item repoargs.ItemUpsert) (*domain.Item, error)
	SetActive(ctx context.Context, id int64, active bool) error
	SetImageURL(ctx context.Context, id int64, url string) error
	// ReserveStock decrements a finite stock. Returns domain.ErrInsufficientStock when fewer
	// than qty units are left.
	ReserveStock(ctx context.Context, id int64, qty int64) error
}

type OrderRepository interface {
	Create(ctx context.Context, order repoargs.OrderCreate) (*domain.Order, error)
	CreateItem(ctx context.Context, item repoargs.OrderItemCreate) (*domain.OrderItem, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, filter repoargs.OrderFilter) ([]domain.Order, error)
	Stats(ctx context.Context) ([]repoargs.OrderStatusCount, error)
	GetItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
	UpdateStatus(ctx context.Context, update repoargs.OrderStatusUpdate) (*domain.Order, error)
	UpdateNotes(ctx context.Context, orderID int64, notes string) (*domain.Order, error)
	// RecordDeliveryAttempt stores one gateway result and bumps the attempt counter. Delivered
	// line items are never overwritten.
	RecordDeliveryAttempt(ctx context.Context, attempt repoargs.DeliveryAttempt) (*domain.OrderItem, error)
	CancelOpenItems(ctx context.Context, orderID int64) error
	GetForRedelivery(ctx context.Context, filter repoargs.RedeliveryFilter) ([]int64, error)
	ListDeliveries(ctx context.Context, filter repoargs.DeliveryFilter) ([]repoargs.DeliveryRecord, error)
}

type SettingsRepository interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
}

// SettingsCache returns nil settings without an error on a cache miss.
type SettingsCache interface {
	Get(ctx context.Context) (*domain.StoreSettings, error)
	Set(ctx context.Context, settings domain.StoreSettings) error
	Invalidate(ctx context.Context) error
}

// Deliverer performs exactly one delivery call to the game server. Ordinary remote failures
// are reported through the result, the error is reserved for requests that are malformed.
type Deliverer interface {
	Deliver(ctx context.Context, req domain.DeliveryRequest) (domain.DeliveryResult, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.OrderEvent) error
}

type ImageUploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// OrderLocker serializes delivery runs of one order across processes. It returns a release func
// and true when the lock was taken, false when another holder owns the key.
type OrderLocker interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error)
}
