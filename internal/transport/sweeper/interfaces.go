package sweeper

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/service"
)

type SettingsProvider interface {
	Snapshot(ctx context.Context) (domain.StoreSettings, error)
}

type Redeliverer interface {
	OrdersForRedelivery(ctx context.Context, args service.RedeliveryArgs) ([]int64, error)
	RetryOrder(ctx context.Context, orderID int64, opts service.RetryOptions) (*service.RetryStats, error)
}
