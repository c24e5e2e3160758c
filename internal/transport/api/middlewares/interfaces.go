package middlewares

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/dzstore/internal/domain"
)

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// UserProvider loads the current state of an account, the token claims may be outdated.
type UserProvider interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}
