package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/repository/repoargs"
	"github.com/fsdevblog/dzstore/pkg/uow"
)

type SettingsService struct {
	uow   uow.UOW
	repo  SettingsRepository
	cache SettingsCache
	l     *logrus.Entry
}

// NewSettingsService accepts a nil cache, every snapshot is then read from the database.
func NewSettingsService(u uow.UOW, cache SettingsCache, l *logrus.Logger) (*SettingsService, error) {
	repo, err := uow.GetRepositoryAs[SettingsRepository](u, uow.RepositoryName(repoargs.SettingsRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &SettingsService{
		uow:   u,
		repo:  repo,
		cache: cache,
		l:     l.WithField("component", "settings"),
	}, nil
}

// Snapshot returns the current runtime switches. Callers take one snapshot per request and pass it
// down instead of reading the settings again.
func (s *SettingsService) Snapshot(ctx context.Context) (domain.StoreSettings, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.l.WithError(err).Warn("reading settings cache")
		}
		if cached != nil {
			return *cached, nil
		}
	}

	values, err := s.repo.GetAll(ctx)
	if err != nil {
		return domain.StoreSettings{}, fmt.Errorf("loading store settings: %w", err)
	}
	settings := domain.StoreSettingsFromMap(values)

	if s.cache != nil {
		if setErr := s.cache.Set(ctx, settings); setErr != nil {
			s.l.WithError(setErr).Warn("writing settings cache")
		}
	}
	return settings, nil
}

// UpdateSettingsArgs leaves nil fields unchanged.
type UpdateSettingsArgs struct {
	AutoDelivery *bool
	StoreEnabled *bool
}

func (s *SettingsService) Update(ctx context.Context, args UpdateSettingsArgs) (domain.StoreSettings, error) {
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[SettingsRepository](tx, uow.RepositoryName(repoargs.SettingsRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		if args.AutoDelivery != nil {
			if err := repo.Set(c, domain.SettingAutoDelivery, strconv.FormatBool(*args.AutoDelivery)); err != nil {
				return err //nolint:wrapcheck
			}
		}
		if args.StoreEnabled != nil {
			if err := repo.Set(c, domain.SettingStoreEnabled, strconv.FormatBool(*args.StoreEnabled)); err != nil {
				return err //nolint:wrapcheck
			}
		}
		return nil
	})
	if txErr != nil {
		return domain.StoreSettings{}, fmt.Errorf("updating store settings: %w", txErr)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.l.WithError(err).Warn("invalidating settings cache")
		}
	}
	settings, err := s.Snapshot(ctx)
	if err != nil {
		return domain.StoreSettings{}, err
	}
	s.l.WithFields(logrus.Fields{
		"auto_delivery": settings.AutoDelivery,
		"store_enabled": settings.StoreEnabled,
	}).Info("store settings updated")
	return settings, nil
}
