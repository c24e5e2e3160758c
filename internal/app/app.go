package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/dzstore/internal/config"
	"github.com/fsdevblog/dzstore/internal/events"
	"github.com/fsdevblog/dzstore/internal/repository/pgrepo"
	"github.com/fsdevblog/dzstore/internal/repository/redisrepo"
	"github.com/fsdevblog/dzstore/internal/repository/repoargs"
	"github.com/fsdevblog/dzstore/internal/service"
	"github.com/fsdevblog/dzstore/internal/service/psswd"
	"github.com/fsdevblog/dzstore/internal/storage"
	"github.com/fsdevblog/dzstore/internal/transport/api"
	"github.com/fsdevblog/dzstore/internal/transport/api/middlewares"
	"github.com/fsdevblog/dzstore/internal/transport/gameapi"
	"github.com/fsdevblog/dzstore/internal/transport/sweeper"
	"github.com/fsdevblog/dzstore/pkg/rediskit"
	"github.com/fsdevblog/dzstore/pkg/uow"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

// infra holds the optional backends. Nil fields fall back to in-process implementations.
type infra struct {
	locker   service.OrderLocker
	cache    service.SettingsCache
	limiter  middlewares.RateLimiter
	events   service.EventPublisher
	uploader service.ImageUploader
	closers  []io.Closer
}

func (i *infra) Close(l *logrus.Logger) {
	for _, c := range i.closers {
		if err := c.Close(); err != nil {
			l.WithError(err).Warn("closing infrastructure")
		}
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app with config: %s", a.Config)
	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	deps, infraErr := a.initInfra(notifyCtx)
	if infraErr != nil {
		return fmt.Errorf("app run: %s", infraErr.Error())
	}
	defer deps.Close(a.Logger)

	gameClient := gameapi.New(a.Config.GameAPIURL, a.Config.GameAPIKey)
	gateway := gameapi.NewGateway(gameClient, a.Logger)

	services, sErr := service.Factory(service.FactoryArgs{
		UOW:             unitOfWork,
		JWTSecret:       []byte(a.Config.JWTSecret),
		PasswordHasher:  psswd.New(),
		Gateway:         gateway,
		Events:          deps.events,
		Locker:          deps.locker,
		SettingsCache:   deps.cache,
		ImageUploader:   deps.uploader,
		DeliveryTimeout: a.Config.PurchaseTimeout,
		Logger:          a.Logger,
	})
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	router, routerErr := api.New(api.RouterArgs{
		Logger:          a.Logger,
		JWTSecretKey:    []byte(a.Config.JWTSecret),
		UserService:     services.UserService,
		CatalogService:  services.CatalogService,
		SettingsService: services.SettingsService,
		OrderService:    services.OrderService,
		DeliveryService: services.DeliveryService,
		LedgerService:   services.LedgerService,
		GameServer:      gameClient,
		Giver:           gateway,
		PurchaseLimiter: deps.limiter,
		DeliveryTimeout: a.Config.PurchaseTimeout,
		AdminTimeout:    a.Config.AdminTimeout,
		CORSOrigins:     a.Config.CORSOrigins,
	})
	if routerErr != nil {
		return fmt.Errorf("app run: %s", routerErr.Error())
	}

	srv := &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errChan := make(chan error, 1)

	go func() {
		if runErr := srv.ListenAndServe(); runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
			errChan <- runErr
		}
	}()

	if a.Config.SweepInterval > 0 {
		sw := sweeper.New(services.DeliveryService, services.SettingsService, a.Logger).
			SetInterval(a.Config.SweepInterval).
			SetBatchTimeout(a.Config.BatchTimeout).
			SetWorkers(a.Config.SweepWorkers).
			SetMaxAttempts(a.Config.SweepMaxAttempts).
			SetLimitPerIteration(50) //nolint:mnd

		go sw.Run(notifyCtx)
	} else {
		a.Logger.Info("delivery sweeper disabled")
	}

	select {
	case <-notifyCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.WithError(err).Error("http server shutdown")
		}
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

func (a *App) initInfra(ctx context.Context) (*infra, error) {
	deps := &infra{events: events.NopPublisher{}}

	if a.Config.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: a.Config.RedisAddr,
			DB:   a.Config.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		deps.closers = append(deps.closers, rdb)
		deps.locker = rediskit.NewLocker(rdb)
		deps.cache = redisrepo.NewSettingsCache(rdb)
		if a.Config.PurchaseRateLimit > 0 {
			deps.limiter = rediskit.NewRateLimiter(rdb, a.Config.PurchaseRateLimit, a.Config.PurchaseRateWindow)
		}
	} else {
		a.Logger.Warn("redis is not configured, using in-process order locks without settings cache")
		deps.locker = service.NewMemoryLocker()
	}

	if len(a.Config.KafkaBrokers) > 0 {
		publisher := events.NewKafkaPublisher(a.Config.KafkaBrokers, a.Config.KafkaTopic)
		deps.closers = append(deps.closers, publisher)
		deps.events = publisher
	}

	if a.Config.S3Bucket != "" {
		uploader, err := storage.NewS3Uploader(storage.S3Config{
			Bucket:          a.Config.S3Bucket,
			Region:          a.Config.AWSRegion,
			AccessKeyID:     a.Config.AWSAccessKeyID,
			SecretAccessKey: a.Config.AWSSecretAccessKey,
			Endpoint:        a.Config.S3Endpoint,
			PublicBaseURL:   a.Config.S3PublicURL,
		})
		if err != nil {
			deps.Close(a.Logger)
			return nil, fmt.Errorf("s3 uploader: %w", err)
		}
		deps.uploader = uploader
	}

	return deps, nil
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.UserRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewUserRepository(dbtx)
		},
		repoargs.ItemRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewItemRepository(dbtx)
		},
		repoargs.OrderRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewOrderRepository(dbtx)
		},
		repoargs.PointTransactionRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewPointTransactionRepository(dbtx)
		},
		repoargs.SettingsRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewSettingsRepository(dbtx)
		},
	}

	for name, fn := range factories {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), fn); regErr != nil {
			return nil, fmt.Errorf("init UOW: %s", regErr.Error())
		}
	}

	return unitOfWork, nil
}
