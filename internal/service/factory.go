package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/dzstore/pkg/uow"
)

type AppServices struct {
	UserService     *UserService
	LedgerService   *LedgerService
	CatalogService  *CatalogService
	SettingsService *SettingsService
	DeliveryService *DeliveryService
	OrderService    *OrderService
}

type FactoryArgs struct {
	UOW             uow.UOW
	JWTSecret       []byte
	PasswordHasher  PasswordHasher
	Gateway         Deliverer
	Events          EventPublisher
	Locker          OrderLocker
	SettingsCache   SettingsCache
	ImageUploader   ImageUploader
	DeliveryTimeout time.Duration
	Logger          *logrus.Logger
}

func Factory(args FactoryArgs) (*AppServices, error) {
	userService, err := NewUserService(args.UOW, args.JWTSecret, args.PasswordHasher)
	if err != nil {
		return nil, fmt.Errorf("service factory: %s", err.Error())
	}

	ledgerService, err := NewLedgerService(args.UOW)
	if err != nil {
		return nil, fmt.Errorf("service factory: %s", err.Error())
	}

	catalogService, err := NewCatalogService(args.UOW, args.ImageUploader)
	if err != nil {
		return nil, fmt.Errorf("service factory: %s", err.Error())
	}

	settingsService, err := NewSettingsService(args.UOW, args.SettingsCache, args.Logger)
	if err != nil {
		return nil, fmt.Errorf("service factory: %s", err.Error())
	}

	deliveryService, err := NewDeliveryService(
		args.UOW,
		catalogService,
		ledgerService,
		args.Gateway,
		args.Events,
		args.Locker,
		args.Logger,
	)
	if err != nil {
		return nil, fmt.Errorf("service factory: %s", err.Error())
	}
	deliveryService.SetCallTimeout(args.DeliveryTimeout)

	orderService, err := NewOrderService(
		args.UOW,
		ledgerService,
		catalogService,
		deliveryService,
		args.Events,
		args.Logger,
	)
	if err != nil {
		return nil, fmt.Errorf("service factory: %s", err.Error())
	}

	return &AppServices{
		UserService:     userService,
		LedgerService:   ledgerService,
		CatalogService:  catalogService,
		SettingsService: settingsService,
		DeliveryService: deliveryService,
		OrderService:    orderService,
	}, nil
}
