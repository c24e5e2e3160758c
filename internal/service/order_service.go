package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/repository/repoargs"
	"github.com/fsdevblog/dzstore/pkg/uow"
)

const (
	MaxPurchaseQuantity = 100
	orderNumberAttempts = 3
)

// OrderService turns a purchase request into a paid order and hands it over for delivery.
type OrderService struct {
	uow       uow.UOW
	orderRepo OrderRepository
	userRepo  UserRepository
	ledger    *LedgerService
	catalog   *CatalogService
	delivery  *DeliveryService
	events    EventPublisher
	l         *logrus.Entry
}

func NewOrderService(
	u uow.UOW,
	ledger *LedgerService,
	catalog *CatalogService,
	delivery *DeliveryService,
	events EventPublisher,
	l *logrus.Logger,
) (*OrderService, error) {
	orderRepo, err := uow.GetRepositoryAs[OrderRepository](u, uow.RepositoryName(repoargs.OrderRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	userRepo, err := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &OrderService{
		uow:       u,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		ledger:    ledger,
		catalog:   catalog,
		delivery:  delivery,
		events:    events,
		l:         l.WithField("component", "orders"),
	}, nil
}

type PurchaseArgs struct {
	UserID   int64
	ItemID   int64
	Quantity int64
}

type PurchaseResult struct {
	Order      *domain.Order
	Item       domain.OrderItem
	ItemName   string
	NewBalance int64
	Delivery   PurchaseDelivery
}

// Purchase buys Quantity units of an item with points. The debit, the stock reservation, the order
// and its line item are written in one transaction, so a failed purchase leaves no trace.
// settings is the snapshot taken for this request.
//
// Validation happens in this order: store enabled, quantity, item active, stock, account state,
// steam id, balance. Once the transaction is committed Purchase does not fail anymore: when auto
// delivery is on, exactly one delivery attempt is made and its outcome is reported in
// PurchaseResult.Delivery.
func (o *OrderService) Purchase(
	ctx context.Context,
	args PurchaseArgs,
	settings domain.StoreSettings,
) (*PurchaseResult, error) {
	if !settings.StoreEnabled {
		return nil, domain.ErrStoreDisabled
	}
	if args.Quantity < 1 || args.Quantity > MaxPurchaseQuantity {
		return nil, fmt.Errorf("purchase of %d units: %w", args.Quantity, domain.ErrInvalidQuantity)
	}

	item, err := o.catalog.GetActiveItem(ctx, args.ItemID)
	if err != nil {
		return nil, fmt.Errorf("purchase: %w", err)
	}
	if !item.HasStock(args.Quantity) {
		return nil, fmt.Errorf("purchase of item %d: %w", item.ID, domain.ErrInsufficientStock)
	}

	user, err := o.userRepo.FindByID(ctx, args.UserID)
	if err != nil {
		return nil, fmt.Errorf("purchase: %w", err)
	}
	if user.IsRestricted() {
		return nil, fmt.Errorf("purchase by user %d: %w", user.ID, domain.ErrAccountRestricted)
	}
	if !domain.IsValidSteamID(user.SteamID) {
		return nil, fmt.Errorf("purchase by user %d: %w", user.ID, domain.ErrInvalidIdentity)
	}

	if item.Price > math.MaxInt64/args.Quantity {
		return nil, fmt.Errorf("purchase of item %d: %w", item.ID, domain.ErrInvalidAmount)
	}
	total := item.Price * args.Quantity
	if user.Points < total {
		return nil, fmt.Errorf("purchase of %d points by user %d: %w", total, user.ID, domain.ErrInsufficientFunds)
	}

	order, line, balance, err := o.createPaidOrder(ctx, user.ID, item, args.Quantity, total)
	if err != nil {
		return nil, fmt.Errorf("purchase: %w", err)
	}

	o.l.WithFields(logrus.Fields{
		"order":    order.OrderNumber,
		"user_id":  user.ID,
		"item_id":  item.ID,
		"quantity": args.Quantity,
		"total":    total,
	}).Info("order paid")
	o.publish(ctx, domain.NewOrderEvent(domain.OrderEventPurchased, order))

	res := &PurchaseResult{
		Order:      order,
		Item:       *line,
		ItemName:   item.Name,
		NewBalance: balance,
		Delivery: PurchaseDelivery{
			Status:  domain.DeliveryStatusPending,
			Message: "Pending manual delivery",
			Item:    *line,
			Order:   order,
		},
	}
	if !settings.AutoDelivery {
		return res, nil
	}

	res.Delivery = o.delivery.deliverPurchase(ctx, order, *line, user.SteamID)
	res.Order = res.Delivery.Order
	res.Item = res.Delivery.Item
	return res, nil
}

func (o *OrderService) createPaidOrder(
	ctx context.Context,
	userID int64,
	item *domain.Item,
	qty, total int64,
) (*domain.Order, *domain.OrderItem, int64, error) {
	var (
		order   *domain.Order
		line    *domain.OrderItem
		balance int64
		err     error
	)
	// a colliding order number aborts the whole transaction, so the retry wraps it.
	for range orderNumberAttempts {
		number := NewOrderNumber(time.Now())
		err = o.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
			var txErr error
			balance, txErr = o.ledger.DebitInTx(c, tx, LedgerEntryArgs{
				UserID:      userID,
				Amount:      total,
				Type:        domain.TransactionTypePurchase,
				Description: fmt.Sprintf("Order %s: %dx %s", number, qty, item.Name),
			})
			if txErr != nil {
				return txErr
			}
			if txErr = o.catalog.ReserveStockInTx(c, tx, item, qty); txErr != nil {
				return txErr
			}

			orderRepo, repoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
			if repoErr != nil {
				return repoErr //nolint:wrapcheck
			}
			order, txErr = orderRepo.Create(c, repoargs.OrderCreate{
				OrderNumber:   number,
				UserID:        userID,
				TotalAmount:   total,
				Status:        domain.OrderStatusPaid,
				PaymentMethod: domain.PaymentMethodPoints,
			})
			if txErr != nil {
				return txErr //nolint:wrapcheck
			}
			line, txErr = orderRepo.CreateItem(c, repoargs.OrderItemCreate{
				OrderID:    order.ID,
				ItemID:     item.ID,
				Quantity:   qty,
				UnitPrice:  item.Price,
				TotalPrice: total,
			})
			return txErr //nolint:wrapcheck
		})
		if !errors.Is(err, domain.ErrDuplicateKey) {
			break
		}
	}
	if err != nil {
		return nil, nil, 0, err
	}
	return order, line, balance, nil
}

type OrderDetails struct {
	Order domain.Order
	Items []domain.OrderItem
}

// ListUserOrders returns the orders of one user with their line items, newest first.
func (o *OrderService) ListUserOrders(ctx context.Context, userID int64, limit, offset uint) ([]OrderDetails, error) {
	orders, err := o.orderRepo.List(ctx, repoargs.OrderFilter{UserID: &userID, Limit: limit, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("listing orders of user %d: %w", userID, err)
	}
	return o.withItems(ctx, orders)
}

type OrderListArgs struct {
	UserID *int64
	Status *domain.OrderStatusType
	Limit  uint
	Offset uint
}

func (o *OrderService) ListOrders(ctx context.Context, args OrderListArgs) ([]OrderDetails, error) {
	orders, err := o.orderRepo.List(ctx, repoargs.OrderFilter{
		UserID: args.UserID,
		Status: args.Status,
		Limit:  args.Limit,
		Offset: args.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return o.withItems(ctx, orders)
}

func (o *OrderService) GetOrder(ctx context.Context, orderID int64) (*OrderDetails, error) {
	order, err := o.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("getting order %d: %w", orderID, domain.ErrOrderNotFound)
		}
		return nil, fmt.Errorf("getting order %d: %w", orderID, err)
	}
	res, err := o.withItems(ctx, []domain.Order{*order})
	if err != nil {
		return nil, err
	}
	return &res[0], nil
}

func (o *OrderService) Stats(ctx context.Context) ([]repoargs.OrderStatusCount, error) {
	stats, err := o.orderRepo.Stats(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return stats, nil
}

func (o *OrderService) UpdateNotes(ctx context.Context, orderID int64, notes string) (*domain.Order, error) {
	order, err := o.orderRepo.UpdateNotes(ctx, orderID, notes)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("updating notes of order %d: %w", orderID, domain.ErrOrderNotFound)
		}
		return nil, fmt.Errorf("updating notes of order %d: %w", orderID, err)
	}
	return order, nil
}

func (o *OrderService) withItems(ctx context.Context, orders []domain.Order) ([]OrderDetails, error) {
	res := make([]OrderDetails, len(orders))
	for i, order := range orders {
		items, err := o.orderRepo.GetItems(ctx, order.ID)
		if err != nil {
			return nil, fmt.Errorf("loading line items of order %s: %w", order.OrderNumber, err)
		}
		res[i] = OrderDetails{Order: order, Items: items}
	}
	return res, nil
}

func (o *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if o.events == nil {
		return
	}
	if err := o.events.Publish(context.WithoutCancel(ctx), event); err != nil {
		o.l.WithError(err).WithField("event", event.Type).Warn("publishing order event")
	}
}
