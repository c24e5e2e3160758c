package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/repository/repoargs"
	"github.com/fsdevblog/dzstore/pkg/rediskit"
	"github.com/fsdevblog/dzstore/pkg/uow"
)

const (
	DefaultDeliveryTimeout = 30 * time.Second
	defaultDeliveryWorkers = 4
	deliveryLockTTL        = 2 * time.Minute
	persistTimeout         = 5 * time.Second
	defaultCancelNote      = "Cancelled by admin"
)

// DeliveryService sends paid line items to the game server and records every outcome. It is the
// only place where delivery state changes.
type DeliveryService struct {
	uow         uow.UOW
	orderRepo   OrderRepository
	userRepo    UserRepository
	catalog     *CatalogService
	ledger      *LedgerService
	gateway     Deliverer
	events      EventPublisher
	locker      OrderLocker
	l           *logrus.Entry
	callTimeout time.Duration
	workers     int
}

func NewDeliveryService(
	u uow.UOW,
	catalog *CatalogService,
	ledger *LedgerService,
	gateway Deliverer,
	events EventPublisher,
	locker OrderLocker,
	l *logrus.Logger,
) (*DeliveryService, error) {
	orderRepo, err := uow.GetRepositoryAs[OrderRepository](u, uow.RepositoryName(repoargs.OrderRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	userRepo, err := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	if locker == nil {
		locker = NewMemoryLocker()
	}
	return &DeliveryService{
		uow:         u,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		catalog:     catalog,
		ledger:      ledger,
		gateway:     gateway,
		events:      events,
		locker:      locker,
		l:           l.WithField("component", "delivery"),
		callTimeout: DefaultDeliveryTimeout,
		workers:     defaultDeliveryWorkers,
	}, nil
}

// SetCallTimeout bounds a single gateway call made on behalf of a user or an admin.
func (d *DeliveryService) SetCallTimeout(timeout time.Duration) *DeliveryService {
	if timeout > 0 {
		d.callTimeout = timeout
	}
	return d
}

// SetWorkers bounds how many line items of one order are delivered concurrently.
func (d *DeliveryService) SetWorkers(workers int) *DeliveryService {
	if workers > 0 {
		d.workers = workers
	}
	return d
}

type RetryOptions struct {
	// CallTimeout overrides the per call timeout. Zero keeps the service default.
	CallTimeout time.Duration
	// MaxAttempts skips line items already tried that many times. Zero means no cap.
	MaxAttempts int
	// SkipUnattempted leaves line items that were never sent alone.
	SkipUnattempted bool
}

type RetryStats struct {
	Order     *domain.Order
	Items     []domain.OrderItem
	Attempted int
	Delivered int
	Failed    int
	Completed bool
}

// RetryOrder re-sends every failed or pending line item of the order, waits for all of them and
// completes the order when nothing is left undelivered. Delivered line items are never sent again.
//
// Errors:
//   - domain.ErrOrderNotFound, domain.ErrOrderNotDeliverable for cancelled or finished orders;
//   - domain.ErrNothingToRetry when no line item qualifies;
//   - domain.ErrDeliveryInProgress when another run holds the order.
//
// Gateway failures are not errors, they are counted in RetryStats. A non-nil error together with
// non-nil stats means some results could not be persisted.
func (d *DeliveryService) RetryOrder(ctx context.Context, orderID int64, opts RetryOptions) (*RetryStats, error) {
	order, err := d.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return d.retry(ctx, order, opts)
}

// DeliverOrder is the player initiated variant of RetryOrder: only the owner may trigger it and
// only for a paid order. It sends the same failed or pending line items as RetryOrder.
func (d *DeliveryService) DeliverOrder(ctx context.Context, userID, orderID int64) (*RetryStats, error) {
	order, err := d.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("delivering order %d: %w", orderID, domain.ErrOrderNotFound)
	}
	if order.Status != domain.OrderStatusPaid {
		return nil, fmt.Errorf("delivering order %d: %w", orderID, domain.ErrOrderNotDeliverable)
	}
	return d.retry(ctx, order, RetryOptions{})
}

func (d *DeliveryService) retry(ctx context.Context, order *domain.Order, opts RetryOptions) (*RetryStats, error) {
	if order.Status != domain.OrderStatusPaid && order.Status != domain.OrderStatusPending {
		return nil, fmt.Errorf("retrying order %s in status %s: %w",
			order.OrderNumber, order.Status, domain.ErrOrderNotDeliverable)
	}
	user, err := d.userRepo.FindByID(ctx, order.UserID)
	if err != nil {
		return nil, fmt.Errorf("retrying order %s: %w", order.OrderNumber, err)
	}
	if !domain.IsValidSteamID(user.SteamID) {
		return nil, fmt.Errorf("retrying order %s: %w", order.OrderNumber, domain.ErrInvalidIdentity)
	}

	release, err := d.lockOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("retrying order %s: %w", order.OrderNumber, err)
	}
	defer release()

	lines, err := d.orderRepo.GetItems(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("retrying order %s: %w", order.OrderNumber, err)
	}
	targets := selectRetryable(lines, opts)
	if len(targets) == 0 {
		return nil, fmt.Errorf("retrying order %s: %w", order.OrderNumber, domain.ErrNothingToRetry)
	}

	timeout := d.callTimeout
	if opts.CallTimeout > 0 {
		timeout = opts.CallTimeout
	}
	results, runErr := d.deliverLines(ctx, user.SteamID, targets, timeout)

	stats := &RetryStats{Order: order, Items: results, Attempted: len(targets)}
	for _, r := range results {
		switch r.DeliveryStatus {
		case domain.DeliveryStatusDelivered:
			stats.Delivered++
		case domain.DeliveryStatusFailed:
			stats.Failed++
		}
	}

	finalOrder, completed, completeErr := d.completeIfDelivered(ctx, order)
	if finalOrder != nil {
		stats.Order = finalOrder
	}
	stats.Completed = completed

	d.l.WithFields(logrus.Fields{
		"order":     order.OrderNumber,
		"attempted": stats.Attempted,
		"delivered": stats.Delivered,
		"failed":    stats.Failed,
		"completed": stats.Completed,
	}).Info("delivery run finished")

	event := domain.NewOrderEvent(domain.OrderEventDelivery, stats.Order)
	event.Delivered, event.Failed = stats.Delivered, stats.Failed
	d.publish(ctx, event)

	if err := errors.Join(runErr, completeErr); err != nil {
		return stats, fmt.Errorf("retrying order %s: %w", order.OrderNumber, err)
	}
	return stats, nil
}

// PurchaseDelivery is the outcome of the single delivery attempt made right after a purchase.
type PurchaseDelivery struct {
	Attempted bool
	Status    domain.DeliveryStatusType
	Message   string
	Item      domain.OrderItem
	Order     *domain.Order
}

// deliverPurchase makes exactly one attempt for a freshly paid line item. It never fails: the
// points are already spent, so every problem is reported through the outcome.
func (d *DeliveryService) deliverPurchase(
	ctx context.Context,
	order *domain.Order,
	line domain.OrderItem,
	steamID string,
) PurchaseDelivery {
	out := PurchaseDelivery{Status: line.DeliveryStatus, Item: line, Order: order}

	release, err := d.lockOrder(ctx, order.ID)
	if err != nil {
		out.Message = "Delivery is queued and will be retried"
		return out
	}
	defer release()

	out.Attempted = true
	updated, err := d.deliverLine(ctx, steamID, line, d.callTimeout)
	if err != nil {
		out.Message = "Delivery result could not be saved, it will be reconciled"
		return out
	}
	out.Item = updated
	out.Status = updated.DeliveryStatus

	if updated.DeliveryStatus != domain.DeliveryStatusDelivered {
		out.Message = "Delivery failed, it will be retried"
		return out
	}
	out.Message = "Item delivered to the game server"
	if finalOrder, _, completeErr := d.completeIfDelivered(ctx, order); completeErr == nil && finalOrder != nil {
		out.Order = finalOrder
	}
	return out
}

func (d *DeliveryService) deliverLines(
	ctx context.Context,
	steamID string,
	lines []domain.OrderItem,
	timeout time.Duration,
) ([]domain.OrderItem, error) {
	results := make([]domain.OrderItem, len(lines))
	errs := make([]error, len(lines))

	// no shared context: one failed line item must not cancel its siblings.
	var g errgroup.Group
	g.SetLimit(d.workers)
	for i, line := range lines {
		g.Go(func() error {
			results[i], errs[i] = d.deliverLine(ctx, steamID, line, timeout)
			return nil
		})
	}
	_ = g.Wait()
	return results, errors.Join(errs...)
}

// deliverLine performs one gateway call and persists its outcome with a bumped attempt counter.
func (d *DeliveryService) deliverLine(
	ctx context.Context,
	steamID string,
	line domain.OrderItem,
	timeout time.Duration,
) (domain.OrderItem, error) {
	result := d.callGateway(ctx, steamID, line, timeout)

	// the result must be stored even if the caller went away in the meantime.
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	updated, err := d.orderRepo.RecordDeliveryAttempt(persistCtx, repoargs.DeliveryAttempt{
		OrderItemID: line.ID,
		Status:      result.Status(),
		Data:        result.Payload,
	})
	fields := logrus.Fields{
		"order_id":      line.OrderID,
		"order_item_id": line.ID,
		"status":        result.Status(),
	}
	if err != nil {
		d.l.WithError(err).WithFields(fields).Error("persisting delivery result")
		return line, fmt.Errorf("persisting delivery of line item %d: %w", line.ID, err)
	}
	if result.Delivered {
		d.l.WithFields(fields).Info("line item delivered")
	} else {
		d.l.WithFields(fields).WithField("reason", result.Reason).Warn("line item delivery failed")
	}
	return *updated, nil
}

func (d *DeliveryService) callGateway(
	ctx context.Context,
	steamID string,
	line domain.OrderItem,
	timeout time.Duration,
) domain.DeliveryResult {
	item, err := d.catalog.GetItem(ctx, line.ItemID)
	if err != nil {
		return domain.DeliveryFailed("item lookup failed: "+err.Error(), nil)
	}
	req := domain.DeliveryRequest{
		SteamID:     steamID,
		Classname:   item.Classname,
		Quantity:    line.Quantity,
		Attachments: item.Attachments,
	}
	if validateErr := req.Validate(); validateErr != nil {
		return domain.DeliveryFailed(validateErr.Error(), nil)
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	result, err := d.gateway.Deliver(callCtx, req)
	if err != nil {
		return domain.DeliveryFailed(err.Error(), nil)
	}
	return result
}

// completeIfDelivered moves the order to completed once every line item that is not cancelled
// has been delivered. The returned bool reports whether the order is completed afterwards.
func (d *DeliveryService) completeIfDelivered(ctx context.Context, order *domain.Order) (*domain.Order, bool, error) {
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	lines, err := d.orderRepo.GetItems(persistCtx, order.ID)
	if err != nil {
		return order, false, fmt.Errorf("checking completion of order %s: %w", order.OrderNumber, err)
	}
	if !allDelivered(lines) {
		return order, false, nil
	}

	updated, err := d.orderRepo.UpdateStatus(persistCtx, repoargs.OrderStatusUpdate{
		OrderID: order.ID,
		Status:  domain.OrderStatusCompleted,
		From:    []domain.OrderStatusType{domain.OrderStatusPaid, domain.OrderStatusPending},
	})
	if errors.Is(err, domain.ErrRecordNotFound) {
		// someone else moved the order first.
		current, findErr := d.orderRepo.FindByID(persistCtx, order.ID)
		if findErr != nil {
			return order, false, fmt.Errorf("completing order %s: %w", order.OrderNumber, findErr)
		}
		return current, current.Status == domain.OrderStatusCompleted, nil
	}
	if err != nil {
		return order, false, fmt.Errorf("completing order %s: %w", order.OrderNumber, err)
	}

	d.l.WithField("order", updated.OrderNumber).Info("order completed")
	d.publish(ctx, domain.NewOrderEvent(domain.OrderEventCompleted, updated))
	return updated, true, nil
}

type CancelOrderArgs struct {
	OrderID      int64
	Reason       string
	RefundPoints bool
}

type CancelResult struct {
	Order    *domain.Order
	Refunded int64
}

// CancelOrder cancels a pending or paid order and its undelivered line items. Delivered line items
// stay as they are. With RefundPoints the whole order total is credited back as a refund.
func (d *DeliveryService) CancelOrder(ctx context.Context, args CancelOrderArgs) (*CancelResult, error) {
	release, err := d.lockOrder(ctx, args.OrderID)
	if err != nil {
		return nil, fmt.Errorf("cancelling order %d: %w", args.OrderID, err)
	}
	defer release()

	notes := args.Reason
	if notes == "" {
		notes = defaultCancelNote
	}

	var res CancelResult
	txErr := d.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, repoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		order, findErr := orderRepo.FindByID(c, args.OrderID)
		if findErr != nil {
			if errors.Is(findErr, domain.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return findErr //nolint:wrapcheck
		}

		cancelled, updErr := orderRepo.UpdateStatus(c, repoargs.OrderStatusUpdate{
			OrderID: order.ID,
			Status:  domain.OrderStatusCancelled,
			From:    []domain.OrderStatusType{domain.OrderStatusPending, domain.OrderStatusPaid},
			Notes:   &notes,
		})
		if errors.Is(updErr, domain.ErrRecordNotFound) {
			if order.Status == domain.OrderStatusCancelled {
				return domain.ErrAlreadyCancelled
			}
			return domain.ErrOrderNotCancellable
		}
		if updErr != nil {
			return updErr //nolint:wrapcheck
		}
		if cancelErr := orderRepo.CancelOpenItems(c, order.ID); cancelErr != nil {
			return cancelErr //nolint:wrapcheck
		}

		if args.RefundPoints && order.TotalAmount > 0 {
			if _, creditErr := d.ledger.CreditInTx(c, tx, LedgerEntryArgs{
				UserID:      order.UserID,
				Amount:      order.TotalAmount,
				Type:        domain.TransactionTypeRefund,
				Description: fmt.Sprintf("Refund for cancelled order %s", order.OrderNumber),
			}); creditErr != nil {
				return creditErr
			}
			res.Refunded = order.TotalAmount
		}
		res.Order = cancelled
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("cancelling order %d: %w", args.OrderID, txErr)
	}

	d.l.WithFields(logrus.Fields{
		"order":    res.Order.OrderNumber,
		"refunded": res.Refunded,
	}).Info("order cancelled")
	d.publish(ctx, domain.NewOrderEvent(domain.OrderEventCancelled, res.Order))
	return &res, nil
}

type RedeliveryArgs struct {
	Limit              uint
	MaxAttempts        int
	IncludeUnattempted bool
}

// OrdersForRedelivery returns ids of paid orders that still have undelivered line items under the
// attempt cap.
func (d *DeliveryService) OrdersForRedelivery(ctx context.Context, args RedeliveryArgs) ([]int64, error) {
	ids, err := d.orderRepo.GetForRedelivery(ctx, repoargs.RedeliveryFilter{
		MaxAttempts:        args.MaxAttempts,
		IncludeUnattempted: args.IncludeUnattempted,
		Limit:              args.Limit,
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return ids, nil
}

// LocalHistory lists delivery records from the database. It backs the admin history view when the
// game server is unreachable.
func (d *DeliveryService) LocalHistory(
	ctx context.Context,
	filter repoargs.DeliveryFilter,
) ([]repoargs.DeliveryRecord, error) {
	res, err := d.orderRepo.ListDeliveries(ctx, filter)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return res, nil
}

func (d *DeliveryService) findOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := d.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("finding order %d: %w", orderID, domain.ErrOrderNotFound)
		}
		return nil, fmt.Errorf("finding order %d: %w", orderID, err)
	}
	return order, nil
}

func (d *DeliveryService) lockOrder(ctx context.Context, orderID int64) (func(), error) {
	release, ok, err := d.locker.TryAcquire(ctx, rediskit.OrderDeliveryLockKey(orderID), deliveryLockTTL)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	if !ok {
		return nil, domain.ErrDeliveryInProgress
	}
	return release, nil
}

func (d *DeliveryService) publish(ctx context.Context, event domain.OrderEvent) {
	if d.events == nil {
		return
	}
	if err := d.events.Publish(context.WithoutCancel(ctx), event); err != nil {
		d.l.WithError(err).WithField("event", event.Type).Warn("publishing order event")
	}
}

func selectRetryable(lines []domain.OrderItem, opts RetryOptions) []domain.OrderItem {
	res := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		if !line.DeliveryStatus.IsRetryable() {
			continue
		}
		if opts.SkipUnattempted && line.DeliveryAttempts == 0 {
			continue
		}
		if opts.MaxAttempts > 0 && line.DeliveryAttempts >= opts.MaxAttempts {
			continue
		}
		res = append(res, line)
	}
	return res
}

func allDelivered(lines []domain.OrderItem) bool {
	delivered := 0
	for _, line := range lines {
		switch line.DeliveryStatus {
		case domain.DeliveryStatusDelivered:
			delivered++
		case domain.DeliveryStatusCancelled:
		default:
			return false
		}
	}
	return delivered > 0
}
