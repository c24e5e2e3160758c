// Package sweeper retries delivery of paid orders whose line items are still pending or failed.
package sweeper

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/service"
)

var ErrNoOrders = errors.New("no orders")

const (
	defaultServiceTimeout         = 5 * time.Second
	defaultBatchTimeout           = 60 * time.Second
	defaultLimitPerIteration uint = 50
	defaultWorkers           uint = 4
	defaultMaxAttempts            = 5
	defaultInterval               = time.Minute
)

// Sweeper periodically re-runs the delivery workflow for stuck orders.
type Sweeper struct {
	svs               Redeliverer
	settings          SettingsProvider
	l                 *logrus.Entry
	interval          time.Duration
	batchTimeout      time.Duration
	limitPerIteration uint
	workers           uint
	maxAttempts       int
}

func New(svs Redeliverer, settings SettingsProvider, l *logrus.Logger) *Sweeper {
	return &Sweeper{
		svs:      svs,
		settings: settings,
		l: l.WithFields(logrus.Fields{
			"component": "delivery",
			"module":    "sweeper",
		}),
		interval:          defaultInterval,
		batchTimeout:      defaultBatchTimeout,
		limitPerIteration: defaultLimitPerIteration,
		workers:           defaultWorkers,
		maxAttempts:       defaultMaxAttempts,
	}
}

func (s *Sweeper) SetInterval(interval time.Duration) *Sweeper {
	if interval > 0 {
		s.interval = interval
	}
	return s
}

// SetBatchTimeout bounds each gateway call made by the sweeper.
func (s *Sweeper) SetBatchTimeout(timeout time.Duration) *Sweeper {
	if timeout > 0 {
		s.batchTimeout = timeout
	}
	return s
}

func (s *Sweeper) SetLimitPerIteration(limit uint) *Sweeper {
	if limit > 0 {
		s.limitPerIteration = limit
	}
	return s
}

func (s *Sweeper) SetWorkers(workers uint) *Sweeper {
	if workers > 0 {
		s.workers = workers
	}
	return s
}

// SetMaxAttempts sets the attempt counter at which a line item is left for manual retry.
func (s *Sweeper) SetMaxAttempts(attempts int) *Sweeper {
	if attempts > 0 {
		s.maxAttempts = attempts
	}
	return s
}

// Run sweeps once per interval until ctx is cancelled. A random jitter of up to a tenth of the
// interval keeps several instances from hitting the game server at the same moment.
func (s *Sweeper) Run(ctx context.Context) {
	s.l.WithFields(logrus.Fields{
		"interval":          s.interval,
		"limitPerIteration": s.limitPerIteration,
		"workers":           s.workers,
		"maxAttempts":       s.maxAttempts,
	}).Info("Starting")

	for {
		jitter := time.Duration(rand.Int64N(int64(s.interval)/10 + 1)) // nolint:gosec
		timer := time.NewTimer(s.interval + jitter)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.l.Info("Got stop signal, exiting...")
			return
		case <-timer.C:
			summary, err := s.process(ctx)
			switch {
			case errors.Is(err, ErrNoOrders):
			case err != nil:
				s.l.WithError(err).Error("sweep failed")
			default:
				s.l.WithFields(logrus.Fields{
					"orders":    summary.Orders,
					"delivered": summary.Delivered,
					"failed":    summary.Failed,
					"completed": summary.Completed,
					"skipped":   summary.Skipped,
					"errors":    summary.Errors,
				}).Info("sweep finished")
			}
		}
	}
}

type Summary struct {
	Orders    int
	Delivered int
	Failed    int
	Completed int
	Skipped   int
	Errors    int
}

// process runs one sweep. Line items never attempted are only picked up while auto delivery is on,
// otherwise they wait for a manual delivery.
func (s *Sweeper) process(ctx context.Context) (Summary, error) {
	orderIDs, opts, err := s.produce(ctx)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	for _, result := range s.runWorkers(ctx, orderIDs, opts) {
		summary.Orders++
		switch {
		case result.err == nil:
			summary.Delivered += result.stats.Delivered
			summary.Failed += result.stats.Failed
			if result.stats.Completed {
				summary.Completed++
			}
		case isSkippable(result.err):
			summary.Skipped++
		default:
			summary.Errors++
		}
	}
	return summary, nil
}

// produce selects the orders of one sweep and the retry options every worker applies to them.
func (s *Sweeper) produce(ctx context.Context) ([]int64, service.RetryOptions, error) {
	produceCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
	defer cancel()

	settings, err := s.settings.Snapshot(produceCtx)
	if err != nil {
		return nil, service.RetryOptions{}, fmt.Errorf("produce: %w", err)
	}
	opts := service.RetryOptions{
		CallTimeout:     s.batchTimeout,
		MaxAttempts:     s.maxAttempts,
		SkipUnattempted: !settings.AutoDelivery,
	}
	orderIDs, err := s.svs.OrdersForRedelivery(produceCtx, service.RedeliveryArgs{
		Limit:              s.limitPerIteration,
		MaxAttempts:        s.maxAttempts,
		IncludeUnattempted: settings.AutoDelivery,
	})
	if err != nil {
		return nil, opts, fmt.Errorf("produce: %w", err)
	}
	if len(orderIDs) == 0 {
		return nil, opts, ErrNoOrders
	}
	return orderIDs, opts, nil
}

type workerResult struct {
	workerID uint
	orderID  int64
	stats    *service.RetryStats
	err      error
}

// runWorkers fans the orders out to a fixed number of workers and waits for all of them.
func (s *Sweeper) runWorkers(ctx context.Context, orderIDs []int64, opts service.RetryOptions) []workerResult {
	taskCh := make(chan int64, len(orderIDs))
	for _, id := range orderIDs {
		taskCh <- id
	}
	close(taskCh)

	resultCh := make(chan workerResult, len(orderIDs))
	wg := new(sync.WaitGroup)
	for i := range s.workers {
		wg.Add(1)
		go s.worker(ctx, wg, i+1, opts, taskCh, resultCh)
	}
	wg.Wait()
	close(resultCh)

	results := make([]workerResult, 0, len(orderIDs))
	for result := range resultCh {
		l := s.l.WithFields(logrus.Fields{
			"worker":  result.workerID,
			"orderID": result.orderID,
		})
		switch {
		case result.err == nil:
			l.WithFields(logrus.Fields{
				"delivered": result.stats.Delivered,
				"failed":    result.stats.Failed,
			}).Debug("order swept")
		case isSkippable(result.err):
			l.WithError(result.err).Debug("order skipped")
		default:
			l.WithError(result.err).Error("sweep order")
		}
		results = append(results, result)
	}
	return results
}

func (s *Sweeper) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	workerID uint,
	opts service.RetryOptions,
	taskCh <-chan int64,
	resultCh chan<- workerResult,
) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case orderID, ok := <-taskCh:
			if !ok {
				return
			}
			stats, err := s.svs.RetryOrder(ctx, orderID, opts)
			if err != nil && stats != nil {
				// results were delivered but not all of them could be stored.
				err = fmt.Errorf("order %d partially persisted: %w", orderID, err)
			}
			resultCh <- workerResult{workerID: workerID, orderID: orderID, stats: stats, err: err}
		}
	}
}

// isSkippable reports errors caused by another actor changing the order since it was selected.
func isSkippable(err error) bool {
	return errors.Is(err, domain.ErrNothingToRetry) ||
		errors.Is(err, domain.ErrDeliveryInProgress) ||
		errors.Is(err, domain.ErrOrderNotDeliverable)
}
