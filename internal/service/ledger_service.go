package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/repository/repoargs"
	"github.com/fsdevblog/dzstore/pkg/uow"
)

// LedgerService owns every change of a user points balance. Each change is applied together with
// a point_transactions row in the same transaction, so the balance always equals the sum of the
// user ledger.
type LedgerService struct {
	uow      uow.UOW
	userRepo UserRepository
	txRepo   PointTransactionRepository
}

func NewLedgerService(u uow.UOW) (*LedgerService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr //nolint:wrapcheck
	}
	txRepo, txRepoErr := uow.GetRepositoryAs[PointTransactionRepository](
		u,
		uow.RepositoryName(repoargs.PointTransactionRepoName),
	)
	if txRepoErr != nil {
		return nil, txRepoErr //nolint:wrapcheck
	}
	return &LedgerService{
		uow:      u,
		userRepo: userRepo,
		txRepo:   txRepo,
	}, nil
}

// LedgerEntryArgs describes one balance change. Amount is always positive, the direction comes
// from the operation.
type LedgerEntryArgs struct {
	UserID      int64
	Amount      int64
	Type        domain.TransactionType
	Description string
}

// DebitInTx removes points inside an already open transaction and returns the new balance.
// Fails with domain.ErrInsufficientFunds without touching anything when the balance is too low.
func (l *LedgerService) DebitInTx(ctx context.Context, tx uow.TX, args LedgerEntryArgs) (int64, error) {
	if args.Amount <= 0 {
		return 0, fmt.Errorf("debit %d points: %w", args.Amount, domain.ErrInvalidAmount)
	}
	return l.applyInTx(ctx, tx, args.UserID, -args.Amount, args.Type, args.Description)
}

// CreditInTx adds points inside an already open transaction and returns the new balance.
func (l *LedgerService) CreditInTx(ctx context.Context, tx uow.TX, args LedgerEntryArgs) (int64, error) {
	if args.Amount <= 0 {
		return 0, fmt.Errorf("credit %d points: %w", args.Amount, domain.ErrInvalidAmount)
	}
	return l.applyInTx(ctx, tx, args.UserID, args.Amount, args.Type, args.Description)
}

func (l *LedgerService) Debit(ctx context.Context, args LedgerEntryArgs) (int64, error) {
	var balance int64
	err := l.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		var debitErr error
		balance, debitErr = l.DebitInTx(c, tx, args)
		return debitErr
	})
	if err != nil {
		return 0, err //nolint:wrapcheck
	}
	return balance, nil
}

func (l *LedgerService) Credit(ctx context.Context, args LedgerEntryArgs) (int64, error) {
	var balance int64
	err := l.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		var creditErr error
		balance, creditErr = l.CreditInTx(c, tx, args)
		return creditErr
	})
	if err != nil {
		return 0, err //nolint:wrapcheck
	}
	return balance, nil
}

// AdjustPoints applies a signed manual correction recorded as admin_adjust.
func (l *LedgerService) AdjustPoints(ctx context.Context, userID, delta int64, description string) (int64, error) {
	if description == "" {
		description = "Admin adjustment"
	}
	args := LedgerEntryArgs{UserID: userID, Type: domain.TransactionTypeAdminAdjust, Description: description}
	switch {
	case delta > 0:
		args.Amount = delta
		return l.Credit(ctx, args)
	case delta < 0:
		args.Amount = -delta
		return l.Debit(ctx, args)
	default:
		return 0, fmt.Errorf("adjusting points of user %d: %w", userID, domain.ErrInvalidAmount)
	}
}

func (l *LedgerService) applyInTx(
	ctx context.Context,
	tx uow.TX,
	userID, delta int64,
	tType domain.TransactionType,
	description string,
) (int64, error) {
	userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return 0, userRepoErr //nolint:wrapcheck
	}
	txRepo, txRepoErr := uow.GetAs[PointTransactionRepository](
		tx,
		uow.RepositoryName(repoargs.PointTransactionRepoName),
	)
	if txRepoErr != nil {
		return 0, txRepoErr //nolint:wrapcheck
	}

	balance, err := userRepo.AddPoints(ctx, userID, delta)
	if err != nil {
		return 0, fmt.Errorf("applying %d points to user %d: %w", delta, userID, err)
	}
	if _, createErr := txRepo.Create(ctx, repoargs.PointTransactionCreate{
		UserID:      userID,
		Amount:      delta,
		Type:        tType,
		Description: description,
	}); createErr != nil {
		return 0, fmt.Errorf("recording %s of user %d: %w", tType, userID, createErr)
	}
	return balance, nil
}

func (l *LedgerService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	user, err := l.userRepo.FindByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("getting balance of user %d: %w", userID, err)
	}
	return user.Points, nil
}

// History returns the user ledger, newest first.
func (l *LedgerService) History(ctx context.Context, userID int64, limit, offset uint) ([]domain.PointTransaction, error) {
	res, err := l.txRepo.GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return res, nil
}

type LedgerReport struct {
	UserID          int64
	Balance         int64
	TransactionsSum int64
	Drift           int64
}

// Consistent reports whether the stored balance matches the ledger.
func (r LedgerReport) Consistent() bool {
	return r.Drift == 0
}

// Reconcile compares the stored balance with the sum of the user ledger.
func (l *LedgerService) Reconcile(ctx context.Context, userID int64) (*LedgerReport, error) {
	agg, err := l.txRepo.Aggregate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reconciling ledger of user %d: %w", userID, err)
	}
	return &LedgerReport{
		UserID:          userID,
		Balance:         agg.Balance,
		TransactionsSum: agg.TransactionsSum,
		Drift:           agg.Balance - agg.TransactionsSum,
	}, nil
}
