package pgrepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/repository/repoargs"
	"github.com/fsdevblog/dzstore/pkg/uow"
)

const pointTransactionColumns = `id, created_at, user_id, amount, type, description`

type PointTransactionRepository struct {
	conn uow.DBTX
}

func NewPointTransactionRepository(conn uow.DBTX) *PointTransactionRepository {
	return &PointTransactionRepository{conn: conn}
}

func (p *PointTransactionRepository) Create(
	ctx context.Context,
	transaction repoargs.PointTransactionCreate,
) (*domain.PointTransaction, error) {
	row := p.conn.QueryRow(ctx,
		`INSERT INTO point_transactions (user_id, amount, type, description)
		VALUES ($1, $2, $3, $4)
		RETURNING `+pointTransactionColumns,
		transaction.UserID, transaction.Amount, string(transaction.Type), transaction.Description,
	)
	t, err := scanPointTransaction(row)
	if err != nil {
		return nil, convertErr(err, "creating point transaction for user %d", transaction.UserID)
	}
	return t, nil
}

// GetByUserID returns the user ledger, newest first.
func (p *PointTransactionRepository) GetByUserID(
	ctx context.Context,
	userID int64,
	limit, offset uint,
) ([]domain.PointTransaction, error) {
	l, o := pageArgs(limit, offset)
	rows, err := p.conn.Query(ctx,
		`SELECT `+pointTransactionColumns+` FROM point_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		userID, l, o,
	)
	if err != nil {
		return nil, convertErr(err, "getting point transactions of user %d", userID)
	}
	res, collectErr := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PointTransaction, error) {
		t, scanErr := scanPointTransaction(row)
		if scanErr != nil {
			return domain.PointTransaction{}, scanErr
		}
		return *t, nil
	})
	if collectErr != nil {
		return nil, convertErr(collectErr, "scanning point transactions of user %d", userID)
	}
	return res, nil
}

// Aggregate returns the stored balance next to the sum of the user ledger.
func (p *PointTransactionRepository) Aggregate(ctx context.Context, userID int64) (*repoargs.LedgerAggregation, error) {
	var agg repoargs.LedgerAggregation
	err := p.conn.QueryRow(ctx,
		`SELECT u.points, COALESCE((SELECT SUM(t.amount) FROM point_transactions t WHERE t.user_id = u.id), 0)
		FROM users u WHERE u.id = $1`,
		userID,
	).Scan(&agg.Balance, &agg.TransactionsSum)
	if err != nil {
		return nil, convertErr(err, "aggregating ledger of user %d", userID)
	}
	return &agg, nil
}

func scanPointTransaction(row pgx.Row) (*domain.PointTransaction, error) {
	var t domain.PointTransaction
	var tType string
	if err := row.Scan(&t.ID, &t.CreatedAt, &t.UserID, &t.Amount, &tType, &t.Description); err != nil {
		return nil, fmt.Errorf("scan point transaction: %w", err)
	}
	t.Type = domain.TransactionType(tType)
	return &t, nil
}
