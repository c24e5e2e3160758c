package repoargs

import "github.com/fsdevblog/dzstore/internal/domain"

type PointTransactionCreate struct {
	UserID      int64
	Amount      int64
	Type        domain.TransactionType
	Description string
}

type LedgerAggregation struct {
	Balance         int64
	TransactionsSum int64
}
