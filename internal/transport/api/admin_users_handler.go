package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AdminUsersHandler struct {
	ledger LedgerServicer
}

func NewAdminUsersHandler(ledger LedgerServicer) *AdminUsersHandler {
	return &AdminUsersHandler{ledger: ledger}
}

type AdjustPointsParams struct {
	Amount      int64  `binding:"required,ne=0"  json:"amount"`
	Description string `binding:"max_bytes=500" json:"description"`
}

// AdjustPoints POST AdminGroup + AdminUserPointsRoute. A negative amount never takes the balance
// below zero.
func (h *AdminUsersHandler) AdjustPoints(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var params AdjustPointsParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	balance, err := h.ledger.AdjustPoints(ctx, userID, params.Amount, params.Description)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "points": balance})
}

type LedgerReportResponse struct {
	Balance         int64 `json:"balance"`
	TransactionsSum int64 `json:"transactions_sum"`
	Drift           int64 `json:"drift"`
	Consistent      bool  `json:"consistent"`
}

// Ledger GET AdminGroup + AdminUserLedgerRoute. Returns the transactions page and the
// reconciliation of the stored balance against the whole ledger.
func (h *AdminUsersHandler) Ledger(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var page pageQuery
	if !bindQuery(c, &page) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	report, err := h.ledger.Reconcile(ctx, userID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	txs, err := h.ledger.History(ctx, userID, page.limit(), page.Offset)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"report": LedgerReportResponse{
			Balance:         report.Balance,
			TransactionsSum: report.TransactionsSum,
			Drift:           report.Drift,
			Consistent:      report.Consistent(),
		},
		"transactions": newTransactionsResponse(txs),
	})
}
