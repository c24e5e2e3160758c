package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves the order history, manual delivery and ledger of the current user.
type AccountHandler struct {
	orders          OrderServicer
	delivery        DeliveryServicer
	ledger          LedgerServicer
	deliveryTimeout time.Duration
}

func NewAccountHandler(
	orders OrderServicer,
	delivery DeliveryServicer,
	ledger LedgerServicer,
	deliveryTimeout time.Duration,
) *AccountHandler {
	return &AccountHandler{
		orders:          orders,
		delivery:        delivery,
		ledger:          ledger,
		deliveryTimeout: deliveryTimeout,
	}
}

// Orders GET RouteGroup + UserOrdersRoute.
func (h *AccountHandler) Orders(c *gin.Context) {
	var page pageQuery
	if !bindQuery(c, &page) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	orders, err := h.orders.ListUserOrders(ctx, getUserIDFromContext(c), page.limit(), page.Offset)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": newOrdersResponse(orders)})
}

// Deliver POST RouteGroup + UserOrderDeliverRoute. Sends the failed and pending line items of a paid order
// owned by the current user.
func (h *AccountHandler) Deliver(c *gin.Context) {
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, h.deliveryTimeout+DefaultServiceTimeout)
	defer cancel()

	stats, err := h.delivery.DeliverOrder(ctx, getUserIDFromContext(c), orderID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRetryResponse(stats))
}

type BalanceResponse struct {
	Points int64 `json:"points"`
}

// Balance GET RouteGroup + BalanceRoute.
func (h *AccountHandler) Balance(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	points, err := h.ledger.GetBalance(ctx, getUserIDFromContext(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, BalanceResponse{Points: points})
}

// Transactions GET RouteGroup + TransactionsRoute.
func (h *AccountHandler) Transactions(c *gin.Context) {
	var page pageQuery
	if !bindQuery(c, &page) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	txs, err := h.ledger.History(ctx, getUserIDFromContext(c), page.limit(), page.Offset)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": newTransactionsResponse(txs)})
}
