package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/service"
)

type AdminOrdersHandler struct {
	orders          OrderServicer
	delivery        DeliveryServicer
	deliveryTimeout time.Duration
}

func NewAdminOrdersHandler(orders OrderServicer, delivery DeliveryServicer, deliveryTimeout time.Duration) *AdminOrdersHandler {
	return &AdminOrdersHandler{
		orders:          orders,
		delivery:        delivery,
		deliveryTimeout: deliveryTimeout,
	}
}

type OrdersQuery struct {
	pageQuery
	Status string `form:"status"`
	UserID int64  `form:"user_id" binding:"omitempty,gt=0"`
}

type OrderStatsResponse struct {
	Status      domain.OrderStatusType `json:"status"`
	Count       int64                  `json:"count"`
	TotalAmount int64                  `json:"total_amount"`
}

// Index GET AdminGroup + AdminOrdersRoute. Returns a page of orders together with the per status
// aggregates of all orders.
func (h *AdminOrdersHandler) Index(c *gin.Context) {
	var q OrdersQuery
	if !bindQuery(c, &q) {
		return
	}
	args := service.OrderListArgs{Limit: q.limit(), Offset: q.Offset}
	if q.Status != "" {
		status := domain.OrderStatusType(q.Status)
		if !status.IsValid() {
			_ = c.AbortWithError(http.StatusBadRequest, errors.New("unknown order status")).SetType(gin.ErrorTypePublic)
			return
		}
		args.Status = &status
	}
	if q.UserID > 0 {
		args.UserID = &q.UserID
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	orders, err := h.orders.ListOrders(ctx, args)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	stats, err := h.orders.Stats(ctx)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	statsRes := make([]OrderStatsResponse, len(stats))
	for i, st := range stats {
		statsRes[i] = OrderStatsResponse{Status: st.Status, Count: st.Count, TotalAmount: st.TotalAmount}
	}
	c.JSON(http.StatusOK, gin.H{"orders": newOrdersResponse(orders), "stats": statsRes})
}

// Retry POST AdminGroup + AdminOrderRetryRoute. Re-sends failed and pending line items.
func (h *AdminOrdersHandler) Retry(c *gin.Context) {
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, h.deliveryTimeout+DefaultServiceTimeout)
	defer cancel()

	stats, err := h.delivery.RetryOrder(ctx, orderID, service.RetryOptions{})
	if err != nil {
		if stats != nil {
			// the gateway was called, the results just could not all be stored.
			_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			c.JSON(http.StatusOK, newRetryResponse(stats))
			return
		}
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRetryResponse(stats))
}

type CancelOrderParams struct {
	Reason       string `binding:"max_bytes=1000" json:"reason"`
	RefundPoints bool   `json:"refund_points"`
}

type CancelResponse struct {
	Order          OrderResponse `json:"order"`
	Refunded       bool          `json:"refunded"`
	RefundedPoints int64         `json:"refunded_points"`
}

// Cancel POST AdminGroup + AdminOrderCancelRoute.
func (h *AdminOrdersHandler) Cancel(c *gin.Context) {
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var params CancelOrderParams
	if c.Request.ContentLength != 0 && !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	res, err := h.delivery.CancelOrder(ctx, service.CancelOrderArgs{
		OrderID:      orderID,
		Reason:       params.Reason,
		RefundPoints: params.RefundPoints,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, CancelResponse{
		Order:          newOrderResponse(res.Order, nil),
		Refunded:       res.Refunded > 0,
		RefundedPoints: res.Refunded,
	})
}

type OrderNotesParams struct {
	Notes string `binding:"max_bytes=4000" json:"notes"`
}

// Notes PUT AdminGroup + AdminOrderNotesRoute.
func (h *AdminOrdersHandler) Notes(c *gin.Context) {
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var params OrderNotesParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, err := h.orders.UpdateNotes(ctx, orderID, params.Notes)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(order, nil))
}
