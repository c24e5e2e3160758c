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

// StoreHandler serves the public catalog and the purchase endpoint.
type StoreHandler struct {
	catalog         CatalogServicer
	settings        SettingsServicer
	orders          OrderServicer
	purchaseTimeout time.Duration
}

func NewStoreHandler(
	catalog CatalogServicer,
	settings SettingsServicer,
	orders OrderServicer,
	purchaseTimeout time.Duration,
) *StoreHandler {
	return &StoreHandler{
		catalog:         catalog,
		settings:        settings,
		orders:          orders,
		purchaseTimeout: purchaseTimeout,
	}
}

type ItemsQuery struct {
	Category string `form:"category"`
}

// Items GET RouteGroup + StoreItemsRoute.
func (h *StoreHandler) Items(c *gin.Context) {
	var q ItemsQuery
	if !bindQuery(c, &q) {
		return
	}
	var category *domain.ItemCategory
	if q.Category != "" {
		cat := domain.ItemCategory(q.Category)
		if !cat.IsValid() {
			_ = c.AbortWithError(http.StatusBadRequest, errors.New("unknown category")).SetType(gin.ErrorTypePublic)
			return
		}
		category = &cat
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	items, err := h.catalog.ListActiveItems(ctx, category)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": newItemsResponse(items)})
}

type CategoryResponse struct {
	Category domain.ItemCategory `json:"category"`
	Count    int64               `json:"count"`
}

// Categories GET RouteGroup + StoreCategoriesRoute.
func (h *StoreHandler) Categories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	counts, err := h.catalog.Categories(ctx)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	res := make([]CategoryResponse, len(counts))
	for i, cc := range counts {
		res[i] = CategoryResponse{Category: cc.Category, Count: cc.Count}
	}
	c.JSON(http.StatusOK, gin.H{"categories": res})
}

// Settings GET RouteGroup + StoreSettingsRoute.
func (h *StoreHandler) Settings(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	settings, err := h.settings.Snapshot(ctx)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSettingsResponse(settings))
}

// PurchaseParams.Quantity defaults to 1 when omitted. Range checks are left to the order service.
type PurchaseParams struct {
	ItemID   int64  `binding:"required,gt=0" json:"item_id"`
	Quantity *int64 `json:"quantity"`
}

type DeliveryOutcome struct {
	Attempted bool                      `json:"attempted"`
	Success   bool                      `json:"success"`
	Status    domain.DeliveryStatusType `json:"status"`
	Message   string                    `json:"message"`
}

type PurchaseResponse struct {
	Order      OrderResponse   `json:"order"`
	ItemName   string          `json:"item_name"`
	NewBalance int64           `json:"new_balance"`
	Delivery   DeliveryOutcome `json:"delivery"`
}

// Purchase POST RouteGroup + PurchaseRoute. The settings snapshot is taken once and used for the
// whole request.
func (h *StoreHandler) Purchase(c *gin.Context) {
	var params PurchaseParams
	if !bindJSON(c, &params) {
		return
	}
	quantity := int64(1)
	if params.Quantity != nil {
		quantity = *params.Quantity
	}

	ctx, cancel := context.WithTimeout(c, h.purchaseTimeout+DefaultServiceTimeout)
	defer cancel()

	settings, err := h.settings.Snapshot(ctx)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	res, err := h.orders.Purchase(ctx, service.PurchaseArgs{
		UserID:   getUserIDFromContext(c),
		ItemID:   params.ItemID,
		Quantity: quantity,
	}, settings)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, PurchaseResponse{
		Order:      newOrderResponse(res.Order, []domain.OrderItem{res.Item}),
		ItemName:   res.ItemName,
		NewBalance: res.NewBalance,
		Delivery: DeliveryOutcome{
			Attempted: res.Delivery.Attempted,
			Success:   res.Delivery.Status == domain.DeliveryStatusDelivered,
			Status:    res.Delivery.Status,
			Message:   res.Delivery.Message,
		},
	})
}
