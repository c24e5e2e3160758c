package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/repository/repoargs"
	"github.com/fsdevblog/dzstore/internal/service"
	"github.com/fsdevblog/dzstore/pkg/rediskit"
)

func (s *HandlersTestSuite) TestItems() {
	akm := domain.Item{
		ID:             1,
		Name:           "AKM",
		Price:          150,
		Category:       domain.ItemCategoryWeapon,
		Classname:      "AKM",
		Attachments:    domain.Attachments{{Classname: "Mag_AKM_30Rnd", Quantity: 2}},
		StockUnlimited: true,
		IsActive:       true,
	}

	cases := []struct {
		name       string
		query      string
		category   *domain.ItemCategory
		wantStatus int
	}{
		{name: "all categories", wantStatus: http.StatusOK},
		{name: "one category", query: "?category=weapon", category: ptr(domain.ItemCategoryWeapon), wantStatus: http.StatusOK},
		{name: "unknown category", query: "?category=food", wantStatus: http.StatusBadRequest},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			if t.wantStatus == http.StatusOK {
				s.catalog.EXPECT().ListActiveItems(gomock.Any(), t.category).Return([]domain.Item{akm}, nil)
			}

			resp := s.request(http.MethodGet, StoreItemsRoute+t.query, nil, "")
			s.Equal(t.wantStatus, resp.StatusCode)
			if t.wantStatus != http.StatusOK {
				s.Equal("unknown category", s.errorMessage(resp))
				return
			}

			var body struct {
				Items []ItemResponse `json:"items"`
			}
			s.decode(resp, &body)
			s.Require().Len(body.Items, 1)
			s.Equal("AKM", body.Items[0].Classname)
			s.Equal(akm.Attachments, body.Items[0].Attachments)
		})
	}
}

func (s *HandlersTestSuite) TestCategories() {
	s.catalog.EXPECT().Categories(gomock.Any()).Return([]repoargs.CategoryCount{
		{Category: domain.ItemCategoryWeapon, Count: 4},
		{Category: domain.ItemCategoryVehicle, Count: 1},
	}, nil)

	resp := s.request(http.MethodGet, StoreCategoriesRoute, nil, "")
	s.Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		Categories []CategoryResponse `json:"categories"`
	}
	s.decode(resp, &body)
	s.Equal([]CategoryResponse{
		{Category: domain.ItemCategoryWeapon, Count: 4},
		{Category: domain.ItemCategoryVehicle, Count: 1},
	}, body.Categories)
}

func (s *HandlersTestSuite) TestStoreSettings() {
	s.settings.EXPECT().Snapshot(gomock.Any()).Return(domain.StoreSettings{AutoDelivery: true, StoreEnabled: true}, nil)

	resp := s.request(http.MethodGet, StoreSettingsRoute, nil, "")
	s.Equal(http.StatusOK, resp.StatusCode)

	var body SettingsResponse
	s.decode(resp, &body)
	s.Equal(SettingsResponse{AutoDelivery: true, StoreEnabled: true}, body)
}

func (s *HandlersTestSuite) purchaseResult(status domain.DeliveryStatusType, message string) *service.PurchaseResult {
	order := &domain.Order{
		ID:            10,
		OrderNumber:   "ORD-LOYW3V28-AB12C",
		UserID:        testUserID,
		TotalAmount:   300,
		Status:        domain.OrderStatusPaid,
		PaymentMethod: domain.PaymentMethodPoints,
	}
	line := domain.OrderItem{
		ID:             20,
		OrderID:        order.ID,
		ItemID:         5,
		Quantity:       2,
		UnitPrice:      150,
		TotalPrice:     300,
		DeliveryStatus: status,
	}
	if status == domain.DeliveryStatusDelivered {
		order.Status = domain.OrderStatusCompleted
		line.DeliveryAttempts = 1
	}
	return &service.PurchaseResult{
		Order:      order,
		Item:       line,
		ItemName:   "AKM",
		NewBalance: 700,
		Delivery: service.PurchaseDelivery{
			Attempted: status != domain.DeliveryStatusPending,
			Status:    status,
			Message:   message,
			Item:      line,
			Order:     order,
		},
	}
}

func (s *HandlersTestSuite) TestPurchase() {
	limitKey := rediskit.RateLimitKey("purchase", fmt.Sprintf("user:%d", testUserID))
	auto := domain.StoreSettings{AutoDelivery: true, StoreEnabled: true}
	manual := domain.StoreSettings{StoreEnabled: true}

	s.Run("delivered right away", func() {
		s.limiter.EXPECT().Allow(gomock.Any(), limitKey).Return(true, nil)
		s.settings.EXPECT().Snapshot(gomock.Any()).Return(auto, nil)
		s.orders.EXPECT().
			Purchase(gomock.Any(), service.PurchaseArgs{UserID: testUserID, ItemID: 5, Quantity: 2}, auto).
			Return(s.purchaseResult(domain.DeliveryStatusDelivered, "Item delivered"), nil)

		resp := s.request(http.MethodPost, PurchaseRoute, gin.H{"item_id": 5, "quantity": 2}, s.userToken)
		s.Equal(http.StatusCreated, resp.StatusCode)

		var body PurchaseResponse
		s.decode(resp, &body)
		s.Equal(int64(700), body.NewBalance)
		s.Equal(domain.OrderStatusCompleted, body.Order.Status)
		s.Equal(DeliveryOutcome{
			Attempted: true,
			Success:   true,
			Status:    domain.DeliveryStatusDelivered,
			Message:   "Item delivered",
		}, body.Delivery)
		s.Require().Len(body.Order.Items, 1)
		s.Equal(1, body.Order.Items[0].DeliveryAttempts)
	})

	s.Run("quantity defaults to one", func() {
		s.limiter.EXPECT().Allow(gomock.Any(), limitKey).Return(true, nil)
		s.settings.EXPECT().Snapshot(gomock.Any()).Return(manual, nil)
		s.orders.EXPECT().
			Purchase(gomock.Any(), service.PurchaseArgs{UserID: testUserID, ItemID: 5, Quantity: 1}, manual).
			Return(s.purchaseResult(domain.DeliveryStatusPending, "Pending manual delivery"), nil)

		resp := s.request(http.MethodPost, PurchaseRoute, gin.H{"item_id": 5}, s.userToken)
		s.Equal(http.StatusCreated, resp.StatusCode)

		var body PurchaseResponse
		s.decode(resp, &body)
		s.False(body.Delivery.Attempted)
		s.False(body.Delivery.Success)
		s.Equal(domain.DeliveryStatusPending, body.Delivery.Status)
	})

	s.Run("paid but delivery failed", func() {
		s.limiter.EXPECT().Allow(gomock.Any(), limitKey).Return(true, nil)
		s.settings.EXPECT().Snapshot(gomock.Any()).Return(auto, nil)
		s.orders.EXPECT().
			Purchase(gomock.Any(), service.PurchaseArgs{UserID: testUserID, ItemID: 5, Quantity: 1}, auto).
			Return(s.purchaseResult(domain.DeliveryStatusFailed, "steam id not online"), nil)

		resp := s.request(http.MethodPost, PurchaseRoute, gin.H{"item_id": 5}, s.userToken)
		s.Equal(http.StatusCreated, resp.StatusCode)

		var body PurchaseResponse
		s.decode(resp, &body)
		s.Equal(DeliveryOutcome{
			Attempted: true,
			Success:   false,
			Status:    domain.DeliveryStatusFailed,
			Message:   "steam id not online",
		}, body.Delivery)
		s.Equal(domain.OrderStatusPaid, body.Order.Status)
		s.Equal(int64(700), body.NewBalance)
	})

	rejections := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "insufficient funds", err: domain.ErrInsufficientFunds, wantStatus: http.StatusPaymentRequired},
		{name: "out of stock", err: domain.ErrInsufficientStock, wantStatus: http.StatusConflict},
		{name: "store disabled", err: domain.ErrStoreDisabled, wantStatus: http.StatusServiceUnavailable},
		{name: "inactive item", err: domain.ErrItemInactive, wantStatus: http.StatusNotFound},
		{name: "restricted account", err: domain.ErrAccountRestricted, wantStatus: http.StatusForbidden},
		{name: "quantity out of range", err: domain.ErrInvalidQuantity, wantStatus: http.StatusUnprocessableEntity},
		{name: "bad steam id", err: domain.ErrInvalidIdentity, wantStatus: http.StatusUnprocessableEntity},
		{name: "unexpected", err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError},
	}
	for _, t := range rejections {
		s.Run(t.name, func() {
			s.limiter.EXPECT().Allow(gomock.Any(), limitKey).Return(true, nil)
			s.settings.EXPECT().Snapshot(gomock.Any()).Return(manual, nil)
			s.orders.EXPECT().Purchase(gomock.Any(), gomock.Any(), manual).
				Return(nil, fmt.Errorf("purchase: %w", t.err))

			resp := s.request(http.MethodPost, PurchaseRoute, gin.H{"item_id": 5, "quantity": 101}, s.userToken)
			s.Equal(t.wantStatus, resp.StatusCode)
			if t.wantStatus == http.StatusInternalServerError {
				s.Equal("internal server error", s.errorMessage(resp))
				return
			}
			s.NotContains(s.errorMessage(resp), "purchase:")
		})
	}

	s.Run("rate limited", func() {
		s.limiter.EXPECT().Allow(gomock.Any(), limitKey).Return(false, nil)

		resp := s.request(http.MethodPost, PurchaseRoute, gin.H{"item_id": 5}, s.userToken)
		s.Equal(http.StatusTooManyRequests, resp.StatusCode)
	})

	s.Run("limiter down lets the request through", func() {
		s.limiter.EXPECT().Allow(gomock.Any(), limitKey).Return(false, errors.New("redis: connection refused"))
		s.settings.EXPECT().Snapshot(gomock.Any()).Return(manual, nil)
		s.orders.EXPECT().Purchase(gomock.Any(), gomock.Any(), manual).
			Return(s.purchaseResult(domain.DeliveryStatusPending, "Pending manual delivery"), nil)

		resp := s.request(http.MethodPost, PurchaseRoute, gin.H{"item_id": 5}, s.userToken)
		s.Equal(http.StatusCreated, resp.StatusCode)
	})

	s.Run("anonymous", func() {
		resp := s.request(http.MethodPost, PurchaseRoute, gin.H{"item_id": 5}, "")
		s.Equal(http.StatusUnauthorized, resp.StatusCode)
	})

	s.Run("missing item", func() {
		s.limiter.EXPECT().Allow(gomock.Any(), limitKey).Return(true, nil)

		resp := s.request(http.MethodPost, PurchaseRoute, gin.H{"quantity": 1}, s.userToken)
		s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
	})
}
