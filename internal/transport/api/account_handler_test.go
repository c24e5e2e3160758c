package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/service"
)

func (s *HandlersTestSuite) TestUserOrders() {
	deliveredAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	details := []service.OrderDetails{{
		Order: domain.Order{ID: 3, OrderNumber: "ORD-1", UserID: testUserID, TotalAmount: 150, Status: domain.OrderStatusCompleted},
		Items: []domain.OrderItem{{
			ID:               4,
			OrderID:          3,
			ItemID:           1,
			Quantity:         1,
			DeliveryStatus:   domain.DeliveryStatusDelivered,
			DeliveryAttempts: 1,
			DeliveredAt:      &deliveredAt,
		}},
	}}

	cases := []struct {
		name       string
		query      string
		limit      uint
		offset     uint
		wantStatus int
	}{
		{name: "default page", limit: defaultPageLimit, wantStatus: http.StatusOK},
		{name: "custom page", query: "?limit=10&offset=20", limit: 10, offset: 20, wantStatus: http.StatusOK},
		{name: "limit too large", query: "?limit=500", wantStatus: http.StatusUnprocessableEntity},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			if t.wantStatus == http.StatusOK {
				s.orders.EXPECT().ListUserOrders(gomock.Any(), testUserID, t.limit, t.offset).Return(details, nil)
			}

			resp := s.request(http.MethodGet, UserOrdersRoute+t.query, nil, s.userToken)
			s.Equal(t.wantStatus, resp.StatusCode)
			if t.wantStatus != http.StatusOK {
				return
			}

			var body struct {
				Orders []OrderResponse `json:"orders"`
			}
			s.decode(resp, &body)
			s.Require().Len(body.Orders, 1)
			s.Equal("ORD-1", body.Orders[0].OrderNumber)
			s.Require().Len(body.Orders[0].Items, 1)
			s.Equal(domain.DeliveryStatusDelivered, body.Orders[0].Items[0].DeliveryStatus)
			s.True(deliveredAt.Equal(*body.Orders[0].Items[0].DeliveredAt))
		})
	}
}

func (s *HandlersTestSuite) TestDeliverOrder() {
	cases := []struct {
		name       string
		orderID    string
		err        error
		wantStatus int
	}{
		{name: "delivered", orderID: "3", wantStatus: http.StatusOK},
		{name: "someone else's order", orderID: "3", err: domain.ErrOrderNotFound, wantStatus: http.StatusNotFound},
		{name: "not paid", orderID: "3", err: domain.ErrOrderNotDeliverable, wantStatus: http.StatusConflict},
		{name: "nothing pending", orderID: "3", err: domain.ErrNothingToRetry, wantStatus: http.StatusConflict},
		{name: "already running", orderID: "3", err: domain.ErrDeliveryInProgress, wantStatus: http.StatusConflict},
		{name: "bad id", orderID: "abc", wantStatus: http.StatusBadRequest},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			switch {
			case t.wantStatus == http.StatusBadRequest:
			case t.err != nil:
				s.delivery.EXPECT().DeliverOrder(gomock.Any(), testUserID, int64(3)).
					Return(nil, fmt.Errorf("delivering order 3: %w", t.err))
			default:
				s.delivery.EXPECT().DeliverOrder(gomock.Any(), testUserID, int64(3)).Return(&service.RetryStats{
					Order:     &domain.Order{ID: 3, Status: domain.OrderStatusCompleted},
					Items:     []domain.OrderItem{{ID: 4, DeliveryStatus: domain.DeliveryStatusDelivered}},
					Attempted: 1,
					Delivered: 1,
					Completed: true,
				}, nil)
			}

			resp := s.request(http.MethodPost, "/user/orders/"+t.orderID+"/deliver", nil, s.userToken)
			s.Equal(t.wantStatus, resp.StatusCode)
			if t.err != nil {
				s.Equal(t.err.Error(), s.errorMessage(resp))
				return
			}
			if t.wantStatus != http.StatusOK {
				return
			}
			var body RetryResponse
			s.decode(resp, &body)
			s.True(body.Completed)
			s.Equal(1, body.Delivered)
			s.Require().NotNil(body.Order)
			s.Equal(domain.OrderStatusCompleted, body.Order.Status)
		})
	}
}

func (s *HandlersTestSuite) TestBalance() {
	s.ledger.EXPECT().GetBalance(gomock.Any(), testUserID).Return(int64(420), nil)

	resp := s.request(http.MethodGet, BalanceRoute, nil, s.userToken)
	s.Equal(http.StatusOK, resp.StatusCode)

	var body BalanceResponse
	s.decode(resp, &body)
	s.Equal(int64(420), body.Points)
}

func (s *HandlersTestSuite) TestTransactions() {
	s.ledger.EXPECT().History(gomock.Any(), testUserID, uint(5), uint(0)).Return([]domain.PointTransaction{
		{ID: 2, UserID: testUserID, Amount: -150, Type: domain.TransactionTypePurchase, Description: "Purchase: AKM x1"},
		{ID: 1, UserID: testUserID, Amount: 500, Type: domain.TransactionTypeAdminAdjust, Description: "Admin adjustment"},
	}, nil)

	resp := s.request(http.MethodGet, TransactionsRoute+"?limit=5", nil, s.userToken)
	s.Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		Transactions []TransactionResponse `json:"transactions"`
	}
	s.decode(resp, &body)
	s.Require().Len(body.Transactions, 2)
	s.Equal(int64(-150), body.Transactions[0].Amount)
	s.Equal(domain.TransactionTypeAdminAdjust, body.Transactions[1].Type)
}
