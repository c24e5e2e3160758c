package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/repository/repoargs"
	"github.com/fsdevblog/dzstore/internal/service"
	"github.com/fsdevblog/dzstore/internal/transport/api/testutils"
	"github.com/fsdevblog/dzstore/internal/transport/gameapi"
)

func (s *HandlersTestSuite) admin(method, url string, body any) *http.Response {
	return s.request(method, AdminGroup+url, body, s.adminToken)
}

func (s *HandlersTestSuite) TestAdminAccess() {
	const demotedID int64 = 101
	s.users.EXPECT().GetUser(gomock.Any(), demotedID).
		Return(&domain.User{ID: demotedID, Role: domain.UserRoleUser, IsActive: true}, nil)

	cases := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{name: "anonymous", wantStatus: http.StatusUnauthorized},
		{name: "player", token: s.userToken, wantStatus: http.StatusForbidden},
		{name: "forged token", token: s.userToken + "x", wantStatus: http.StatusUnauthorized},
		{name: "demoted admin", token: s.token(demotedID, domain.UserRoleAdmin), wantStatus: http.StatusForbidden},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			resp := s.request(http.MethodGet, AdminGroup+AdminItemsRoute, nil, t.token)
			defer resp.Body.Close()
			s.Equal(t.wantStatus, resp.StatusCode)
		})
	}
}

func (s *HandlersTestSuite) TestCreateItem() {
	valid := gin.H{
		"name":           "Hatchback",
		"price":          5000,
		"category":       "vehicle",
		"classname":      "OffroadHatchback",
		"stock_quantity": 3,
		"attachments": []gin.H{
			{"classname": "HatchbackWheel", "quantity": 4},
		},
		"stock_unlimited": false,
	}
	wantArgs := service.ItemArgs{
		Name:          "Hatchback",
		Price:         5000,
		Category:      domain.ItemCategoryVehicle,
		Classname:     "OffroadHatchback",
		Attachments:   domain.Attachments{{Classname: "HatchbackWheel", Quantity: 4}},
		StockQuantity: 3,
		IsActive:      true,
	}

	withField := func(key string, value any) gin.H {
		res := gin.H{}
		for k, v := range valid {
			res[k] = v
		}
		res[key] = value
		return res
	}

	cases := []struct {
		name       string
		body       gin.H
		err        error
		wantStatus int
	}{
		{name: "created", body: valid, wantStatus: http.StatusCreated},
		{name: "classname with spaces", body: withField("classname", "Offroad Hatchback"), wantStatus: http.StatusUnprocessableEntity},
		{name: "unknown category", body: withField("category", "food"), wantStatus: http.StatusUnprocessableEntity},
		{name: "zero price", body: withField("price", 0), wantStatus: http.StatusUnprocessableEntity},
		{name: "attachments too deep", body: valid, err: domain.ErrInvalidAttachments, wantStatus: http.StatusUnprocessableEntity},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			switch {
			case t.err != nil:
				s.catalog.EXPECT().CreateItem(gomock.Any(), wantArgs).
					Return(nil, fmt.Errorf("creating item: %w", t.err))
			case t.wantStatus == http.StatusCreated:
				s.catalog.EXPECT().CreateItem(gomock.Any(), wantArgs).
					Return(&domain.Item{ID: 9, Name: "Hatchback", Classname: "OffroadHatchback", IsActive: true}, nil)
			}

			resp := s.admin(http.MethodPost, AdminItemsRoute, t.body)
			s.Equal(t.wantStatus, resp.StatusCode)
			if t.wantStatus != http.StatusCreated {
				return
			}
			var body ItemResponse
			s.decode(resp, &body)
			s.Equal(int64(9), body.ID)
			s.Equal(domain.Attachments{}, body.Attachments)
		})
	}
}

func (s *HandlersTestSuite) TestUpdateItemNotFound() {
	s.catalog.EXPECT().UpdateItem(gomock.Any(), int64(77), gomock.Any()).
		Return(nil, fmt.Errorf("updating item 77: %w", domain.ErrItemNotFound))

	resp := s.admin(http.MethodPut, "/items/77", gin.H{
		"name": "AKM", "price": 100, "category": "weapon", "classname": "AKM",
	})
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal("item not found", s.errorMessage(resp))
}

func (s *HandlersTestSuite) TestSetItemActive() {
	s.Run("deactivate", func() {
		s.catalog.EXPECT().SetItemActive(gomock.Any(), int64(4), false).Return(nil)

		resp := s.admin(http.MethodPatch, "/items/4/active", gin.H{"active": false})
		defer resp.Body.Close()
		s.Equal(http.StatusOK, resp.StatusCode)
	})
	s.Run("flag is required", func() {
		resp := s.admin(http.MethodPatch, "/items/4/active", gin.H{})
		defer resp.Body.Close()
		s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func (s *HandlersTestSuite) TestUploadImage() {
	cases := []struct {
		name        string
		contentType string
		err         error
		wantStatus  int
	}{
		{name: "uploaded", contentType: "image/png", wantStatus: http.StatusOK},
		{name: "not an image", contentType: "text/plain", wantStatus: http.StatusUnprocessableEntity},
		{name: "no storage", contentType: "image/png", err: domain.ErrImageStorageMissing, wantStatus: http.StatusServiceUnavailable},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			switch {
			case t.err != nil:
				s.catalog.EXPECT().AttachImage(gomock.Any(), int64(7), "pic.png", t.contentType, gomock.Any()).
					Return("", t.err)
			case t.wantStatus == http.StatusOK:
				s.catalog.EXPECT().AttachImage(gomock.Any(), int64(7), "pic.png", t.contentType, gomock.Any()).
					Return("https://cdn.example.com/items/7/pic.png", nil)
			}

			body, contentType := testutils.MultipartFile("image", "pic.png", t.contentType, []byte("\x89PNG"))
			resp := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + AdminGroup + "/items/7/image",
				Body:   body,
			}, testutils.WithBearer(s.adminToken), testutils.WithHeader("Content-Type", contentType))
			s.Equal(t.wantStatus, resp.StatusCode)
			if t.wantStatus != http.StatusOK {
				return
			}
			var res struct {
				ImageURL string `json:"image_url"`
			}
			s.decode(resp, &res)
			s.Equal("https://cdn.example.com/items/7/pic.png", res.ImageURL)
		})
	}

	s.Run("missing file", func() {
		resp := s.admin(http.MethodPost, "/items/7/image", nil)
		s.Equal(http.StatusBadRequest, resp.StatusCode)
		s.Equal("image file is required", s.errorMessage(resp))
	})
}

func (s *HandlersTestSuite) TestAdminOrders() {
	paid := domain.OrderStatusPaid

	s.Run("filtered by status", func() {
		s.orders.EXPECT().
			ListOrders(gomock.Any(), service.OrderListArgs{Status: &paid, Limit: defaultPageLimit}).
			Return([]service.OrderDetails{{Order: domain.Order{ID: 1, Status: paid}}}, nil)
		s.orders.EXPECT().Stats(gomock.Any()).Return([]repoargs.OrderStatusCount{
			{Status: paid, Count: 1, TotalAmount: 150},
			{Status: domain.OrderStatusCompleted, Count: 4, TotalAmount: 900},
		}, nil)

		resp := s.admin(http.MethodGet, AdminOrdersRoute+"?status=paid", nil)
		s.Equal(http.StatusOK, resp.StatusCode)

		var body struct {
			Orders []OrderResponse      `json:"orders"`
			Stats  []OrderStatsResponse `json:"stats"`
		}
		s.decode(resp, &body)
		s.Len(body.Orders, 1)
		s.Equal(OrderStatsResponse{Status: domain.OrderStatusCompleted, Count: 4, TotalAmount: 900}, body.Stats[1])
	})

	s.Run("unknown status", func() {
		resp := s.admin(http.MethodGet, AdminOrdersRoute+"?status=lost", nil)
		s.Equal(http.StatusBadRequest, resp.StatusCode)
		s.Equal("unknown order status", s.errorMessage(resp))
	})
}

func (s *HandlersTestSuite) TestRetryOrder() {
	stats := &service.RetryStats{
		Order:     &domain.Order{ID: 5, Status: domain.OrderStatusPaid},
		Attempted: 2,
		Delivered: 1,
		Failed:    1,
	}

	cases := []struct {
		name       string
		stats      *service.RetryStats
		err        error
		wantStatus int
	}{
		{name: "partially delivered", stats: stats, wantStatus: http.StatusOK},
		{name: "results not fully stored", stats: stats, err: errors.New("recording attempt: conn closed"), wantStatus: http.StatusOK},
		{name: "nothing to retry", err: domain.ErrNothingToRetry, wantStatus: http.StatusConflict},
		{name: "cancelled order", err: domain.ErrOrderNotDeliverable, wantStatus: http.StatusConflict},
		{name: "unknown order", err: domain.ErrOrderNotFound, wantStatus: http.StatusNotFound},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			s.delivery.EXPECT().RetryOrder(gomock.Any(), int64(5), service.RetryOptions{}).Return(t.stats, t.err)

			resp := s.admin(http.MethodPost, "/orders/5/retry", nil)
			s.Equal(t.wantStatus, resp.StatusCode)
			if t.wantStatus != http.StatusOK {
				s.Equal(t.err.Error(), s.errorMessage(resp))
				return
			}
			var body RetryResponse
			s.decode(resp, &body)
			s.Equal(2, body.Attempted)
			s.Equal(1, body.Failed)
			s.False(body.Completed)
		})
	}
}

func (s *HandlersTestSuite) TestCancelOrder() {
	cancelled := &domain.Order{ID: 6, Status: domain.OrderStatusCancelled, Notes: "duplicate purchase"}

	s.Run("with refund", func() {
		s.delivery.EXPECT().CancelOrder(gomock.Any(), service.CancelOrderArgs{
			OrderID:      6,
			Reason:       "duplicate purchase",
			RefundPoints: true,
		}).Return(&service.CancelResult{Order: cancelled, Refunded: 300}, nil)

		resp := s.admin(http.MethodPost, "/orders/6/cancel", gin.H{"reason": "duplicate purchase", "refund_points": true})
		s.Equal(http.StatusOK, resp.StatusCode)

		var body CancelResponse
		s.decode(resp, &body)
		s.True(body.Refunded)
		s.Equal(int64(300), body.RefundedPoints)
		s.Equal(domain.OrderStatusCancelled, body.Order.Status)
	})

	s.Run("without body", func() {
		s.delivery.EXPECT().CancelOrder(gomock.Any(), service.CancelOrderArgs{OrderID: 6}).
			Return(&service.CancelResult{Order: cancelled}, nil)

		resp := s.admin(http.MethodPost, "/orders/6/cancel", nil)
		s.Equal(http.StatusOK, resp.StatusCode)

		var body CancelResponse
		s.decode(resp, &body)
		s.False(body.Refunded)
		s.Zero(body.RefundedPoints)
	})

	s.Run("twice", func() {
		s.delivery.EXPECT().CancelOrder(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("cancelling order 6: %w", domain.ErrAlreadyCancelled))

		resp := s.admin(http.MethodPost, "/orders/6/cancel", gin.H{})
		s.Equal(http.StatusConflict, resp.StatusCode)
		s.Equal(domain.ErrAlreadyCancelled.Error(), s.errorMessage(resp))
	})
}

func (s *HandlersTestSuite) TestOrderNotes() {
	s.orders.EXPECT().UpdateNotes(gomock.Any(), int64(6), "called the player").
		Return(&domain.Order{ID: 6, Notes: "called the player"}, nil)

	resp := s.admin(http.MethodPut, "/orders/6/notes", gin.H{"notes": "called the player"})
	s.Equal(http.StatusOK, resp.StatusCode)

	var body OrderResponse
	s.decode(resp, &body)
	s.Equal("called the player", body.Notes)
}

func (s *HandlersTestSuite) TestAdjustPoints() {
	cases := []struct {
		name       string
		body       gin.H
		setup      func()
		wantStatus int
	}{
		{
			name: "credit",
			body: gin.H{"amount": 500, "description": "event reward"},
			setup: func() {
				s.ledger.EXPECT().AdjustPoints(gomock.Any(), int64(2), int64(500), "event reward").Return(int64(800), nil)
			},
			wantStatus: http.StatusOK,
		}, {
			name: "debit below zero",
			body: gin.H{"amount": -900},
			setup: func() {
				s.ledger.EXPECT().AdjustPoints(gomock.Any(), int64(2), int64(-900), "").
					Return(int64(0), fmt.Errorf("adjusting points: %w", domain.ErrInsufficientFunds))
			},
			wantStatus: http.StatusPaymentRequired,
		}, {
			name:       "zero amount",
			body:       gin.H{"amount": 0},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			if t.setup != nil {
				t.setup()
			}
			resp := s.admin(http.MethodPost, "/users/2/points", t.body)
			defer resp.Body.Close()
			s.Equal(t.wantStatus, resp.StatusCode)
		})
	}
}

func (s *HandlersTestSuite) TestUserLedger() {
	s.ledger.EXPECT().Reconcile(gomock.Any(), int64(2)).
		Return(&service.LedgerReport{UserID: 2, Balance: 350, TransactionsSum: 300, Drift: 50}, nil)
	s.ledger.EXPECT().History(gomock.Any(), int64(2), uint(defaultPageLimit), uint(0)).
		Return([]domain.PointTransaction{{ID: 1, UserID: 2, Amount: 300}}, nil)

	resp := s.admin(http.MethodGet, "/users/2/ledger", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		Report       LedgerReportResponse  `json:"report"`
		Transactions []TransactionResponse `json:"transactions"`
	}
	s.decode(resp, &body)
	s.Equal(LedgerReportResponse{Balance: 350, TransactionsSum: 300, Drift: 50}, body.Report)
	s.Len(body.Transactions, 1)
}

func (s *HandlersTestSuite) TestUpdateSettings() {
	s.Run("only auto delivery", func() {
		s.settings.EXPECT().Update(gomock.Any(), service.UpdateSettingsArgs{AutoDelivery: ptr(true)}).
			Return(domain.StoreSettings{AutoDelivery: true, StoreEnabled: true}, nil)

		resp := s.admin(http.MethodPut, AdminSettingsRoute, gin.H{"auto_delivery": true})
		s.Equal(http.StatusOK, resp.StatusCode)

		var body SettingsResponse
		s.decode(resp, &body)
		s.Equal(SettingsResponse{AutoDelivery: true, StoreEnabled: true}, body)
	})

	s.Run("nothing to update", func() {
		resp := s.admin(http.MethodPut, AdminSettingsRoute, gin.H{})
		s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
		s.Equal("nothing to update", s.errorMessage(resp))
	})
}

func (s *HandlersTestSuite) TestDeliveryHistory() {
	steamID := testutils.FakeSteamID()
	query := gameapi.HistoryQuery{SteamID: steamID, Status: "failed", Page: 2, Limit: 10}

	s.Run("from game server", func() {
		s.game.EXPECT().History(gomock.Any(), query).Return(json.RawMessage(`{"items":[],"total":0}`), nil)

		resp := s.admin(http.MethodGet, AdminDeliveryHistoryRoute+"?steamId="+steamID+"&status=failed&page=2&limit=10", nil)
		s.Equal(http.StatusOK, resp.StatusCode)

		var body struct {
			Source  string          `json:"source"`
			History json.RawMessage `json:"history"`
		}
		s.decode(resp, &body)
		s.Equal(HistorySourceGameServer, body.Source)
		s.JSONEq(`{"items":[],"total":0}`, string(body.History))
	})

	s.Run("local fallback", func() {
		failed := domain.DeliveryStatusFailed
		s.game.EXPECT().History(gomock.Any(), query).Return(nil, context.DeadlineExceeded)
		s.delivery.EXPECT().LocalHistory(gomock.Any(), repoargs.DeliveryFilter{
			SteamID: steamID,
			Status:  &failed,
			Limit:   10,
			Offset:  10,
		}).Return([]repoargs.DeliveryRecord{{
			OrderItem:   domain.OrderItem{ID: 4, Quantity: 1, DeliveryStatus: failed, DeliveryAttempts: 2},
			OrderNumber: "ORD-1",
			SteamID:     steamID,
			ItemName:    "AKM",
			Classname:   "AKM",
		}}, nil)

		resp := s.admin(http.MethodGet, AdminDeliveryHistoryRoute+"?steamId="+steamID+"&status=failed&page=2&limit=10", nil)
		s.Equal(http.StatusOK, resp.StatusCode)

		var body struct {
			Source  string                   `json:"source"`
			History []DeliveryRecordResponse `json:"history"`
		}
		s.decode(resp, &body)
		s.Equal(HistorySourceLocal, body.Source)
		s.Require().Len(body.History, 1)
		s.Equal(2, body.History[0].Attempts)
	})

	s.Run("bad date", func() {
		resp := s.admin(http.MethodGet, AdminDeliveryHistoryRoute+"?startDate=yesterday", nil)
		s.Equal(http.StatusBadRequest, resp.StatusCode)
		s.Contains(s.errorMessage(resp), "invalid date")
	})
}

func (s *HandlersTestSuite) TestPlayerQueue() {
	steamID := testutils.FakeSteamID()

	cases := []struct {
		name        string
		steamID     string
		err         error
		wantStatus  int
		retryHeader string
	}{
		{name: "ok", steamID: steamID, wantStatus: http.StatusOK},
		{name: "bad steam id", steamID: "76561", wantStatus: http.StatusUnprocessableEntity},
		{
			name:        "rate limited upstream",
			steamID:     steamID,
			err:         gameapi.NewTooManyRequestError(30 * time.Second),
			wantStatus:  http.StatusTooManyRequests,
			retryHeader: "30",
		},
		{name: "upstream error", steamID: steamID, err: gameapi.NewStatusCodeError(500, nil), wantStatus: http.StatusBadGateway},
		{name: "upstream timeout", steamID: steamID, err: context.DeadlineExceeded, wantStatus: http.StatusGatewayTimeout},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			if t.steamID == steamID {
				s.game.EXPECT().PlayerQueue(gomock.Any(), steamID).Return(json.RawMessage(`{"queue":[]}`), t.err)
			}

			resp := s.admin(http.MethodGet, "/delivery/player/"+t.steamID, nil)
			defer resp.Body.Close()
			s.Equal(t.wantStatus, resp.StatusCode)
			s.Equal(t.retryHeader, resp.Header.Get("Retry-After"))
		})
	}
}

func (s *HandlersTestSuite) TestClearPlayerQueue() {
	steamID := testutils.FakeSteamID()
	s.game.EXPECT().ClearPlayerQueue(gomock.Any(), steamID).Return(json.RawMessage(`{"cleared":2}`), nil)

	resp := s.admin(http.MethodDelete, "/delivery/player/"+steamID, nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		Result json.RawMessage `json:"result"`
	}
	s.decode(resp, &body)
	s.JSONEq(`{"cleared":2}`, string(body.Result))
}

func (s *HandlersTestSuite) TestGive() {
	steamID := testutils.FakeSteamID()
	req := domain.DeliveryRequest{
		SteamID:     steamID,
		Classname:   "AKM",
		Quantity:    1,
		Attachments: domain.Attachments{{Classname: "Mag_AKM_30Rnd", Quantity: 1}},
	}
	body := gin.H{
		"steam_id":    steamID,
		"classname":   "AKM",
		"quantity":    1,
		"attachments": []gin.H{{"classname": "Mag_AKM_30Rnd", "quantity": 1}},
	}

	cases := []struct {
		name        string
		result      domain.DeliveryResult
		wantStatus  int
		wantSuccess bool
	}{
		{
			name:        "given",
			result:      domain.DeliverySucceeded(json.RawMessage(`{"success":true}`)),
			wantStatus:  http.StatusOK,
			wantSuccess: true,
		}, {
			name:       "refused by game server",
			result:     domain.DeliveryFailed("player is offline", nil),
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			s.giver.EXPECT().Deliver(gomock.Any(), req).Return(t.result, nil)

			resp := s.admin(http.MethodPost, AdminGiveRoute, body)
			s.Equal(t.wantStatus, resp.StatusCode)

			var res GiveResponse
			s.decode(resp, &res)
			s.Equal(t.wantSuccess, res.Success)
			s.Equal(t.result.Reason, res.Message)
			s.NotEmpty(res.Payload)
		})
	}

	s.Run("invalid steam id", func() {
		resp := s.admin(http.MethodPost, AdminGiveRoute, gin.H{"steam_id": "1", "classname": "AKM", "quantity": 1})
		defer resp.Body.Close()
		s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
	})
}
