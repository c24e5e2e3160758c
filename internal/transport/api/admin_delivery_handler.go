package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/repository/repoargs"
	"github.com/fsdevblog/dzstore/internal/transport/gameapi"
)

const (
	HistorySourceGameServer = "game_server"
	HistorySourceLocal      = "local"
)

// AdminDeliveryHandler proxies the item giver admin endpoints. Delivery history falls back to the
// line items stored locally when the game server can not be reached.
type AdminDeliveryHandler struct {
	game         GameServer
	giver        ItemDeliverer
	delivery     DeliveryServicer
	adminTimeout time.Duration
}

func NewAdminDeliveryHandler(
	game GameServer,
	giver ItemDeliverer,
	delivery DeliveryServicer,
	adminTimeout time.Duration,
) *AdminDeliveryHandler {
	return &AdminDeliveryHandler{
		game:         game,
		giver:        giver,
		delivery:     delivery,
		adminTimeout: adminTimeout,
	}
}

type HistoryParams struct {
	SteamID    string `form:"steamId"`
	PlayerName string `form:"playerName"`
	Status     string `form:"status"`
	StartDate  string `form:"startDate"`
	EndDate    string `form:"endDate"`
	Page       int    `binding:"omitempty,min=1"         form:"page"`
	Limit      int    `binding:"omitempty,min=1,max=200" form:"limit"`
}

func (p HistoryParams) localFilter() (repoargs.DeliveryFilter, error) {
	filter := repoargs.DeliveryFilter{
		SteamID:    p.SteamID,
		PlayerName: p.PlayerName,
		Limit:      defaultPageLimit,
	}
	if p.Limit > 0 {
		filter.Limit = uint(p.Limit)
	}
	if p.Page > 1 {
		filter.Offset = uint(p.Page-1) * filter.Limit
	}
	if p.Status != "" {
		status := domain.DeliveryStatusType(p.Status)
		switch status {
		case domain.DeliveryStatusPending, domain.DeliveryStatusDelivered,
			domain.DeliveryStatusFailed, domain.DeliveryStatusCancelled:
			filter.Status = &status
		default:
			return filter, fmt.Errorf("unknown delivery status %q", p.Status)
		}
	}
	var err error
	if filter.StartDate, err = parseDateParam(p.StartDate, false); err != nil {
		return filter, err
	}
	if filter.EndDate, err = parseDateParam(p.EndDate, true); err != nil {
		return filter, err
	}
	return filter, nil
}

// parseDateParam accepts RFC 3339 timestamps and plain dates. A plain end date covers the whole day.
func parseDateParam(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil //nolint:nilnil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", value)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

type DeliveryRecordResponse struct {
	OrderItemID int64                     `json:"order_item_id"`
	OrderNumber string                    `json:"order_number"`
	Username    string                    `json:"username"`
	SteamID     string                    `json:"steam_id"`
	ItemName    string                    `json:"item_name"`
	Classname   string                    `json:"classname"`
	Quantity    int64                     `json:"quantity"`
	Status      domain.DeliveryStatusType `json:"status"`
	Attempts    int                       `json:"attempts"`
	CreatedAt   time.Time                 `json:"created_at"`
	DeliveredAt *time.Time                `json:"delivered_at,omitempty"`
}

// History GET AdminGroup + AdminDeliveryHistoryRoute.
func (h *AdminDeliveryHandler) History(c *gin.Context) {
	var params HistoryParams
	if !bindQuery(c, &params) {
		return
	}
	filter, err := params.localFilter()
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err).SetType(gin.ErrorTypePublic)
		return
	}

	ctx, cancel := context.WithTimeout(c, h.adminTimeout)
	defer cancel()

	remote, err := h.game.History(ctx, gameapi.HistoryQuery{
		SteamID:    params.SteamID,
		PlayerName: params.PlayerName,
		Status:     params.Status,
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
		Page:       params.Page,
		Limit:      params.Limit,
	})
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"source": HistorySourceGameServer, "history": remote})
		return
	}
	_ = c.Error(fmt.Errorf("game server history unavailable: %w", err)).SetType(gin.ErrorTypePrivate)

	localCtx, localCancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer localCancel()

	records, err := h.delivery.LocalHistory(localCtx, filter)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	res := make([]DeliveryRecordResponse, len(records))
	for i, r := range records {
		res[i] = DeliveryRecordResponse{
			OrderItemID: r.OrderItem.ID,
			OrderNumber: r.OrderNumber,
			Username:    r.Username,
			SteamID:     r.SteamID,
			ItemName:    r.ItemName,
			Classname:   r.Classname,
			Quantity:    r.OrderItem.Quantity,
			Status:      r.OrderItem.DeliveryStatus,
			Attempts:    r.OrderItem.DeliveryAttempts,
			CreatedAt:   r.OrderItem.CreatedAt,
			DeliveredAt: r.OrderItem.DeliveredAt,
		}
	}
	c.JSON(http.StatusOK, gin.H{"source": HistorySourceLocal, "history": res})
}

func steamIDParam(c *gin.Context) (string, bool) {
	steamID := strings.TrimSpace(c.Param("steamId"))
	if !domain.IsValidSteamID(steamID) {
		_ = c.AbortWithError(http.StatusUnprocessableEntity, domain.ErrInvalidIdentity).SetType(gin.ErrorTypePublic)
		return "", false
	}
	return steamID, true
}

// PlayerQueue GET AdminGroup + AdminPlayerQueueRoute.
func (h *AdminDeliveryHandler) PlayerQueue(c *gin.Context) {
	steamID, ok := steamIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, h.adminTimeout)
	defer cancel()

	queue, err := h.game.PlayerQueue(ctx, steamID)
	if err != nil {
		abortWithGameServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"steam_id": steamID, "queue": queue})
}

// ClearPlayerQueue DELETE AdminGroup + AdminPlayerQueueRoute.
func (h *AdminDeliveryHandler) ClearPlayerQueue(c *gin.Context) {
	steamID, ok := steamIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, h.adminTimeout)
	defer cancel()

	res, err := h.game.ClearPlayerQueue(ctx, steamID)
	if err != nil {
		abortWithGameServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"steam_id": steamID, "result": res})
}

type GiveParams struct {
	SteamID     string             `binding:"required,steamid"       json:"steam_id"`
	Classname   string             `binding:"required,classname"     json:"classname"`
	Quantity    int64              `binding:"required,min=1,max=100" json:"quantity"`
	Attachments domain.Attachments `json:"attachments"`
}

// GiveResponse.Payload is the raw game server answer.
type GiveResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Give POST AdminGroup + AdminGiveRoute. Hands an item to a player directly, without an order and
// without touching any balance.
func (h *AdminDeliveryHandler) Give(c *gin.Context) {
	var params GiveParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, h.adminTimeout)
	defer cancel()

	res, err := h.giver.Deliver(ctx, domain.DeliveryRequest{
		SteamID:     params.SteamID,
		Classname:   strings.TrimSpace(params.Classname),
		Quantity:    params.Quantity,
		Attachments: params.Attachments,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	body := GiveResponse{Success: res.Delivered, Message: res.Reason, Payload: res.Payload}
	if !res.Delivered {
		c.JSON(http.StatusBadGateway, body)
		return
	}
	c.JSON(http.StatusOK, body)
}

func abortWithGameServerError(c *gin.Context, err error) {
	var tooMany *gameapi.TooManyRequestError
	var statusErr *gameapi.StatusCodeError
	switch {
	case errors.As(err, &tooMany):
		c.Header("Retry-After", strconv.Itoa(int(tooMany.RetryAfter.Seconds())))
		_ = c.AbortWithError(http.StatusTooManyRequests, errors.New("game server is rate limiting requests")).
			SetType(gin.ErrorTypePublic)
	case errors.As(err, &statusErr):
		_ = c.AbortWithError(http.StatusBadGateway, fmt.Errorf("game server answered %d", statusErr.Code)).
			SetType(gin.ErrorTypePublic)
	case errors.Is(err, context.DeadlineExceeded):
		_ = c.AbortWithError(http.StatusGatewayTimeout, errors.New("game server timed out")).
			SetType(gin.ErrorTypePublic)
	default:
		_ = c.AbortWithError(http.StatusBadGateway, errors.New("game server is unreachable")).
			SetType(gin.ErrorTypePublic)
	}
	_ = c.Error(err).SetType(gin.ErrorTypePrivate)
}
