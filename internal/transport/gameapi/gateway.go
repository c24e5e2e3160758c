package gameapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/dzstore/internal/domain"
)

type ItemGiver interface {
	AddItem(ctx context.Context, req AddItemRequest) (*AddItemResponse, error)
}

// Gateway turns one add-item call into a delivery result. Transport errors, timeouts, non 2xx
// answers and answers without "success": true all become failed results.
type Gateway struct {
	giver ItemGiver
	l     *logrus.Entry
}

func NewGateway(giver ItemGiver, l *logrus.Logger) *Gateway {
	return &Gateway{
		giver: giver,
		l:     l.WithField("component", "gameapi"),
	}
}

// Deliver returns an error only for a request that should never have been built: a malformed
// steam id, classname or quantity.
func (g *Gateway) Deliver(ctx context.Context, req domain.DeliveryRequest) (domain.DeliveryResult, error) {
	if err := req.Validate(); err != nil {
		return domain.DeliveryResult{}, fmt.Errorf("deliver %q: %w", req.Classname, err)
	}

	resp, err := g.giver.AddItem(ctx, AddItemRequest{
		SteamID: req.SteamID,
		Item: ItemPayload{
			Classname:   req.Classname,
			Quantity:    req.Quantity,
			Attachments: req.Attachments.Normalize(),
		},
	})
	l := g.l.WithFields(logrus.Fields{
		"steamID":   req.SteamID,
		"classname": req.Classname,
		"quantity":  req.Quantity,
	})
	if err != nil {
		result := failureFromError(err)
		l.WithError(err).Warn("add-item call failed")
		return result, nil
	}
	if !resp.Success {
		reason := resp.Message
		if reason == "" {
			reason = "game server did not confirm delivery"
		}
		l.WithField("message", reason).Warn("add-item rejected")
		return domain.DeliveryFailed(reason, resp.Raw), nil
	}
	l.WithField("message", resp.Message).Debug("add-item accepted")
	return domain.DeliverySucceeded(resp.Raw), nil
}

func failureFromError(err error) domain.DeliveryResult {
	var statusErr *StatusCodeError
	var tooMany *TooManyRequestError
	switch {
	case errors.As(err, &statusErr):
		var payload json.RawMessage
		if json.Valid(statusErr.Body) {
			payload = statusErr.Body
		}
		return domain.DeliveryFailed(fmt.Sprintf("game server answered %d", statusErr.Code), payload)
	case errors.As(err, &tooMany):
		return domain.DeliveryFailed(tooMany.Error(), nil)
	case errors.Is(err, context.DeadlineExceeded):
		return domain.DeliveryFailed("game server timed out", nil)
	default:
		return domain.DeliveryFailed(err.Error(), nil)
	}
}
