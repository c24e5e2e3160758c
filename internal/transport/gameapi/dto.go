package gameapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fsdevblog/dzstore/internal/domain"
)

type AddItemRequest struct {
	SteamID string      `json:"steamId"`
	Item    ItemPayload `json:"item"`
}

type ItemPayload struct {
	Classname   string             `json:"classname"`
	Quantity    int64              `json:"quantity"`
	Attachments domain.Attachments `json:"attachments,omitempty"`
}

// AddItemResponse is the decoded answer of add-item. Success is true only when the body carries
// the JSON literal true in its success field.
type AddItemResponse struct {
	Success bool
	Message string
	Raw     json.RawMessage
}

func parseAddItemResponse(body []byte) (*AddItemResponse, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("parse response: %s", err.Error())
	}
	res := &AddItemResponse{
		Success: bytes.Equal(bytes.TrimSpace(fields["success"]), []byte("true")),
		Raw:     body,
	}
	for _, key := range []string{"message", "error"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var msg string
		if json.Unmarshal(raw, &msg) == nil && msg != "" {
			res.Message = msg
			break
		}
	}
	return res, nil
}

// HistoryQuery filters the game server delivery history. Zero values are not sent.
type HistoryQuery struct {
	SteamID    string
	PlayerName string
	Status     string
	StartDate  string
	EndDate    string
	Page       int
	Limit      int
}
