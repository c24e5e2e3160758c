package gameapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const (
	RouteAddItem     = "/v1/itemgiver/add-item"
	RouteHistory     = "/v1/itemgiver/history"
	RoutePlayerQueue = "/v1/itemgiver/player/%s"
	RouteClearQueue  = "/v1/itemgiver/player/%s/clear"

	apiKeyHeader = "X-API-Key"
)

// Minimum and maximum accepted Retry-After values, in seconds.
const (
	minRetryAfter     = 1
	maxRetryAfter     = 120
	defaultRetryAfter = 60
)

// maxBodySize caps how much of an answer is kept.
const maxBodySize = 1 << 20

// Client talks to the game server item giver API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(baseURL, apiKey string) Client {
	return Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
}

// AddItem queues an item for a player. Any non 2xx answer yields *StatusCodeError, or
// *TooManyRequestError for http.StatusTooManyRequests. A 2xx answer is returned as is, the caller
// decides on AddItemResponse.Success.
func (c Client) AddItem(ctx context.Context, req AddItemRequest) (*AddItemResponse, error) {
	body, err := c.do(ctx, http.MethodPost, RouteAddItem, nil, req)
	if err != nil {
		return nil, err
	}
	return parseAddItemResponse(body)
}

// History returns one page of the game server delivery history untouched.
func (c Client) History(ctx context.Context, q HistoryQuery) (json.RawMessage, error) {
	params := url.Values{}
	for key, value := range map[string]string{
		"steamId":    q.SteamID,
		"playerName": q.PlayerName,
		"status":     q.Status,
		"startDate":  q.StartDate,
		"endDate":    q.EndDate,
	} {
		if value != "" {
			params.Set(key, value)
		}
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	return c.doJSON(ctx, http.MethodGet, RouteHistory, params)
}

// PlayerQueue returns the items still waiting in the player in-game queue.
func (c Client) PlayerQueue(ctx context.Context, steamID string) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodGet, fmt.Sprintf(RoutePlayerQueue, url.PathEscape(steamID)), nil)
}

func (c Client) ClearPlayerQueue(ctx context.Context, steamID string) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf(RouteClearQueue, url.PathEscape(steamID)), nil)
}

func (c Client) doJSON(ctx context.Context, method, route string, params url.Values) (json.RawMessage, error) {
	body, err := c.do(ctx, method, route, params, nil)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, errors.New("parse response: invalid json")
	}
	return body, nil
}

//nolint:nonamedreturns
func (c Client) do(
	ctx context.Context,
	method, route string,
	params url.Values,
	payload any,
) (body []byte, err error) {
	target := c.baseURL + route
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, encErr := json.Marshal(payload)
		if encErr != nil {
			return nil, fmt.Errorf("encode request: %s", encErr.Error())
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, reqErr := http.NewRequestWithContext(ctx, method, target, reqBody)
	if reqErr != nil {
		return nil, fmt.Errorf("create request: %s", reqErr.Error())
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return nil, fmt.Errorf("do request: %w", doErr)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewTooManyRequestError(parseRetryAfter(resp.Header.Get("Retry-After")))
	}

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if readErr != nil {
		return nil, fmt.Errorf("read response: %s", readErr.Error())
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, NewStatusCodeError(resp.StatusCode, body)
	}
	return body, nil
}

// parseRetryAfter falls back to a minute for missing or out of range values.
func parseRetryAfter(value string) time.Duration {
	retryAfter, parseErr := decimal.NewFromString(value)
	if parseErr != nil ||
		retryAfter.LessThan(decimal.NewFromInt(minRetryAfter)) ||
		retryAfter.GreaterThan(decimal.NewFromInt(maxRetryAfter)) {
		retryAfter = decimal.NewFromInt(defaultRetryAfter)
	}
	return time.Duration(retryAfter.IntPart()) * time.Second
}
