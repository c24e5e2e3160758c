package gameapi

import (
	"fmt"
	"time"
)

// StatusCodeError is returned for any non 2xx answer. Body keeps the raw answer for auditing.
type StatusCodeError struct {
	Code int
	Body []byte
}

func NewStatusCodeError(code int, body []byte) *StatusCodeError {
	return &StatusCodeError{Code: code, Body: body}
}

func (e *StatusCodeError) Error() string {
	return fmt.Sprintf("Unexpected status code %d", e.Code)
}

type TooManyRequestError struct {
	RetryAfter time.Duration
}

func NewTooManyRequestError(retryAfter time.Duration) *TooManyRequestError {
	return &TooManyRequestError{RetryAfter: retryAfter}
}

func (e *TooManyRequestError) Error() string {
	return fmt.Sprintf("Too many requests. Need retry after %.f seconds", e.RetryAfter.Seconds())
}
