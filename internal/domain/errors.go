package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrPasswordMissMatch = errors.New("password mismatch")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrUnknown           = errors.New("unknown error")

	ErrInsufficientFunds = errors.New("insufficient points")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidQuantity   = errors.New("invalid quantity")

	ErrItemNotFound = errors.New("item not found")
	// ErrItemInactive matches ErrItemNotFound with errors.Is.
	ErrItemInactive        = fmt.Errorf("%w: item is not available", ErrItemNotFound)
	ErrInvalidAttachments  = errors.New("invalid attachments")
	ErrInvalidItem         = errors.New("invalid item")
	ErrImageStorageMissing = errors.New("image storage is not configured")

	ErrAccountRestricted = errors.New("account is inactive or banned")
	ErrInvalidIdentity   = errors.New("invalid steam id")
	ErrForbidden         = errors.New("forbidden")

	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderNotDeliverable  = errors.New("order is not deliverable")
	ErrOrderNotCancellable  = errors.New("order can not be cancelled")
	ErrAlreadyCancelled     = errors.New("order already cancelled")
	ErrNothingToRetry       = errors.New("no failed items to retry")
	ErrDeliveryInProgress   = errors.New("delivery is already in progress")
	ErrStoreDisabled        = errors.New("store is disabled")
	ErrInvalidDeliveryInput = errors.New("invalid delivery request")
)
