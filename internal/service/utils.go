package service

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const orderSuffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewOrderNumber builds a human readable order number: ORD-<base36 millis>-<5 random chars>.
func NewOrderNumber(now time.Time) string {
	suffix := make([]byte, 5) //nolint:mnd
	for i := range suffix {
		suffix[i] = orderSuffixAlphabet[rand.IntN(len(orderSuffixAlphabet))] // nolint:gosec
	}
	return "ORD-" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36)) + "-" + string(suffix)
}
