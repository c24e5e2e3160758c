package rediskit

import "fmt"

const keyPrefix = "dzstore"

// SettingsKey holds the cached store settings snapshot.
func SettingsKey() string {
	return keyPrefix + ":settings"
}

// OrderDeliveryLockKey marks an order whose line items are being sent to the game server.
func OrderDeliveryLockKey(orderID int64) string {
	return fmt.Sprintf("%s:delivery:lock:%d", keyPrefix, orderID)
}

// RateLimitKey counts requests of one subject (user id or client ip) against one route.
func RateLimitKey(route, subject string) string {
	return fmt.Sprintf("%s:rate_limit:%s:%s", keyPrefix, route, subject)
}
