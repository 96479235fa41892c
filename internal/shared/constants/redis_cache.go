package constants

import (
	"fmt"
)

// Redis key layout for the gateway.
// Pattern: staymate:{module}:{operation}:{identifier}

// ================== CACHE KEY BUILDERS ==================

// Hotel browsing cache
func HotelListKey() string {
	return "staymate:hotels:list"
}

func HotelDetailKey(hotelID int64) string {
	return fmt.Sprintf("staymate:hotels:detail:%d", hotelID)
}

func DestinationsKey() string {
	return "staymate:hotels:destinations"
}

// Booking draft state, one draft per user per hotel
func DraftKey(userID, hotelID int64) string {
	return fmt.Sprintf("staymate:booking:draft:%d:%d", userID, hotelID)
}

// Idempotency registry for booking submissions
func IdempotencyKey(key string) string {
	return fmt.Sprintf("staymate:booking:idempotency:%s", key)
}

// Per-user notification list cache
func NotificationListKey(userID int64) string {
	return fmt.Sprintf("staymate:notifications:user:%d", userID)
}

func NotificationPattern(userID int64) string {
	return fmt.Sprintf("staymate:notifications:user:%d*", userID)
}
