package notifications

import "staymate/internal/shared/upstream"

// ListView is the notification dropdown payload: the user's notifications
// plus the unread count the badge shows.
type ListView struct {
	Notifications []upstream.Notification `json:"notifications"`
	UnreadCount   int                     `json:"unreadCount"`
}
