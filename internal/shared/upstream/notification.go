package upstream

import (
	"context"
	"fmt"
)

// NotificationClient wraps the notification service REST API.
type NotificationClient struct {
	*caller
}

func (c *NotificationClient) ByUser(ctx context.Context, userID int64) ([]Notification, error) {
	var notifications []Notification
	if err := c.get(ctx, fmt.Sprintf("/notifications/user/%d", userID), nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (c *NotificationClient) MarkRead(ctx context.Context, id int64) error {
	return c.put(ctx, fmt.Sprintf("/notifications/%d/read", id), nil, nil, nil)
}
