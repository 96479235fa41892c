package notifications

import (
	"context"
	"fmt"

	"staymate/internal/shared/config"
	"staymate/internal/shared/constants"
	"staymate/internal/shared/upstream"
	"staymate/pkg/cache"
	"staymate/pkg/logger"
)

type Service interface {
	List(ctx context.Context, userID int64) (*ListView, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
}

type service struct {
	clients *upstream.Clients
	cache   cache.Service
	cfg     *config.Config
	log     *logger.Logger
}

func NewService(clients *upstream.Clients, cacheService cache.Service, cfg *config.Config, log *logger.Logger) Service {
	return &service{clients: clients, cache: cacheService, cfg: cfg, log: log}
}

// List serves the user's notifications from cache. Booking and payment
// mutations invalidate the entry, directly on the hot path and again by
// the events consumer, so a short TTL only covers writes the gateway
// never saw.
func (s *service) List(ctx context.Context, userID int64) (*ListView, error) {
	var items []upstream.Notification
	err := s.cache.GetOrSet(ctx, constants.NotificationListKey(userID), s.cfg.Redis.NotificationTTL,
		func() (interface{}, error) {
			return s.clients.Notifications.ByUser(ctx, userID)
		}, &items)
	if err != nil {
		return nil, fmt.Errorf("fetching notifications: %w", err)
	}

	view := &ListView{Notifications: items}
	for _, n := range items {
		if !n.Read {
			view.UnreadCount++
		}
	}
	return view, nil
}

// MarkRead proxies the read receipt and drops the cached list.
func (s *service) MarkRead(ctx context.Context, userID, notificationID int64) error {
	if err := s.clients.Notifications.MarkRead(ctx, notificationID); err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}
	if err := s.cache.DeletePattern(ctx, constants.NotificationPattern(userID)); err != nil {
		s.log.Warn("Notification cache invalidation failed", "user_id", userID, "error", err)
	}
	return nil
}
