package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	"staymate/internal/shared/config"
	"staymate/internal/shared/constants"
	"staymate/pkg/cache"
	"staymate/pkg/logger"
)

// Consumer drops stale per-user caches when gateway events arrive. This is
// the server-side counterpart of the old client's "refresh notifications
// after booking" behavior.
type Consumer struct {
	group  sarama.ConsumerGroup
	topics []string
	cache  cache.Service
	log    *logger.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

// NewConsumer creates a consumer group reading the gateway events topic.
func NewConsumer(cfg config.KafkaConfig, cacheService cache.Service, log *logger.Logger) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = 30 * time.Second
	saramaConfig.Consumer.Group.Heartbeat.Interval = 3 * time.Second
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &Consumer{
		group:  group,
		topics: []string{cfg.EventsTopic},
		cache:  cacheService,
		log:    log,
		done:   make(chan struct{}),
	}, nil
}

// Start consumes until the context is cancelled or Stop is called.
func (c *Consumer) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	go func() {
		for err := range c.group.Errors() {
			c.log.Error("event consumer error", slog.Any("error", err))
		}
	}()

	go func() {
		defer close(c.done)
		for {
			if err := c.group.Consume(ctx, c.topics, &handler{consumer: c}); err != nil {
				c.log.Error("event consume failed", slog.Any("error", err))
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	return nil
}

// Stop shuts the consumer down and waits for the worker to exit.
func (c *Consumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	<-c.done
	return c.group.Close()
}

type handler struct {
	consumer *Consumer
}

func (h *handler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *handler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *handler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		h.handle(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

func (h *handler) handle(ctx context.Context, message *sarama.ConsumerMessage) {
	var event Event
	if err := json.Unmarshal(message.Value, &event); err != nil {
		h.consumer.log.Warn("dropping malformed event", slog.Any("error", err))
		return
	}

	if event.UserID == 0 {
		return
	}

	if err := h.consumer.cache.DeletePattern(ctx, constants.NotificationPattern(event.UserID)); err != nil {
		h.consumer.log.Warn("notification cache invalidation failed",
			slog.Int64("user_id", event.UserID),
			slog.Any("error", err),
		)
		return
	}

	h.consumer.log.Debug("notification cache invalidated",
		slog.String("event_type", string(event.Type)),
		slog.Int64("user_id", event.UserID),
	)
}
