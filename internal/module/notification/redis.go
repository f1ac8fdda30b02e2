package notification

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// channelPrefix is the redis pub/sub channel namespace for deliveries.
const channelPrefix = "governance:notify:"

// RedisNotifier publishes notifications to a per-recipient redis
// channel for out-of-process delivery. Publish failures are logged and
// swallowed.
type RedisNotifier struct {
	client redis.UniversalClient
	logger *zap.Logger
}

// NewRedisNotifier creates a redis-publishing notifier.
func NewRedisNotifier(client redis.UniversalClient, logger *zap.Logger) *RedisNotifier {
	return &RedisNotifier{client: client, logger: logger}
}

// Notify publishes the notification.
func (r *RedisNotifier) Notify(ctx context.Context, n Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		r.logger.Warn("marshal notification", zap.Error(err))
		return
	}

	channel := channelPrefix + n.RecipientID.String()
	if err := r.client.Publish(ctx, channel, payload).Err(); err != nil {
		r.logger.Warn("publish notification",
			zap.String("channel", channel),
			zap.Error(err),
		)
	}
}
