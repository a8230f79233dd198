package notify

import (
	"context"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/example/fleetdesk/internal/ports/secondary"
)

// redisPublisher is the subset of *redis.Client the sink uses.
type redisPublisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
	Close() error
}

// RedisSink publishes each notification on a per-actor Pub/Sub channel,
// "<prefix>:<kind>:<id>".
type RedisSink struct {
	rdb    redisPublisher
	prefix string
}

// NewRedisSink connects to the redis server at url (redis://host:port/db).
func NewRedisSink(url, prefix string) (*RedisSink, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &RedisSink{rdb: redis.NewClient(opt), prefix: prefix}, nil
}

// Name implements secondary.NotificationSink.
func (s *RedisSink) Name() string { return "redis" }

// Publish implements secondary.NotificationSink.
func (s *RedisSink) Publish(ctx context.Context, n *secondary.NotificationRecord) error {
	data, err := Encode(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	return s.rdb.Publish(ctx, address(s.prefix, ":", n), data).Err()
}

// Close implements secondary.NotificationSink.
func (s *RedisSink) Close() error { return s.rdb.Close() }

var _ secondary.NotificationSink = (*RedisSink)(nil)
