package terms

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	termsKey     = "eventhub:terms_and_conditions"
	termsChannel = "eventhub:terms.updated"
)

// RedisProvider stores the terms text under a shared key so every service
// instance serves the same text, and broadcasts changes over pub/sub so
// open wizard sessions can refresh without polling.
type RedisProvider struct {
	rdb *redis.Client
}

// NewRedisProvider constructs a provider on the given client.
func NewRedisProvider(rdb *redis.Client) *RedisProvider {
	return &RedisProvider{rdb: rdb}
}

// Current returns the stored text, or DefaultText when none is configured.
func (p *RedisProvider) Current(ctx context.Context) (string, error) {
	text, err := p.rdb.Get(ctx, termsKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return DefaultText, nil
		}
		return "", fmt.Errorf("terms get: %w", err)
	}
	if text == "" {
		return DefaultText, nil
	}
	return text, nil
}

// Watch subscribes to the update channel and invokes fn with every new
// text until ctx is cancelled.
func (p *RedisProvider) Watch(ctx context.Context, fn func(string)) error {
	sub := p.rdb.Subscribe(ctx, termsChannel)
	defer sub.Close()
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			fn(msg.Payload)
		}
	}
}

// Update replaces the stored text and publishes the change to watchers.
// Used by the admin endpoint; organizer-facing code never writes.
func (p *RedisProvider) Update(ctx context.Context, text string) error {
	if err := p.rdb.Set(ctx, termsKey, text, 0).Err(); err != nil {
		return fmt.Errorf("terms set: %w", err)
	}
	if err := p.rdb.Publish(ctx, termsChannel, text).Err(); err != nil {
		return fmt.Errorf("terms publish: %w", err)
	}
	return nil
}
