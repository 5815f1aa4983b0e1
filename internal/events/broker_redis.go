package events

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisChannel = "scheduler.decisions"

// RedisBroker implements Broker over Redis pub/sub so decision events
// reach subscribers on every instance, not just the one that scheduled
// the order.
type RedisBroker struct {
	rdb *redis.Client
}

func NewRedisBroker(url string) (*RedisBroker, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisBroker{rdb: redis.NewClient(opt)}, nil
}

func (b *RedisBroker) Publish(ctx context.Context, evt Event) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	data, err := json.Marshal(evt)
	if err != nil {
		zap.S().Warnw("unable to marshal event for redis", "err", err)
		return
	}
	if err := b.rdb.Publish(ctx, redisChannel, data).Err(); err != nil {
		zap.S().Warnw("redis publish failed", "err", err)
	}
}

func (b *RedisBroker) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	ctx := context.Background()
	ps := b.rdb.Subscribe(ctx, redisChannel)
	// first receive confirms the subscription is live
	_, _ = ps.Receive(ctx)

	go func() {
		defer close(ch)
		for msg := range ps.Channel() {
			var evt Event
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				continue
			}
			select {
			case ch <- evt:
			default:
			}
		}
	}()

	cancel := func() { _ = ps.Close() }
	return ch, cancel
}

func (b *RedisBroker) Close() error { return b.rdb.Close() }
