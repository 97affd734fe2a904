package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/planny/planny-backend/internal/tasks/domain"
)

const (
	boardKey        = "board:tasks"  // snapshot of the whole kanban board
	boardEventsChan = "board:events" // pub/sub channel for card moves
	defaultTTL      = 5 * time.Minute
)

// BoardCache keeps a JSON snapshot of the kanban board in redis and fans out
// status changes to subscribers.
type BoardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBoardCache(client *redis.Client, ttl time.Duration) *BoardCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &BoardCache{client: client, ttl: ttl}
}

// Get returns the cached board. ok is false on a miss.
func (b *BoardCache) Get(ctx context.Context) (tasks []domain.Task, ok bool, err error) {
	data, err := b.client.Get(ctx, boardKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get board: %w", err)
	}

	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal board: %w", err)
	}
	return tasks, true, nil
}

func (b *BoardCache) Set(ctx context.Context, tasks []domain.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to marshal board: %w", err)
	}
	if err := b.client.Set(ctx, boardKey, data, b.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set board: %w", err)
	}
	return nil
}

func (b *BoardCache) Invalidate(ctx context.Context) error {
	if err := b.client.Del(ctx, boardKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate board: %w", err)
	}
	return nil
}

// PublishStatus drops the snapshot and announces the move in one pipeline.
func (b *BoardCache) PublishStatus(ctx context.Context, ev domain.StatusChange) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}

	pipe := b.client.Pipeline()
	pipe.Del(ctx, boardKey)
	pipe.Publish(ctx, boardEventsChan, data)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish status event: %w", err)
	}
	return nil
}

// Subscribe streams status changes until ctx is done.
func (b *BoardCache) Subscribe(ctx context.Context) (<-chan domain.StatusChange, error) {
	sub := b.client.Subscribe(ctx, boardEventsChan)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan domain.StatusChange)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, open := <-msgs:
				if !open {
					return
				}
				var ev domain.StatusChange
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
