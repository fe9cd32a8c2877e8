package notify

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Windi-Fikriyansyah/gigflow/internal/realtime"
)

// RedisPublisher fans events out through Redis so every API instance can
// reach its own websocket sessions.
type RedisPublisher struct {
	RDB *redis.Client
}

func (p *RedisPublisher) Publish(ctx context.Context, recipient uuid.UUID, event []byte) error {
	return p.RDB.Publish(ctx, realtime.ChannelFor(recipient), event).Err()
}

// HubPublisher delivers straight to this instance's hub. Used when Redis
// is disabled.
type HubPublisher struct {
	Hub *realtime.Hub
}

func (p *HubPublisher) Publish(_ context.Context, recipient uuid.UUID, event []byte) error {
	p.Hub.SendToUser(recipient, event)
	return nil
}
