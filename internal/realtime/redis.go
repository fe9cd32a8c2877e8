package realtime

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const channelPrefix = "notifications:"

// ChannelFor is the Redis channel carrying events for one user.
func ChannelFor(userID uuid.UUID) string {
	return channelPrefix + userID.String()
}

// NewRedis creates a new Redis client
func NewRedis(addr, password string, db int) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	log.WithField("addr", addr).Info("redis client created")
	return rdb
}

// Relay forwards every user channel published on Redis into the local hub.
type Relay struct {
	RDB *redis.Client
	Hub *Hub
}

// Run blocks until ctx ends or the subscription breaks.
func (r *Relay) Run(ctx context.Context) error {
	sub := r.RDB.PSubscribe(ctx, channelPrefix+"*")
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	log.Info("redis relay subscribed")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			userID, err := uuid.Parse(strings.TrimPrefix(msg.Channel, channelPrefix))
			if err != nil {
				log.WithField("channel", msg.Channel).Warn("relay: ignoring message on malformed channel")
				continue
			}
			r.Hub.SendToUser(userID, []byte(msg.Payload))
		}
	}
}
