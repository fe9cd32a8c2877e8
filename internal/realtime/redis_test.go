package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRelay_ForwardsUserChannels(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := NewRedis(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })

	hub := runHub(t)
	user := uuid.New()
	c := NewClient(user)
	hub.Join(c)
	require.Eventually(t, func() bool { return hub.Online(user) == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	relayDone := make(chan error, 1)
	go func() { relayDone <- (&Relay{RDB: rdb, Hub: hub}).Run(ctx) }()

	// Publish until the relay's subscription is live.
	require.Eventually(t, func() bool {
		n, err := rdb.Publish(context.Background(), ChannelFor(user), `{"type":"notification"}`).Result()
		return err == nil && n > 0
	}, 2*time.Second, 10*time.Millisecond)

	select {
	case msg := <-c.Send:
		require.JSONEq(t, `{"type":"notification"}`, string(msg))
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not forward the message")
	}

	cancel()
	select {
	case err := <-relayDone:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not stop")
	}
}

func TestChannelFor(t *testing.T) {
	id := uuid.MustParse("6f1c9a3e-2b7d-4c1a-9a55-0d2f6a8e4b10")
	require.Equal(t, "notifications:6f1c9a3e-2b7d-4c1a-9a55-0d2f6a8e4b10", ChannelFor(id))
}
