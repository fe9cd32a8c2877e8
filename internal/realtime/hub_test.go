package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func runHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub()
	go hub.Run(ctx)
	return hub
}

func TestHub_SendToUser(t *testing.T) {
	hub := runHub(t)
	alice, bob := uuid.New(), uuid.New()

	phone := NewClient(alice)
	laptop := NewClient(alice)
	other := NewClient(bob)
	hub.Join(phone)
	hub.Join(laptop)
	hub.Join(other)
	require.Eventually(t, func() bool { return hub.Online(alice) == 2 }, time.Second, 5*time.Millisecond)

	require.Equal(t, 2, hub.SendToUser(alice, []byte("hi")))
	require.Equal(t, "hi", string(<-phone.Send))
	require.Equal(t, "hi", string(<-laptop.Send))
	require.Empty(t, other.Send)

	require.Zero(t, hub.SendToUser(uuid.New(), []byte("nobody")))
}

func TestHub_LeaveClosesSession(t *testing.T) {
	hub := runHub(t)
	user := uuid.New()
	c := NewClient(user)

	hub.Join(c)
	require.Eventually(t, func() bool { return hub.Online(user) == 1 }, time.Second, 5*time.Millisecond)

	hub.Leave(c)
	_, open := <-c.Send
	require.False(t, open)
	require.Zero(t, hub.Online(user))
	require.False(t, hub.Reply(c, []byte("late")))
}

func TestHub_FullBufferDoesNotBlock(t *testing.T) {
	hub := runHub(t)
	user := uuid.New()
	c := &Client{ID: "slow", UserID: user, Send: make(chan []byte, 1)}
	hub.Join(c)
	require.Eventually(t, func() bool { return hub.Online(user) == 1 }, time.Second, 5*time.Millisecond)

	require.Equal(t, 1, hub.SendToUser(user, []byte("1")))
	require.Zero(t, hub.SendToUser(user, []byte("2")))
}

func TestHub_JoinAfterShutdownReturns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	hub.Join(NewClient(uuid.New()))
}
