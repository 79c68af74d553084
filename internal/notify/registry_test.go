package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	a, cancelA := r.Subscribe()
	defer cancelA()
	b, cancelB := r.Subscribe()
	defer cancelB()

	r.Publish(Message{Kind: "banner", Body: "hello"})

	assert.Equal(t, "hello", (<-a).Body)
	assert.Equal(t, "hello", (<-b).Body)
}

func TestCancelStopsDelivery(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	ch, cancel := r.Subscribe()
	cancel()
	// Cancel twice is safe.
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Publishing after cancel must not panic on the closed channel.
	r.Publish(Message{Kind: "activity", Body: "x"})
}

func TestSlowSubscriberIsSkipped(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	slow, cancelSlow := r.Subscribe()
	defer cancelSlow()

	// Fill the buffer and then some; the publisher must never block.
	for i := 0; i < 40; i++ {
		r.Publish(Message{Kind: "activity", Body: "burst"})
	}

	require.Equal(t, 16, len(slow))
}

func TestCloseIsTerminal(t *testing.T) {
	r := NewRegistry()
	ch, _ := r.Subscribe()

	r.Close()
	r.Close() // idempotent

	_, open := <-ch
	assert.False(t, open)

	// Subscribing after close yields an already-closed channel.
	late, cancel := r.Subscribe()
	_, open = <-late
	assert.False(t, open)
	cancel()

	r.Publish(Message{Kind: "banner", Body: "ignored"})
}
