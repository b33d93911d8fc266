package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster_PublishDeliversToSubscribers(t *testing.T) {
	b := NewBroadcaster[string]()
	ch1 := b.Subscribe()
	ch2 := b.Subscribe()
	defer b.Unsubscribe(ch1)
	defer b.Unsubscribe(ch2)

	b.Publish("state")
	assert.Equal(t, "state", <-ch1)
	assert.Equal(t, "state", <-ch2)
}

func TestBroadcaster_UnsubscribeClosesChannel(t *testing.T) {
	b := NewBroadcaster[int]()
	ch := b.Subscribe()
	b.Unsubscribe(ch)
	b.Unsubscribe(ch)
	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, b.Len())
}

func TestBroadcaster_PublishDoesNotBlock(t *testing.T) {
	b := NewBroadcaster[int]()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)
	for i := 0; i < 100; i++ {
		b.Publish(i)
	}
	assert.Len(t, ch, cap(ch))
	assert.Equal(t, 0, <-ch)
}

func TestHub(t *testing.T) {
	h := NewHub[string]()
	h.Publish("nobody", "dropped")
	assert.Equal(t, 0, h.Len())

	ch := h.Subscribe("a")
	defer h.Unsubscribe("a", ch)
	other := h.Subscribe("b")
	defer h.Unsubscribe("b", other)

	h.Publish("a", "hello")
	assert.Equal(t, "hello", <-ch)
	assert.Len(t, other, 0)
	assert.Equal(t, 2, h.Len())
}

func TestHub_UnsubscribeDropsEmptyRoom(t *testing.T) {
	h := NewHub[int]()
	first := h.Subscribe("a")
	second := h.Subscribe("a")
	require.Equal(t, 2, h.Subscribers("a"))

	h.Unsubscribe("a", first)
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 1, h.Subscribers("a"))
	_, open := <-first
	assert.False(t, open)

	h.Unsubscribe("a", second)
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, 0, h.Subscribers("a"))

	h.Unsubscribe("a", second)
	h.Publish("a", 1)
	assert.Equal(t, 0, h.Len())
}
