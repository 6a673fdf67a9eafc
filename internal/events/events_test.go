package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHubFanOut(t *testing.T) {
	h := NewHub()
	a := h.Subscribe()
	b := h.Subscribe()

	h.Publish("one")

	require.Equal(t, "one", <-a)
	require.Equal(t, "one", <-b)

	h.Unsubscribe(b)
	h.Publish("two")
	require.Equal(t, "two", <-a)

	_, open := <-b
	require.False(t, open)
}

func TestHubDropsWhenSubscriberIsFull(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()

	for i := 0; i < subscriberBuffer+5; i++ {
		h.Publish("evt")
	}

	// buffer retained, overflow dropped, publisher never blocked
	require.Len(t, ch, subscriberBuffer)
}

func TestMakeEvent(t *testing.T) {
	raw := MakeEvent("run-1", "scrape_finished", 1, map[string]any{"jobs": 3})

	var e Event
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	require.Equal(t, "scrape_finished", e.Type)
	require.Equal(t, 1, e.Version)
	require.Equal(t, "run-1", e.RunID)
	require.False(t, e.At.IsZero())

	var data map[string]int
	require.NoError(t, json.Unmarshal(e.Data, &data))
	require.Equal(t, 3, data["jobs"])
}

func TestMakeEventNoData(t *testing.T) {
	raw := MakeEvent("", "ping", 1, nil)

	var e Event
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	require.Equal(t, "ping", e.Type)
	require.Empty(t, e.RunID)
	require.Nil(t, e.Data)
}
