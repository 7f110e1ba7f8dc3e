package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]string{"user_id": "abc", "item_id": "def"}

	event, err := NewEvent("watchlist.item.added", "abc", "list_item", "watchlist-service", payload)
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "watchlist.item.added", event.EventType)
	assert.Equal(t, "abc", event.AggregateID)
	assert.Equal(t, "list_item", event.AggregateType)
	assert.Equal(t, 1, event.Version)
	assert.Equal(t, "watchlist-service", event.Source)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, time.Second)

	var decoded map[string]string
	require.NoError(t, event.UnmarshalData(&decoded))
	assert.Equal(t, payload, decoded)
}

func TestNewEvent_UnmarshalableData(t *testing.T) {
	_, err := NewEvent("watchlist.item.added", "abc", "list_item", "watchlist-service", make(chan int))
	assert.Error(t, err)
}

func TestEvent_MarshalRoundTrip(t *testing.T) {
	event, err := NewEvent("watchlist.item.removed", "u1", "list_item", "watchlist-service", map[string]string{"item_id": "x"})
	require.NoError(t, err)
	event.WithCorrelationID("corr-1")

	data, err := event.Marshal()
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, "corr-1", decoded.CorrelationID)
}
