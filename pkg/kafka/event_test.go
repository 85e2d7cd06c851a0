package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	ShopperID string `json:"shopper_id"`
	Total     int64  `json:"total"`
}

func TestNewEvent(t *testing.T) {
	event, err := NewEvent("soco.order.placed", "shopper-1", "order", "commerce-engine", testPayload{
		ShopperID: "shopper-1",
		Total:     330_000,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "soco.order.placed", event.EventType)
	assert.Equal(t, "shopper-1", event.AggregateID)
	assert.Equal(t, "order", event.AggregateType)
	assert.Equal(t, 1, event.Version)
	assert.Equal(t, "commerce-engine", event.Source)
	assert.NotZero(t, event.Timestamp)
}

func TestNewEvent_UnmarshalableData(t *testing.T) {
	event, err := NewEvent("t", "a", "b", "s", make(chan int))

	assert.Nil(t, event)
	assert.Error(t, err)
}

func TestEvent_WithCorrelationID(t *testing.T) {
	event, err := NewEvent("t", "a", "b", "s", testPayload{})
	require.NoError(t, err)

	event.WithCorrelationID("corr-123")

	assert.Equal(t, "corr-123", event.CorrelationID)
}

func TestEvent_MarshalRoundTrip(t *testing.T) {
	event, err := NewEvent("soco.cart.updated", "shopper-1", "cart", "commerce-engine", testPayload{
		ShopperID: "shopper-1",
		Total:     100_000,
	})
	require.NoError(t, err)

	data, err := event.Marshal()
	require.NoError(t, err)

	got, err := UnmarshalEvent(data)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, got.EventID)
	assert.Equal(t, event.EventType, got.EventType)

	var payload testPayload
	require.NoError(t, got.UnmarshalData(&payload))
	assert.Equal(t, "shopper-1", payload.ShopperID)
	assert.Equal(t, int64(100_000), payload.Total)
}
