package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	t.Run("subscribers receive published events", func(t *testing.T) {
		bus := NewEventBus()
		var got []*Event
		bus.Subscribe(EventBookingCreated, func(e *Event) error {
			got = append(got, e)
			return nil
		})

		err := bus.PublishJSON(EventBookingCreated, BookingEventPayload{BookingID: "b1", RoomNumber: "101"})
		require.NoError(t, err)
		require.Len(t, got, 1)

		var payload BookingEventPayload
		require.NoError(t, json.Unmarshal(got[0].Payload, &payload))
		assert.Equal(t, "b1", payload.BookingID)
		assert.Equal(t, "101", payload.RoomNumber)
		assert.False(t, got[0].CreatedAt.IsZero())
	})

	t.Run("other event types are not delivered", func(t *testing.T) {
		bus := NewEventBus()
		called := 0
		bus.Subscribe(EventGuestDeleted, func(e *Event) error {
			called++
			return nil
		})

		require.NoError(t, bus.PublishJSON(EventBookingDeleted, BookingEventPayload{BookingID: "b2"}))
		assert.Zero(t, called)
	})

	t.Run("nil bus is a no-op", func(t *testing.T) {
		var bus *EventBus
		assert.NoError(t, bus.PublishJSON(EventRoomStatusChanged, RoomStatusPayload{RoomID: "r1"}))
	})
}
