package store

import (
	"context"
	"testing"
	"time"

	"pousada/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollections(t *testing.T) {
	c := NewCollections(NewMemoryStore())
	ctx := context.Background()

	t.Run("empty store initializes to empty slices", func(t *testing.T) {
		guests, err := c.Guests(ctx)
		require.NoError(t, err)
		assert.NotNil(t, guests)
		assert.Empty(t, guests)

		rooms, err := c.Rooms(ctx)
		require.NoError(t, err)
		assert.Empty(t, rooms)

		bookings, err := c.Bookings(ctx)
		require.NoError(t, err)
		assert.Empty(t, bookings)
	})

	t.Run("round trip preserves records", func(t *testing.T) {
		created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
		rate := 150.0
		guests := []models.Guest{{ID: "g1", Name: "Ana Souza", TaxID: "123", Email: "ana@example.com", CreatedAt: created, UpdatedAt: created}}
		rooms := []models.Room{{ID: "r1", Number: "101", Capacity: 2, NightlyRate: &rate, Status: models.RoomAvailable}}

		require.NoError(t, c.SaveGuests(ctx, guests))
		require.NoError(t, c.SaveRooms(ctx, rooms))

		gotGuests, err := c.Guests(ctx)
		require.NoError(t, err)
		assert.Equal(t, guests, gotGuests)

		gotRooms, err := c.Rooms(ctx)
		require.NoError(t, err)
		require.Len(t, gotRooms, 1)
		assert.Equal(t, "101", gotRooms[0].Number)
		require.NotNil(t, gotRooms[0].NightlyRate)
		assert.Equal(t, 150.0, *gotRooms[0].NightlyRate)
	})

	t.Run("nil save writes an empty document", func(t *testing.T) {
		require.NoError(t, c.SaveBookings(ctx, nil))
		bookings, err := c.Bookings(ctx)
		require.NoError(t, err)
		assert.NotNil(t, bookings)
		assert.Empty(t, bookings)
	})
}
