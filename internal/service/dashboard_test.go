package service

import (
	"context"
	"testing"

	"pousada/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("empty data set yields zeros and an empty status map", func(t *testing.T) {
		data := testCollections(t)
		svc := NewDashboardService(data, testLogger())

		stats, err := svc.Stats(ctx)
		require.NoError(t, err)
		assert.Zero(t, stats.Totals.Guests)
		assert.Zero(t, stats.Totals.Bookings)
		assert.Zero(t, stats.Revenue.Total)
		assert.NotNil(t, stats.BookingsByStatus)
		assert.Empty(t, stats.BookingsByStatus)
		assert.Empty(t, stats.UpcomingBookings)
		assert.Empty(t, stats.RecentBookings)
	})

	t.Run("counts entities and today's movements", func(t *testing.T) {
		data := testCollections(t)
		svc := NewDashboardService(data, testLogger())
		bookingSvc := NewBookingService(data, nil, nil, testLogger())
		guest := seedGuest(t, data, "Maria", "111", "maria@example.com")
		room := seedRoom(t, data, "101", 2)
		roomB := seedRoom(t, data, "102", 2)

		// Checks in today.
		checkingIn := seedBooking(t, data, guest.ID, room.ID, 0, 2, 100)
		// Checks in later.
		seedBooking(t, data, guest.ID, roomB.ID, 5, 7, 100)

		_, err := bookingSvc.Update(ctx, checkingIn.ID, models.BookingPatch{Status: ptr(models.BookingInProgress)})
		require.NoError(t, err)

		stats, err := svc.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Totals.Guests)
		assert.Equal(t, 2, stats.Totals.Bookings)
		assert.Equal(t, 1, stats.Totals.InProgress)
		assert.Equal(t, 1, stats.Totals.CheckInsToday)
		assert.Zero(t, stats.Totals.CheckOutsToday)
		assert.Equal(t, 1, stats.BookingsByStatus[models.BookingInProgress])
		assert.Equal(t, 1, stats.BookingsByStatus[models.BookingConfirmed])
	})

	t.Run("revenue sums the nightly rate of completed and in-progress stays", func(t *testing.T) {
		data := testCollections(t)
		svc := NewDashboardService(data, testLogger())
		bookingSvc := NewBookingService(data, nil, nil, testLogger())
		guest := seedGuest(t, data, "Maria", "111", "maria@example.com")
		room := seedRoom(t, data, "101", 2)
		roomB := seedRoom(t, data, "102", 2)
		roomC := seedRoom(t, data, "103", 2)

		inProgress := seedBooking(t, data, guest.ID, room.ID, 0, 3, 100)
		completed := seedBooking(t, data, guest.ID, roomB.ID, 1, 3, 150)
		// Confirmed stays do not count toward revenue.
		seedBooking(t, data, guest.ID, roomC.ID, 5, 7, 500)

		_, err := bookingSvc.Update(ctx, inProgress.ID, models.BookingPatch{Status: ptr(models.BookingInProgress)})
		require.NoError(t, err)
		_, err = bookingSvc.Update(ctx, completed.ID, models.BookingPatch{Status: ptr(models.BookingCompleted)})
		require.NoError(t, err)

		stats, err := svc.Stats(ctx)
		require.NoError(t, err)
		// Rate, not total, per stay.
		assert.Equal(t, 250.0, stats.Revenue.Total)
	})

	t.Run("upcoming lists at most five confirmed future stays, soonest first", func(t *testing.T) {
		data := testCollections(t)
		svc := NewDashboardService(data, testLogger())
		guest := seedGuest(t, data, "Maria", "111", "maria@example.com")
		for i := 0; i < 7; i++ {
			room := seedRoom(t, data, string(rune('A'+i)), 2)
			seedBooking(t, data, guest.ID, room.ID, 7-i, 9-i+2, 100)
		}

		stats, err := svc.Stats(ctx)
		require.NoError(t, err)
		require.Len(t, stats.UpcomingBookings, models.DashboardListSize)
		for i := 1; i < len(stats.UpcomingBookings); i++ {
			assert.False(t, stats.UpcomingBookings[i].CheckIn.Before(stats.UpcomingBookings[i-1].CheckIn))
		}
		require.NotNil(t, stats.UpcomingBookings[0].Guest)
		assert.Equal(t, "Maria", stats.UpcomingBookings[0].Guest.Name)
	})

	t.Run("recent lists at most five newest bookings", func(t *testing.T) {
		data := testCollections(t)
		svc := NewDashboardService(data, testLogger())
		guest := seedGuest(t, data, "Maria", "111", "maria@example.com")
		room := seedRoom(t, data, "101", 2)
		for i := 0; i < 6; i++ {
			seedBooking(t, data, guest.ID, room.ID, 10*i+1, 10*i+2, 100)
		}

		stats, err := svc.Stats(ctx)
		require.NoError(t, err)
		assert.Len(t, stats.RecentBookings, models.DashboardListSize)
	})
}
