package service

import (
	"context"
	"io"
	"testing"
	"time"

	"pousada/internal/availability"
	"pousada/internal/models"
	"pousada/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testCollections(t *testing.T) *store.Collections {
	t.Helper()
	return store.NewCollections(store.NewMemoryStore())
}

func testLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

func daysFromNow(days int) time.Time {
	return availability.StartOfDay(time.Now()).AddDate(0, 0, days)
}

func ptr[T any](v T) *T {
	return &v
}

func seedGuest(t *testing.T, data *store.Collections, name, taxID, email string) models.Guest {
	t.Helper()
	svc := NewGuestService(data, nil, testLogger())
	guest, err := svc.Create(context.Background(), models.GuestInput{
		Name:  name,
		TaxID: taxID,
		Phone: "555-0100",
		Email: email,
	})
	require.NoError(t, err)
	return guest
}

func seedRoom(t *testing.T, data *store.Collections, number string, capacity int) models.Room {
	t.Helper()
	svc := NewRoomService(data, nil, testLogger())
	room, err := svc.Create(context.Background(), models.RoomInput{
		Number:   number,
		Type:     "standard",
		Capacity: capacity,
	})
	require.NoError(t, err)
	return room
}

func seedBooking(t *testing.T, data *store.Collections, guestID, roomID string, checkInDays, checkOutDays int, rate float64) models.BookingDetails {
	t.Helper()
	svc := NewBookingService(data, nil, nil, testLogger())
	booking, err := svc.Create(context.Background(), models.BookingInput{
		GuestID:  guestID,
		RoomID:   roomID,
		CheckIn:  ptr(daysFromNow(checkInDays)),
		CheckOut: ptr(daysFromNow(checkOutDays)),
		Rate:     ptr(rate),
	})
	require.NoError(t, err)
	return booking
}
