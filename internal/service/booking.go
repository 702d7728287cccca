package service

import (
	"context"
	"time"

	"pousada/internal/apperr"
	"pousada/internal/availability"
	"pousada/internal/events"
	"pousada/internal/models"
	"pousada/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ExportQueue asks the export worker to rebuild the spreadsheet snapshot.
// A nil queue disables exports.
type ExportQueue interface {
	EnqueueExport(ctx context.Context, reason string) error
}

type BookingService struct {
	data     *store.Collections
	bus      *events.EventBus
	exporter ExportQueue
	logger   *zerolog.Logger
}

func NewBookingService(data *store.Collections, bus *events.EventBus, exporter ExportQueue, logger *zerolog.Logger) *BookingService {
	return &BookingService{data: data, bus: bus, exporter: exporter, logger: logger}
}

// Create validates the request against the guest, the room and the existing
// bookings, prices the stay and persists the new booking. The room may be
// referenced by id or by number.
func (s *BookingService) Create(ctx context.Context, input models.BookingInput) (models.BookingDetails, error) {
	if err := validate.Struct(input); err != nil {
		return models.BookingDetails{}, apperr.Validationf("required fields: guestId, checkIn, checkOut, rate")
	}
	if input.RoomID == "" && input.RoomNumber == "" {
		return models.BookingDetails{}, apperr.Validationf("roomId or roomNumber is required")
	}

	guests, err := s.data.Guests(ctx)
	if err != nil {
		return models.BookingDetails{}, err
	}
	guest, ok := findGuest(guests, input.GuestID)
	if !ok {
		return models.BookingDetails{}, apperr.NotFoundf("guest not found")
	}

	rooms, err := s.data.Rooms(ctx)
	if err != nil {
		return models.BookingDetails{}, err
	}
	var room models.Room
	if input.RoomID != "" {
		room, ok = findRoom(rooms, input.RoomID)
	} else {
		room, ok = findRoomByNumber(rooms, input.RoomNumber)
	}
	if !ok {
		return models.BookingDetails{}, apperr.NotFoundf("room not found")
	}

	checkIn, checkOut := *input.CheckIn, *input.CheckOut
	if !checkOut.After(checkIn) {
		return models.BookingDetails{}, apperr.Validationf("check-out must be after check-in")
	}
	if availability.StartOfDay(checkIn).Before(availability.StartOfDay(time.Now())) {
		return models.BookingDetails{}, apperr.Validationf("cannot book a past date")
	}

	guestCount := input.GuestCount
	if guestCount <= 0 {
		guestCount = models.DefaultGuestCount
	}
	if guestCount > room.Capacity {
		return models.BookingDetails{}, apperr.Validationf("room %s holds at most %d guest(s)", room.Number, room.Capacity)
	}

	bookings, err := s.data.Bookings(ctx)
	if err != nil {
		return models.BookingDetails{}, err
	}
	if colliding, found := availability.FindConflict(room.ID, checkIn, checkOut, bookings, ""); found {
		other, _ := findGuest(guests, colliding.GuestID)
		return models.BookingDetails{}, apperr.Conflictf("room %s is already booked from %s to %s (%s)",
			room.Number, formatDate(colliding.CheckIn), formatDate(colliding.CheckOut), other.Name)
	}

	status := input.Status
	if status == "" {
		status = models.BookingConfirmed
	}
	if !models.IsValidBookingStatus(status) {
		return models.BookingDetails{}, apperr.Validationf("invalid booking status: %s", status)
	}

	nights := availability.Nights(checkIn, checkOut)
	now := time.Now()
	booking := models.Booking{
		ID:         uuid.NewString(),
		GuestID:    guest.ID,
		RoomID:     room.ID,
		RoomNumber: room.Number,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     status,
		Rate:       *input.Rate,
		Total:      *input.Rate * float64(nights),
		GuestCount: guestCount,
		Notes:      input.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	bookings = append(bookings, booking)
	if err := s.data.SaveBookings(ctx, bookings); err != nil {
		return models.BookingDetails{}, err
	}

	if err := s.refreshRoomStatus(ctx, room.ID); err != nil {
		s.logger.Error().Err(err).Str("room_id", room.ID).Msg("refresh room status error")
	}

	s.publishBookingEvent(events.EventBookingCreated, booking)
	s.enqueueExport(ctx, "booking created")

	s.logger.Info().
		Str("booking_id", booking.ID).
		Str("room", room.Number).
		Int("nights", nights).
		Float64("total", booking.Total).
		Msg("booking created")

	return models.BookingDetails{Booking: booking, Guest: &guest, Room: &room}, nil
}

// Get returns the booking joined with its guest and room snapshots.
func (s *BookingService) Get(ctx context.Context, id string) (models.BookingDetails, error) {
	bookings, err := s.data.Bookings(ctx)
	if err != nil {
		return models.BookingDetails{}, err
	}

	idx := bookingIndex(bookings, id)
	if idx < 0 {
		return models.BookingDetails{}, apperr.NotFoundf("booking not found")
	}

	details, err := s.join(ctx, []models.Booking{bookings[idx]})
	if err != nil {
		return models.BookingDetails{}, err
	}
	return details[0], nil
}

// List returns bookings matching the filter, joined and sorted newest
// check-in first. The date range is inclusive on both ends and matches
// against the check-in day.
func (s *BookingService) List(ctx context.Context, filter models.BookingFilter) ([]models.BookingDetails, error) {
	bookings, err := s.data.Bookings(ctx)
	if err != nil {
		return nil, err
	}

	filtered := []models.Booking{}
	for _, b := range bookings {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if !filter.DateFrom.IsZero() && b.CheckIn.Before(availability.StartOfDay(filter.DateFrom)) {
			continue
		}
		if !filter.DateTo.IsZero() && b.CheckIn.After(availability.EndOfDay(filter.DateTo)) {
			continue
		}
		filtered = append(filtered, b)
	}
	sortByCheckInDesc(filtered)

	return s.join(ctx, filtered)
}

// Update merges the patch, re-validating dates, capacity and conflicts
// whenever the room or the stay window changes. Moving a booking to a
// different room refreshes both rooms' statuses.
func (s *BookingService) Update(ctx context.Context, id string, patch models.BookingPatch) (models.BookingDetails, error) {
	bookings, err := s.data.Bookings(ctx)
	if err != nil {
		return models.BookingDetails{}, err
	}

	idx := bookingIndex(bookings, id)
	if idx < 0 {
		return models.BookingDetails{}, apperr.NotFoundf("booking not found")
	}
	booking := bookings[idx]
	oldRoomID := booking.RoomID

	rooms, err := s.data.Rooms(ctx)
	if err != nil {
		return models.BookingDetails{}, err
	}
	guests, err := s.data.Guests(ctx)
	if err != nil {
		return models.BookingDetails{}, err
	}

	if patch.GuestID != nil {
		if _, ok := findGuest(guests, *patch.GuestID); !ok {
			return models.BookingDetails{}, apperr.NotFoundf("guest not found")
		}
		booking.GuestID = *patch.GuestID
	}

	var room models.Room
	var ok bool
	switch {
	case patch.RoomID != nil:
		room, ok = findRoom(rooms, *patch.RoomID)
	case patch.RoomNumber != nil:
		room, ok = findRoomByNumber(rooms, *patch.RoomNumber)
	default:
		room, ok = findRoom(rooms, booking.RoomID)
	}
	if !ok {
		return models.BookingDetails{}, apperr.NotFoundf("room not found")
	}

	if patch.CheckIn != nil {
		booking.CheckIn = *patch.CheckIn
	}
	if patch.CheckOut != nil {
		booking.CheckOut = *patch.CheckOut
	}

	datesTouched := patch.CheckIn != nil || patch.CheckOut != nil
	roomTouched := room.ID != oldRoomID

	if datesTouched && !booking.CheckOut.After(booking.CheckIn) {
		return models.BookingDetails{}, apperr.Validationf("check-out must be after check-in")
	}

	if patch.GuestCount != nil {
		booking.GuestCount = *patch.GuestCount
	}
	if roomTouched || patch.GuestCount != nil {
		if booking.GuestCount > room.Capacity {
			return models.BookingDetails{}, apperr.Validationf("room %s holds at most %d guest(s)", room.Number, room.Capacity)
		}
	}

	if datesTouched || roomTouched {
		if colliding, found := availability.FindConflict(room.ID, booking.CheckIn, booking.CheckOut, bookings, booking.ID); found {
			other, _ := findGuest(guests, colliding.GuestID)
			return models.BookingDetails{}, apperr.Conflictf("room %s is already booked from %s to %s (%s)",
				room.Number, formatDate(colliding.CheckIn), formatDate(colliding.CheckOut), other.Name)
		}
	}

	if patch.Status != nil {
		if !models.IsValidBookingStatus(*patch.Status) {
			return models.BookingDetails{}, apperr.Validationf("invalid booking status: %s", *patch.Status)
		}
		booking.Status = *patch.Status
	}
	if patch.Rate != nil {
		booking.Rate = *patch.Rate
	}
	if patch.Rate != nil || datesTouched {
		booking.Total = booking.Rate * float64(availability.Nights(booking.CheckIn, booking.CheckOut))
	}
	applyString(&booking.Notes, patch.Notes)

	booking.RoomID = room.ID
	booking.RoomNumber = room.Number
	booking.UpdatedAt = time.Now()

	bookings[idx] = booking
	if err := s.data.SaveBookings(ctx, bookings); err != nil {
		return models.BookingDetails{}, err
	}

	if roomTouched {
		if err := s.refreshRoomStatus(ctx, oldRoomID); err != nil {
			s.logger.Error().Err(err).Str("room_id", oldRoomID).Msg("refresh room status error")
		}
	}
	if err := s.refreshRoomStatus(ctx, room.ID); err != nil {
		s.logger.Error().Err(err).Str("room_id", room.ID).Msg("refresh room status error")
	}

	s.publishBookingEvent(events.EventBookingUpdated, booking)
	s.enqueueExport(ctx, "booking updated")

	details, err := s.join(ctx, []models.Booking{booking})
	if err != nil {
		return models.BookingDetails{}, err
	}
	return details[0], nil
}

func (s *BookingService) Delete(ctx context.Context, id string) error {
	bookings, err := s.data.Bookings(ctx)
	if err != nil {
		return err
	}

	idx := bookingIndex(bookings, id)
	if idx < 0 {
		return apperr.NotFoundf("booking not found")
	}
	deleted := bookings[idx]

	bookings = append(bookings[:idx], bookings[idx+1:]...)
	if err := s.data.SaveBookings(ctx, bookings); err != nil {
		return err
	}

	if err := s.refreshRoomStatus(ctx, deleted.RoomID); err != nil {
		s.logger.Error().Err(err).Str("room_id", deleted.RoomID).Msg("refresh room status error")
	}

	s.publishBookingEvent(events.EventBookingDeleted, deleted)
	s.enqueueExport(ctx, "booking deleted")

	s.logger.Info().Str("booking_id", id).Msg("booking deleted")
	return nil
}

// refreshRoomStatus recomputes and persists one room's derived status,
// publishing a room_status_changed event when it actually changed.
func (s *BookingService) refreshRoomStatus(ctx context.Context, roomID string) error {
	rooms, err := s.data.Rooms(ctx)
	if err != nil {
		return err
	}
	idx := roomIndex(rooms, roomID)
	if idx < 0 {
		return nil
	}

	bookings, err := s.data.Bookings(ctx)
	if err != nil {
		return err
	}

	oldStatus := rooms[idx].Status
	rooms[idx].Status = availability.ComputeRoomStatus(rooms[idx], bookings, time.Now())
	if err := s.data.SaveRooms(ctx, rooms); err != nil {
		return err
	}

	if rooms[idx].Status != oldStatus {
		if err := s.bus.PublishJSON(events.EventRoomStatusChanged, events.RoomStatusPayload{
			RoomID:     rooms[idx].ID,
			RoomNumber: rooms[idx].Number,
			OldStatus:  oldStatus,
			NewStatus:  rooms[idx].Status,
		}); err != nil {
			s.logger.Error().Err(err).Str("room_id", roomID).Msg("publish event error")
		}
	}

	return nil
}

func (s *BookingService) join(ctx context.Context, bookings []models.Booking) ([]models.BookingDetails, error) {
	guests, err := s.data.Guests(ctx)
	if err != nil {
		return nil, err
	}
	rooms, err := s.data.Rooms(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]models.BookingDetails, 0, len(bookings))
	for _, b := range bookings {
		d := models.BookingDetails{Booking: b}
		if g, ok := findGuest(guests, b.GuestID); ok {
			d.Guest = &g
		}
		if r, ok := findRoom(rooms, b.RoomID); ok {
			d.Room = &r
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *BookingService) publishBookingEvent(eventType string, b models.Booking) {
	if err := s.bus.PublishJSON(eventType, events.BookingEventPayload{
		BookingID:  b.ID,
		GuestID:    b.GuestID,
		RoomID:     b.RoomID,
		RoomNumber: b.RoomNumber,
		Status:     b.Status,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Total:      b.Total,
	}); err != nil {
		s.logger.Error().Err(err).Str("booking_id", b.ID).Msg("publish event error")
	}
}

func (s *BookingService) enqueueExport(ctx context.Context, reason string) {
	if s.exporter == nil {
		return
	}
	if err := s.exporter.EnqueueExport(ctx, reason); err != nil {
		s.logger.Error().Err(err).Str("reason", reason).Msg("enqueue export error")
	}
}

func bookingIndex(bookings []models.Booking, id string) int {
	for i, b := range bookings {
		if b.ID == id {
			return i
		}
	}
	return -1
}
