package service

import (
	"context"
	"sort"
	"time"

	"pousada/internal/apperr"
	"pousada/internal/availability"
	"pousada/internal/events"
	"pousada/internal/models"
	"pousada/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type RoomService struct {
	data   *store.Collections
	bus    *events.EventBus
	logger *zerolog.Logger
}

func NewRoomService(data *store.Collections, bus *events.EventBus, logger *zerolog.Logger) *RoomService {
	return &RoomService{data: data, bus: bus, logger: logger}
}

// List filters rooms by substring on number/type and by minimum capacity.
// As a side effect it recomputes and persists the derived status of every
// room in the collection, filtered or not, so stale statuses self-heal.
// Results are sorted by room number, lexicographically.
func (s *RoomService) List(ctx context.Context, search string, minCapacity int) ([]models.Room, error) {
	rooms, err := s.data.Rooms(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.data.Bookings(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range rooms {
		rooms[i].Status = availability.ComputeRoomStatus(rooms[i], bookings, now)
	}
	if err := s.data.SaveRooms(ctx, rooms); err != nil {
		return nil, err
	}

	filtered := []models.Room{}
	for _, r := range rooms {
		if search != "" && !containsFold(r.Number, search) && !containsFold(r.Type, search) {
			continue
		}
		if minCapacity > 0 && r.Capacity < minCapacity {
			continue
		}
		filtered = append(filtered, r)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Number < filtered[j].Number
	})

	return filtered, nil
}

// ListAvailable returns rooms bookable for the whole [checkIn, checkOut)
// range: not blocked, not under maintenance, capacity-sufficient and free
// of conflicting bookings.
func (s *RoomService) ListAvailable(ctx context.Context, checkIn, checkOut time.Time, minCapacity int) ([]models.Room, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return nil, apperr.Validationf("checkIn and checkOut are required")
	}

	rooms, err := s.data.Rooms(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.data.Bookings(ctx)
	if err != nil {
		return nil, err
	}

	available := []models.Room{}
	for _, r := range rooms {
		if r.Blocked || r.Maintenance {
			continue
		}
		if minCapacity > 0 && r.Capacity < minCapacity {
			continue
		}
		if availability.HasConflict(r.ID, checkIn, checkOut, bookings, "") {
			continue
		}
		available = append(available, r)
	}

	return available, nil
}

func (s *RoomService) Create(ctx context.Context, input models.RoomInput) (models.Room, error) {
	if err := validate.Struct(input); err != nil {
		return models.Room{}, apperr.Validationf("required field: number")
	}

	rooms, err := s.data.Rooms(ctx)
	if err != nil {
		return models.Room{}, err
	}

	if _, exists := findRoomByNumber(rooms, input.Number); exists {
		return models.Room{}, apperr.Conflictf("a room numbered %s already exists", input.Number)
	}

	capacity := input.Capacity
	if capacity <= 0 {
		capacity = models.DefaultRoomCapacity
	}

	now := time.Now()
	room := models.Room{
		ID:          uuid.NewString(),
		Number:      input.Number,
		Type:        input.Type,
		Floor:       input.Floor,
		Capacity:    capacity,
		NightlyRate: input.NightlyRate,
		Status:      models.RoomAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	rooms = append(rooms, room)
	if err := s.data.SaveRooms(ctx, rooms); err != nil {
		return models.Room{}, err
	}

	s.logger.Info().Str("room_id", room.ID).Str("number", room.Number).Msg("room created")
	return room, nil
}

// Update merges the patch and recomputes the status of the patched room
// only; other rooms are left as they are until the next listing.
func (s *RoomService) Update(ctx context.Context, id string, patch models.RoomPatch) (models.Room, error) {
	rooms, err := s.data.Rooms(ctx)
	if err != nil {
		return models.Room{}, err
	}

	idx := roomIndex(rooms, id)
	if idx < 0 {
		return models.Room{}, apperr.NotFoundf("room not found")
	}

	bookings, err := s.data.Bookings(ctx)
	if err != nil {
		return models.Room{}, err
	}

	room := rooms[idx]
	applyString(&room.Number, patch.Number)
	applyString(&room.Type, patch.Type)
	if patch.Floor != nil {
		room.Floor = *patch.Floor
	}
	if patch.Capacity != nil {
		room.Capacity = *patch.Capacity
	}
	if patch.NightlyRate != nil {
		room.NightlyRate = patch.NightlyRate
	}
	room.Status = availability.ComputeRoomStatus(room, bookings, time.Now())
	room.UpdatedAt = time.Now()

	rooms[idx] = room
	if err := s.data.SaveRooms(ctx, rooms); err != nil {
		return models.Room{}, err
	}

	return room, nil
}

// UpdateFlags sets only the provided manual flags and recomputes the status.
func (s *RoomService) UpdateFlags(ctx context.Context, id string, patch models.RoomFlagsPatch) (models.Room, error) {
	rooms, err := s.data.Rooms(ctx)
	if err != nil {
		return models.Room{}, err
	}

	idx := roomIndex(rooms, id)
	if idx < 0 {
		return models.Room{}, apperr.NotFoundf("room not found")
	}

	bookings, err := s.data.Bookings(ctx)
	if err != nil {
		return models.Room{}, err
	}

	room := rooms[idx]
	if patch.Cleaning != nil {
		room.Cleaning = *patch.Cleaning
	}
	if patch.Maintenance != nil {
		room.Maintenance = *patch.Maintenance
	}
	if patch.Blocked != nil {
		room.Blocked = *patch.Blocked
	}
	room.UpdatedAt = time.Now()

	oldStatus := room.Status
	room.Status = availability.ComputeRoomStatus(room, bookings, time.Now())

	rooms[idx] = room
	if err := s.data.SaveRooms(ctx, rooms); err != nil {
		return models.Room{}, err
	}

	if room.Status != oldStatus {
		if err := s.bus.PublishJSON(events.EventRoomStatusChanged, events.RoomStatusPayload{
			RoomID:     room.ID,
			RoomNumber: room.Number,
			OldStatus:  oldStatus,
			NewStatus:  room.Status,
		}); err != nil {
			s.logger.Error().Err(err).Str("room_id", room.ID).Msg("publish event error")
		}
	}

	return room, nil
}

// Delete refuses to remove a room that still has active bookings.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	rooms, err := s.data.Rooms(ctx)
	if err != nil {
		return err
	}

	idx := roomIndex(rooms, id)
	if idx < 0 {
		return apperr.NotFoundf("room not found")
	}

	bookings, err := s.data.Bookings(ctx)
	if err != nil {
		return err
	}

	active := 0
	for _, b := range bookings {
		if b.RoomID == id && (b.Status == models.BookingConfirmed || b.Status == models.BookingInProgress) {
			active++
		}
	}
	if active > 0 {
		return apperr.Conflictf("cannot delete: room has %d active booking(s)", active)
	}

	rooms = append(rooms[:idx], rooms[idx+1:]...)
	if err := s.data.SaveRooms(ctx, rooms); err != nil {
		return err
	}

	s.logger.Info().Str("room_id", id).Msg("room deleted")
	return nil
}

func roomIndex(rooms []models.Room, id string) int {
	for i, r := range rooms {
		if r.ID == id {
			return i
		}
	}
	return -1
}
