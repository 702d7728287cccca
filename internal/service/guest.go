package service

import (
	"context"
	"strings"
	"time"

	"pousada/internal/apperr"
	"pousada/internal/events"
	"pousada/internal/models"
	"pousada/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type GuestService struct {
	data   *store.Collections
	bus    *events.EventBus
	logger *zerolog.Logger
}

func NewGuestService(data *store.Collections, bus *events.EventBus, logger *zerolog.Logger) *GuestService {
	return &GuestService{data: data, bus: bus, logger: logger}
}

// List returns one page of guests matching the search text, each enriched
// with their most recent bookings. Matching is a case-insensitive substring
// over name and email, and a plain substring over the tax id.
func (s *GuestService) List(ctx context.Context, page, pageSize int, search string) (models.GuestPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = models.DefaultPageSize
	}

	guests, err := s.data.Guests(ctx)
	if err != nil {
		return models.GuestPage{}, err
	}
	bookings, err := s.data.Bookings(ctx)
	if err != nil {
		return models.GuestPage{}, err
	}

	filtered := guests
	if search != "" {
		filtered = []models.Guest{}
		for _, g := range guests {
			if containsFold(g.Name, search) || containsFold(g.Email, search) || strings.Contains(g.TaxID, search) {
				filtered = append(filtered, g)
			}
		}
	}

	enriched := make([]models.GuestWithBookings, 0, len(filtered))
	for _, g := range filtered {
		enriched = append(enriched, models.GuestWithBookings{
			Guest:    g,
			Bookings: bookingsForGuest(bookings, g.ID, models.RecentBookingsPerGuest),
		})
	}

	total := len(enriched)
	totalPages := (total + pageSize - 1) / pageSize
	skip := (page - 1) * pageSize
	if skip > total {
		skip = total
	}
	end := skip + pageSize
	if end > total {
		end = total
	}

	return models.GuestPage{
		Guests: enriched[skip:end],
		Pagination: models.Pagination{
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	}, nil
}

// Get returns the guest with all their bookings, check-in descending.
func (s *GuestService) Get(ctx context.Context, id string) (models.GuestWithBookings, error) {
	guests, err := s.data.Guests(ctx)
	if err != nil {
		return models.GuestWithBookings{}, err
	}
	guest, ok := findGuest(guests, id)
	if !ok {
		return models.GuestWithBookings{}, apperr.NotFoundf("guest not found")
	}

	bookings, err := s.data.Bookings(ctx)
	if err != nil {
		return models.GuestWithBookings{}, err
	}

	return models.GuestWithBookings{
		Guest:    guest,
		Bookings: bookingsForGuest(bookings, id, 0),
	}, nil
}

func (s *GuestService) Create(ctx context.Context, input models.GuestInput) (models.Guest, error) {
	if err := validate.Struct(input); err != nil {
		return models.Guest{}, apperr.Validationf("required fields: name, taxId, phone, email")
	}

	guests, err := s.data.Guests(ctx)
	if err != nil {
		return models.Guest{}, err
	}

	for _, g := range guests {
		if g.TaxID == input.TaxID || g.Email == input.Email {
			return models.Guest{}, apperr.Conflictf("tax id or email already registered")
		}
	}

	now := time.Now()
	guest := models.Guest{
		ID:        uuid.NewString(),
		Name:      input.Name,
		TaxID:     input.TaxID,
		Phone:     input.Phone,
		Email:     input.Email,
		Address:   input.Address,
		City:      input.City,
		State:     input.State,
		ZipCode:   input.ZipCode,
		CreatedAt: now,
		UpdatedAt: now,
	}

	guests = append(guests, guest)
	if err := s.data.SaveGuests(ctx, guests); err != nil {
		return models.Guest{}, err
	}

	s.logger.Info().Str("guest_id", guest.ID).Msg("guest created")
	return guest, nil
}

func (s *GuestService) Update(ctx context.Context, id string, patch models.GuestPatch) (models.Guest, error) {
	guests, err := s.data.Guests(ctx)
	if err != nil {
		return models.Guest{}, err
	}

	idx := -1
	for i, g := range guests {
		if g.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Guest{}, apperr.NotFoundf("guest not found")
	}

	if patch.TaxID != nil || patch.Email != nil {
		for _, g := range guests {
			if g.ID == id {
				continue
			}
			if (patch.TaxID != nil && g.TaxID == *patch.TaxID) || (patch.Email != nil && g.Email == *patch.Email) {
				return models.Guest{}, apperr.Conflictf("tax id or email already registered for another guest")
			}
		}
	}

	guest := guests[idx]
	applyString(&guest.Name, patch.Name)
	applyString(&guest.TaxID, patch.TaxID)
	applyString(&guest.Phone, patch.Phone)
	applyString(&guest.Email, patch.Email)
	applyString(&guest.Address, patch.Address)
	applyString(&guest.City, patch.City)
	applyString(&guest.State, patch.State)
	applyString(&guest.ZipCode, patch.ZipCode)
	guest.UpdatedAt = time.Now()

	guests[idx] = guest
	if err := s.data.SaveGuests(ctx, guests); err != nil {
		return models.Guest{}, err
	}

	return guest, nil
}

// Delete removes the guest and cascades the deletion to all their bookings.
// Room statuses are not recomputed here; they settle on the next room
// listing.
func (s *GuestService) Delete(ctx context.Context, id string) error {
	guests, err := s.data.Guests(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i, g := range guests {
		if g.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFoundf("guest not found")
	}
	name := guests[idx].Name

	bookings, err := s.data.Bookings(ctx)
	if err != nil {
		return err
	}

	remaining := []models.Booking{}
	cascaded := 0
	for _, b := range bookings {
		if b.GuestID == id {
			cascaded++
			continue
		}
		remaining = append(remaining, b)
	}

	guests = append(guests[:idx], guests[idx+1:]...)
	if err := s.data.SaveGuests(ctx, guests); err != nil {
		return err
	}
	if err := s.data.SaveBookings(ctx, remaining); err != nil {
		return err
	}

	if err := s.bus.PublishJSON(events.EventGuestDeleted, events.GuestEventPayload{
		GuestID:         id,
		Name:            name,
		CascadedBooking: cascaded,
	}); err != nil {
		s.logger.Error().Err(err).Str("guest_id", id).Msg("publish event error")
	}

	s.logger.Info().Str("guest_id", id).Int("cascaded_bookings", cascaded).Msg("guest deleted")
	return nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
