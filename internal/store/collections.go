package store

import (
	"context"
	"encoding/json"
	"fmt"

	"pousada/internal/models"
)

// Collections is the typed view over a Store. Reads deserialize the whole
// collection; saves serialize and write it back wholesale.
type Collections struct {
	store Store
}

func NewCollections(s Store) *Collections {
	return &Collections{store: s}
}

func readAll[T any](ctx context.Context, s Store, collection string) ([]T, error) {
	data, err := s.Read(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	if len(data) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func writeAll[T any](ctx context.Context, s Store, collection string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	if err := s.Write(ctx, collection, data); err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	return nil
}

func (c *Collections) Guests(ctx context.Context) ([]models.Guest, error) {
	return readAll[models.Guest](ctx, c.store, CollectionGuests)
}

func (c *Collections) SaveGuests(ctx context.Context, guests []models.Guest) error {
	return writeAll(ctx, c.store, CollectionGuests, guests)
}

func (c *Collections) Rooms(ctx context.Context) ([]models.Room, error) {
	return readAll[models.Room](ctx, c.store, CollectionRooms)
}

func (c *Collections) SaveRooms(ctx context.Context, rooms []models.Room) error {
	return writeAll(ctx, c.store, CollectionRooms, rooms)
}

func (c *Collections) Bookings(ctx context.Context) ([]models.Booking, error) {
	return readAll[models.Booking](ctx, c.store, CollectionBookings)
}

func (c *Collections) SaveBookings(ctx context.Context, bookings []models.Booking) error {
	return writeAll(ctx, c.store, CollectionBookings, bookings)
}
