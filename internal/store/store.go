// Package store persists the three entity collections as whole JSON
// documents. Every write replaces the full collection; last writer wins.
package store

import "context"

// Collection keys. The prefix keeps the three collections grouped when
// they share a backend with other data.
const (
	CollectionGuests   = "pousada_guests"
	CollectionRooms    = "pousada_rooms"
	CollectionBookings = "pousada_bookings"
)

// Store is the persistence collaborator. An absent collection reads as
// empty; implementations must not fail on first access.
type Store interface {
	Read(ctx context.Context, collection string) ([]byte, error)
	Write(ctx context.Context, collection string, data []byte) error
}
