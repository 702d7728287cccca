// Package service implements the CRUD façades over the entity store.
// Every operation re-reads the collections it needs, mutates an in-memory
// copy, recomputes derived fields and writes the whole collection back.
// The store has no transactions; last writer wins. This is acceptable for
// the single-writer deployment this core targets.
package service

import (
	"sort"
	"strings"
	"time"

	"pousada/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// formatDate renders a date for human-readable error messages.
func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// sortByCheckInDesc orders bookings newest check-in first.
func sortByCheckInDesc(bookings []models.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CheckIn.After(bookings[j].CheckIn)
	})
}

// bookingsForGuest returns the guest's bookings sorted check-in descending,
// truncated to limit when limit > 0.
func bookingsForGuest(bookings []models.Booking, guestID string, limit int) []models.Booking {
	out := []models.Booking{}
	for _, b := range bookings {
		if b.GuestID == guestID {
			out = append(out, b)
		}
	}
	sortByCheckInDesc(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func findGuest(guests []models.Guest, id string) (models.Guest, bool) {
	for _, g := range guests {
		if g.ID == id {
			return g, true
		}
	}
	return models.Guest{}, false
}

func findRoom(rooms []models.Room, id string) (models.Room, bool) {
	for _, r := range rooms {
		if r.ID == id {
			return r, true
		}
	}
	return models.Room{}, false
}

func findRoomByNumber(rooms []models.Room, number string) (models.Room, bool) {
	for _, r := range rooms {
		if r.Number == number {
			return r, true
		}
	}
	return models.Room{}, false
}
