// Package availability holds the pure rules that derive a room's status
// from its manual flags and bookings, and detect date-range conflicts.
package availability

import (
	"math"
	"time"

	"pousada/internal/models"
)

// ComputeRoomStatus derives the room status as of the given instant.
// Manual flags take priority over date-derived occupancy, so a blocked
// room reports BLOCKED even while booked.
func ComputeRoomStatus(room models.Room, bookings []models.Booking, asOf time.Time) string {
	if room.Blocked {
		return models.RoomBlocked
	}
	if room.Maintenance {
		return models.RoomMaintenance
	}
	if room.Cleaning {
		return models.RoomCleaning
	}

	for _, b := range bookings {
		if b.RoomID != room.ID || models.IsTerminalStatus(b.Status) {
			continue
		}
		start := StartOfDay(b.CheckIn)
		end := EndOfDay(b.CheckOut)
		if !asOf.Before(start) && !asOf.After(end) {
			return models.RoomOccupied
		}
	}

	return models.RoomAvailable
}

// FindConflict returns the first non-terminal booking for roomID, other than
// excludeID, whose [checkIn, checkOut) interval overlaps the requested range.
// Overlap uses half-open semantics (a < d && c < b), so back-to-back
// bookings sharing a checkout/checkin day do not conflict.
func FindConflict(roomID string, checkIn, checkOut time.Time, bookings []models.Booking, excludeID string) (models.Booking, bool) {
	for _, b := range bookings {
		if b.ID == excludeID || b.RoomID != roomID || models.IsTerminalStatus(b.Status) {
			continue
		}
		if checkIn.Before(b.CheckOut) && b.CheckIn.Before(checkOut) {
			return b, true
		}
	}
	return models.Booking{}, false
}

// HasConflict is the boolean view of FindConflict.
func HasConflict(roomID string, checkIn, checkOut time.Time, bookings []models.Booking, excludeID string) bool {
	_, ok := FindConflict(roomID, checkIn, checkOut, bookings, excludeID)
	return ok
}

// Nights returns the billable night count: ceil of the absolute distance
// between the two instants in days.
func Nights(checkIn, checkOut time.Time) int {
	diff := checkOut.Sub(checkIn)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable millisecond of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
