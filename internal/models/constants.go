package models

// Booking statuses. Any status may be set through an update; the engine
// deliberately does not enforce a transition graph.
const (
	BookingConfirmed  = "CONFIRMED"
	BookingInProgress = "IN_PROGRESS"
	BookingCancelled  = "CANCELLED"
	BookingNoShow     = "NO_SHOW"
	BookingCompleted  = "COMPLETED"
)

// Derived room statuses, in priority order (manual flags win over occupancy).
const (
	RoomAvailable   = "AVAILABLE"
	RoomOccupied    = "OCCUPIED"
	RoomCleaning    = "CLEANING"
	RoomMaintenance = "MAINTENANCE"
	RoomBlocked     = "BLOCKED"
)

// BookingStatuses is the full domain of booking statuses.
var BookingStatuses = []string{
	BookingConfirmed,
	BookingInProgress,
	BookingCancelled,
	BookingNoShow,
	BookingCompleted,
}

// TerminalStatuses are excluded from conflict and occupancy checks.
var TerminalStatuses = map[string]bool{
	BookingCancelled: true,
	BookingNoShow:    true,
	BookingCompleted: true,
}

// IsTerminalStatus reports whether a booking status no longer holds the room.
func IsTerminalStatus(status string) bool {
	return TerminalStatuses[status]
}

// IsValidBookingStatus reports whether status belongs to the booking domain.
func IsValidBookingStatus(status string) bool {
	for _, s := range BookingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

const (
	// DefaultRoomCapacity is assumed when a room is created without one.
	DefaultRoomCapacity = 2

	// DefaultGuestCount is assumed when a booking does not specify one.
	DefaultGuestCount = 1

	// DefaultPageSize for guest listing.
	DefaultPageSize = 10

	// RecentBookingsPerGuest limits the bookings attached to each guest in list results.
	RecentBookingsPerGuest = 5

	// DashboardListSize limits upcoming and recent booking lists on the dashboard.
	DashboardListSize = 5

	// WorkerQueueSize is the export worker queue capacity.
	WorkerQueueSize = 100
)
