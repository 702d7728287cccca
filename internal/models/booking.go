package models

import "time"

type Booking struct {
	ID         string    `json:"id"`
	GuestID    string    `json:"guestId"`
	RoomID     string    `json:"roomId"`
	RoomNumber string    `json:"roomNumber"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	Status     string    `json:"status"`
	Rate       float64   `json:"rate"`
	Total      float64   `json:"total"`
	GuestCount int       `json:"guestCount"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BookingInput carries the fields accepted on booking creation.
// Either RoomID or RoomNumber must resolve a room.
type BookingInput struct {
	GuestID    string     `json:"guestId" validate:"required"`
	RoomID     string     `json:"roomId"`
	RoomNumber string     `json:"roomNumber"`
	CheckIn    *time.Time `json:"checkIn" validate:"required"`
	CheckOut   *time.Time `json:"checkOut" validate:"required"`
	Rate       *float64   `json:"rate" validate:"required"`
	Status     string     `json:"status"`
	GuestCount int        `json:"guestCount"`
	Notes      string     `json:"notes"`
}

// BookingPatch updates only the fields that are set.
type BookingPatch struct {
	GuestID    *string    `json:"guestId,omitempty"`
	RoomID     *string    `json:"roomId,omitempty"`
	RoomNumber *string    `json:"roomNumber,omitempty"`
	CheckIn    *time.Time `json:"checkIn,omitempty"`
	CheckOut   *time.Time `json:"checkOut,omitempty"`
	Status     *string    `json:"status,omitempty"`
	Rate       *float64   `json:"rate,omitempty"`
	GuestCount *int       `json:"guestCount,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}

// BookingDetails is a booking joined with its guest and room snapshots at read time.
type BookingDetails struct {
	Booking
	Guest *Guest `json:"guest,omitempty"`
	Room  *Room  `json:"room,omitempty"`
}

// BookingFilter narrows booking listings. Zero values mean "no filter".
type BookingFilter struct {
	Status   string
	DateFrom time.Time
	DateTo   time.Time
}
