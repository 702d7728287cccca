package models

import "time"

type Room struct {
	ID          string    `json:"id"`
	Number      string    `json:"number"`
	Type        string    `json:"type"`
	Floor       int       `json:"floor"`
	Capacity    int       `json:"capacity"`
	NightlyRate *float64  `json:"nightlyRate"`
	Status      string    `json:"status"`
	Cleaning    bool      `json:"cleaning"`
	Maintenance bool      `json:"maintenance"`
	Blocked     bool      `json:"blocked"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RoomInput carries the fields accepted on room creation.
type RoomInput struct {
	Number      string   `json:"number" validate:"required"`
	Type        string   `json:"type"`
	Floor       int      `json:"floor"`
	Capacity    int      `json:"capacity"`
	NightlyRate *float64 `json:"nightlyRate"`
}

// RoomPatch updates only the fields that are set. Flags go through RoomFlagsPatch.
type RoomPatch struct {
	Number      *string  `json:"number,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Floor       *int     `json:"floor,omitempty"`
	Capacity    *int     `json:"capacity,omitempty"`
	NightlyRate *float64 `json:"nightlyRate,omitempty"`
}

// RoomFlagsPatch sets only the provided manual flags.
type RoomFlagsPatch struct {
	Cleaning    *bool `json:"cleaning,omitempty"`
	Maintenance *bool `json:"maintenance,omitempty"`
	Blocked     *bool `json:"blocked,omitempty"`
}
