package models

import "time"

type Guest struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"taxId"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	ZipCode   string    `json:"zipCode,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GuestInput carries the fields accepted on guest creation.
type GuestInput struct {
	Name    string `json:"name" validate:"required"`
	TaxID   string `json:"taxId" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

// GuestPatch updates only the fields that are set.
type GuestPatch struct {
	Name    *string `json:"name,omitempty"`
	TaxID   *string `json:"taxId,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
	ZipCode *string `json:"zipCode,omitempty"`
}

// GuestWithBookings is a guest enriched with their bookings, check-in descending.
type GuestWithBookings struct {
	Guest
	Bookings []Booking `json:"bookings"`
}

// Pagination describes a page of list results.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// GuestPage is one page of the guest listing.
type GuestPage struct {
	Guests     []GuestWithBookings `json:"guests"`
	Pagination Pagination          `json:"pagination"`
}
