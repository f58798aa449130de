package request

import "strings"

// CreateBookingRequest field order is the order validation reports in.
type CreateBookingRequest struct {
	Name     string   `json:"name" validate:"required,min=2"`
	Email    string   `json:"email" validate:"required,booking_email"`
	Service  string   `json:"service" validate:"required"`
	Date     string   `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string   `json:"time" validate:"required,datetime=15:04"`
	Price    *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Phone    string   `json:"phone,omitempty"`
	Notes    string   `json:"notes,omitempty"`
	Timezone string   `json:"timezone,omitempty"`
}

// Normalize trims surrounding whitespace from every text field.
func (r *CreateBookingRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Service = strings.TrimSpace(r.Service)
	r.Date = strings.TrimSpace(r.Date)
	r.Time = strings.TrimSpace(r.Time)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Notes = strings.TrimSpace(r.Notes)
	r.Timezone = strings.TrimSpace(r.Timezone)
}

type UpdateBookingRequest struct {
	ID     string  `json:"id" validate:"required"`
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

type ListBookingsRequest struct {
	Date  string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Limit int    `json:"limit,omitempty" validate:"gte=0"`
}

type AvailabilityRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Timezone string `json:"tz,omitempty"`
}
