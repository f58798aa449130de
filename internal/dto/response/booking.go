package response

import (
	"time"

	"studio-booking/internal/data/entity"
)

type BookingResponse struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Phone     *string              `json:"phone"`
	Notes     *string              `json:"notes"`
	Service   string               `json:"service"`
	Price     float64              `json:"price"`
	Date      string               `json:"date"`
	Time      string               `json:"time"`
	Timezone  *string              `json:"timezone"`
	Status    entity.BookingStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}

// CreateBookingResponse carries a warning when the booking was saved but
// the confirmation could not be sent.
type CreateBookingResponse struct {
	BookingResponse
	Warning string `json:"warning,omitempty"`
}

type AvailabilityResponse struct {
	Date     string        `json:"date"`
	Timezone string        `json:"timezone"`
	Slots    []entity.Slot `json:"slots"`
}

type DeleteBookingResponse struct {
	OK bool `json:"ok"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		Email:     b.Email,
		Phone:     b.Phone,
		Notes:     b.Notes,
		Service:   b.Service,
		Price:     b.Price,
		Date:      b.Date,
		Time:      b.Time,
		Timezone:  b.Timezone,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = BookingToResponse(b)
	}
	return out
}
