package wire

import (
	"studio-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, slotHandler *adaptor.SlotHandler) {
	// GET /api/slots - Server-derived availability for a date
	r.Get("/api/slots", slotHandler.GetAvailability)

	r.Route("/api/bookings", func(r chi.Router) {
		// GET /api/bookings - Bookings, optionally for one date
		r.Get("/", bookingHandler.ListBookings)

		// POST /api/bookings - Create a booking
		r.Post("/", bookingHandler.CreateBooking)
	})
}
