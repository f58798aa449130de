package wire

import (
	"studio-booking/internal/adaptor"
	"studio-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(r chi.Router, adminHandler *adaptor.AdminHandler, log *zap.Logger) {
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.AdminCredential(log))

		r.Get("/", adminHandler.ListBookings)
		r.Patch("/", adminHandler.UpdateBooking)
		r.Delete("/", adminHandler.DeleteBooking)
	})
}
