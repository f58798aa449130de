package adaptor

import (
	"errors"
	"net/http"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/usecase"
	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Slot    *SlotHandler
	Booking *BookingHandler
	Admin   *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Slot:    NewSlotHandler(service.Slot, log),
		Booking: NewBookingHandler(service.Booking, log),
		Admin:   NewAdminHandler(service.Admin, log),
	}
}

// handleServiceError maps the service error taxonomy onto HTTP responses.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	var validationErr *entity.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed",
			zap.String("field", validationErr.Field),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, validationErr.Error(), map[string]string{
			validationErr.Field: validationErr.Message,
		})

	case errors.Is(err, entity.ErrSlotConflict):
		log.Warn(operation+" failed - slot taken", zap.String("operation", operation))
		utils.ResponseConflict(w, "That time slot is already booked.")

	case errors.Is(err, entity.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.String("operation", operation))
		utils.ResponseUnauthorized(w, "Unauthorized")

	case errors.Is(err, entity.ErrBookingNotFound):
		log.Warn(operation+" failed - not found", zap.String("operation", operation))
		utils.ResponseNotFound(w, "Booking not found")

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
