package adaptor

import (
	"encoding/json"
	"net/http"

	"studio-booking/internal/dto/request"
	"studio-booking/internal/dto/response"
	"studio-booking/internal/usecase"
	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

func credential(r *http.Request) string {
	c, _ := utils.GetCredentialFromContext(r.Context())
	return c
}

// ListBookings handles GET /api/admin/bookings?date=&limit=
func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListBookingsRequest{
		Date:  query.Get("date"),
		Limit: utils.ParseInt(query.Get("limit"), 0),
	}

	bookings, err := h.service.ListBookings(r.Context(), credential(r), req)
	if err != nil {
		handleServiceError(h.log, w, err, "admin list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// UpdateBooking handles PATCH /api/admin/bookings
func (h *AdminHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Credential failures still win over a malformed body.
		if authErr := h.service.Authorize(credential(r)); authErr != nil {
			handleServiceError(h.log, w, authErr, "admin update booking")
			return
		}
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.UpdateBooking(r.Context(), credential(r), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "admin update booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// DeleteBooking handles DELETE /api/admin/bookings?id=
func (h *AdminHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteBooking(r.Context(), credential(r), r.URL.Query().Get("id")); err != nil {
		handleServiceError(h.log, w, err, "admin delete booking")
		return
	}

	utils.ResponseSuccess(w, "success", response.DeleteBookingResponse{OK: true})
}
