package usecase

import (
	"context"
	"errors"
	"strings"

	"studio-booking/internal/data/cache"
	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/internal/dto/response"
	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

// AdminService manages bookings on behalf of staff. Every call carries its
// own credential; nothing is remembered between calls.
type AdminService interface {
	Authorize(credential string) error
	ListBookings(ctx context.Context, credential string, req *request.ListBookingsRequest) ([]response.BookingResponse, error)
	UpdateBooking(ctx context.Context, credential string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, credential string, id string) error
}

type adminService struct {
	repo   repository.BookingRepository
	cache  cache.AvailabilityCache
	config utils.AdminConfig
	log    *zap.Logger
}

func NewAdminService(
	repo repository.BookingRepository,
	availability cache.AvailabilityCache,
	config utils.AdminConfig,
	log *zap.Logger,
) AdminService {
	return &adminService{
		repo:   repo,
		cache:  availability,
		config: config,
		log:    log.With(zap.String("service", "admin")),
	}
}

// Authorize checks a credential without touching the store.
func (s *adminService) Authorize(credential string) error {
	return s.authorize(credential, "authorize")
}

func (s *adminService) authorize(credential, operation string) error {
	if utils.MatchSecret(credential, s.config.Password, s.config.PasswordHash) {
		return nil
	}
	s.log.Warn("Admin credential rejected", zap.String("operation", operation))
	return entity.ErrUnauthorized
}

func (s *adminService) ListBookings(ctx context.Context, credential string, req *request.ListBookingsRequest) ([]response.BookingResponse, error) {
	if err := s.authorize(credential, "list"); err != nil {
		return nil, err
	}

	if field, msg, failed := utils.ValidateFirst(req); failed {
		return nil, entity.NewValidationError(field, msg)
	}

	bookings, err := s.repo.FindAll(ctx, entity.BookingFilter{Date: req.Date, Limit: req.Limit})
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err), zap.String("date", req.Date), zap.Int("limit", req.Limit))
		return nil, &entity.StoreError{Op: "list bookings", Err: err}
	}

	s.log.Info("Admin bookings retrieved",
		zap.String("date", req.Date),
		zap.Int("limit", req.Limit),
		zap.Int("count", len(bookings)),
	)

	return response.BookingsToResponse(bookings), nil
}

func (s *adminService) UpdateBooking(ctx context.Context, credential string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if err := s.authorize(credential, "update"); err != nil {
		return nil, err
	}

	if field, msg, failed := utils.ValidateFirst(req); failed {
		return nil, entity.NewValidationError(field, msg)
	}

	patch := entity.BookingPatch{Notes: req.Notes}
	if req.Status != nil {
		status := entity.BookingStatus(*req.Status)
		if !status.Valid() {
			return nil, entity.NewValidationError("status", "must be one of: "+statusList())
		}
		patch.Status = &status
	}
	if patch.Empty() {
		return nil, entity.NewValidationError("status", "or notes is required")
	}

	// An id that cannot be parsed cannot match any record.
	id, ok := entity.BookingID(req.ID)
	if !ok {
		return nil, entity.ErrBookingNotFound
	}

	booking, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.log.Error("Failed to update booking", zap.Error(err), zap.String("booking_id", req.ID))
		return nil, &entity.StoreError{Op: "update booking", Err: err}
	}
	if booking == nil {
		return nil, entity.ErrBookingNotFound
	}

	s.log.Info("Booking updated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("status", string(booking.Status)),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *adminService) DeleteBooking(ctx context.Context, credential string, rawID string) error {
	if err := s.authorize(credential, "delete"); err != nil {
		return err
	}

	if rawID == "" {
		return entity.NewValidationError("id", "is required")
	}
	id, ok := entity.BookingID(rawID)
	if !ok {
		return entity.ErrBookingNotFound
	}

	// Needed to know which date's availability to invalidate.
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", rawID))
		return &entity.StoreError{Op: "find booking", Err: err}
	}
	if booking == nil {
		return entity.ErrBookingNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrBookingNotFound) {
			return entity.ErrBookingNotFound
		}
		s.log.Error("Failed to delete booking", zap.Error(err), zap.String("booking_id", rawID))
		return &entity.StoreError{Op: "delete booking", Err: err}
	}

	if err := s.cache.Invalidate(ctx, booking.Date); err != nil {
		s.log.Warn("Availability cache invalidate failed", zap.Error(err), zap.String("date", booking.Date))
	}

	s.log.Info("Booking deleted",
		zap.String("booking_id", rawID),
		zap.String("date", booking.Date),
		zap.String("time", booking.Time),
	)
	return nil
}

func statusList() string {
	names := make([]string, len(entity.BookingStatuses))
	for i, s := range entity.BookingStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
