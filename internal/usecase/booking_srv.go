package usecase

import (
	"context"
	"errors"
	"time"

	"studio-booking/internal/data/cache"
	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/internal/dto/response"
	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

// NotificationWarning is attached to a saved booking whose confirmation
// could not be delivered.
const NotificationWarning = "Booking saved but confirmation email failed."

// Notifier delivers a booking confirmation.
type Notifier interface {
	SendConfirmation(ctx context.Context, booking *entity.Booking) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.CreateBookingResponse, error)
	ListBookings(ctx context.Context, date string) ([]response.BookingResponse, error)
}

type bookingService struct {
	repo     repository.BookingRepository
	notifier Notifier
	cache    cache.AvailabilityCache
	window   OperatingWindow
	location *time.Location
	now      func() time.Time
	log      *zap.Logger
}

func NewBookingService(
	repo repository.BookingRepository,
	notifier Notifier,
	availability cache.AvailabilityCache,
	studio utils.StudioConfig,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:     repo,
		notifier: notifier,
		cache:    availability,
		window:   OperatingWindow{OpenHour: studio.OpenHour, CloseHour: studio.CloseHour},
		location: studio.Location(),
		now:      time.Now,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.CreateBookingResponse, error) {
	// A started create runs to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	// 1. Validate
	req.Normalize()
	if field, msg, failed := utils.ValidateFirst(req); failed {
		s.log.Warn("Create booking validation failed", zap.String("field", field), zap.String("reason", msg))
		return nil, entity.NewValidationError(field, msg)
	}

	slotTime, _ := canonicalTime(req.Time)
	if err := s.checkSlotOffered(req.Date, slotTime, req.Timezone); err != nil {
		s.log.Warn("Create booking rejected slot",
			zap.String("date", req.Date),
			zap.String("time", slotTime),
			zap.Error(err),
		)
		return nil, err
	}

	// 2. Authoritative availability check
	existing, err := s.repo.FindBySlot(ctx, req.Date, slotTime)
	if err != nil {
		s.log.Error("Failed to check slot", zap.Error(err), zap.String("date", req.Date), zap.String("time", slotTime))
		return nil, &entity.StoreError{Op: "check slot", Err: err}
	}
	if existing != nil {
		s.log.Warn("Slot already booked", zap.String("date", req.Date), zap.String("time", slotTime))
		return nil, entity.ErrSlotConflict
	}

	// 3. Insert; the store has the final word on uniqueness
	price := 0.0
	if req.Price != nil {
		price = *req.Price
	}
	booking := &entity.Booking{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    utils.OptionalString(req.Phone),
		Notes:    utils.OptionalString(req.Notes),
		Service:  req.Service,
		Price:    price,
		Date:     req.Date,
		Time:     slotTime,
		Timezone: utils.OptionalString(req.Timezone),
		Status:   entity.BookingStatusPending,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, entity.ErrSlotTaken) {
			s.log.Warn("Slot taken by concurrent booking", zap.String("date", req.Date), zap.String("time", slotTime))
			return nil, entity.ErrSlotConflict
		}
		s.log.Error("Failed to create booking", zap.Error(err), zap.String("date", req.Date), zap.String("time", slotTime))
		return nil, &entity.StoreError{Op: "create booking", Err: err}
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("service", booking.Service),
		zap.String("date", booking.Date),
		zap.String("time", booking.Time),
	)

	if err := s.cache.Invalidate(ctx, booking.Date); err != nil {
		s.log.Warn("Availability cache invalidate failed", zap.Error(err), zap.String("date", booking.Date))
	}

	// 4. Best-effort confirmation
	resp := &response.CreateBookingResponse{BookingResponse: response.BookingToResponse(booking)}
	if err := s.notify(ctx, booking); err != nil {
		s.log.Warn("Booking saved but confirmation failed",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		resp.Warning = NotificationWarning
	}

	return resp, nil
}

func (s *bookingService) ListBookings(ctx context.Context, date string) ([]response.BookingResponse, error) {
	if date != "" {
		if _, err := time.Parse(dateLayout, date); err != nil {
			return nil, entity.NewValidationError("date", "must match the format "+dateLayout)
		}
	}

	bookings, err := s.repo.FindAll(ctx, entity.BookingFilter{Date: date})
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err), zap.String("date", date))
		return nil, &entity.StoreError{Op: "list bookings", Err: err}
	}

	return response.BookingsToResponse(bookings), nil
}

// checkSlotOffered applies the slot calculator to a single requested
// slot: it must exist in the operating window and must not have started.
func (s *bookingService) checkSlotOffered(date, slotTime, timezone string) error {
	if !s.window.Contains(slotTime) {
		return entity.NewValidationError("time", "is outside studio hours")
	}

	now := s.now().In(resolveLocation(timezone, s.location))
	for _, slot := range CalculateSlots(date, now, s.window, nil) {
		if slot.Time == slotTime && slot.State == entity.SlotPast {
			return entity.NewValidationError("time", "has already passed")
		}
	}
	return nil
}

// notify converts a panic or error from the sender into a NotificationError.
func (s *bookingService) notify(ctx context.Context, booking *entity.Booking) (err error) {
	if s.notifier == nil {
		return &entity.NotificationError{Recipient: booking.Email, Err: errors.New("no notifier configured")}
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Notifier panicked", zap.Any("panic", r), zap.String("booking_id", booking.ID.String()))
			err = &entity.NotificationError{Recipient: booking.Email, Err: errors.New("notifier panicked")}
		}
	}()

	if sendErr := s.notifier.SendConfirmation(ctx, booking); sendErr != nil {
		return &entity.NotificationError{Recipient: booking.Email, Err: sendErr}
	}
	return nil
}
