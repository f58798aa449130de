package usecase

import (
	"context"
	"time"

	"studio-booking/internal/data/cache"
	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/internal/dto/response"
	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

type SlotService interface {
	GetAvailability(ctx context.Context, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error)
}

type slotService struct {
	repo     repository.BookingRepository
	cache    cache.AvailabilityCache
	window   OperatingWindow
	location *time.Location
	now      func() time.Time
	log      *zap.Logger
}

func NewSlotService(
	repo repository.BookingRepository,
	availability cache.AvailabilityCache,
	studio utils.StudioConfig,
	log *zap.Logger,
) SlotService {
	return &slotService{
		repo:     repo,
		cache:    availability,
		window:   OperatingWindow{OpenHour: studio.OpenHour, CloseHour: studio.CloseHour},
		location: studio.Location(),
		now:      time.Now,
		log:      log.With(zap.String("service", "slot")),
	}
}

func (s *slotService) GetAvailability(ctx context.Context, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error) {
	if field, msg, failed := utils.ValidateFirst(req); failed {
		s.log.Warn("Availability validation failed", zap.String("field", field), zap.String("reason", msg))
		return nil, entity.NewValidationError(field, msg)
	}

	booked, err := s.bookedTimes(ctx, req.Date)
	if err != nil {
		return nil, err
	}

	loc := resolveLocation(req.Timezone, s.location)
	slots := CalculateSlots(req.Date, s.now().In(loc), s.window, booked)

	return &response.AvailabilityResponse{
		Date:     req.Date,
		Timezone: loc.String(),
		Slots:    slots,
	}, nil
}

// bookedTimes reads through the cache. Cache failures fall back to the
// store.
func (s *slotService) bookedTimes(ctx context.Context, date string) ([]string, error) {
	times, hit, err := s.cache.BookedTimes(ctx, date)
	if err != nil {
		s.log.Warn("Availability cache read failed", zap.Error(err), zap.String("date", date))
	}
	if hit {
		return times, nil
	}

	bookings, err := s.repo.FindAll(ctx, entity.BookingFilter{Date: date})
	if err != nil {
		s.log.Error("Failed to load bookings for date", zap.Error(err), zap.String("date", date))
		return nil, &entity.StoreError{Op: "load bookings for " + date, Err: err}
	}

	times = BookedTimes(bookings, date)
	if err := s.cache.SetBookedTimes(ctx, date, times); err != nil {
		s.log.Warn("Availability cache write failed", zap.Error(err), zap.String("date", date))
	}
	return times, nil
}
