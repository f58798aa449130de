package usecase

import (
	"studio-booking/internal/data/cache"
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Slot    SlotService
	Booking BookingService
	Admin   AdminService
}

func NewService(
	repo *repository.Repository,
	notifier Notifier,
	availability cache.AvailabilityCache,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Slot:    NewSlotService(repo.Booking, availability, config.Studio, log),
		Booking: NewBookingService(repo.Booking, notifier, availability, config.Studio, log),
		Admin:   NewAdminService(repo.Booking, availability, config.Admin, log),
	}
}
