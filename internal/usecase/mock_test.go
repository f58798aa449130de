package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"studio-booking/internal/data/cache"
	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type mockNotifier struct {
	SendFunc func(ctx context.Context, booking *entity.Booking) error
	calls    atomic.Int32
}

func (m *mockNotifier) SendConfirmation(ctx context.Context, booking *entity.Booking) error {
	m.calls.Add(1)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, booking)
	}
	return nil
}

// mockBookingRepo fails the test on any call whose func is unset.
type mockBookingRepo struct {
	t            *testing.T
	CreateFunc   func(ctx context.Context, booking *entity.Booking) error
	FindByIDFunc func(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindSlotFunc func(ctx context.Context, date, time string) (*entity.Booking, error)
	FindAllFunc  func(ctx context.Context, filter entity.BookingFilter) ([]*entity.Booking, error)
	UpdateFunc   func(ctx context.Context, id uuid.UUID, patch entity.BookingPatch) (*entity.Booking, error)
	DeleteFunc   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockBookingRepo) unexpected(method string) {
	m.t.Helper()
	m.t.Fatalf("unexpected store call: %s", method)
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	if m.CreateFunc == nil {
		m.unexpected("Create")
	}
	return m.CreateFunc(ctx, booking)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if m.FindByIDFunc == nil {
		m.unexpected("FindByID")
	}
	return m.FindByIDFunc(ctx, id)
}

func (m *mockBookingRepo) FindBySlot(ctx context.Context, date, time string) (*entity.Booking, error) {
	if m.FindSlotFunc == nil {
		m.unexpected("FindBySlot")
	}
	return m.FindSlotFunc(ctx, date, time)
}

func (m *mockBookingRepo) FindAll(ctx context.Context, filter entity.BookingFilter) ([]*entity.Booking, error) {
	if m.FindAllFunc == nil {
		m.unexpected("FindAll")
	}
	return m.FindAllFunc(ctx, filter)
}

func (m *mockBookingRepo) Update(ctx context.Context, id uuid.UUID, patch entity.BookingPatch) (*entity.Booking, error) {
	if m.UpdateFunc == nil {
		m.unexpected("Update")
	}
	return m.UpdateFunc(ctx, id, patch)
}

func (m *mockBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		m.unexpected("Delete")
	}
	return m.DeleteFunc(ctx, id)
}

var (
	testStudio = utils.StudioConfig{Timezone: "UTC", OpenHour: 9, CloseHour: 17}
	// Before every date used in these tests.
	testNow = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
)

func newMemoryRepo() repository.BookingRepository {
	return repository.NewMemoryBookingRepository(zap.NewNop())
}

func newTestBookingService(repo repository.BookingRepository, notifier Notifier) *bookingService {
	svc := NewBookingService(repo, notifier, cache.NewNopAvailabilityCache(), testStudio, zap.NewNop()).(*bookingService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func newTestSlotService(repo repository.BookingRepository, now time.Time) *slotService {
	svc := NewSlotService(repo, cache.NewNopAvailabilityCache(), testStudio, zap.NewNop()).(*slotService)
	svc.now = func() time.Time { return now }
	return svc
}
