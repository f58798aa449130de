package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"studio-booking/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type memoryBookingRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*entity.Booking
	bySlot map[string]uuid.UUID // date + " " + time -> id
	last   time.Time
	now    func() time.Time
	log    *zap.Logger
}

// NewMemoryBookingRepository returns a BookingRepository whose uniqueness
// check and insert happen under one lock.
func NewMemoryBookingRepository(log *zap.Logger) BookingRepository {
	return &memoryBookingRepository{
		byID:   make(map[uuid.UUID]*entity.Booking),
		bySlot: make(map[string]uuid.UUID),
		now:    time.Now,
		log:    log.With(zap.String("repository", "booking_memory")),
	}
}

func slotKey(date, time string) string {
	return date + " " + time
}

func (r *memoryBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := slotKey(booking.Date, booking.Time)
	if _, taken := r.bySlot[key]; taken {
		r.log.Warn("Slot already taken at insert",
			zap.String("date", booking.Date),
			zap.String("time", booking.Time),
		)
		return entity.ErrSlotTaken
	}

	booking.ID = uuid.New()
	// created_at stays strictly increasing so newest-first order is total.
	createdAt := r.now().UTC()
	if !createdAt.After(r.last) {
		createdAt = r.last.Add(time.Microsecond)
	}
	r.last = createdAt
	booking.CreatedAt = createdAt

	stored := cloneBooking(booking)
	r.byID[stored.ID] = stored
	r.bySlot[key] = stored.ID
	return nil
}

func (r *memoryBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if b, ok := r.byID[id]; ok {
		return cloneBooking(b), nil
	}
	return nil, nil
}

func (r *memoryBookingRepository) FindBySlot(ctx context.Context, date, time string) (*entity.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if id, ok := r.bySlot[slotKey(date, time)]; ok {
		return cloneBooking(r.byID[id]), nil
	}
	return nil, nil
}

func (r *memoryBookingRepository) FindAll(ctx context.Context, filter entity.BookingFilter) ([]*entity.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	bookings := make([]*entity.Booking, 0, len(r.byID))
	for _, b := range r.byID {
		if filter.Date != "" && b.Date != filter.Date {
			continue
		}
		bookings = append(bookings, cloneBooking(b))
	}
	r.mu.RUnlock()

	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})

	if filter.Limit > 0 && len(bookings) > filter.Limit {
		bookings = bookings[:filter.Limit]
	}
	return bookings, nil
}

func (r *memoryBookingRepository) Update(ctx context.Context, id uuid.UUID, patch entity.BookingPatch) (*entity.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	if patch.Status != nil {
		b.Status = *patch.Status
	}
	if patch.Notes != nil {
		if *patch.Notes == "" {
			b.Notes = nil
		} else {
			notes := *patch.Notes
			b.Notes = &notes
		}
	}
	return cloneBooking(b), nil
}

func (r *memoryBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return entity.ErrBookingNotFound
	}
	delete(r.bySlot, slotKey(b.Date, b.Time))
	delete(r.byID, id)

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

func cloneBooking(b *entity.Booking) *entity.Booking {
	c := *b
	c.Phone = cloneString(b.Phone)
	c.Notes = cloneString(b.Notes)
	c.Timezone = cloneString(b.Timezone)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
