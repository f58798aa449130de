package usecase

import (
	"context"
	"testing"

	"studio-booking/internal/data/cache"
	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const adminSecret = "kapture-admin"

func newTestAdminService(repo repository.BookingRepository, config utils.AdminConfig) AdminService {
	return NewAdminService(repo, cache.NewNopAvailabilityCache(), config, zap.NewNop())
}

func strPtr(s string) *string { return &s }

func seedBooking(t *testing.T, repo repository.BookingRepository) string {
	t.Helper()
	created, err := newTestBookingService(repo, &mockNotifier{}).CreateBooking(context.Background(), anaCruz())
	require.NoError(t, err)
	return created.ID
}

func TestAdminRejectsBadCredentialBeforeStore(t *testing.T) {
	tests := []struct {
		name       string
		config     utils.AdminConfig
		credential string
	}{
		{"no secret configured", utils.AdminConfig{}, "anything"},
		{"no secret configured, empty credential", utils.AdminConfig{}, ""},
		{"missing credential", utils.AdminConfig{Password: adminSecret}, ""},
		{"wrong credential", utils.AdminConfig{Password: adminSecret}, "guess"},
		{"prefix of secret", utils.AdminConfig{Password: adminSecret}, "kapture"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Any store call fails the test.
			svc := newTestAdminService(&mockBookingRepo{t: t}, tt.config)
			ctx := context.Background()

			assert.ErrorIs(t, svc.Authorize(tt.credential), entity.ErrUnauthorized)

			_, err := svc.ListBookings(ctx, tt.credential, &request.ListBookingsRequest{})
			assert.ErrorIs(t, err, entity.ErrUnauthorized)

			_, err = svc.UpdateBooking(ctx, tt.credential, &request.UpdateBookingRequest{
				ID:     uuid.NewString(),
				Status: strPtr("attended"),
			})
			assert.ErrorIs(t, err, entity.ErrUnauthorized)

			// Invalid input still reports unauthorized first.
			_, err = svc.UpdateBooking(ctx, tt.credential, &request.UpdateBookingRequest{})
			assert.ErrorIs(t, err, entity.ErrUnauthorized)

			assert.ErrorIs(t, svc.DeleteBooking(ctx, tt.credential, uuid.NewString()), entity.ErrUnauthorized)
		})
	}
}

func TestAdminListBookings(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	seedBooking(t, repo)

	other := anaCruz()
	other.Date = "2025-03-11"
	_, err := newTestBookingService(repo, &mockNotifier{}).CreateBooking(ctx, other)
	require.NoError(t, err)

	svc := newTestAdminService(repo, utils.AdminConfig{Password: adminSecret})

	all, err := svc.ListBookings(ctx, adminSecret, &request.ListBookingsRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "2025-03-11", all[0].Date)

	byDate, err := svc.ListBookings(ctx, adminSecret, &request.ListBookingsRequest{Date: "2025-03-10"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "2025-03-10", byDate[0].Date)

	limited, err := svc.ListBookings(ctx, adminSecret, &request.ListBookingsRequest{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestAdminUpdateBooking(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	id := seedBooking(t, repo)
	svc := newTestAdminService(repo, utils.AdminConfig{Password: adminSecret})

	updated, err := svc.UpdateBooking(ctx, adminSecret, &request.UpdateBookingRequest{
		ID:     id,
		Status: strPtr("attended"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusAttended, updated.Status)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "Bringing a prop umbrella", *updated.Notes)

	updated, err = svc.UpdateBooking(ctx, adminSecret, &request.UpdateBookingRequest{
		ID:    id,
		Notes: strPtr("Paid in cash"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusAttended, updated.Status)
	assert.Equal(t, "Paid in cash", *updated.Notes)

	updated, err = svc.UpdateBooking(ctx, adminSecret, &request.UpdateBookingRequest{
		ID:    id,
		Notes: strPtr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Notes)
}

func TestAdminUpdateBookingInvalid(t *testing.T) {
	ctx := context.Background()
	svc := newTestAdminService(&mockBookingRepo{t: t}, utils.AdminConfig{Password: adminSecret})

	tests := []struct {
		name  string
		req   *request.UpdateBookingRequest
		field string
	}{
		{"missing id", &request.UpdateBookingRequest{Status: strPtr("attended")}, "id"},
		{"unknown status", &request.UpdateBookingRequest{ID: uuid.NewString(), Status: strPtr("no-show")}, "status"},
		{"nothing to change", &request.UpdateBookingRequest{ID: uuid.NewString()}, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateBooking(ctx, adminSecret, tt.req)

			var validationErr *entity.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestAdminUpdateBookingNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestAdminService(newMemoryRepo(), utils.AdminConfig{Password: adminSecret})

	_, err := svc.UpdateBooking(ctx, adminSecret, &request.UpdateBookingRequest{
		ID:     uuid.NewString(),
		Status: strPtr("confirmed"),
	})
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)

	_, err = svc.UpdateBooking(ctx, adminSecret, &request.UpdateBookingRequest{
		ID:     "not-an-id",
		Status: strPtr("confirmed"),
	})
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)
}

func TestAdminDeleteBooking(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	id := seedBooking(t, repo)
	svc := newTestAdminService(repo, utils.AdminConfig{Password: adminSecret})

	require.NoError(t, svc.DeleteBooking(ctx, adminSecret, id))
	assert.ErrorIs(t, svc.DeleteBooking(ctx, adminSecret, id), entity.ErrBookingNotFound)

	// The freed slot can be booked again.
	seedBooking(t, repo)
}

func TestAdminDeleteBookingInvalidID(t *testing.T) {
	ctx := context.Background()
	svc := newTestAdminService(&mockBookingRepo{t: t}, utils.AdminConfig{Password: adminSecret})

	var validationErr *entity.ValidationError
	require.ErrorAs(t, svc.DeleteBooking(ctx, adminSecret, ""), &validationErr)
	assert.Equal(t, "id", validationErr.Field)

	assert.ErrorIs(t, svc.DeleteBooking(ctx, adminSecret, "12345"), entity.ErrBookingNotFound)
}

func TestAdminCancelledBookingKeepsSlot(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	id := seedBooking(t, repo)
	svc := newTestAdminService(repo, utils.AdminConfig{Password: adminSecret})

	_, err := svc.UpdateBooking(ctx, adminSecret, &request.UpdateBookingRequest{ID: id, Status: strPtr("cancelled")})
	require.NoError(t, err)

	_, err = newTestBookingService(repo, &mockNotifier{}).CreateBooking(ctx, anaCruz())
	assert.ErrorIs(t, err, entity.ErrSlotConflict)
}

func TestAdminHashedCredential(t *testing.T) {
	hash, err := utils.HashPassword(adminSecret)
	require.NoError(t, err)

	svc := newTestAdminService(newMemoryRepo(), utils.AdminConfig{PasswordHash: hash})

	assert.NoError(t, svc.Authorize(adminSecret))
	assert.ErrorIs(t, svc.Authorize("wrong"), entity.ErrUnauthorized)

	_, err = svc.ListBookings(context.Background(), adminSecret, &request.ListBookingsRequest{})
	assert.NoError(t, err)
}
