package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"studio-booking/internal/data/cache"
	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/middleware"
	"studio-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	adminPassword = "studio-secret"
	// Far enough ahead that no slot has started.
	bookingDate = "2099-03-10"
)

type notifierFunc func(ctx context.Context, b *entity.Booking) error

func (f notifierFunc) SendConfirmation(ctx context.Context, b *entity.Booking) error {
	return f(ctx, b)
}

type envelope struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

type bookingBody struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Status  string  `json:"status"`
	Notes   *string `json:"notes"`
	Warning string  `json:"warning"`
}

func newTestApp(t *testing.T, notifier notifierFunc) *App {
	t.Helper()
	config := &utils.Config{
		Admin:  utils.AdminConfig{Password: adminPassword},
		Studio: utils.StudioConfig{Timezone: "UTC", OpenHour: 9, CloseHour: 17},
	}
	if notifier == nil {
		notifier = func(context.Context, *entity.Booking) error { return nil }
	}
	repo := repository.NewMemoryRepository(zap.NewNop())
	return Wiring(repo, notifier, cache.NewNopAvailabilityCache(), config, zap.NewNop())
}

func do(t *testing.T, app *App, method, target string, body any, header map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func createPayload(slot string) map[string]any {
	return map[string]any{
		"name":    "Ana Cruz",
		"email":   "ana@example.com",
		"service": "Solo Portrait",
		"date":    bookingDate,
		"time":    slot,
		"price":   1500,
	}
}

func admin() map[string]string {
	return map[string]string{middleware.AdminCredentialHeader: adminPassword}
}

func TestCreateBookingFlow(t *testing.T) {
	app := newTestApp(t, nil)

	rec, env := do(t, app, http.MethodPost, "/api/bookings", createPayload("10:00"), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Status)
	assert.Equal(t, "Booking confirmed", env.Message)

	var created bookingBody
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "pending", created.Status)
	assert.NotEmpty(t, created.ID)

	rec, env = do(t, app, http.MethodPost, "/api/bookings", createPayload("10:00"), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Status)
	assert.Equal(t, "That time slot is already booked.", env.Message)

	rec, env = do(t, app, http.MethodGet, "/api/slots?date="+bookingDate, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var availability struct {
		Slots []entity.Slot `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &availability))
	require.Len(t, availability.Slots, 8)
	for _, s := range availability.Slots {
		if s.Time == "10:00" {
			assert.Equal(t, entity.SlotBooked, s.State)
		} else {
			assert.Equal(t, entity.SlotAvailable, s.State)
		}
	}

	rec, env = do(t, app, http.MethodGet, "/api/bookings?date="+bookingDate, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []bookingBody
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestCreateBookingValidationResponse(t *testing.T) {
	app := newTestApp(t, nil)
	payload := createPayload("10:00")
	payload["email"] = "not-an-email"

	rec, env := do(t, app, http.MethodPost, "/api/bookings", payload, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "must be a valid email address", env.Errors["email"])

	rec, env = do(t, app, http.MethodPost, "/api/bookings", "{not json", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", env.Message)
}

func TestCreateBookingNotificationWarning(t *testing.T) {
	app := newTestApp(t, func(context.Context, *entity.Booking) error {
		return errors.New("smtp down")
	})

	rec, env := do(t, app, http.MethodPost, "/api/bookings", createPayload("11:00"), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Booking saved but confirmation email failed.", env.Message)

	var created bookingBody
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Booking saved but confirmation email failed.", created.Warning)
}

func TestAdminRequiresCredential(t *testing.T) {
	app := newTestApp(t, nil)

	wrong := map[string]string{middleware.AdminCredentialHeader: "nope"}
	for _, header := range []map[string]string{nil, wrong} {
		rec, _ := do(t, app, http.MethodGet, "/api/admin/bookings", nil, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec, _ = do(t, app, http.MethodPatch, "/api/admin/bookings", "{bad", header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec, _ = do(t, app, http.MethodDelete, "/api/admin/bookings?id=x", nil, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func TestAdminManagesBookings(t *testing.T) {
	app := newTestApp(t, nil)

	_, env := do(t, app, http.MethodPost, "/api/bookings", createPayload("15:00"), nil)
	var created bookingBody
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, env := do(t, app, http.MethodGet, "/api/admin/bookings?limit=10", nil, admin())
	require.Equal(t, http.StatusOK, rec.Code)
	var list []bookingBody
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	rec, env = do(t, app, http.MethodPatch, "/api/admin/bookings",
		map[string]any{"id": created.ID, "status": "attended", "notes": "Great session"}, admin())
	require.Equal(t, http.StatusOK, rec.Code)
	var updated bookingBody
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "attended", updated.Status)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "Great session", *updated.Notes)

	rec, _ = do(t, app, http.MethodPatch, "/api/admin/bookings", "{bad", admin())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, app, http.MethodDelete, "/api/admin/bookings?id="+created.ID, nil, admin())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, string(env.Data))

	rec, _ = do(t, app, http.MethodDelete, "/api/admin/bookings?id="+created.ID, nil, admin())
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, app, http.MethodPatch, "/api/admin/bookings",
		map[string]any{"id": created.ID, "status": "confirmed"}, admin())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	app := newTestApp(t, nil)

	rec, _ := do(t, app, http.MethodOptions, "/api/bookings", nil, map[string]string{"Origin": "https://example.com"})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), middleware.AdminCredentialHeader)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, nil)

	rec, _ := do(t, app, http.MethodGet, "/health", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
