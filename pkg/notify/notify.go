// Package notify delivers booking confirmations. Every sender is best
// effort: callers treat a returned error as a warning, not a failure.
package notify

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"studio-booking/internal/data/entity"
)

type Notifier interface {
	SendConfirmation(ctx context.Context, booking *entity.Booking) error
}

// ConfirmationEvent is the payload published by the broker-backed senders
// for a downstream mail worker.
type ConfirmationEvent struct {
	BookingID string    `json:"booking_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Service   string    `json:"service"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Timezone  string    `json:"timezone,omitempty"`
	Subject   string    `json:"subject"`
	HTML      string    `json:"html"`
	CreatedAt time.Time `json:"created_at"`
}

const confirmationSubject = "Kapture Nook - Booking confirmation"

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<div style="font-family:Inter,system-ui,Arial,sans-serif;color:#021026">
  <h2>Thanks for booking with Kapture Nook Studio!</h2>
  <p><strong>Service:</strong> {{.Service}}</p>
  <p><strong>Date &amp; time:</strong> {{.Date}} @ {{.Time}} ({{.Zone}})</p>
  <p>We look forward to seeing you! Quack your Best Pose! 🦆</p>
  <hr/>
  <p style="font-size:0.9rem;color:#6b7280">If you have questions, reply to this email.</p>
</div>`))

// RenderConfirmation builds the HTML body. Values are escaped.
func RenderConfirmation(b *entity.Booking) (string, error) {
	zone := "local"
	if b.Timezone != nil && *b.Timezone != "" {
		zone = *b.Timezone
	}

	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, struct {
		Service, Date, Time, Zone string
	}{b.Service, b.Date, b.Time, zone})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// NewConfirmationEvent renders the message and packs it for publishing.
func NewConfirmationEvent(b *entity.Booking) (*ConfirmationEvent, error) {
	html, err := RenderConfirmation(b)
	if err != nil {
		return nil, err
	}

	ev := &ConfirmationEvent{
		BookingID: b.ID.String(),
		Name:      b.Name,
		Email:     b.Email,
		Service:   b.Service,
		Date:      b.Date,
		Time:      b.Time,
		Subject:   confirmationSubject,
		HTML:      html,
		CreatedAt: b.CreatedAt,
	}
	if b.Timezone != nil {
		ev.Timezone = *b.Timezone
	}
	return ev, nil
}
