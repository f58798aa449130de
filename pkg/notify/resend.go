package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"studio-booking/internal/data/entity"

	"go.uber.org/zap"
)

// ResendNotifier sends the confirmation email through the Resend HTTP API.
type ResendNotifier struct {
	apiKey  string
	baseURL string
	from    string
	client  *http.Client
	log     *zap.Logger
}

func NewResendNotifier(apiKey, baseURL, from string, log *zap.Logger) *ResendNotifier {
	return &ResendNotifier{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		from:    from,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With(zap.String("notifier", "resend")),
	}
}

type resendEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (n *ResendNotifier) SendConfirmation(ctx context.Context, booking *entity.Booking) error {
	html, err := RenderConfirmation(booking)
	if err != nil {
		return fmt.Errorf("render confirmation: %w", err)
	}

	body, err := json.Marshal(resendEmail{
		From:    n.from,
		To:      []string{booking.Email},
		Subject: confirmationSubject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("resend API error: %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	n.log.Info("Confirmation email sent",
		zap.String("booking_id", booking.ID.String()),
		zap.String("to", booking.Email),
	)
	return nil
}
