// Package notifier delivers order notification emails to the shop owner
// through the Resend HTTP API. Delivery is best effort: callers log failures
// and move on, they never block or fail an order on a missed email.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/az9589317-spec/artghar/internal/domain"
)

const (
	defaultBaseURL = "https://api.resend.com"

	// Resend accepts this sender without a verified domain.
	fromAddress = "ArtGhar <onboarding@resend.dev>"
)

// ErrNotConfigured is returned when the API key or recipient address is
// missing. The caller decides whether that is fatal.
var ErrNotConfigured = errors.New("notifier: email delivery is not configured")

type EmailSender interface {
	SendOrderPlaced(ctx context.Context, event *domain.OrderPlacedEvent) error
}

type EmailClient struct {
	baseURL    string
	apiKey     string
	toEmail    string
	httpClient *http.Client
	logger     zerolog.Logger
}

var _ EmailSender = (*EmailClient)(nil)

func NewEmailClient(baseURL, apiKey, toEmail string, timeout time.Duration, logger zerolog.Logger) *EmailClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &EmailClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		toEmail:    toEmail,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "email_notifier").Logger(),
	}
}

type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendOrderPlaced emails the shop owner about a freshly placed order.
func (c *EmailClient) SendOrderPlaced(ctx context.Context, event *domain.OrderPlacedEvent) error {
	if c.apiKey == "" || c.toEmail == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(sendEmailRequest{
		From:    fromAddress,
		To:      []string{c.toEmail},
		Subject: fmt.Sprintf("New Order Notification: #%s", event.ShortID),
		HTML:    renderOrderPlacedHTML(event),
	})
	if err != nil {
		return fmt.Errorf("marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("email provider returned status %d: %s", resp.StatusCode, string(respBody))
	}

	c.logger.Info().
		Str("order_id", event.OrderID).
		Str("short_order_id", event.ShortID).
		Msg("order notification email sent")
	return nil
}

func renderOrderPlacedHTML(event *domain.OrderPlacedEvent) string {
	var items strings.Builder
	for _, item := range event.Items {
		fmt.Fprintf(&items, "<li>%dx %s</li>", item.Quantity, html.EscapeString(item.Name))
	}

	customer := html.EscapeString(strings.TrimSpace(event.Customer))

	return fmt.Sprintf(`<div>
  <h1>New Order Received!</h1>
  <p>You've received a new order on ArtGhar. Here are the details:</p>
  <p><strong>Order ID:</strong> #%s</p>
  <p><strong>Customer:</strong> %s</p>
  <p><strong>Total Amount:</strong> &#8377;%s</p>
  <h2>Items:</h2>
  <ul>%s</ul>
  <p>You can view the full order details in your admin dashboard.</p>
</div>`, event.ShortID, customer, event.Total.String(), items.String())
}
