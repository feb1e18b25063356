package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/az9589317-spec/artghar/internal/domain"
)

const defaultBaseURL = "https://api.razorpay.com"

/// PaymentOrder is the gateway's pending payment order: it exists only for the
// duration of one checkout attempt and is never persisted on its own.
type PaymentOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// PaymentGateway is what the checkout service needs from Razorpay.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount domain.Paise, currency, receipt string) (*PaymentOrder, error)
	VerifyPayment(gatewayOrderID, paymentID, signature string) bool
	KeyID() string
}

type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*PaymentOrder]
	logger     zerolog.Logger
}

var _ PaymentGateway = (*Client)(nil)

func NewClient(baseURL, keyID, keySecret string, timeout time.Duration, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		keyID:      keyID,
		keySecret:  keySecret,
		httpClient: &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker[*PaymentOrder](gobreaker.Settings{
			Name: "razorpay-orders",
		}),
		logger: logger.With().Str("component", "razorpay").Logger(),
	}
}

// KeyID is the public half of the credential, safe to hand to the hosted
// widget. The secret never leaves this package.
func (c *Client) KeyID() string {
	return c.keyID
}

// NewReceipt builds a per-attempt receipt identifier.
func NewReceipt() string {
	return fmt.Sprintf("receipt_order_%d", time.Now().UnixMilli())
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateOrder asks the gateway to open a pending payment order for the given
// amount. Exactly one attempt per call; the caller decides whether the buyer
// may retry.
func (c *Client) CreateOrder(ctx context.Context, amount domain.Paise, currency, receipt string) (*PaymentOrder, error) {
	order, err := c.breaker.Execute(func() (*PaymentOrder, error) {
		return c.createOrder(ctx, amount, currency, receipt)
	})
	if err != nil {
		c.logger.Error().Err(err).Int64("amount_paise", int64(amount)).Msg("payment order creation failed")
		return nil, err
	}
	return order, nil
}

func (c *Client) createOrder(ctx context.Context, amount domain.Paise, currency, receipt string) (*PaymentOrder, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   int64(amount),
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var order PaymentOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("gateway response missing order id")
	}

	return &order, nil
}

// VerifyPayment checks the widget callback signature against the shared
// secret.
func (c *Client) VerifyPayment(gatewayOrderID, paymentID, signature string) bool {
	return VerifySignature(c.keySecret, gatewayOrderID, paymentID, signature)
}
