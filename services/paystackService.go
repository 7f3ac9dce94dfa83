package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// PaystackClient creates hosted payment requests against Paystack. The call
// runs with a bounded timeout and a small number of retries and must never be
// made while a database transaction is open.
type PaystackClient struct {
	BaseURL string
	// Secret reads the current API key from the credential holder; the key is
	// rotated by a background job, never by request handlers.
	Secret     func() string
	HTTPClient *http.Client
	MaxRetries int
}

func NewPaystackClient(secret func() string) *PaystackClient {
	return &PaystackClient{
		BaseURL:    "https://api.paystack.co",
		Secret:     secret,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		MaxRetries: 2,
	}
}

type paystackInitializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Authorization_url string `json:"authorization_url"`
		Access_code       string `json:"access_code"`
		Reference         string `json:"reference"`
	} `json:"data"`
}

func (p *PaystackClient) CreatePaymentRequest(ctx context.Context, email string, amount decimal.Decimal) (*PaymentRequest, error) {
	body, err := json.Marshal(map[string]interface{}{
		"email": email,
		// Paystack expects the amount in subunits (kobo).
		"amount": amount.Shift(2).IntPart(),
	})
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		request, err := http.NewRequestWithContext(ctx, http.MethodPost,
			p.BaseURL+"/transaction/initialize", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		request.Header.Set("Authorization", "Bearer "+p.Secret())
		request.Header.Set("Content-Type", "application/json")

		response, err := p.HTTPClient.Do(request)
		if err != nil {
			lastErr = err
			log.Printf("payment request attempt %d failed: %v", attempt+1, err)
			continue
		}

		data, err := io.ReadAll(response.Body)
		response.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if response.StatusCode >= http.StatusInternalServerError {
			lastErr = fmt.Errorf("gateway responded with %d: %s", response.StatusCode, data)
			log.Printf("payment request attempt %d failed: %v", attempt+1, lastErr)
			continue
		}
		if response.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: gateway responded with %d: %s", ErrGateway, response.StatusCode, data)
		}

		var parsed paystackInitializeResponse
		if err := json.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("%w: failed to parse gateway response: %v", ErrGateway, err)
		}
		if !parsed.Status {
			return nil, fmt.Errorf("%w: %s", ErrGateway, parsed.Message)
		}

		return &PaymentRequest{
			Reference:         parsed.Data.Reference,
			Authorization_url: parsed.Data.Authorization_url,
		}, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrGateway, lastErr)
}
