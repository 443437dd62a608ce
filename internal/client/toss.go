package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"course-market/internal/config"
	"course-market/internal/model"
)

// ErrSecretKeyMissing means the server-only gateway credential is absent.
var ErrSecretKeyMissing = errors.New("toss secret key is not configured")

// GatewayError is the gateway's own rejection of a confirmation call. The
// status code and message are propagated to the client as-is.
type GatewayError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("toss confirm rejected: status=%d code=%s message=%s", e.StatusCode, e.Code, e.Message)
}

// ConfirmPaymentResponse carries the parsed payment plus the gateway's
// payload verbatim, so handlers can return it unmodified.
type ConfirmPaymentResponse struct {
	Payment model.TossPayment
	Raw     json.RawMessage
}

type TossClient interface {
	ConfirmPayment(ctx context.Context, paymentKey, orderID string, amount int64) (*ConfirmPaymentResponse, error)
}

type tossClientImpl struct {
	httpClient   *http.Client
	baseApiURL   string
	secretKey    string
	retryBackoff time.Duration
}

func NewTossClient(tossCfg *config.Toss) TossClient {
	return &tossClientImpl{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseApiURL:   tossCfg.BaseApiURL,
		secretKey:    tossCfg.SecretKey,
		retryBackoff: 500 * time.Millisecond,
	}
}

func (c *tossClientImpl) ConfirmPayment(ctx context.Context, paymentKey, orderID string, amount int64) (*ConfirmPaymentResponse, error) {
	if c.secretKey == "" {
		return nil, ErrSecretKeyMissing
	}

	body, err := json.Marshal(map[string]any{
		"paymentKey": paymentKey,
		"orderId":    orderID,
		"amount":     amount,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal confirm payload: %w", err)
	}

	resp, err := c.postConfirm(ctx, body)
	if err != nil {
		// Retry once on transport failures only. A request that produced an
		// HTTP response is never retried; the gateway may have charged.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.retryBackoff):
		}
		resp, err = c.postConfirm(ctx, body)
		if err != nil {
			return nil, fmt.Errorf("toss confirm request: %w", err)
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read toss response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var tossErr model.TossError
		if err := json.Unmarshal(raw, &tossErr); err != nil || tossErr.Message == "" {
			tossErr.Message = string(raw)
		}
		return nil, &GatewayError{
			StatusCode: resp.StatusCode,
			Code:       tossErr.Code,
			Message:    tossErr.Message,
		}
	}

	var payment model.TossPayment
	if err := json.Unmarshal(raw, &payment); err != nil {
		return nil, fmt.Errorf("decode toss response: %w", err)
	}

	return &ConfirmPaymentResponse{Payment: payment, Raw: raw}, nil
}

func (c *tossClientImpl) postConfirm(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseApiURL+"/v1/payments/confirm",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	auth := base64.StdEncoding.EncodeToString([]byte(c.secretKey + ":"))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}
