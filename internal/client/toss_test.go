package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-market/internal/config"
)

func newTestTossClient(baseURL, secretKey string) *tossClientImpl {
	return &tossClientImpl{
		httpClient:   &http.Client{Timeout: 2 * time.Second},
		baseApiURL:   baseURL,
		secretKey:    secretKey,
		retryBackoff: 10 * time.Millisecond,
	}
}

func TestConfirmPaymentRequestShape(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payments/confirm", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"paymentKey":"pk_1","orderId":"ORDER-1-abcdefg","status":"DONE","totalAmount":1800000,"method":"카드"}`))
	}))
	defer srv.Close()

	c := newTestTossClient(srv.URL, "test_sk_secret")

	resp, err := c.ConfirmPayment(context.Background(), "pk_1", "ORDER-1-abcdefg", 1800000)
	require.NoError(t, err)

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("test_sk_secret:"))
	assert.Equal(t, wantAuth, gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "pk_1", gotBody["paymentKey"])
	assert.Equal(t, "ORDER-1-abcdefg", gotBody["orderId"])
	assert.Equal(t, float64(1800000), gotBody["amount"])

	assert.Equal(t, "DONE", resp.Payment.Status)
	assert.Equal(t, int64(1800000), resp.Payment.TotalAmount)
	assert.Equal(t, "pk_1", resp.Payment.PaymentKey)
	assert.NotEmpty(t, resp.Raw)
}

func TestConfirmPaymentGatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"NOT_FOUND_PAYMENT","message":"존재하지 않는 결제 입니다."}`))
	}))
	defer srv.Close()

	c := newTestTossClient(srv.URL, "test_sk_secret")

	_, err := c.ConfirmPayment(context.Background(), "pk_bad", "ORDER-1-abcdefg", 1800000)

	var gatewayErr *GatewayError
	require.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, http.StatusNotFound, gatewayErr.StatusCode)
	assert.Equal(t, "NOT_FOUND_PAYMENT", gatewayErr.Code)
	assert.Equal(t, "존재하지 않는 결제 입니다.", gatewayErr.Message)
}

func TestConfirmPaymentMissingSecret(t *testing.T) {
	c := newTestTossClient("http://127.0.0.1:0", "")

	_, err := c.ConfirmPayment(context.Background(), "pk_1", "ORDER-1-abcdefg", 1800000)
	assert.ErrorIs(t, err, ErrSecretKeyMissing)
}

func TestConfirmPaymentRetriesTransportError(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		w.Write([]byte(`{"paymentKey":"pk_1","status":"DONE","totalAmount":1800000}`))
	}))
	defer srv.Close()

	c := newTestTossClient(srv.URL, "test_sk_secret")

	resp, err := c.ConfirmPayment(context.Background(), "pk_1", "ORDER-1-abcdefg", 1800000)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
	assert.Equal(t, "DONE", resp.Payment.Status)
}

func TestConfirmPaymentNoRetryAfterResponse(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"code":"FAILED_INTERNAL_SYSTEM_PROCESSING","message":"내부 시스템 처리 작업이 실패했습니다."}`))
	}))
	defer srv.Close()

	c := newTestTossClient(srv.URL, "test_sk_secret")

	_, err := c.ConfirmPayment(context.Background(), "pk_1", "ORDER-1-abcdefg", 1800000)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts), "a received response must never be retried")
}

func TestNewTossClientDefaults(t *testing.T) {
	c := NewTossClient(&config.Toss{BaseApiURL: "https://api.tosspayments.com", SecretKey: "sk"})
	impl, ok := c.(*tossClientImpl)
	require.True(t, ok)
	assert.Equal(t, "https://api.tosspayments.com", impl.baseApiURL)
	assert.NotZero(t, impl.httpClient.Timeout)
}
