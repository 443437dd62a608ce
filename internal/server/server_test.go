package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-market/internal/config"
	"course-market/internal/model"
	"course-market/internal/service"
)

type rejectingAuthService struct{}

func (s *rejectingAuthService) LoginWithKakaoAccount(ctx context.Context, kakaoUserID, email, name, profileImageURL string) (string, error) {
	return "", errors.New("not implemented")
}

func (s *rejectingAuthService) HandleKakaoCallback(ctx context.Context, code, redirectURI string) (string, error) {
	return "", errors.New("not implemented")
}

func (s *rejectingAuthService) EnsureProfile(ctx context.Context, claims *model.TokenClaims) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func (s *rejectingAuthService) VerifyIDToken(ctx context.Context, idToken string) (*model.TokenClaims, error) {
	return nil, errors.New("invalid token")
}

func (s *rejectingAuthService) GetProfile(ctx context.Context, uid string) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func newTestServer() *Server {
	cfg := &config.Config{BaseURL: "https://example.com"}
	checkout := service.NewCheckoutService(nil, nil, nil, nil, cfg)
	return NewServer(&rejectingAuthService{}, checkout, nil, nil, nil, nil, "https://example.com")
}

// the checkout route is mounted behind optional auth, so a tokenless request
// must reach the handler and come back with the login redirect target
func TestCheckoutRouteWithoutLogin(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/checkout/frontend", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "/login?redirect=%2Fcheckout%2Ffrontend", body["redirect"])
	assert.Equal(t, "로그인이 필요합니다.", body["error"])
}

func TestPaymentSuccessRouteWithoutLogin(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/payment/success?orderId=ORDER-1-abcdefg&paymentKey=pk_1&amount=1800000", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPaymentFailRouteIsPublic(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/payment/fail?code=USER_CANCEL", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "사용자가 결제를 취소했습니다.")
}

func TestProtectedRouteRejectsMissingToken(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
