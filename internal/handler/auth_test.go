package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-market/internal/model"
	"course-market/internal/service"
)

type fakeAuthService struct {
	loginToken    string
	loginErr      error
	callbackToken string
	callbackErr   error
	gotKakaoID    string
	gotEmail      string
}

func (f *fakeAuthService) LoginWithKakaoAccount(ctx context.Context, kakaoUserID, email, name, profileImageURL string) (string, error) {
	f.gotKakaoID = kakaoUserID
	f.gotEmail = email
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.loginToken, nil
}

func (f *fakeAuthService) HandleKakaoCallback(ctx context.Context, code, redirectURI string) (string, error) {
	if f.callbackErr != nil {
		return "", f.callbackErr
	}
	return f.callbackToken, nil
}

func (f *fakeAuthService) EnsureProfile(ctx context.Context, claims *model.TokenClaims) (*model.User, error) {
	return nil, nil
}

func (f *fakeAuthService) VerifyIDToken(ctx context.Context, idToken string) (*model.TokenClaims, error) {
	return nil, nil
}

func (f *fakeAuthService) GetProfile(ctx context.Context, uid string) (*model.User, error) {
	return nil, nil
}

func postKakaoLogin(t *testing.T, svc service.AuthService, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/kakao", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewAuthHandler(svc, "https://example.com")
	err := h.KakaoLogin(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestKakaoLoginReturnsCustomToken(t *testing.T) {
	svc := &fakeAuthService{loginToken: "ct_abc"}

	rec := postKakaoLogin(t, svc, `{"kakaoUserId":12345,"email":"kim@example.com","name":"김철수"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ct_abc", body["customToken"])
	assert.Equal(t, "12345", svc.gotKakaoID, "numeric kakao id must pass through unchanged")
}

func TestKakaoLoginAcceptsStringID(t *testing.T) {
	svc := &fakeAuthService{loginToken: "ct_abc"}

	rec := postKakaoLogin(t, svc, `{"kakaoUserId":"12345"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12345", svc.gotKakaoID)
}

func TestKakaoLoginMissingID(t *testing.T) {
	svc := &fakeAuthService{loginErr: service.ErrInvalidKakaoUser}

	rec := postKakaoLogin(t, svc, `{"email":"kim@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "카카오 사용자 ID가 없습니다.")
}

func TestKakaoLoginInternalError(t *testing.T) {
	svc := &fakeAuthService{loginErr: assert.AnError}

	rec := postKakaoLogin(t, svc, `{"kakaoUserId":12345}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
}

func getKakaoCallback(t *testing.T, svc service.AuthService, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewAuthHandler(svc, "https://example.com")
	require.NoError(t, h.KakaoCallback(c))
	return rec
}

func TestKakaoCallbackRedirectsWithToken(t *testing.T) {
	svc := &fakeAuthService{callbackToken: "ct_abc"}

	rec := getKakaoCallback(t, svc, "/api/auth/kakao/callback?code=authcode")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://example.com/auth/kakao/success?token=ct_abc", rec.Header().Get(echo.HeaderLocation))
}

func TestKakaoCallbackMissingCode(t *testing.T) {
	rec := getKakaoCallback(t, &fakeAuthService{}, "/api/auth/kakao/callback?error=access_denied")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://example.com/login?error=kakao_auth_failed", rec.Header().Get(echo.HeaderLocation))
}

func TestKakaoCallbackErrorCodes(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{service.ErrKakaoTokenExchange, "token_failed"},
		{service.ErrKakaoUserInfo, "user_info_failed"},
		{assert.AnError, "callback_failed"},
	}
	for _, tc := range cases {
		rec := getKakaoCallback(t, &fakeAuthService{callbackErr: tc.err}, "/api/auth/kakao/callback?code=authcode")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "https://example.com/login?error="+tc.want, rec.Header().Get(echo.HeaderLocation))
	}
}
