package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-market/internal/config"
)

func TestExchangeAuthCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/oauth/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "rest-key", r.PostForm.Get("client_id"))
		assert.Equal(t, "https://example.com/api/auth/kakao/callback", r.PostForm.Get("redirect_uri"))
		assert.Equal(t, "authcode", r.PostForm.Get("code"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at","token_type":"bearer","expires_in":21599}`))
	}))
	defer srv.Close()

	c := NewKakaoClient(&config.Kakao{BaseAuthURL: srv.URL, BaseApiURL: srv.URL, RestKey: "rest-key"})

	token, err := c.ExchangeAuthCode(context.Background(), "authcode", "https://example.com/api/auth/kakao/callback")
	require.NoError(t, err)
	assert.Equal(t, "at", token.AccessToken)
	assert.Equal(t, int64(21599), token.ExpiresIn)
}

func TestExchangeAuthCodeRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	c := NewKakaoClient(&config.Kakao{BaseAuthURL: srv.URL, BaseApiURL: srv.URL, RestKey: "rest-key"})

	_, err := c.ExchangeAuthCode(context.Background(), "expired", "uri")
	assert.Error(t, err)
}

func TestGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/user/me", r.URL.Path)
		assert.Equal(t, "Bearer at", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":12345,"kakao_account":{"email":"kim@example.com","profile":{"nickname":"김철수","profile_image_url":"https://img.example.com/p.jpg"}}}`))
	}))
	defer srv.Close()

	c := NewKakaoClient(&config.Kakao{BaseAuthURL: srv.URL, BaseApiURL: srv.URL, RestKey: "rest-key"})

	user, err := c.GetUser(context.Background(), "at")
	require.NoError(t, err)
	assert.Equal(t, int64(12345), user.ID)
	assert.Equal(t, "kim@example.com", user.KakaoAccount.Email)
	assert.Equal(t, "김철수", user.KakaoAccount.Profile.Nickname)
}

func TestGetUserExpiredToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"msg":"this access token does not exist","code":-401}`))
	}))
	defer srv.Close()

	c := NewKakaoClient(&config.Kakao{BaseAuthURL: srv.URL, BaseApiURL: srv.URL, RestKey: "rest-key"})

	_, err := c.GetUser(context.Background(), "stale")
	assert.Error(t, err)
}
