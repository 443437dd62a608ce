package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"course-market/internal/config"
	"course-market/internal/model"
)

type KakaoClient interface {
	// ExchangeAuthCode trades the one-time authorization code for tokens.
	ExchangeAuthCode(ctx context.Context, code, redirectURI string) (*model.KakaoToken, error)
	// GetUser fetches the Kakao account behind an access token.
	GetUser(ctx context.Context, accessToken string) (*model.KakaoUser, error)
}

type kakaoClientImpl struct {
	httpClient  *http.Client
	baseAuthURL string
	baseApiURL  string
	restKey     string
}

func NewKakaoClient(kakaoCfg *config.Kakao) KakaoClient {
	return &kakaoClientImpl{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseAuthURL: kakaoCfg.BaseAuthURL,
		baseApiURL:  kakaoCfg.BaseApiURL,
		restKey:     kakaoCfg.RestKey,
	}
}

func (c *kakaoClientImpl) ExchangeAuthCode(ctx context.Context, code, redirectURI string) (*model.KakaoToken, error) {
	form := url.Values{
		"grant_type":   {"authorization_code"},
		"client_id":    {c.restKey},
		"redirect_uri": {redirectURI},
		"code":         {code},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseAuthURL+"/oauth/token",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kakao token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("kakao token exchange failed: status=%d body=%s", resp.StatusCode, string(b))
	}

	var token model.KakaoToken
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("decode kakao token response: %w", err)
	}

	return &token, nil
}

func (c *kakaoClientImpl) GetUser(ctx context.Context, accessToken string) (*model.KakaoUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseApiURL+"/v2/user/me", nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kakao user request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("kakao user lookup failed: status=%d body=%s", resp.StatusCode, string(b))
	}

	var user model.KakaoUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode kakao user response: %w", err)
	}

	return &user, nil
}
