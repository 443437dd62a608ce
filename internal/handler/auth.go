package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"course-market/internal/dto"
	"course-market/internal/middleware"
	"course-market/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
	baseURL     string
}

func NewAuthHandler(authService service.AuthService, baseURL string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		baseURL:     baseURL,
	}
}

// KakaoLogin mints a custom sign-in token for a Kakao account whose tokens
// the frontend already holds.
func (h *AuthHandler) KakaoLogin(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.KakaoLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "요청 본문이 올바르지 않습니다.")
	}

	token, err := h.authService.LoginWithKakaoAccount(
		ctx,
		req.KakaoUserID.String(),
		req.Email,
		req.Name,
		req.ProfileImageURL,
	)
	if err != nil {
		if errors.Is(err, service.ErrInvalidKakaoUser) {
			return echo.NewHTTPError(http.StatusBadRequest, "카카오 사용자 ID가 없습니다.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"customToken": token,
	})
}

// KakaoCallback is the redirect target of Kakao's authorization-code flow.
// It always redirects back into the frontend, carrying either a custom token
// or an error code.
func (h *AuthHandler) KakaoCallback(c echo.Context) error {
	ctx := c.Request().Context()

	code := c.QueryParam("code")
	if code == "" {
		return c.Redirect(http.StatusFound, h.baseURL+"/login?error=kakao_auth_failed")
	}

	redirectURI := h.baseURL + "/api/auth/kakao/callback"
	token, err := h.authService.HandleKakaoCallback(ctx, code, redirectURI)
	if err != nil {
		errCode := "callback_failed"
		switch {
		case errors.Is(err, service.ErrKakaoTokenExchange):
			errCode = "token_failed"
		case errors.Is(err, service.ErrKakaoUserInfo):
			errCode = "user_info_failed"
		}
		return c.Redirect(http.StatusFound, h.baseURL+"/login?error="+errCode)
	}

	return c.Redirect(http.StatusFound, h.baseURL+"/auth/kakao/success?token="+token)
}

// EnsureProfile is called by the frontend after any sign-in method so email
// and Google accounts get a Firestore profile too.
func (h *AuthHandler) EnsureProfile(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.ProfileFrom(c))
}

func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.ProfileFrom(c))
}
