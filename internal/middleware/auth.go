package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"course-market/internal/model"
	"course-market/internal/service"
)

const (
	contextKeyUID     = "auth_uid"
	contextKeyProfile = "auth_profile"
)

// Auth verifies the Bearer ID token and loads the caller's profile into the
// request context. Requests without a valid token are rejected with 401.
func Auth(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "로그인이 필요합니다.")
			}

			claims, err := authService.VerifyIDToken(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "인증 토큰이 유효하지 않습니다.")
			}

			profile, err := authService.EnsureProfile(c.Request().Context(), claims)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
			}

			c.Set(contextKeyUID, claims.UID)
			c.Set(contextKeyProfile, profile)
			return next(c)
		}
	}
}

// OptionalAuth loads the caller's profile when a valid Bearer token is
// present and lets the request through either way. Handlers behind it decide
// what an absent profile means, so flows like checkout can answer an
// unauthenticated request with a login redirect target instead of a bare 401.
func OptionalAuth(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return next(c)
			}

			claims, err := authService.VerifyIDToken(c.Request().Context(), token)
			if err != nil {
				return next(c)
			}

			profile, err := authService.EnsureProfile(c.Request().Context(), claims)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
			}

			c.Set(contextKeyUID, claims.UID)
			c.Set(contextKeyProfile, profile)
			return next(c)
		}
	}
}

// RequireAdmin allows only callers whose profile carries the admin role.
// It must run after Auth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			profile := ProfileFrom(c)
			if profile == nil || profile.Role != model.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "관리자 권한이 필요합니다.")
			}
			return next(c)
		}
	}
}

func ProfileFrom(c echo.Context) *model.User {
	profile, _ := c.Get(contextKeyProfile).(*model.User)
	return profile
}

func UIDFrom(c echo.Context) string {
	uid, _ := c.Get(contextKeyUID).(string)
	return uid
}
