package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"course-market/internal/dto"
	"course-market/internal/middleware"
	"course-market/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// UpdateMe lets a user edit their own profile. Role changes go through the
// admin endpoint only.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "요청 본문이 올바르지 않습니다.")
	}
	if req.Role != nil {
		return echo.NewHTTPError(http.StatusForbidden, "역할은 변경할 수 없습니다.")
	}

	user, err := h.userService.Update(ctx, middleware.UIDFrom(c), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}
