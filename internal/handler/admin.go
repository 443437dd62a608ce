package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"course-market/internal/dto"
	"course-market/internal/repository"
	"course-market/internal/service"
)

// AdminHandler serves the back-office endpoints. Routes are mounted behind
// the admin-role middleware.
type AdminHandler struct {
	orderService  service.OrderService
	userService   service.UserService
	reviewService service.ReviewService
}

func NewAdminHandler(orderService service.OrderService, userService service.UserService, reviewService service.ReviewService) *AdminHandler {
	return &AdminHandler{
		orderService:  orderService,
		userService:   userService,
		reviewService: reviewService,
	}
}

func (h *AdminHandler) ListReviews(c echo.Context) error {
	ctx := c.Request().Context()

	reviews, err := h.reviewService.ListAll(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reviews)
}

func (h *AdminHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListAll(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "요청 본문이 올바르지 않습니다.")
	}

	order, err := h.orderService.UpdateStatus(ctx, c.Param("orderID"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			return echo.NewHTTPError(http.StatusBadRequest, "알 수 없는 주문 상태입니다.")
		case errors.Is(err, repository.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "주문을 찾을 수 없습니다.")
		}
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.userService.List(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "요청 본문이 올바르지 않습니다.")
	}

	user, err := h.userService.Update(ctx, c.Param("uid"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			return echo.NewHTTPError(http.StatusBadRequest, "알 수 없는 역할입니다.")
		case errors.Is(err, repository.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "사용자를 찾을 수 없습니다.")
		}
		return err
	}

	return c.JSON(http.StatusOK, user)
}
