package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"course-market/internal/middleware"
	"course-market/internal/repository"
	"course-market/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListByUser(ctx, middleware.UIDFrom(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderService.Get(ctx, middleware.ProfileFrom(c), c.Param("orderID"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "주문을 찾을 수 없습니다.")
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, "본인의 주문만 조회할 수 있습니다.")
		}
		return err
	}

	return c.JSON(http.StatusOK, order)
}
