package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"course-market/internal/client"
	"course-market/internal/dto"
	"course-market/internal/middleware"
	"course-market/internal/service"
)

type PaymentHandler struct {
	checkoutService service.CheckoutService
}

func NewPaymentHandler(checkoutService service.CheckoutService) *PaymentHandler {
	return &PaymentHandler{
		checkoutService: checkoutService,
	}
}

func (h *PaymentHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	productID := c.Param("productID")

	session, err := h.checkoutService.Initiate(ctx, middleware.ProfileFrom(c), productID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthenticated):
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error":    "로그인이 필요합니다.",
				"redirect": "/login?redirect=" + url.QueryEscape("/checkout/"+productID),
			})
		case errors.Is(err, service.ErrProductNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "상품을 찾을 수 없습니다.")
		case errors.Is(err, service.ErrNotPurchasable):
			return echo.NewHTTPError(http.StatusConflict, "온라인 결제가 불가능한 상품입니다. 별도로 문의해 주세요.")
		}
		return err
	}

	return c.JSON(http.StatusOK, session)
}

// Confirm settles a payment with the gateway. A body carrying a productId is
// persisted as an order; a bare paymentKey/orderId/amount triple is proxied
// to the gateway only.
func (h *PaymentHandler) Confirm(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ConfirmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "요청 본문이 올바르지 않습니다.")
	}

	var result *dto.ConfirmResult
	var err error
	if req.ProductID == "" {
		result, err = h.checkoutService.ConfirmOnly(ctx, &req)
	} else {
		result, err = h.checkoutService.Confirm(ctx, middleware.ProfileFrom(c), &req)
	}
	if err != nil {
		return h.confirmError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// HandleSuccess is the gateway's redirect target after checkout. It carries
// the confirmation triple as query parameters.
func (h *PaymentHandler) HandleSuccess(c echo.Context) error {
	ctx := c.Request().Context()

	orderID := c.QueryParam("orderId")
	paymentKey := c.QueryParam("paymentKey")
	amount, parseErr := strconv.ParseInt(c.QueryParam("amount"), 10, 64)
	if orderID == "" || paymentKey == "" || parseErr != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "결제 정보가 올바르지 않습니다.")
	}

	req := &dto.ConfirmRequest{
		PaymentKey:  paymentKey,
		OrderID:     orderID,
		Amount:      amount,
		OrderName:   c.QueryParam("orderName"),
		ProductID:   c.QueryParam("productId"),
		ProductName: c.QueryParam("productName"),
	}

	result, err := h.checkoutService.Confirm(ctx, middleware.ProfileFrom(c), req)
	if err != nil {
		return h.confirmError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) HandleFail(c echo.Context) error {
	failure := h.checkoutService.FailureInfo(
		c.QueryParam("code"),
		c.QueryParam("message"),
		c.QueryParam("orderId"),
	)
	return c.JSON(http.StatusOK, failure)
}

func (h *PaymentHandler) confirmError(c echo.Context, err error) error {
	var gatewayErr *client.GatewayError
	switch {
	case errors.As(err, &gatewayErr):
		return c.JSON(gatewayErr.StatusCode, map[string]string{
			"error": gatewayErr.Message,
		})
	case errors.Is(err, service.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "로그인이 필요합니다.")
	case errors.Is(err, service.ErrInvalidCallback):
		return echo.NewHTTPError(http.StatusBadRequest, "결제 정보가 올바르지 않습니다.")
	case errors.Is(err, service.ErrGatewayConfig):
		return echo.NewHTTPError(http.StatusInternalServerError, "TOSS_SECRET_KEY가 설정되지 않았습니다.")
	case errors.Is(err, service.ErrConfirmationInProgress):
		return echo.NewHTTPError(http.StatusConflict, "이미 결제 승인이 진행 중입니다.")
	}
	return err
}
