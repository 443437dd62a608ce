package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"course-market/internal/dto"
	"course-market/internal/middleware"
	"course-market/internal/repository"
	"course-market/internal/service"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SubmitReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "요청 본문이 올바르지 않습니다.")
	}

	review, err := h.reviewService.Submit(ctx, middleware.ProfileFrom(c), &req)
	if err != nil {
		return h.reviewError(err)
	}

	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) ListByProduct(c echo.Context) error {
	ctx := c.Request().Context()

	reviews, err := h.reviewService.ListByProduct(ctx, c.Param("productID"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) ListMine(c echo.Context) error {
	ctx := c.Request().Context()

	reviews, err := h.reviewService.ListByUser(ctx, middleware.UIDFrom(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "요청 본문이 올바르지 않습니다.")
	}

	review, err := h.reviewService.Update(ctx, middleware.ProfileFrom(c), c.Param("reviewID"), &req)
	if err != nil {
		return h.reviewError(err)
	}

	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.reviewService.Delete(ctx, middleware.ProfileFrom(c), c.Param("reviewID")); err != nil {
		return h.reviewError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ReviewHandler) reviewError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidRating):
		return echo.NewHTTPError(http.StatusBadRequest, "평점은 1점에서 5점 사이여야 합니다.")
	case errors.Is(err, service.ErrContentTooShort):
		return echo.NewHTTPError(http.StatusBadRequest, "후기는 10자 이상 작성해 주세요.")
	case errors.Is(err, service.ErrTooManyImages):
		return echo.NewHTTPError(http.StatusBadRequest, "이미지는 최대 5장까지 첨부할 수 있습니다.")
	case errors.Is(err, service.ErrProductNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "상품을 찾을 수 없습니다.")
	case errors.Is(err, repository.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "후기를 찾을 수 없습니다.")
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "본인의 후기만 수정하거나 삭제할 수 있습니다.")
	}
	return err
}
