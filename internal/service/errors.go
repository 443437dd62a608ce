package service

import "errors"

var (
	ErrUnauthenticated        = errors.New("authentication required")
	ErrForbidden              = errors.New("forbidden")
	ErrProductNotFound        = errors.New("product not found")
	ErrNotPurchasable         = errors.New("product cannot be purchased online")
	ErrInvalidCallback        = errors.New("payment callback parameters missing or invalid")
	ErrGatewayConfig          = errors.New("payment gateway is not configured")
	ErrConfirmationInProgress = errors.New("payment confirmation already in progress")

	ErrInvalidKakaoUser   = errors.New("kakao user id is missing")
	ErrKakaoTokenExchange = errors.New("kakao token exchange failed")
	ErrKakaoUserInfo      = errors.New("kakao user lookup failed")

	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrContentTooShort = errors.New("review content must be at least 10 characters")
	ErrTooManyImages   = errors.New("a review may carry at most 5 images")
	ErrInvalidStatus   = errors.New("unknown order status")
	ErrInvalidRole     = errors.New("unknown user role")
)
