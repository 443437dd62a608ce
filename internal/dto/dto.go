package dto

import (
	"encoding/json"

	"course-market/internal/model"
)

// CheckoutSession is everything the payment widget needs to open.
type CheckoutSession struct {
	OrderID       string `json:"orderId"`
	OrderName     string `json:"orderName"`
	Amount        int64  `json:"amount"`
	CustomerEmail string `json:"customerEmail"`
	CustomerName  string `json:"customerName"`
	SuccessURL    string `json:"successUrl"`
	FailURL       string `json:"failUrl"`
	ClientKey     string `json:"clientKey"`
}

// ConfirmRequest carries the gateway callback triple plus the product
// context needed to persist an order. ProductID empty means confirm-only.
type ConfirmRequest struct {
	PaymentKey  string `json:"paymentKey"`
	OrderID     string `json:"orderId"`
	Amount      int64  `json:"amount"`
	OrderName   string `json:"orderName"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
}

type ConfirmResult struct {
	Order            *model.Order    `json:"order,omitempty"`
	Payment          json.RawMessage `json:"payment,omitempty"`
	AlreadyProcessed bool            `json:"alreadyProcessed"`
}

type KakaoLoginRequest struct {
	KakaoUserID     json.Number `json:"kakaoUserId"`
	Email           string      `json:"email"`
	Name            string      `json:"name"`
	ProfileImageURL string      `json:"profileImageUrl"`
}

type SubmitReviewRequest struct {
	ProductID string   `json:"productId"`
	Rating    int      `json:"rating"`
	Content   string   `json:"content"`
	Images    []string `json:"images"`
}

type UpdateReviewRequest struct {
	Rating  *int      `json:"rating"`
	Content *string   `json:"content"`
	Images  *[]string `json:"images"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type UpdateUserRequest struct {
	Name            *string `json:"name"`
	PhoneNumber     *string `json:"phoneNumber"`
	ProfileImageURL *string `json:"profileImageUrl"`
	Role            *string `json:"role"`
}

// PaymentFailure is the localized shape shown on the fail page.
type PaymentFailure struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	OrderID     string `json:"orderId,omitempty"`
	Description string `json:"description"`
	Solution    string `json:"solution"`
}
