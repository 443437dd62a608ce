package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"course-market/internal/client"
	"course-market/internal/config"
	"course-market/internal/dto"
	"course-market/internal/model"
	"course-market/internal/repository"
)

const confirmLockTTL = 30 * time.Second

type CheckoutService interface {
	// Initiate builds a checkout session for a purchasable product.
	Initiate(ctx context.Context, profile *model.User, productID string) (*dto.CheckoutSession, error)
	// Confirm settles the payment with the gateway and persists the order.
	// A repeated call for an already-recorded order succeeds without
	// charging again.
	Confirm(ctx context.Context, profile *model.User, req *dto.ConfirmRequest) (*dto.ConfirmResult, error)
	// ConfirmOnly proxies the gateway confirmation without writing an order.
	ConfirmOnly(ctx context.Context, req *dto.ConfirmRequest) (*dto.ConfirmResult, error)
	// FailureInfo maps a gateway failure code to a localized description.
	FailureInfo(code, message, orderID string) *dto.PaymentFailure
}

type checkoutServiceImpl struct {
	tossClient  client.TossClient
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	rdb         *redis.Client
	baseURL     string
	clientKey   string
}

func NewCheckoutService(
	tossClient client.TossClient,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	rdb *redis.Client,
	cfg *config.Config,
) CheckoutService {
	return &checkoutServiceImpl{
		tossClient:  tossClient,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		rdb:         rdb,
		baseURL:     cfg.BaseURL,
		clientKey:   cfg.Toss.ClientKey,
	}
}

func (s *checkoutServiceImpl) Initiate(ctx context.Context, profile *model.User, productID string) (*dto.CheckoutSession, error) {
	if profile == nil {
		return nil, ErrUnauthenticated
	}

	product, err := s.productRepo.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("load product %s: %w", productID, err)
	}

	if product.Price <= 0 {
		return nil, ErrNotPurchasable
	}

	return &dto.CheckoutSession{
		OrderID:       NewOrderID(),
		OrderName:     product.Name,
		Amount:        product.Price,
		CustomerEmail: profile.Email,
		CustomerName:  profile.Name,
		SuccessURL:    fmt.Sprintf("%s/payment/success?productId=%s", s.baseURL, productID),
		FailURL:       s.baseURL + "/payment/fail",
		ClientKey:     s.clientKey,
	}, nil
}

func (s *checkoutServiceImpl) Confirm(ctx context.Context, profile *model.User, req *dto.ConfirmRequest) (*dto.ConfirmResult, error) {
	if profile == nil {
		return nil, ErrUnauthenticated
	}
	if req.PaymentKey == "" || req.OrderID == "" || req.Amount <= 0 {
		return nil, ErrInvalidCallback
	}

	// A recorded order means the gateway already settled this payment; the
	// repeated callback (page refresh, double tab) is answered from storage.
	if existing, err := s.orderRepo.Get(ctx, req.OrderID); err == nil {
		return &dto.ConfirmResult{Order: existing, AlreadyProcessed: true}, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check order %s: %w", req.OrderID, err)
	}

	unlock, err := s.acquireConfirmLock(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	resp, err := s.tossClient.ConfirmPayment(ctx, req.PaymentKey, req.OrderID, req.Amount)
	if err != nil {
		if errors.Is(err, client.ErrSecretKeyMissing) {
			return nil, ErrGatewayConfig
		}
		return nil, err
	}

	productName := req.ProductName
	if productName == "" {
		productName = req.OrderName
	}
	if productName == "" {
		productName = "강의"
	}

	order := &model.Order{
		ID:          req.OrderID,
		UserID:      profile.UID,
		UserEmail:   profile.Email,
		UserName:    profile.Name,
		ProductID:   req.ProductID,
		ProductName: productName,
		// The settled amount comes from the gateway, not the callback.
		Amount:     resp.Payment.TotalAmount,
		Status:     model.OrderStatusCompleted,
		PaymentKey: resp.Payment.PaymentKey,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		if errors.Is(err, repository.ErrOrderExists) {
			existing, getErr := s.orderRepo.Get(ctx, req.OrderID)
			if getErr != nil {
				return nil, fmt.Errorf("load existing order %s: %w", req.OrderID, getErr)
			}
			return &dto.ConfirmResult{Order: existing, Payment: resp.Raw, AlreadyProcessed: true}, nil
		}
		return nil, fmt.Errorf("persist order %s: %w", req.OrderID, err)
	}

	return &dto.ConfirmResult{Order: order, Payment: resp.Raw}, nil
}

func (s *checkoutServiceImpl) ConfirmOnly(ctx context.Context, req *dto.ConfirmRequest) (*dto.ConfirmResult, error) {
	if req.PaymentKey == "" || req.OrderID == "" || req.Amount <= 0 {
		return nil, ErrInvalidCallback
	}

	resp, err := s.tossClient.ConfirmPayment(ctx, req.PaymentKey, req.OrderID, req.Amount)
	if err != nil {
		if errors.Is(err, client.ErrSecretKeyMissing) {
			return nil, ErrGatewayConfig
		}
		return nil, err
	}

	return &dto.ConfirmResult{Payment: resp.Raw}, nil
}

// acquireConfirmLock guards against two tabs confirming the same order at
// once. Without redis, or when redis is down, the conditional order write
// still keeps the store consistent, so lock failures only log.
func (s *checkoutServiceImpl) acquireConfirmLock(ctx context.Context, orderID string) (func(), error) {
	if s.rdb == nil {
		return func() {}, nil
	}

	key := "payment:confirm:" + orderID
	ok, err := s.rdb.SetNX(ctx, key, "1", confirmLockTTL).Result()
	if err != nil {
		log.Warn().Err(err).Str("orderId", orderID).Msg("confirm lock unavailable, proceeding without it")
		return func() {}, nil
	}
	if !ok {
		return nil, ErrConfirmationInProgress
	}

	return func() {
		if err := s.rdb.Del(context.WithoutCancel(ctx), key).Err(); err != nil {
			log.Warn().Err(err).Str("orderId", orderID).Msg("failed to release confirm lock")
		}
	}, nil
}

var base36Alphabet = []byte("0123456789abcdefghijklmnopqrstuvwxyz")

// NewOrderID returns an identifier like ORDER-1756600000000-k3f9a2x: the
// creation time in unix milliseconds plus seven random base36 characters.
func NewOrderID() string {
	buf := make([]byte, 7)
	rand.Read(buf)
	for i, b := range buf {
		buf[i] = base36Alphabet[int(b)%len(base36Alphabet)]
	}
	return fmt.Sprintf("ORDER-%d-%s", time.Now().UnixMilli(), buf)
}

var failureDescriptions = map[string][2]string{
	"USER_CANCEL": {
		"사용자가 결제를 취소했습니다.",
		"결제를 다시 시도해 주세요.",
	},
	"INSUFFICIENT_BALANCE": {
		"잔액이 부족합니다.",
		"잔액을 확인하신 후 다시 시도해 주세요.",
	},
	"INVALID_CARD_INFO": {
		"카드 정보가 올바르지 않습니다.",
		"카드 정보를 확인하신 후 다시 시도해 주세요.",
	},
	"EXCEED_LIMIT": {
		"결제 한도를 초과했습니다.",
		"카드사에 한도를 문의하시거나 다른 카드로 시도해 주세요.",
	},
	"NETWORK_ERROR": {
		"네트워크 오류가 발생했습니다.",
		"잠시 후 다시 시도해 주세요.",
	},
}

func (s *checkoutServiceImpl) FailureInfo(code, message, orderID string) *dto.PaymentFailure {
	if code == "" {
		code = "UNKNOWN_ERROR"
	}
	if message == "" {
		message = "알 수 없는 오류가 발생했습니다."
	}

	description := "결제 처리 중 문제가 발생했습니다."
	solution := "잠시 후 다시 시도하시거나 고객센터로 문의해 주세요."
	if pair, ok := failureDescriptions[code]; ok {
		description, solution = pair[0], pair[1]
	}

	return &dto.PaymentFailure{
		Code:        code,
		Message:     message,
		OrderID:     orderID,
		Description: description,
		Solution:    solution,
	}
}
