package service

import (
	"context"

	"course-market/internal/model"
	"course-market/internal/repository"
)

type OrderService interface {
	Get(ctx context.Context, profile *model.User, orderID string) (*model.Order, error)
	ListByUser(ctx context.Context, uid string) ([]*model.Order, error)
	ListAll(ctx context.Context) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, orderID, orderStatus string) (*model.Order, error)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderServiceImpl{
		orderRepo: orderRepo,
	}
}

func (s *orderServiceImpl) Get(ctx context.Context, profile *model.User, orderID string) (*model.Order, error) {
	if profile == nil {
		return nil, ErrUnauthenticated
	}

	order, err := s.orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != profile.UID && profile.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *orderServiceImpl) ListByUser(ctx context.Context, uid string) ([]*model.Order, error) {
	return s.orderRepo.ListByUser(ctx, uid)
}

func (s *orderServiceImpl) ListAll(ctx context.Context) ([]*model.Order, error) {
	return s.orderRepo.ListAll(ctx)
}

func (s *orderServiceImpl) UpdateStatus(ctx context.Context, orderID, orderStatus string) (*model.Order, error) {
	if !model.ValidOrderStatus(orderStatus) {
		return nil, ErrInvalidStatus
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, orderStatus); err != nil {
		return nil, err
	}
	return s.orderRepo.Get(ctx, orderID)
}
