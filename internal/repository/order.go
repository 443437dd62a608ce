package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"course-market/internal/model"
)

type OrderRepository interface {
	// Create writes the order only if no document with the same id exists;
	// a duplicate id returns ErrOrderExists.
	Create(ctx context.Context, order *model.Order) error
	Get(ctx context.Context, orderID string) (*model.Order, error)
	ListByUser(ctx context.Context, uid string) ([]*model.Order, error)
	ListAll(ctx context.Context) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, orderID, orderStatus string) error
}

type orderRepoImpl struct {
	db *firestore.Client
}

func NewOrderRepository(db *firestore.Client) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, order *model.Order) error {
	// ProductID may be empty: the success redirect's productId parameter is
	// optional, and a settled payment must be recorded regardless.
	if order.ID == "" || order.UserID == "" {
		return fmt.Errorf("order missing required fields: id=%q userId=%q", order.ID, order.UserID)
	}

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	_, err := r.db.Collection(model.CollectionOrders).Doc(order.ID).Create(ctx, order)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return ErrOrderExists
		}
		return fmt.Errorf("create order %s: %w", order.ID, err)
	}
	return nil
}

func (r *orderRepoImpl) Get(ctx context.Context, orderID string) (*model.Order, error) {
	snap, err := r.db.Collection(model.CollectionOrders).Doc(orderID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}

	var order model.Order
	if err := snap.DataTo(&order); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", orderID, err)
	}
	return &order, nil
}

func (r *orderRepoImpl) ListByUser(ctx context.Context, uid string) ([]*model.Order, error) {
	iter := r.db.Collection(model.CollectionOrders).
		Where("userId", "==", uid).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	return collectOrders(iter)
}

func (r *orderRepoImpl) ListAll(ctx context.Context) ([]*model.Order, error) {
	iter := r.db.Collection(model.CollectionOrders).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	return collectOrders(iter)
}

func (r *orderRepoImpl) UpdateStatus(ctx context.Context, orderID, orderStatus string) error {
	_, err := r.db.Collection(model.CollectionOrders).Doc(orderID).Update(ctx, []firestore.Update{
		{Path: "status", Value: orderStatus},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("update order %s status: %w", orderID, err)
	}
	return nil
}

func collectOrders(iter *firestore.DocumentIterator) ([]*model.Order, error) {
	var orders []*model.Order
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate orders: %w", err)
		}

		var order model.Order
		if err := snap.DataTo(&order); err != nil {
			return nil, fmt.Errorf("decode order %s: %w", snap.Ref.ID, err)
		}
		orders = append(orders, &order)
	}
	return orders, nil
}
