package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"course-market/internal/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	Get(ctx context.Context, reviewID string) (*model.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]*model.Review, error)
	ListByUser(ctx context.Context, uid string) ([]*model.Review, error)
	ListAll(ctx context.Context) ([]*model.Review, error)
	Update(ctx context.Context, reviewID string, fields map[string]any) error
	Delete(ctx context.Context, reviewID string) error
}

type reviewRepoImpl struct {
	db *firestore.Client
}

func NewReviewRepository(db *firestore.Client) ReviewRepository {
	return &reviewRepoImpl{
		db: db,
	}
}

func (r *reviewRepoImpl) Create(ctx context.Context, review *model.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	_, err := r.db.Collection(model.CollectionReviews).Doc(review.ID).Set(ctx, review)
	if err != nil {
		return fmt.Errorf("create review %s: %w", review.ID, err)
	}
	return nil
}

func (r *reviewRepoImpl) Get(ctx context.Context, reviewID string) (*model.Review, error) {
	snap, err := r.db.Collection(model.CollectionReviews).Doc(reviewID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get review %s: %w", reviewID, err)
	}

	var review model.Review
	if err := snap.DataTo(&review); err != nil {
		return nil, fmt.Errorf("decode review %s: %w", reviewID, err)
	}
	return &review, nil
}

func (r *reviewRepoImpl) ListByProduct(ctx context.Context, productID string) ([]*model.Review, error) {
	iter := r.db.Collection(model.CollectionReviews).
		Where("productId", "==", productID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	return collectReviews(iter)
}

func (r *reviewRepoImpl) ListByUser(ctx context.Context, uid string) ([]*model.Review, error) {
	iter := r.db.Collection(model.CollectionReviews).
		Where("userId", "==", uid).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	return collectReviews(iter)
}

func (r *reviewRepoImpl) ListAll(ctx context.Context) ([]*model.Review, error) {
	iter := r.db.Collection(model.CollectionReviews).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	return collectReviews(iter)
}

func (r *reviewRepoImpl) Update(ctx context.Context, reviewID string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now()})

	_, err := r.db.Collection(model.CollectionReviews).Doc(reviewID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("update review %s: %w", reviewID, err)
	}
	return nil
}

func (r *reviewRepoImpl) Delete(ctx context.Context, reviewID string) error {
	_, err := r.db.Collection(model.CollectionReviews).Doc(reviewID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("delete review %s: %w", reviewID, err)
	}
	return nil
}

func collectReviews(iter *firestore.DocumentIterator) ([]*model.Review, error) {
	var reviews []*model.Review
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate reviews: %w", err)
		}

		var review model.Review
		if err := snap.DataTo(&review); err != nil {
			return nil, fmt.Errorf("decode review %s: %w", snap.Ref.ID, err)
		}
		reviews = append(reviews, &review)
	}
	return reviews, nil
}
