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

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, uid string) (*model.User, error)
	Update(ctx context.Context, uid string, fields map[string]any) error
	List(ctx context.Context) ([]*model.User, error)
}

type userRepoImpl struct {
	db *firestore.Client
}

func NewUserRepository(db *firestore.Client) UserRepository {
	return &userRepoImpl{
		db: db,
	}
}

func (r *userRepoImpl) Create(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = model.RoleUser
	}

	_, err := r.db.Collection(model.CollectionUsers).Doc(user.UID).Set(ctx, user)
	if err != nil {
		return fmt.Errorf("create user %s: %w", user.UID, err)
	}
	return nil
}

func (r *userRepoImpl) Get(ctx context.Context, uid string) (*model.User, error) {
	snap, err := r.db.Collection(model.CollectionUsers).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", uid, err)
	}

	var user model.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", uid, err)
	}
	return &user, nil
}

func (r *userRepoImpl) Update(ctx context.Context, uid string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now()})

	_, err := r.db.Collection(model.CollectionUsers).Doc(uid).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("update user %s: %w", uid, err)
	}
	return nil
}

func (r *userRepoImpl) List(ctx context.Context) ([]*model.User, error) {
	iter := r.db.Collection(model.CollectionUsers).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var users []*model.User
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}

		var user model.User
		if err := snap.DataTo(&user); err != nil {
			return nil, fmt.Errorf("decode user %s: %w", snap.Ref.ID, err)
		}
		users = append(users, &user)
	}
	return users, nil
}
