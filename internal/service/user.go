package service

import (
	"context"

	"course-market/internal/dto"
	"course-market/internal/model"
	"course-market/internal/repository"
)

type UserService interface {
	Get(ctx context.Context, uid string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, uid string, req *dto.UpdateUserRequest) (*model.User, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
	}
}

func (s *userServiceImpl) Get(ctx context.Context, uid string) (*model.User, error) {
	return s.userRepo.Get(ctx, uid)
}

func (s *userServiceImpl) List(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userServiceImpl) Update(ctx context.Context, uid string, req *dto.UpdateUserRequest) (*model.User, error) {
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.PhoneNumber != nil {
		fields["phoneNumber"] = *req.PhoneNumber
	}
	if req.ProfileImageURL != nil {
		fields["profileImageUrl"] = *req.ProfileImageURL
	}
	if req.Role != nil {
		if *req.Role != model.RoleUser && *req.Role != model.RoleAdmin {
			return nil, ErrInvalidRole
		}
		fields["role"] = *req.Role
	}

	if len(fields) > 0 {
		if err := s.userRepo.Update(ctx, uid, fields); err != nil {
			return nil, err
		}
	}
	return s.userRepo.Get(ctx, uid)
}
