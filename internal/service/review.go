package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"course-market/internal/dto"
	"course-market/internal/model"
	"course-market/internal/repository"
)

const (
	minReviewContentRunes = 10
	maxReviewImages       = 5
)

type ReviewService interface {
	Submit(ctx context.Context, profile *model.User, req *dto.SubmitReviewRequest) (*model.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]*model.Review, error)
	ListByUser(ctx context.Context, uid string) ([]*model.Review, error)
	ListAll(ctx context.Context) ([]*model.Review, error)
	Update(ctx context.Context, profile *model.User, reviewID string, req *dto.UpdateReviewRequest) (*model.Review, error)
	Delete(ctx context.Context, profile *model.User, reviewID string) error
}

type reviewServiceImpl struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) ReviewService {
	return &reviewServiceImpl{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

func (s *reviewServiceImpl) Submit(ctx context.Context, profile *model.User, req *dto.SubmitReviewRequest) (*model.Review, error) {
	if profile == nil {
		return nil, ErrUnauthenticated
	}
	if err := validateReview(req.Rating, req.Content, req.Images); err != nil {
		return nil, err
	}

	product, err := s.productRepo.Get(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("load product %s: %w", req.ProductID, err)
	}

	review := &model.Review{
		UserID:           profile.UID,
		UserName:         profile.Name,
		UserProfileImage: profile.ProfileImageURL,
		ProductID:        product.ID,
		ProductName:      product.Name,
		Rating:           req.Rating,
		Content:          req.Content,
		Images:           req.Images,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.refreshProductStats(ctx, product.ID)
	return review, nil
}

func (s *reviewServiceImpl) ListByProduct(ctx context.Context, productID string) ([]*model.Review, error) {
	return s.reviewRepo.ListByProduct(ctx, productID)
}

func (s *reviewServiceImpl) ListByUser(ctx context.Context, uid string) ([]*model.Review, error) {
	return s.reviewRepo.ListByUser(ctx, uid)
}

func (s *reviewServiceImpl) ListAll(ctx context.Context) ([]*model.Review, error) {
	return s.reviewRepo.ListAll(ctx)
}

func (s *reviewServiceImpl) Update(ctx context.Context, profile *model.User, reviewID string, req *dto.UpdateReviewRequest) (*model.Review, error) {
	review, err := s.authorizeReviewAccess(ctx, profile, reviewID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, ErrInvalidRating
		}
		fields["rating"] = *req.Rating
	}
	if req.Content != nil {
		if utf8.RuneCountInString(*req.Content) < minReviewContentRunes {
			return nil, ErrContentTooShort
		}
		fields["content"] = *req.Content
	}
	if req.Images != nil {
		if len(*req.Images) > maxReviewImages {
			return nil, ErrTooManyImages
		}
		fields["images"] = *req.Images
	}

	if len(fields) > 0 {
		if err := s.reviewRepo.Update(ctx, reviewID, fields); err != nil {
			return nil, err
		}
	}

	updated, err := s.reviewRepo.Get(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if req.Rating != nil {
		s.refreshProductStats(ctx, review.ProductID)
	}
	return updated, nil
}

func (s *reviewServiceImpl) Delete(ctx context.Context, profile *model.User, reviewID string) error {
	review, err := s.authorizeReviewAccess(ctx, profile, reviewID)
	if err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}

	s.refreshProductStats(ctx, review.ProductID)
	return nil
}

func (s *reviewServiceImpl) authorizeReviewAccess(ctx context.Context, profile *model.User, reviewID string) (*model.Review, error) {
	if profile == nil {
		return nil, ErrUnauthenticated
	}

	review, err := s.reviewRepo.Get(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != profile.UID && profile.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}
	return review, nil
}

// refreshProductStats recomputes the denormalized review count and average
// rating. Stats are advisory; a failure here never fails the review write.
func (s *reviewServiceImpl) refreshProductStats(ctx context.Context, productID string) {
	reviews, err := s.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		log.Warn().Err(err).Str("productId", productID).Msg("failed to load reviews for stats refresh")
		return
	}

	var average float64
	if len(reviews) > 0 {
		var total int
		for _, review := range reviews {
			total += review.Rating
		}
		average = float64(total) / float64(len(reviews))
	}

	if err := s.productRepo.UpdateReviewStats(ctx, productID, len(reviews), average); err != nil {
		log.Warn().Err(err).Str("productId", productID).Msg("failed to update product review stats")
	}
}

func validateReview(rating int, content string, images []string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	if utf8.RuneCountInString(content) < minReviewContentRunes {
		return ErrContentTooShort
	}
	if len(images) > maxReviewImages {
		return ErrTooManyImages
	}
	return nil
}
