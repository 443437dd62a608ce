package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"course-market/internal/client"
	"course-market/internal/model"
	"course-market/internal/repository"
)

type AuthService interface {
	// LoginWithKakaoAccount mints a custom sign-in token for a Kakao user,
	// creating the identity and profile on first login.
	LoginWithKakaoAccount(ctx context.Context, kakaoUserID, email, name, profileImageURL string) (string, error)
	// HandleKakaoCallback runs the server-side authorization-code flow and
	// returns a custom sign-in token.
	HandleKakaoCallback(ctx context.Context, code, redirectURI string) (string, error)
	// EnsureProfile creates the Firestore profile for a verified identity if
	// it does not exist yet, and returns it.
	EnsureProfile(ctx context.Context, claims *model.TokenClaims) (*model.User, error)
	VerifyIDToken(ctx context.Context, idToken string) (*model.TokenClaims, error)
	GetProfile(ctx context.Context, uid string) (*model.User, error)
}

type authServiceImpl struct {
	identity    client.IdentityClient
	kakaoClient client.KakaoClient
	userRepo    repository.UserRepository
}

func NewAuthService(identity client.IdentityClient, kakaoClient client.KakaoClient, userRepo repository.UserRepository) AuthService {
	return &authServiceImpl{
		identity:    identity,
		kakaoClient: kakaoClient,
		userRepo:    userRepo,
	}
}

func (s *authServiceImpl) LoginWithKakaoAccount(ctx context.Context, kakaoUserID, email, name, profileImageURL string) (string, error) {
	if kakaoUserID == "" {
		return "", ErrInvalidKakaoUser
	}

	uid := "kakao_" + kakaoUserID
	if email == "" {
		// Kakao may withhold the email scope; a placeholder keeps the
		// Firebase account creatable.
		email = uid + "@kakao.local"
	}
	name = kakaoDisplayName(name, email)

	exists, err := s.identity.LookupUser(ctx, uid)
	if err != nil {
		return "", fmt.Errorf("lookup identity %s: %w", uid, err)
	}
	if !exists {
		if err := s.identity.CreateUser(ctx, uid, email, name); err != nil {
			return "", fmt.Errorf("create identity %s: %w", uid, err)
		}
	}

	if err := s.upsertProfile(ctx, uid, email, name, profileImageURL); err != nil {
		return "", err
	}

	token, err := s.identity.CustomToken(ctx, uid)
	if err != nil {
		return "", fmt.Errorf("mint custom token for %s: %w", uid, err)
	}
	return token, nil
}

func (s *authServiceImpl) HandleKakaoCallback(ctx context.Context, code, redirectURI string) (string, error) {
	token, err := s.kakaoClient.ExchangeAuthCode(ctx, code, redirectURI)
	if err != nil {
		log.Warn().Err(err).Msg("kakao token exchange failed")
		return "", ErrKakaoTokenExchange
	}

	kakaoUser, err := s.kakaoClient.GetUser(ctx, token.AccessToken)
	if err != nil {
		log.Warn().Err(err).Msg("kakao user lookup failed")
		return "", ErrKakaoUserInfo
	}

	return s.LoginWithKakaoAccount(
		ctx,
		fmt.Sprintf("%d", kakaoUser.ID),
		kakaoUser.KakaoAccount.Email,
		kakaoUser.KakaoAccount.Profile.Nickname,
		kakaoUser.KakaoAccount.Profile.ProfileImageURL,
	)
}

func (s *authServiceImpl) EnsureProfile(ctx context.Context, claims *model.TokenClaims) (*model.User, error) {
	user, err := s.userRepo.Get(ctx, claims.UID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("load profile %s: %w", claims.UID, err)
	}

	user = &model.User{
		UID:   claims.UID,
		Email: claims.Email,
		Name:  kakaoDisplayName(claims.Name, claims.Email),
		Role:  model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create profile %s: %w", claims.UID, err)
	}
	return user, nil
}

func (s *authServiceImpl) VerifyIDToken(ctx context.Context, idToken string) (*model.TokenClaims, error) {
	return s.identity.VerifyIDToken(ctx, idToken)
}

func (s *authServiceImpl) GetProfile(ctx context.Context, uid string) (*model.User, error) {
	return s.userRepo.Get(ctx, uid)
}

func (s *authServiceImpl) upsertProfile(ctx context.Context, uid, email, name, profileImageURL string) error {
	_, err := s.userRepo.Get(ctx, uid)
	if err == nil {
		fields := map[string]any{
			"email": email,
			"name":  name,
		}
		if profileImageURL != "" {
			fields["profileImageUrl"] = profileImageURL
		}
		if err := s.userRepo.Update(ctx, uid, fields); err != nil {
			return fmt.Errorf("refresh profile %s: %w", uid, err)
		}
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("load profile %s: %w", uid, err)
	}

	user := &model.User{
		UID:             uid,
		Email:           email,
		Name:            name,
		ProfileImageURL: profileImageURL,
		Role:            model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("create profile %s: %w", uid, err)
	}
	return nil
}

// kakaoDisplayName picks the first usable display name: the Kakao nickname,
// then the email local part, then a generic fallback.
func kakaoDisplayName(nickname, email string) string {
	if nickname != "" {
		return nickname
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return "사용자"
}
