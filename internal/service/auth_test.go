package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-market/internal/model"
	"course-market/internal/repository"
)

type fakeIdentity struct {
	users   map[string]bool
	created []string
}

func newFakeIdentity(existing ...string) *fakeIdentity {
	f := &fakeIdentity{users: map[string]bool{}}
	for _, uid := range existing {
		f.users[uid] = true
	}
	return f
}

func (f *fakeIdentity) LookupUser(ctx context.Context, uid string) (bool, error) {
	return f.users[uid], nil
}

func (f *fakeIdentity) CreateUser(ctx context.Context, uid, email, displayName string) error {
	f.users[uid] = true
	f.created = append(f.created, uid)
	return nil
}

func (f *fakeIdentity) CustomToken(ctx context.Context, uid string) (string, error) {
	return "token-for-" + uid, nil
}

func (f *fakeIdentity) VerifyIDToken(ctx context.Context, idToken string) (*model.TokenClaims, error) {
	return nil, errors.New("not implemented")
}

type fakeKakaoClient struct {
	token    *model.KakaoToken
	tokenErr error
	user     *model.KakaoUser
	userErr  error
}

func (f *fakeKakaoClient) ExchangeAuthCode(ctx context.Context, code, redirectURI string) (*model.KakaoToken, error) {
	if f.tokenErr != nil {
		return nil, f.tokenErr
	}
	return f.token, nil
}

func (f *fakeKakaoClient) GetUser(ctx context.Context, accessToken string) (*model.KakaoUser, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.user, nil
}

type fakeUserRepo struct {
	users   map[string]*model.User
	updates map[string]map[string]any
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}, updates: map[string]map[string]any{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	stored := *user
	r.users[user.UID] = &stored
	return nil
}

func (r *fakeUserRepo) Get(ctx context.Context, uid string) (*model.User, error) {
	user, ok := r.users[uid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, uid string, fields map[string]any) error {
	if _, ok := r.users[uid]; !ok {
		return repository.ErrNotFound
	}
	r.updates[uid] = fields
	if name, ok := fields["name"].(string); ok {
		r.users[uid].Name = name
	}
	if email, ok := fields["email"].(string); ok {
		r.users[uid].Email = email
	}
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*model.User, error) {
	var out []*model.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func TestKakaoLoginFirstTime(t *testing.T) {
	identity := newFakeIdentity()
	users := newFakeUserRepo()
	svc := NewAuthService(identity, &fakeKakaoClient{}, users)

	token, err := svc.LoginWithKakaoAccount(context.Background(), "12345", "kim@example.com", "김철수", "https://img.example.com/p.jpg")
	require.NoError(t, err)

	assert.Equal(t, "token-for-kakao_12345", token)
	assert.Equal(t, []string{"kakao_12345"}, identity.created)

	profile, err := users.Get(context.Background(), "kakao_12345")
	require.NoError(t, err)
	assert.Equal(t, "김철수", profile.Name)
	assert.Equal(t, "kim@example.com", profile.Email)
	assert.Equal(t, model.RoleUser, profile.Role)
}

func TestKakaoLoginPlaceholderEmail(t *testing.T) {
	identity := newFakeIdentity()
	users := newFakeUserRepo()
	svc := NewAuthService(identity, &fakeKakaoClient{}, users)

	_, err := svc.LoginWithKakaoAccount(context.Background(), "12345", "", "김철수", "")
	require.NoError(t, err)

	profile, err := users.Get(context.Background(), "kakao_12345")
	require.NoError(t, err)
	assert.Equal(t, "kakao_12345@kakao.local", profile.Email)
}

func TestKakaoLoginExistingAccount(t *testing.T) {
	identity := newFakeIdentity("kakao_12345")
	users := newFakeUserRepo()
	require.NoError(t, users.Create(context.Background(), &model.User{UID: "kakao_12345", Email: "old@example.com", Name: "옛이름"}))

	svc := NewAuthService(identity, &fakeKakaoClient{}, users)

	token, err := svc.LoginWithKakaoAccount(context.Background(), "12345", "new@example.com", "새이름", "")
	require.NoError(t, err)

	assert.Equal(t, "token-for-kakao_12345", token)
	assert.Empty(t, identity.created, "existing identity must not be recreated")

	profile, err := users.Get(context.Background(), "kakao_12345")
	require.NoError(t, err)
	assert.Equal(t, "새이름", profile.Name)
	assert.Equal(t, "new@example.com", profile.Email)
}

func TestKakaoLoginMissingID(t *testing.T) {
	svc := NewAuthService(newFakeIdentity(), &fakeKakaoClient{}, newFakeUserRepo())

	_, err := svc.LoginWithKakaoAccount(context.Background(), "", "kim@example.com", "김철수", "")
	assert.ErrorIs(t, err, ErrInvalidKakaoUser)
}

func TestKakaoCallbackSuccess(t *testing.T) {
	kakao := &fakeKakaoClient{
		token: &model.KakaoToken{AccessToken: "at"},
		user: &model.KakaoUser{
			ID: 98765,
			KakaoAccount: model.KakaoAccount{
				Email:   "lee@example.com",
				Profile: model.KakaoProfile{Nickname: "이영희"},
			},
		},
	}
	users := newFakeUserRepo()
	svc := NewAuthService(newFakeIdentity(), kakao, users)

	token, err := svc.HandleKakaoCallback(context.Background(), "authcode", "https://example.com/api/auth/kakao/callback")
	require.NoError(t, err)
	assert.Equal(t, "token-for-kakao_98765", token)

	profile, err := users.Get(context.Background(), "kakao_98765")
	require.NoError(t, err)
	assert.Equal(t, "이영희", profile.Name)
}

func TestKakaoCallbackTokenExchangeFails(t *testing.T) {
	kakao := &fakeKakaoClient{tokenErr: errors.New("bad code")}
	svc := NewAuthService(newFakeIdentity(), kakao, newFakeUserRepo())

	_, err := svc.HandleKakaoCallback(context.Background(), "authcode", "uri")
	assert.ErrorIs(t, err, ErrKakaoTokenExchange)
}

func TestKakaoCallbackUserInfoFails(t *testing.T) {
	kakao := &fakeKakaoClient{
		token:   &model.KakaoToken{AccessToken: "at"},
		userErr: errors.New("expired"),
	}
	svc := NewAuthService(newFakeIdentity(), kakao, newFakeUserRepo())

	_, err := svc.HandleKakaoCallback(context.Background(), "authcode", "uri")
	assert.ErrorIs(t, err, ErrKakaoUserInfo)
}

func TestEnsureProfileCreatesOnce(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(newFakeIdentity(), &fakeKakaoClient{}, users)

	claims := &model.TokenClaims{UID: "google_1", Email: "park@example.com", Name: "박민수"}

	first, err := svc.EnsureProfile(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, "박민수", first.Name)
	assert.Equal(t, model.RoleUser, first.Role)

	users.users["google_1"].Name = "변경됨"

	second, err := svc.EnsureProfile(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, "변경됨", second.Name, "existing profile must be returned, not rewritten")
}

func TestKakaoDisplayNameFallbacks(t *testing.T) {
	assert.Equal(t, "닉네임", kakaoDisplayName("닉네임", "kim@example.com"))
	assert.Equal(t, "kim", kakaoDisplayName("", "kim@example.com"))
	assert.Equal(t, "사용자", kakaoDisplayName("", ""))
	assert.Equal(t, "사용자", kakaoDisplayName("", "@example.com"))
}
