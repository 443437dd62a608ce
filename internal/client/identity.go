package client

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"

	"course-market/internal/model"
)

// IdentityClient is the narrow slice of Firebase Auth the services need.
type IdentityClient interface {
	// LookupUser reports whether the uid exists in Firebase Auth.
	LookupUser(ctx context.Context, uid string) (bool, error)
	CreateUser(ctx context.Context, uid, email, displayName string) error
	CustomToken(ctx context.Context, uid string) (string, error)
	VerifyIDToken(ctx context.Context, idToken string) (*model.TokenClaims, error)
}

type identityClientImpl struct {
	authClient *auth.Client
}

func NewIdentityClient(authClient *auth.Client) IdentityClient {
	return &identityClientImpl{authClient: authClient}
}

func (c *identityClientImpl) LookupUser(ctx context.Context, uid string) (bool, error) {
	_, err := c.authClient.GetUser(ctx, uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("firebase get user: %w", err)
	}
	return true, nil
}

func (c *identityClientImpl) CreateUser(ctx context.Context, uid, email, displayName string) error {
	params := (&auth.UserToCreate{}).
		UID(uid).
		Email(email).
		DisplayName(displayName)
	if _, err := c.authClient.CreateUser(ctx, params); err != nil {
		return fmt.Errorf("firebase create user: %w", err)
	}
	return nil
}

func (c *identityClientImpl) CustomToken(ctx context.Context, uid string) (string, error) {
	token, err := c.authClient.CustomToken(ctx, uid)
	if err != nil {
		return "", fmt.Errorf("firebase custom token: %w", err)
	}
	return token, nil
}

func (c *identityClientImpl) VerifyIDToken(ctx context.Context, idToken string) (*model.TokenClaims, error) {
	token, err := c.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("firebase verify id token: %w", err)
	}

	claims := &model.TokenClaims{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		claims.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		claims.Name = name
	}
	return claims, nil
}
