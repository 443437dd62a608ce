package client

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"course-market/internal/config"
)

// InitFirebase builds the Firestore and Auth clients from one Firebase app.
// The credentials file is optional; without it the SDK falls back to
// application-default credentials.
func InitFirebase(ctx context.Context, cfg *config.Firebase) (*firestore.Client, *auth.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("init firebase app: %w", err)
	}

	db, err := app.Firestore(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("init firestore client: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("init firebase auth client: %w", err)
	}

	return db, authClient, nil
}
