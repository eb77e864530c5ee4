package firebase

import (
	"context"
	"fmt"

	"fuelflow/internal/domain/repository"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
)

type rtdbStore struct {
	client *db.Client
}

// NewRTDBStore creates a document store backed by the Realtime Database.
func NewRTDBStore(ctx context.Context, app *firebase.App) (repository.DocumentStore, error) {
	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	return &rtdbStore{client: client}, nil
}

// Get reads the subtree at path. The database answers null for a missing
// path, which leaves dest untouched.
func (s *rtdbStore) Get(ctx context.Context, path string, dest any) error {
	if err := s.client.NewRef(path).Get(ctx, dest); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	return nil
}

func (s *rtdbStore) Set(ctx context.Context, path string, value any) error {
	if err := s.client.NewRef(path).Set(ctx, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

func (s *rtdbStore) Delete(ctx context.Context, path string) error {
	if err := s.client.NewRef(path).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}

	return nil
}
