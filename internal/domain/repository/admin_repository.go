package repository

import (
	"context"

	"fuelflow/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrAdminNotFound is returned when an admin is not found.
var ErrAdminNotFound = errors.New("admin not found")

// AdminRepository holds the admin profiles.
type AdminRepository interface {
	Collection[entity.Admin]

	// Search returns admins whose name contains query, case-insensitively.
	Search(ctx context.Context, query string) ([]*entity.Admin, error)

	// AccessKey reads the key new admins must present to register.
	AccessKey(ctx context.Context) (string, error)
}
