package repository

import (
	"context"

	"fuelflow/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrMoveNotFound is returned when a move history record is not found.
var ErrMoveNotFound = errors.New("move history record not found")

// MoveHistoryRepository holds the append-only move history log.
type MoveHistoryRepository interface {
	Loader

	// List returns every record, newest first.
	List(ctx context.Context) ([]*entity.MoveEntryPayload, error)

	// FindByID returns one record.
	FindByID(ctx context.Context, moveID string) (*entity.MoveEntryPayload, error)

	// Append writes a new record. Records are never rewritten.
	Append(ctx context.Context, payload *entity.MoveEntryPayload) error
}
