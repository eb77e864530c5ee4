package repository

import (
	"context"

	"fuelflow/internal/domain/entity"
)

// AttendanceRepository holds the attendance map.
type AttendanceRepository interface {
	Loader

	// Get returns a copy of the attendance map.
	Get(ctx context.Context) (entity.Attendance, error)

	// Set marks userID present on dateKey; present=false removes the mark.
	Set(ctx context.Context, userID, dateKey string, present bool) error
}
