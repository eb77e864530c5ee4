package usecase

import (
	"context"

	"fuelflow/internal/domain/entity"
)

// RegisterAdminRequest is the self-registration form of a new admin.
type RegisterAdminRequest struct {
	AccessKey   string `json:"accessKey" validate:"required"`
	FullName    string `json:"fullName" validate:"required,max=100"`
	Male        bool   `json:"male"`
	CountryCode string `json:"countryCode" validate:"omitempty,max=5"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=15"`
}

// AdminUsecase manages admins and their access.
type AdminUsecase interface {
	List(ctx context.Context) ([]*entity.Admin, error)
	Get(ctx context.Context, id string) (*entity.Admin, error)

	// Name returns the admin's name, or NA when the id is empty or unknown.
	Name(ctx context.Context, id string) string

	// Register creates an unverified admin for uid after checking the access key.
	Register(ctx context.Context, uid string, req *RegisterAdminRequest) (*entity.Admin, error)

	// Authorize returns the admin behind uid if it may use the application.
	Authorize(ctx context.Context, uid string) (*entity.Admin, error)

	// TouchLastSeen records activity of the admin.
	TouchLastSeen(ctx context.Context, id string) error
}

// AttendanceUsecase records which delivery persons worked on which day.
type AttendanceUsecase interface {
	Get(ctx context.Context) (entity.Attendance, error)

	// Set marks userID present or absent on dateKey (YYYYMMDD).
	Set(ctx context.Context, userID, dateKey string, present bool) error
}

// SettingsUsecase reads and writes per-admin preferences.
type SettingsUsecase interface {
	Get(ctx context.Context, adminID string) (entity.Settings, error)
	Save(ctx context.Context, adminID string, settings entity.Settings) (entity.Settings, error)
}
