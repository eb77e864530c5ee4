package impl

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"slices"
	"strings"
	"time"

	deliverycontext "fuelflow/internal/delivery/context"
	"fuelflow/internal/domain/constants"
	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/usecase"
	"fuelflow/internal/util"

	"github.com/pkg/errors"
)

type adminService struct {
	adminRepo repository.AdminRepository
	logger    *slog.Logger
	now       clock
}

// NewAdminService creates the admin usecase.
func NewAdminService(adminRepo repository.AdminRepository, logger *slog.Logger) usecase.AdminUsecase {
	return &adminService{
		adminRepo: adminRepo,
		logger:    logger,
		now:       time.Now,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *adminService) List(ctx context.Context) ([]*entity.Admin, error) {
	admins, err := srv.adminRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list admins")
	}

	return admins, nil
}

func (srv *adminService) Get(ctx context.Context, id string) (*entity.Admin, error) {
	admin, err := srv.adminRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, repository.ErrAdminNotFound, "admin")
	}

	return admin, nil
}

func (srv *adminService) Name(ctx context.Context, id string) string {
	if id == "" {
		return constants.UnknownName
	}
	admin, err := srv.adminRepo.FindByID(ctx, id)
	if err != nil || admin.Data.FullName == "" {
		return constants.UnknownName
	}

	return admin.Data.FullName
}

func (srv *adminService) Register(ctx context.Context, uid string, req *usecase.RegisterAdminRequest) (*entity.Admin, error) {
	key, err := srv.adminRepo.AccessKey(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read access key")
	}
	if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(req.AccessKey)) != 1 {
		srv.log(ctx).Warn("Admin registration with wrong access key", slog.String("uid", uid))

		return nil, errors.WithStack(domainerrors.ErrInvalidAccessKey)
	}

	if existing, err := srv.adminRepo.FindByID(ctx, uid); err == nil {
		return existing, nil
	} else if !errors.Is(err, repository.ErrAdminNotFound) {
		return nil, errors.Wrap(err, "failed to find admin")
	}

	admin := &entity.Admin{Data: entity.AdminData{
		UserID:   uid,
		FullName: strings.TrimSpace(req.FullName),
		Male:     req.Male,
		Contact: entity.Contact{
			CountryCode: req.CountryCode,
			PhoneNumber: req.PhoneNumber,
		},
		ImportantTimes: entity.ImportantTimes{LastSeen: util.EpochMillis(srv.now())},
	}}
	if err := srv.adminRepo.Save(ctx, admin); err != nil {
		return nil, errors.Wrap(err, "failed to save admin")
	}
	srv.log(ctx).Info("Admin registered, awaiting verification", slog.String("uid", uid))

	return admin, nil
}

func (srv *adminService) Authorize(ctx context.Context, uid string) (*entity.Admin, error) {
	admin, err := srv.adminRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, errors.Wrap(domainerrors.ErrForbidden, "admin not registered")
		}

		return nil, errors.Wrap(err, "failed to find admin")
	}
	if !admin.CanAccess() {
		return nil, errors.WithStack(domainerrors.ErrAdminNotVerified)
	}

	return admin, nil
}

func (srv *adminService) TouchLastSeen(ctx context.Context, id string) error {
	admin, err := srv.Get(ctx, id)
	if err != nil {
		return err
	}

	admin.Data.ImportantTimes.LastSeen = util.EpochMillis(srv.now())
	if err := srv.adminRepo.Save(ctx, admin); err != nil {
		return errors.Wrap(err, "failed to update last seen")
	}

	return nil
}

type attendanceService struct {
	attendanceRepo repository.AttendanceRepository
	personRepo     repository.DeliveryPersonRepository
}

// NewAttendanceService creates the attendance usecase.
func NewAttendanceService(
	attendanceRepo repository.AttendanceRepository,
	personRepo repository.DeliveryPersonRepository,
) usecase.AttendanceUsecase {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		personRepo:     personRepo,
	}
}

func (srv *attendanceService) Get(ctx context.Context) (entity.Attendance, error) {
	attendance, err := srv.attendanceRepo.Get(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get attendance")
	}

	return attendance, nil
}

func (srv *attendanceService) Set(ctx context.Context, userID, dateKey string, present bool) error {
	if _, err := time.Parse("20060102", dateKey); err != nil {
		return errors.WithStack(domainerrors.ErrInvalidDate.WithDetails("date key must be YYYYMMDD"))
	}
	if _, err := srv.personRepo.FindByID(ctx, userID); err != nil {
		return notFound(err, repository.ErrDeliveryPersonNotFound, "delivery person")
	}

	if err := srv.attendanceRepo.Set(ctx, userID, dateKey, present); err != nil {
		return errors.Wrap(err, "failed to set attendance")
	}

	return nil
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates the settings usecase.
func NewSettingsService(settingsRepo repository.SettingsRepository) usecase.SettingsUsecase {
	return &settingsService{settingsRepo: settingsRepo}
}

func (srv *settingsService) Get(ctx context.Context, adminID string) (entity.Settings, error) {
	settings, err := srv.settingsRepo.Get(ctx, adminID)
	if err != nil {
		return entity.DefaultSettings(), errors.Wrap(err, "failed to get settings")
	}

	return settings, nil
}

func (srv *settingsService) Save(ctx context.Context, adminID string, settings entity.Settings) (entity.Settings, error) {
	var invalid []string
	for name, policy := range map[string]entity.Policy{
		"oldEntryWhenDateEdited":           settings.OldEntryWhenDateEdited,
		"askForConfirmationOnEdit":         settings.AskForConfirmationOnEdit,
		"askForConfirmationOnDuplicate":    settings.AskForConfirmationOnDuplicate,
		"askForConfirmationOnNewAddress":   settings.AskForConfirmationOnNewAddress,
		"closeDepositEntryOnSelectProfile": settings.CloseDepositEntryOnSelectProfile,
		"showNegativePendingReturns":       settings.ShowNegativePendingReturns,
	} {
		if _, err := entity.ParsePolicy(string(policy)); err != nil {
			invalid = append(invalid, name)
		}
	}
	if settings.DefaultDateOnNewEntry == entity.EntryDateCustom {
		if _, err := entity.ParseEntryDate(settings.CustomDate); err != nil {
			invalid = append(invalid, "customDate")
		}
	}
	if len(invalid) > 0 {
		slices.Sort(invalid)

		return entity.Settings{}, validationError(invalid)
	}

	if err := srv.settingsRepo.Save(ctx, adminID, settings); err != nil {
		return entity.Settings{}, errors.Wrap(err, "failed to save settings")
	}

	return settings, nil
}
