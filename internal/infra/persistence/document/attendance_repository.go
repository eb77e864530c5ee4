package document

import (
	"context"
	"sync"
	"time"

	"fuelflow/internal/domain/constants"
	"fuelflow/internal/domain/entity"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/repository"
	"fuelflow/internal/domain/service"
)

// attendanceRepository mirrors attendance/{date}/{user}. Absent leaves mean absent.
type attendanceRepository struct {
	store    repository.DocumentStore
	notifier service.ChangeNotifier

	loadMu    sync.Mutex
	mu        sync.RWMutex
	days      entity.Attendance
	loaded    bool
	refreshed time.Time
}

// NewAttendanceRepository is the constructor for attendanceRepository.
func NewAttendanceRepository(store repository.DocumentStore, notifier service.ChangeNotifier) repository.AttendanceRepository {
	return &attendanceRepository{
		store:    store,
		notifier: notifier,
		days:     entity.Attendance{},
	}
}

func (r *attendanceRepository) Topic() string {
	return constants.TopicAttendance
}

func (r *attendanceRepository) Load(ctx context.Context) error {
	r.loadMu.Lock()
	defer r.loadMu.Unlock()

	r.mu.RLock()
	loaded := r.loaded
	r.mu.RUnlock()
	if loaded {
		return nil
	}

	return r.fetch(ctx)
}

func (r *attendanceRepository) Refresh(ctx context.Context) error {
	r.loadMu.Lock()
	defer r.loadMu.Unlock()

	err := r.fetch(ctx)
	r.emit(ctx, entity.ChangeRefreshed, "", err == nil)

	return err
}

func (r *attendanceRepository) fetch(ctx context.Context) error {
	days := entity.Attendance{}
	if err := r.store.Get(ctx, constants.PathAttendance, &days); err != nil {
		return domainerrors.NewStoreError(err, domainerrors.CodeAttendance)
	}

	r.mu.Lock()
	r.days = days
	r.loaded = true
	r.refreshed = time.Now()
	r.mu.Unlock()

	return nil
}

// Count returns the number of days with at least one person present.
func (r *attendanceRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.days)
}

func (r *attendanceRepository) LastRefreshed() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.refreshed
}

func (r *attendanceRepository) Get(ctx context.Context) (entity.Attendance, error) {
	if err := r.Load(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.days.Clone(), nil
}

func (r *attendanceRepository) Set(ctx context.Context, userID, dateKey string, present bool) error {
	if err := r.Load(ctx); err != nil {
		return err
	}

	path := constants.PathAttendance + "/" + dateKey + "/" + userID
	id := dateKey + "/" + userID

	var err error
	if present {
		err = r.store.Set(ctx, path, true)
	} else {
		err = r.store.Delete(ctx, path)
	}
	if err != nil {
		r.emit(ctx, entity.ChangeSaved, id, false)

		return domainerrors.NewStoreError(err, domainerrors.CodeAttendance)
	}

	r.mu.Lock()
	if present {
		if r.days[dateKey] == nil {
			r.days[dateKey] = map[string]bool{}
		}
		r.days[dateKey][userID] = true
	} else if users, ok := r.days[dateKey]; ok {
		delete(users, userID)
		if len(users) == 0 {
			delete(r.days, dateKey)
		}
	}
	r.mu.Unlock()

	r.emit(ctx, entity.ChangeSaved, id, true)

	return nil
}

func (r *attendanceRepository) emit(ctx context.Context, action entity.ChangeAction, id string, success bool) {
	if r.notifier == nil {
		return
	}
	r.notifier.Notify(ctx, entity.ChangeEvent{
		Topic:   constants.TopicAttendance,
		Action:  action,
		ID:      id,
		Success: success,
	})
}
