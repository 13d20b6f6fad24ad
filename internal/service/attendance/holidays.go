package attendance

import (
	"context"
	"log/slog"
	"time"

	"github.com/eecglobaldev/Payroll-system-sub001/internal/domain/attendance"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/cache"
	"github.com/eecglobaldev/Payroll-system-sub001/internal/pkg/utils"
)

// cachedHolidayRepository reads holidays through the shared cache. Cache
// failures fall back to the store.
type cachedHolidayRepository struct {
	inner  attendance.HolidayRepository
	cache  cache.Cache
	logger *slog.Logger
}

func NewCachedHolidayRepository(inner attendance.HolidayRepository, c cache.Cache, logger *slog.Logger) attendance.HolidayRepository {
	if c == nil {
		c = cache.NoopCache{}
	}
	return &cachedHolidayRepository{inner: inner, cache: c, logger: logger}
}

func (r *cachedHolidayRepository) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	holidays, err := r.ListInRange(ctx, date, date)
	if err != nil {
		return false, err
	}
	return len(holidays) > 0, nil
}

func (r *cachedHolidayRepository) ListInRange(ctx context.Context, from, to time.Time) ([]attendance.Holiday, error) {
	key := "holidays:" + utils.DateKey(from) + ":" + utils.DateKey(to)

	var cached []attendance.Holiday
	found, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		r.logger.Warn("holiday cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	if found {
		return cached, nil
	}

	holidays, err := r.inner.ListInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, key, holidays); err != nil {
		r.logger.Warn("holiday cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return holidays, nil
}
