package tour

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/pkg/dbmetrics"
	"github.com/JakobMartens/inselbahn/pkg/psqlbuilder"
	"github.com/JakobMartens/inselbahn/pkg/types"
)

// Repository репозиторий каталога туров (таблица tours).
// Записи создаются административно, сервис их только читает.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var tourColumns = []string{
	"id",
	"tour_type",
	"time_slots",
	"adult_price_cents",
	"child_price_cents",
	"free_child_times",
	"valid_from",
	"valid_until",
	"created_at",
}

// GetCurrent возвращает действующую конфигурацию для типа тура на дату:
// запись с максимальным valid_from <= date, у которой valid_until пуст или >= date
func (r *Repository) GetCurrent(ctx context.Context, tourType domain.TourType, date time.Time) (*domain.TourConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	day := date.Format(domain.DateFormat)

	query, args, err := psqlbuilder.Select(tourColumns...).
		From("tours").
		Where(squirrel.Eq{"tour_type": string(tourType)}).
		Where(squirrel.LtOrEq{"valid_from": day}).
		Where(squirrel.Or{
			squirrel.Eq{"valid_until": nil},
			squirrel.GtOrEq{"valid_until": day},
		}).
		OrderBy("valid_from DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrent - build select query: %v", ErrBuildQuery, err)
	}

	cfg, err := scanTour(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTourNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrent - scan tour: %v", ErrScanRow, err)
	}

	return cfg, nil
}

// ListByType возвращает все версии конфигурации типа тура, новые первыми
func (r *Repository) ListByType(ctx context.Context, tourType domain.TourType) ([]*domain.TourConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(tourColumns...).
		From("tours").
		Where(squirrel.Eq{"tour_type": string(tourType)}).
		OrderBy("valid_from DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByType - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByType - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.TourConfig, 0)
	for rows.Next() {
		cfg, err := scanTour(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByType - scan tour: %v", ErrScanRow, err)
		}
		configs = append(configs, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByType - rows iteration: %v", ErrExecQuery, err)
	}

	return configs, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTour(row rowScanner) (*domain.TourConfig, error) {
	var (
		cfg            domain.TourConfig
		tourType       string
		timeSlots      pq.StringArray
		freeChildTimes pq.StringArray
		validUntil     sql.NullTime
	)

	err := row.Scan(
		&cfg.ID,
		&tourType,
		&timeSlots,
		&cfg.AdultPriceCents,
		&cfg.ChildPriceCents,
		&freeChildTimes,
		&cfg.ValidFrom,
		&validUntil,
		&cfg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	cfg.TourType = domain.TourType(tourType)
	if validUntil.Valid {
		cfg.ValidUntil = &validUntil.Time
	}
	if cfg.TimeSlots, err = toTimeStrings(timeSlots); err != nil {
		return nil, err
	}
	if cfg.FreeChildTimes, err = toTimeStrings(freeChildTimes); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func toTimeStrings(values []string) ([]types.TimeString, error) {
	result := make([]types.TimeString, 0, len(values))
	for _, v := range values {
		ts, err := types.NewTimeStringFromString(v)
		if err != nil {
			return nil, err
		}
		result = append(result, ts)
	}
	return result, nil
}
