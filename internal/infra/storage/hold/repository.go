package hold

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/pkg/dbmetrics"
	"github.com/JakobMartens/inselbahn/pkg/psqlbuilder"
)

// Repository репозиторий резервов мест (таблица reservations)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория резервов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var holdColumns = []string{
	"session_id",
	"tour_date",
	"tour_time",
	"tour_type",
	"seats",
	"expires_at",
	"created_at",
}

// Upsert создает резерв или заменяет существующий для (session_id, tour_date, tour_time).
// Повторный запрос продлевает срок, места не суммируются.
func (r *Repository) Upsert(ctx context.Context, hold *domain.ReservationHold) (*domain.ReservationHold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns("session_id", "tour_date", "tour_time", "tour_type", "seats", "expires_at").
		Values(
			hold.SessionID,
			hold.TourDate.Format(domain.DateFormat),
			hold.TourTime,
			string(hold.TourType),
			hold.Seats,
			hold.ExpiresAt,
		).
		Suffix(`ON CONFLICT (session_id, tour_date, tour_time) DO UPDATE
			SET tour_type = EXCLUDED.tour_type,
			    seats = EXCLUDED.seats,
			    expires_at = EXCLUDED.expires_at
			RETURNING created_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&hold.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return hold, nil
}

// GetLive возвращает непросроченный резерв сессии на дату и время.
// Резерв другого типа тура на то же время не подходит.
func (r *Repository) GetLive(ctx context.Context, sessionID string, tourType domain.TourType, date time.Time, tourTime string, now time.Time) (*domain.ReservationHold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(holdColumns...).
		From("reservations").
		Where(squirrel.Eq{
			"session_id": sessionID,
			"tour_date":  date.Format(domain.DateFormat),
			"tour_time":  tourTime,
			"tour_type":  string(tourType),
		}).
		Where(squirrel.Gt{"expires_at": now}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLive - build select query: %v", ErrBuildQuery, err)
	}

	hold, err := scanHold(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHoldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLive - scan hold: %v", ErrScanRow, err)
	}

	return hold, nil
}

// ListLive возвращает непросроченные резервы на дату для типа тура.
// Если tourTime не пустой, только для этого отправления.
func (r *Repository) ListLive(ctx context.Context, date time.Time, tourType domain.TourType, tourTime string, now time.Time) ([]*domain.ReservationHold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(holdColumns...).
		From("reservations").
		Where(squirrel.Eq{
			"tour_date": date.Format(domain.DateFormat),
			"tour_type": string(tourType),
		}).
		Where(squirrel.Gt{"expires_at": now}).
		OrderBy("tour_time ASC", "created_at ASC")

	if tourTime != "" {
		builder = builder.Where(squirrel.Eq{"tour_time": tourTime})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListLive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	holds := make([]*domain.ReservationHold, 0)
	for rows.Next() {
		hold, err := scanHold(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListLive - scan hold: %v", ErrScanRow, err)
		}
		holds = append(holds, hold)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListLive - rows iteration: %v", ErrExecQuery, err)
	}

	return holds, nil
}

// Delete удаляет резерв сессии. Отсутствие резерва не считается ошибкой
func (r *Repository) Delete(ctx context.Context, sessionID string, date time.Time, tourTime string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{
			"session_id": sessionID,
			"tour_date":  date.Format(domain.DateFormat),
			"tour_time":  tourTime,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteExpired удаляет все резервы с expires_at < now и возвращает их количество.
// Идемпотентна, безопасна при параллельном создании резервов.
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Lt{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHold(row rowScanner) (*domain.ReservationHold, error) {
	var (
		hold     domain.ReservationHold
		tourType string
	)

	err := row.Scan(
		&hold.SessionID,
		&hold.TourDate,
		&hold.TourTime,
		&tourType,
		&hold.Seats,
		&hold.ExpiresAt,
		&hold.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	hold.TourType = domain.TourType(tourType)
	return &hold, nil
}
