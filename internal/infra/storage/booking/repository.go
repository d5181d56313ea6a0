package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/pkg/dbmetrics"
	"github.com/JakobMartens/inselbahn/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL unique_violation
const uniqueViolation = "23505"

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var bookingColumns = []string{
	"id",
	"booking_code",
	"tour_type",
	"tour_date",
	"tour_time",
	"customer_name",
	"customer_email",
	"customer_phone",
	"adults",
	"children",
	"wheelchair_adults",
	"wheelchair_children",
	"infants",
	"total_cents",
	"status",
	"payment_status",
	"payment_method",
	"invoice_requested",
	"invoice",
	"staffed_sale",
	"remarks",
	"notes",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Create сохраняет новое бронирование.
// Если в контексте передана активная транзакция (через context.Value), использует её.
// При конфликте booking_code возвращает ErrDuplicateCode. Конфликт гасится через
// ON CONFLICT DO NOTHING, поэтому транзакция остается рабочей для повтора с новым кодом.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	invoice, err := encodeInvoice(booking.Invoice)
	if err != nil {
		return nil, fmt.Errorf("%w: Create: %v", ErrEncodeInvoice, err)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_code",
			"tour_type",
			"tour_date",
			"tour_time",
			"customer_name",
			"customer_email",
			"customer_phone",
			"adults",
			"children",
			"wheelchair_adults",
			"wheelchair_children",
			"infants",
			"total_cents",
			"status",
			"payment_status",
			"payment_method",
			"invoice_requested",
			"invoice",
			"staffed_sale",
			"remarks",
			"notes",
		).
		Values(
			booking.Code,
			string(booking.TourType),
			booking.TourDate.Format(domain.DateFormat),
			booking.TourTime,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.Adults,
			booking.Children,
			booking.WheelchairAdults,
			booking.WheelchairChildren,
			booking.Infants,
			booking.TotalCents,
			string(booking.Status),
			string(booking.PaymentStatus),
			nullablePaymentMethod(booking.PaymentMethod),
			booking.InvoiceRequested,
			invoice,
			booking.StaffedSale,
			booking.Remarks,
			booking.Notes,
		).
		Suffix("ON CONFLICT (booking_code) DO NOTHING RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: code=%s", ErrDuplicateCode, booking.Code)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByCode получает бронирование по коду.
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByCode", squirrel.Eq{"booking_code": code})
}

func (r *Repository) getOne(ctx context.Context, method string, where squirrel.Sqlizer) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, method, err)
	}

	return booking, nil
}

// ListConfirmedByDate возвращает подтвержденные бронирования типа тура на дату.
// Если tourTime не пустой, только для этого отправления.
// Конкурентные вставки сериализуются блокировкой слота, FOR UPDATE здесь не нужен.
func (r *Repository) ListConfirmedByDate(ctx context.Context, date time.Time, tourType domain.TourType, tourTime string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"tour_date": date.Format(domain.DateFormat),
			"tour_type": string(tourType),
			"status":    string(domain.StatusConfirmed),
		}).
		OrderBy("tour_time ASC", "id ASC")

	if tourTime != "" {
		builder = builder.Where(squirrel.Eq{"tour_time": tourTime})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// List получает бронирования с фильтрацией
//
// Примеры использования:
//
// 1. Все бронирования за день:
//    filter := domain.BookingsFilter{From: &day, To: &day}
//
// 2. Подтвержденные бронирования PREMIUM за сезон:
//    status := domain.StatusConfirmed
//    tourType := domain.TourPremium
//    filter := domain.BookingsFilter{From: &start, To: &end, TourType: &tourType, Status: &status}
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).From("bookings")

	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"tour_date": filter.From.Format(domain.DateFormat)})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.LtOrEq{"tour_date": filter.To.Format(domain.DateFormat)})
	}
	if filter.TourType != nil {
		builder = builder.Where(squirrel.Eq{"tour_type": string(*filter.TourType)})
	}
	if filter.TourTime != nil {
		builder = builder.Where(squirrel.Eq{"tour_time": filter.TourTime.String()})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}

	builder = builder.OrderBy("tour_date ASC", "tour_time ASC", "id ASC")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Cancel переводит подтвержденное бронирование в статус cancelled.
// Повторная отмена возвращает ErrBookingNotFound: статус cancelled необратим.
func (r *Repository) Cancel(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", string(domain.StatusCancelled)).
		Set("cancelled_at", at).
		Set("updated_at", at).
		Where(squirrel.Eq{
			"id":     id,
			"status": string(domain.StatusConfirmed),
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking       domain.Booking
		tourType      string
		status        string
		paymentStatus string
		paymentMethod sql.NullString
		invoice       []byte
		phone         sql.NullString
		remarks       sql.NullString
		cancelledAt   sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.Code,
		&tourType,
		&booking.TourDate,
		&booking.TourTime,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&phone,
		&booking.Adults,
		&booking.Children,
		&booking.WheelchairAdults,
		&booking.WheelchairChildren,
		&booking.Infants,
		&booking.TotalCents,
		&status,
		&paymentStatus,
		&paymentMethod,
		&booking.InvoiceRequested,
		&invoice,
		&booking.StaffedSale,
		&remarks,
		&booking.Notes,
		&cancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.TourType = domain.TourType(tourType)
	booking.Status = domain.BookingStatus(status)
	booking.PaymentStatus = domain.PaymentStatus(paymentStatus)
	booking.PaymentMethod = domain.PaymentMethod(paymentMethod.String)
	if phone.Valid {
		booking.CustomerPhone = &phone.String
	}
	if remarks.Valid {
		booking.Remarks = &remarks.String
	}
	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}
	if len(invoice) > 0 {
		var details domain.InvoiceDetails
		if err := json.Unmarshal(invoice, &details); err != nil {
			return nil, fmt.Errorf("decode invoice: %w", err)
		}
		booking.Invoice = &details
	}

	return &booking, nil
}

func encodeInvoice(details *domain.InvoiceDetails) (interface{}, error) {
	if details == nil {
		return nil, nil
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func nullablePaymentMethod(m domain.PaymentMethod) interface{} {
	if m == "" {
		return nil
	}
	return string(m)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
