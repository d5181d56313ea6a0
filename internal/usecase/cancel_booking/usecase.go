package cancel_booking

import (
	"context"
	"errors"
	"time"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/internal/infra/audit"
	bookingRepo "github.com/JakobMartens/inselbahn/internal/infra/storage/booking"
)

// UseCase use case отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	notifier     Notifier
	audit        AuditRecorder
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier Notifier,
	auditRecorder AuditRecorder,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		notifier:     notifier,
		audit:        auditRecorder,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ExecuteSelfService отменяет бронирование по коду и email клиента.
// Несовпадение email неотличимо от отсутствия бронирования.
func (uc *UseCase) ExecuteSelfService(ctx context.Context, req *SelfServiceRequest) (*Response, error) {
	code := domain.NormalizeBookingCode(req.Code)
	uc.logger.Info("CancelBooking: self-service code=%s", code)

	if err := validateSelfService(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	load := func(ctx context.Context) (*domain.Booking, error) {
		b, err := uc.bookingRepo.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if !b.MatchesEmail(req.Email) {
			uc.logger.Warn("CancelBooking: email mismatch for code=%s", code)
			return nil, bookingRepo.ErrBookingNotFound
		}
		return b, nil
	}

	return uc.cancel(ctx, code, load, true)
}

// ExecuteAdmin отменяет бронирование по id без проверки срока
func (uc *UseCase) ExecuteAdmin(ctx context.Context, req *AdminRequest) (*Response, error) {
	uc.logger.Info("CancelBooking: admin id=%d", req.BookingID)

	if err := validateAdmin(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	load := func(ctx context.Context) (*domain.Booking, error) {
		return uc.bookingRepo.GetByID(ctx, req.BookingID)
	}

	return uc.cancel(ctx, "", load, false)
}

func (uc *UseCase) cancel(
	ctx context.Context,
	ref string,
	load func(ctx context.Context) (*domain.Booking, error),
	checkNotice bool,
) (*Response, error) {
	now := uc.timeProvider.Now()
	var cancelled *domain.Booking

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Загрузка бронирования
		b, err := load(txCtx)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return domain.ErrNotFound
			}
			uc.logger.Error("CancelBooking: failed to load booking %s: %v", ref, err)
			return domain.WrapDependency(err, "CancelBooking - load booking")
		}

		// 2. Уже отмененное бронирование считается отсутствующим
		if !b.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%d is %s", b.ID, b.Status)
			return domain.ErrNotFound
		}

		// 3. Минимальный срок отмены для клиента
		if checkNotice {
			start, err := b.Slot().StartsAt(uc.location)
			if err != nil {
				uc.logger.Error("CancelBooking: bad departure time on booking id=%d: %v", b.ID, err)
				return domain.WrapDependency(err, "CancelBooking - departure time")
			}
			if err := domain.CheckCancelNotice(b.Composition(), start, now); err != nil {
				uc.logger.Warn("CancelBooking: booking id=%d: %v", b.ID, err)
				return err
			}
		}

		// 4. Перевод в cancelled; условие status=confirmed защищает от двойной отмены
		if err := uc.bookingRepo.Cancel(txCtx, b.ID, now); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return domain.ErrNotFound
			}
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", b.ID, err)
			return domain.WrapDependency(err, "CancelBooking - cancel")
		}

		b.Status = domain.StatusCancelled
		b.CancelledAt = &now
		b.UpdatedAt = now
		cancelled = b
		return nil
	})
	if err != nil {
		if !domain.IsClassified(err) {
			uc.logger.Error("CancelBooking: transaction failed: %v", err)
			err = domain.WrapDependency(err, "CancelBooking - transaction")
		}
		return nil, err
	}

	uc.metrics.Record(EventBookingCancelled, 1)
	uc.logger.Info("CancelBooking: cancelled booking id=%d code=%s", cancelled.ID, cancelled.Code)

	if err := uc.audit.Record(ctx, audit.ActionBookingCancelled, cancelled.Code, map[string]interface{}{
		"booking_id":   cancelled.ID,
		"slot":         cancelled.Slot().Key(),
		"self_service": checkNotice,
	}); err != nil {
		uc.logger.Warn("CancelBooking: audit record failed: %v", err)
	}
	if err := uc.notifier.BookingCancelled(ctx, cancelled); err != nil {
		uc.logger.Warn("CancelBooking: cancellation email for %s failed: %v", cancelled.Code, err)
	}

	return &Response{Booking: cancelled}, nil
}
