package commit_booking

import (
	"context"
	"errors"
	"strings"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/internal/infra/audit"
	bookingRepo "github.com/JakobMartens/inselbahn/internal/infra/storage/booking"
	holdRepo "github.com/JakobMartens/inselbahn/internal/infra/storage/hold"
	tourRepo "github.com/JakobMartens/inselbahn/internal/infra/storage/tour"
)

// UseCase use case для оформления бронирования (онлайн и на месте)
type UseCase struct {
	bookingRepo  BookingRepository
	tourRepo     TourRepository
	holdRepo     HoldRepository
	slotGuard    SlotGuard
	policy       CapacityPolicy
	codeGen      CodeGenerator
	notifier     Notifier
	audit        AuditRecorder
	metrics      Metrics
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	tourRepo TourRepository,
	holdRepo HoldRepository,
	slotGuard SlotGuard,
	policy CapacityPolicy,
	codeGen CodeGenerator,
	notifier Notifier,
	auditRecorder AuditRecorder,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.CodeRetryAttempts < 1 {
		settings.CodeRetryAttempts = 1
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		tourRepo:     tourRepo,
		holdRepo:     holdRepo,
		slotGuard:    slotGuard,
		policy:       policy,
		codeGen:      codeGen,
		notifier:     notifier,
		audit:        auditRecorder,
		metrics:      metrics,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case оформления бронирования.
// Проверка мест, вставка и удаление резерва выполняются в одной транзакции
// под блокировкой слота.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CommitBooking: channel=%s, session=%q, tour=%s, date=%s, time=%s, adults=%d, children=%d",
		req.Channel, req.SessionID, req.TourType, req.Date.Format(domain.DateFormat), req.Time, req.Adults, req.Children)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CommitBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	slot := domain.NewSlot(req.Date, req.Time, req.TourType)
	online := req.Channel == domain.ChannelOnline

	// 2. Текущая конфигурация тура
	cfg, err := uc.tourRepo.GetCurrent(ctx, req.TourType, req.Date)
	if err != nil {
		if errors.Is(err, tourRepo.ErrTourNotFound) {
			uc.logger.Warn("CommitBooking: no tour config for %s", slot.Key())
			return nil, domain.ErrCatalogNotFound
		}
		uc.logger.Error("CommitBooking: failed to get tour config: %v", err)
		return nil, domain.WrapDependency(err, "CommitBooking - get tour config")
	}
	if !cfg.HasSlot(req.Time) {
		uc.logger.Warn("CommitBooking: %s is not a departure of %s", req.Time, req.TourType)
		return nil, ErrUnknownDeparture
	}

	// 3. Окно бронирования, для всех каналов одинаково
	start, err := slot.StartsAt(uc.settings.Location)
	if err != nil {
		return nil, ErrUnknownDeparture
	}
	if err := uc.settings.Window.Check(start, now); err != nil {
		uc.logger.Warn("CommitBooking: %v", err)
		uc.metrics.Record(EventBookingRejected, 1)
		return nil, err
	}

	ceiling, err := uc.policy.Capacity(req.TourType, req.Channel)
	if err != nil {
		uc.logger.Error("CommitBooking: capacity lookup failed: %v", err)
		return nil, err
	}

	booking := uc.newBooking(req, cfg, slot)
	seats := booking.Composition().Seats()

	var created *domain.Booking

	// 4. Read-check-write под блокировкой слота
	err = uc.slotGuard.Do(ctx, slot, func(txCtx context.Context) error {
		bookings, err := uc.bookingRepo.ListConfirmedByDate(txCtx, slot.Date, slot.TourType, slot.Time.String())
		if err != nil {
			uc.logger.Error("CommitBooking: failed to list bookings: %v", err)
			return domain.WrapDependency(err, "CommitBooking - list bookings")
		}

		holds, err := uc.holdRepo.ListLive(txCtx, slot.Date, slot.TourType, slot.Time.String(), now)
		if err != nil {
			uc.logger.Error("CommitBooking: failed to list holds: %v", err)
			return domain.WrapDependency(err, "CommitBooking - list holds")
		}

		// 4.1. Места: собственный резерв сессии превращается в бронирование
		exclude := ""
		if online {
			exclude = req.SessionID
		}
		occupied := domain.Occupancy(slot, bookings) + domain.HeldSeats(slot, holds, now, exclude)
		if err := domain.CheckCapacity(req.Channel, occupied, seats, ceiling); err != nil {
			uc.logger.Warn("CommitBooking: %v", err)
			return err
		}

		// 4.2. Онлайн-оформление требует живого резерва
		if online {
			if _, err := uc.holdRepo.GetLive(txCtx, req.SessionID, slot.TourType, slot.Date, slot.Time.String(), now); err != nil {
				if errors.Is(err, holdRepo.ErrHoldNotFound) {
					uc.logger.Warn("CommitBooking: no live hold for session=%s on %s", req.SessionID, slot.Key())
					return domain.ErrHoldExpired
				}
				uc.logger.Error("CommitBooking: failed to get hold: %v", err)
				return domain.WrapDependency(err, "CommitBooking - get hold")
			}
		}

		// 4.3. Вставка с повтором при коллизии кода
		created, err = uc.insertWithRetry(txCtx, booking)
		if err != nil {
			return err
		}

		// 4.4. Резерв удаляется в той же транзакции
		if online {
			if err := uc.holdRepo.Delete(txCtx, req.SessionID, slot.Date, slot.Time.String()); err != nil {
				uc.logger.Error("CommitBooking: failed to delete hold: %v", err)
				return domain.WrapDependency(err, "CommitBooking - delete hold")
			}
		}
		return nil
	})
	if err != nil {
		if !domain.IsClassified(err) {
			uc.logger.Error("CommitBooking: slot guard failed: %v", err)
			err = domain.WrapDependency(err, "CommitBooking - slot guard")
		}
		if !errors.Is(err, domain.ErrDependency) {
			uc.metrics.Record(EventBookingRejected, 1)
		}
		return nil, err
	}

	uc.metrics.Record(EventBookingCommitted, 1)
	uc.logger.Info("CommitBooking: created booking id=%d code=%s, seats=%d, total=%d",
		created.ID, created.Code, seats, created.TotalCents)

	// 5. Побочные эффекты после commit, их ошибки не откатывают бронирование
	if err := uc.audit.Record(ctx, audit.ActionBookingCommitted, created.Code, map[string]interface{}{
		"booking_id": created.ID,
		"slot":       slot.Key(),
		"channel":    string(req.Channel),
		"seats":      seats,
		"total":      created.TotalCents,
	}); err != nil {
		uc.logger.Warn("CommitBooking: audit record failed: %v", err)
	}
	if err := uc.notifier.BookingConfirmed(ctx, created); err != nil {
		uc.logger.Warn("CommitBooking: confirmation email for %s failed: %v", created.Code, err)
	}

	return &Response{Booking: created, Seats: seats}, nil
}

// newBooking собирает бронирование: цена, статус оплаты и заметки
func (uc *UseCase) newBooking(req *Request, cfg *domain.TourConfig, slot domain.Slot) *domain.Booking {
	method, _ := domain.ParsePaymentMethod(string(req.PaymentMethod))
	if method == "" && req.Channel == domain.ChannelOnline {
		method = domain.PaymentOnline
	}

	name := strings.TrimSpace(req.CustomerName)
	email := strings.TrimSpace(req.CustomerEmail)
	if req.Channel == domain.ChannelStaffed {
		if name == "" {
			name = uc.settings.WalkInName
		}
		if email == "" {
			email = uc.settings.WalkInEmail
		}
	}

	comp := req.Composition()
	booking := &domain.Booking{
		TourType:           slot.TourType,
		TourDate:           slot.Date,
		TourTime:           slot.Time,
		CustomerName:       name,
		CustomerEmail:      email,
		CustomerPhone:      req.CustomerPhone,
		Adults:             comp.Adults,
		Children:           comp.Children,
		WheelchairAdults:   comp.WheelchairAdults,
		WheelchairChildren: comp.WheelchairChildren,
		Infants:            comp.Infants,
		TotalCents:         domain.Price(cfg, slot.Time, comp),
		Status:             domain.StatusConfirmed,
		PaymentStatus:      domain.ResolvePaymentStatus(req.Channel, method, req.PaymentStatus),
		PaymentMethod:      method,
		InvoiceRequested:   req.InvoiceRequested || req.Invoice != nil,
		Invoice:            req.Invoice,
		StaffedSale:        req.Channel == domain.ChannelStaffed,
		Remarks:            req.Remarks,
	}
	booking.Notes = domain.ComposeNotes(booking)
	return booking
}

// insertWithRetry генерирует код и вставляет бронирование.
// Коллизия кода повторяется с новым кодом, не более CodeRetryAttempts раз.
func (uc *UseCase) insertWithRetry(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	for attempt := 1; attempt <= uc.settings.CodeRetryAttempts; attempt++ {
		code, err := uc.codeGen.Generate()
		if err != nil {
			uc.logger.Error("CommitBooking: failed to generate code: %v", err)
			return nil, domain.WrapDependency(err, "CommitBooking - generate code")
		}
		booking.Code = code

		created, err := uc.bookingRepo.Create(ctx, booking)
		if err == nil {
			return created, nil
		}
		if errors.Is(err, bookingRepo.ErrDuplicateCode) {
			uc.logger.Warn("CommitBooking: code %s taken, attempt %d/%d", code, attempt, uc.settings.CodeRetryAttempts)
			continue
		}
		uc.logger.Error("CommitBooking: failed to create booking: %v", err)
		return nil, domain.WrapDependency(err, "CommitBooking - create booking")
	}
	return nil, ErrCodeExhausted
}
