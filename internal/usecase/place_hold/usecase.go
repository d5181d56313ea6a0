package place_hold

import (
	"context"
	"errors"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/internal/infra/audit"
	tourRepo "github.com/JakobMartens/inselbahn/internal/infra/storage/tour"
)

// UseCase use case для резервирования мест на время онлайн-оформления
type UseCase struct {
	tourRepo     TourRepository
	bookingRepo  BookingRepository
	holdRepo     HoldRepository
	reaper       Reaper
	slotGuard    SlotGuard
	policy       CapacityPolicy
	audit        AuditRecorder
	metrics      Metrics
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	tourRepo TourRepository,
	bookingRepo BookingRepository,
	holdRepo HoldRepository,
	reaper Reaper,
	slotGuard SlotGuard,
	policy CapacityPolicy,
	auditRecorder AuditRecorder,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		tourRepo:     tourRepo,
		bookingRepo:  bookingRepo,
		holdRepo:     holdRepo,
		reaper:       reaper,
		slotGuard:    slotGuard,
		policy:       policy,
		audit:        auditRecorder,
		metrics:      metrics,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case резервирования.
// Проверка мест и upsert резерва выполняются под блокировкой слота.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PlaceHold: session=%s, tour=%s, date=%s, time=%s, seats=%d",
		req.SessionID, req.TourType, req.Date.Format(domain.DateFormat), req.Time, req.Seats)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PlaceHold: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	slot := domain.NewSlot(req.Date, req.Time, req.TourType)

	// 2. Отправление должно быть в расписании
	cfg, err := uc.tourRepo.GetCurrent(ctx, req.TourType, req.Date)
	if err != nil {
		if errors.Is(err, tourRepo.ErrTourNotFound) {
			uc.logger.Warn("PlaceHold: no tour config for %s", slot.Key())
			return nil, domain.ErrCatalogNotFound
		}
		uc.logger.Error("PlaceHold: failed to get tour config: %v", err)
		return nil, domain.WrapDependency(err, "PlaceHold - get tour config")
	}
	if !cfg.HasSlot(req.Time) {
		uc.logger.Warn("PlaceHold: %s is not a departure of %s", req.Time, req.TourType)
		return nil, ErrUnknownDeparture
	}

	// 3. Окно бронирования
	start, err := slot.StartsAt(uc.settings.Location)
	if err != nil {
		return nil, ErrUnknownDeparture
	}
	if err := uc.settings.Window.Check(start, now); err != nil {
		uc.logger.Warn("PlaceHold: %v", err)
		return nil, err
	}

	ceiling, err := uc.policy.Capacity(req.TourType, domain.ChannelOnline)
	if err != nil {
		uc.logger.Error("PlaceHold: capacity lookup failed: %v", err)
		return nil, err
	}

	// 4. Просроченные резервы не должны занимать места
	if _, err := uc.reaper.ReapExpired(ctx, now); err != nil {
		return nil, err
	}

	hold := &domain.ReservationHold{
		SessionID: req.SessionID,
		TourDate:  slot.Date,
		TourTime:  req.Time,
		TourType:  req.TourType,
		Seats:     req.Seats,
		ExpiresAt: now.Add(uc.settings.HoldTTL),
	}

	// 5. Read-check-write под блокировкой слота
	err = uc.slotGuard.Do(ctx, slot, func(txCtx context.Context) error {
		bookings, err := uc.bookingRepo.ListConfirmedByDate(txCtx, slot.Date, slot.TourType, slot.Time.String())
		if err != nil {
			uc.logger.Error("PlaceHold: failed to list bookings: %v", err)
			return domain.WrapDependency(err, "PlaceHold - list bookings")
		}

		holds, err := uc.holdRepo.ListLive(txCtx, slot.Date, slot.TourType, slot.Time.String(), now)
		if err != nil {
			uc.logger.Error("PlaceHold: failed to list holds: %v", err)
			return domain.WrapDependency(err, "PlaceHold - list holds")
		}

		// Собственный резерв сессии заменяется, поэтому не учитывается
		occupied := domain.Occupancy(slot, bookings) + domain.HeldSeats(slot, holds, now, req.SessionID)
		if err := domain.CheckCapacity(domain.ChannelOnline, occupied, req.Seats, ceiling); err != nil {
			uc.logger.Warn("PlaceHold: %v", err)
			return err
		}

		if _, err := uc.holdRepo.Upsert(txCtx, hold); err != nil {
			uc.logger.Error("PlaceHold: failed to upsert hold: %v", err)
			return domain.WrapDependency(err, "PlaceHold - upsert hold")
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrCapacityExceeded) {
			uc.metrics.Record(EventHoldRejected, 1)
			return nil, err
		}
		if domain.IsClassified(err) {
			return nil, err
		}
		uc.logger.Error("PlaceHold: slot guard failed: %v", err)
		return nil, domain.WrapDependency(err, "PlaceHold - slot guard")
	}

	uc.metrics.Record(EventHoldPlaced, 1)
	if err := uc.audit.Record(ctx, audit.ActionHoldPlaced, req.SessionID, map[string]interface{}{
		"slot":       slot.Key(),
		"seats":      hold.Seats,
		"expires_at": hold.ExpiresAt,
	}); err != nil {
		uc.logger.Warn("PlaceHold: audit record failed: %v", err)
	}

	uc.logger.Info("PlaceHold: session=%s holds %d seats on %s until %s",
		req.SessionID, hold.Seats, slot.Key(), hold.ExpiresAt.Format("15:04:05"))

	return &Response{
		SessionID: hold.SessionID,
		TourType:  hold.TourType,
		Date:      hold.TourDate,
		Time:      hold.TourTime,
		Seats:     hold.Seats,
		ExpiresAt: hold.ExpiresAt,
	}, nil
}
