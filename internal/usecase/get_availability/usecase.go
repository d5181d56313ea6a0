package get_availability

import (
	"context"
	"errors"
	"time"

	"github.com/JakobMartens/inselbahn/internal/domain"
	tourRepo "github.com/JakobMartens/inselbahn/internal/infra/storage/tour"
)

// UseCase use case для расчета доступности мест по отправлениям дня
type UseCase struct {
	tourRepo     TourRepository
	bookingRepo  BookingRepository
	holdRepo     HoldRepository
	reaper       Reaper
	policy       CapacityPolicy
	window       domain.BookingWindow
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	tourRepo TourRepository,
	bookingRepo BookingRepository,
	holdRepo HoldRepository,
	reaper Reaper,
	policy CapacityPolicy,
	window domain.BookingWindow,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		tourRepo:     tourRepo,
		bookingRepo:  bookingRepo,
		holdRepo:     holdRepo,
		reaper:       reaper,
		policy:       policy,
		window:       window,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case расчета доступности.
// Перед чтением синхронно удаляет просроченные резервы.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: tour=%s, date=%s, session=%q",
		req.TourType, req.Date.Format(domain.DateFormat), req.SessionID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Текущая конфигурация тура
	cfg, err := uc.tourRepo.GetCurrent(ctx, req.TourType, req.Date)
	if err != nil {
		if errors.Is(err, tourRepo.ErrTourNotFound) {
			uc.logger.Warn("GetAvailability: no tour config for %s on %s", req.TourType, req.Date.Format(domain.DateFormat))
			return nil, domain.ErrCatalogNotFound
		}
		uc.logger.Error("GetAvailability: failed to get tour config: %v", err)
		return nil, domain.WrapDependency(err, "GetAvailability - get tour config")
	}

	capacity, err := uc.policy.Capacity(req.TourType, domain.ChannelOnline)
	if err != nil {
		uc.logger.Error("GetAvailability: capacity lookup failed: %v", err)
		return nil, err
	}

	// 3. Reap-before-read
	if _, err := uc.reaper.ReapExpired(ctx, now); err != nil {
		uc.logger.Error("GetAvailability: reap failed: %v", err)
		return nil, err
	}

	// 4. Подтвержденные бронирования и живые резервы дня
	bookings, err := uc.bookingRepo.ListConfirmedByDate(ctx, req.Date, req.TourType, "")
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list bookings: %v", err)
		return nil, domain.WrapDependency(err, "GetAvailability - list bookings")
	}

	holds, err := uc.holdRepo.ListLive(ctx, req.Date, req.TourType, "", now)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list holds: %v", err)
		return nil, domain.WrapDependency(err, "GetAvailability - list holds")
	}

	// 5. Расчет по каждому отправлению
	slots := make([]SlotAvailability, 0, len(cfg.TimeSlots))
	for _, t := range cfg.TimeSlots {
		slot := domain.NewSlot(req.Date, t, req.TourType)

		occupied := domain.Occupancy(slot, bookings)
		held := domain.HeldSeats(slot, holds, now, req.SessionID)
		remaining := capacity - occupied - held
		if remaining < 0 {
			remaining = 0
		}

		windowOpen := false
		if start, err := slot.StartsAt(uc.location); err == nil {
			windowOpen = uc.window.IsOpen(start, now)
		}

		slots = append(slots, SlotAvailability{
			Time:               t,
			Remaining:          remaining,
			Occupied:           occupied,
			Held:               held,
			WindowOpen:         windowOpen,
			WheelchairEligible: remaining >= domain.WheelchairSeats,
			ChildFree:          cfg.IsChildFree(t),
			AdultPriceCents:    cfg.AdultPriceCents,
			ChildPriceCents:    cfg.ChildPriceCents,
		})
	}

	uc.logger.Info("GetAvailability: %d slots computed for %s on %s",
		len(slots), req.TourType, req.Date.Format(domain.DateFormat))

	return &Response{
		TourType:        req.TourType,
		Date:            req.Date,
		AdultPriceCents: cfg.AdultPriceCents,
		ChildPriceCents: cfg.ChildPriceCents,
		Capacity:        capacity,
		Slots:           slots,
	}, nil
}
