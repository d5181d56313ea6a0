// Package statistics строит отчеты по подтвержденным бронированиям.
// Работает только с сохраненными бронированиями, резервы не учитываются.
package statistics

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/internal/service/statistics/models"
)

// Service агрегатор статистики
type Service struct {
	bookingRepo BookingRepository
	policy      CapacityPolicy
	logger      Logger
}

// NewService создает новый экземпляр сервиса статистики
func NewService(bookingRepo BookingRepository, policy CapacityPolicy, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		policy:      policy,
		logger:      logger,
	}
}

// Get строит отчет за [from, to] включительно
func (s *Service) Get(ctx context.Context, from, to time.Time) (*models.StatisticsResponse, error) {
	if from.IsZero() || to.IsZero() {
		return nil, ErrPeriodRequired
	}
	if from.After(to) {
		return nil, ErrInvalidPeriod
	}
	s.logger.Info("GetStatistics: period %s..%s", from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	bookings, err := s.loadConfirmed(ctx, from, to)
	if err != nil {
		return nil, err
	}

	resp, err := s.aggregate(bookings)
	if err != nil {
		return nil, err
	}
	resp.From = from.Format(domain.DateFormat)
	resp.To = to.Format(domain.DateFormat)

	s.logger.Info("GetStatistics: aggregated %d bookings into %d slot series", len(bookings), len(resp.Slots))
	return resp, nil
}

// loadConfirmed загружает подтвержденные бронирования всех типов туров параллельно
func (s *Service) loadConfirmed(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	confirmed := domain.StatusConfirmed

	var (
		mu     sync.Mutex
		result []*domain.Booking
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, tourType := range domain.TourTypes {
		tourType := tourType
		g.Go(func() error {
			bookings, err := s.bookingRepo.List(gctx, domain.BookingsFilter{
				From:     &from,
				To:       &to,
				TourType: &tourType,
				Status:   &confirmed,
			})
			if err != nil {
				s.logger.Error("GetStatistics: failed to load %s bookings: %v", tourType, err)
				return domain.WrapDependency(err, "GetStatistics - list %s bookings", tourType)
			}
			mu.Lock()
			result = append(result, bookings...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

type slotKey struct {
	tourType domain.TourType
	time     string
}

type slotAcc struct {
	totals models.Totals
	dates  map[string]struct{}
}

func (s *Service) aggregate(bookings []*domain.Booking) (*models.StatisticsResponse, error) {
	resp := &models.StatisticsResponse{
		ByTourType:      make(map[string]models.Totals),
		ByPaymentMethod: make(map[string]models.Totals),
		ByMonth:         make([]models.PeriodTotals, 0),
		ByDay:           make([]models.PeriodTotals, 0),
		Slots:           make([]models.SlotSeries, 0),
	}

	months := make(map[string]models.Totals)
	days := make(map[string]models.Totals)
	slots := make(map[slotKey]*slotAcc)

	for _, b := range bookings {
		if !b.IsConfirmed() {
			continue
		}

		add(&resp.Totals, b)

		byType := resp.ByTourType[string(b.TourType)]
		add(&byType, b)
		resp.ByTourType[string(b.TourType)] = byType

		method := string(b.EffectivePaymentMethod())
		byMethod := resp.ByPaymentMethod[method]
		add(&byMethod, b)
		resp.ByPaymentMethod[method] = byMethod

		month := months[b.TourDate.Format(domain.MonthFormat)]
		add(&month, b)
		months[b.TourDate.Format(domain.MonthFormat)] = month

		day := days[b.TourDate.Format(domain.DateFormat)]
		add(&day, b)
		days[b.TourDate.Format(domain.DateFormat)] = day

		key := slotKey{tourType: b.TourType, time: b.TourTime.String()}
		acc, ok := slots[key]
		if !ok {
			acc = &slotAcc{dates: make(map[string]struct{})}
			slots[key] = acc
		}
		add(&acc.totals, b)
		acc.dates[b.TourDate.Format(domain.DateFormat)] = struct{}{}
	}

	resp.ByMonth = sortedPeriods(months)
	resp.ByDay = sortedPeriods(days)

	for key, acc := range slots {
		staffed, err := s.policy.Capacity(key.tourType, domain.ChannelStaffed)
		if err != nil {
			s.logger.Warn("GetStatistics: no capacity for %s, occupancy rate left at 0: %v", key.tourType, err)
			staffed = 0
		}
		resp.Slots = append(resp.Slots, slotSeries(key, acc, staffed))
	}
	sort.Slice(resp.Slots, func(i, j int) bool {
		if resp.Slots[i].TourType != resp.Slots[j].TourType {
			return resp.Slots[i].TourType < resp.Slots[j].TourType
		}
		return resp.Slots[i].Time < resp.Slots[j].Time
	})

	return resp, nil
}

func add(t *models.Totals, b *domain.Booking) {
	c := b.Composition()
	t.Bookings++
	t.Passengers += c.Passengers()
	t.Adults += c.Adults
	t.Children += c.Children
	t.Infants += c.Infants
	t.Wheelchairs += c.Wheelchairs()
	t.Seats += c.Seats()
	t.RevenueCents += b.TotalCents
}

func sortedPeriods(m map[string]models.Totals) []models.PeriodTotals {
	result := make([]models.PeriodTotals, 0, len(m))
	for period, totals := range m {
		result = append(result, models.PeriodTotals{Period: period, Totals: totals})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Period < result[j].Period })
	return result
}

// slotSeries occupancyRate = passengers / (staffedCapacity × occurrences)
func slotSeries(key slotKey, acc *slotAcc, staffed int) models.SlotSeries {
	occurrences := len(acc.dates)
	series := models.SlotSeries{
		TourType:        string(key.tourType),
		Time:            key.time,
		Occurrences:     occurrences,
		Bookings:        acc.totals.Bookings,
		Passengers:      acc.totals.Passengers,
		RevenueCents:    acc.totals.RevenueCents,
		StaffedCapacity: staffed,
	}
	if occurrences > 0 {
		series.AvgPassengers = float64(acc.totals.Passengers) / float64(occurrences)
		series.AvgRevenueCents = float64(acc.totals.RevenueCents) / float64(occurrences)
	}
	if acc.totals.Bookings > 0 {
		series.AvgBookingSize = float64(acc.totals.Passengers) / float64(acc.totals.Bookings)
	}
	if staffed > 0 && occurrences > 0 {
		series.OccupancyRate = float64(acc.totals.Passengers) / float64(staffed*occurrences)
		series.OccupancyRatePercent = math.Round(series.OccupancyRate*1000) / 10
	}
	return series
}
