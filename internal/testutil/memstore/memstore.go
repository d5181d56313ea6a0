// Package memstore in-memory реализации репозиториев и блокировки слота для тестов usecase
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/JakobMartens/inselbahn/internal/domain"
	bookingRepo "github.com/JakobMartens/inselbahn/internal/infra/storage/booking"
	holdRepo "github.com/JakobMartens/inselbahn/internal/infra/storage/hold"
	tourRepo "github.com/JakobMartens/inselbahn/internal/infra/storage/tour"
)

// Store таблицы tours, reservations и bookings в памяти
type Store struct {
	mu       sync.Mutex
	tours    []*domain.TourConfig
	holds    map[holdKey]*domain.ReservationHold
	bookings []*domain.Booking
	nextID   int64

	// Err, если задан, возвращается всеми методами (имитация недоступной БД)
	Err error
}

type holdKey struct {
	session string
	date    string
	time    string
}

// New создает пустое хранилище
func New() *Store {
	return &Store{holds: make(map[holdKey]*domain.ReservationHold)}
}

func newHoldKey(session string, date time.Time, tourTime string) holdKey {
	return holdKey{session: session, date: date.Format(domain.DateFormat), time: tourTime}
}

func copyBooking(b *domain.Booking) *domain.Booking {
	c := *b
	return &c
}

// AddTour добавляет конфигурацию тура
func (s *Store) AddTour(cfg *domain.TourConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	if cfg.ID == 0 {
		cfg.ID = s.nextID
	}
	s.tours = append(s.tours, cfg)
}

// SeedBooking сохраняет бронирование в обход usecase
func (s *Store) SeedBooking(b *domain.Booking) *domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	b.ID = s.nextID
	if b.Status == "" {
		b.Status = domain.StatusConfirmed
	}
	s.bookings = append(s.bookings, copyBooking(b))
	return b
}

// SeedHold сохраняет резерв в обход usecase
func (s *Store) SeedHold(h *domain.ReservationHold) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *h
	s.holds[newHoldKey(h.SessionID, h.TourDate, h.TourTime.String())] = &c
}

// Bookings снимок всех бронирований
func (s *Store) Bookings() []*domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		result = append(result, copyBooking(b))
	}
	return result
}

// HoldCount количество строк в reservations, включая просроченные
func (s *Store) HoldCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.holds)
}

// Tours

// GetCurrent действующая конфигурация типа тура на дату
func (s *Store) GetCurrent(_ context.Context, tourType domain.TourType, date time.Time) (*domain.TourConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	cfg := domain.CurrentTourConfig(s.tours, tourType, date)
	if cfg == nil {
		return nil, tourRepo.ErrTourNotFound
	}
	return cfg, nil
}

// ListByType все версии конфигурации типа тура
func (s *Store) ListByType(_ context.Context, tourType domain.TourType) ([]*domain.TourConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	result := make([]*domain.TourConfig, 0)
	for _, cfg := range s.tours {
		if cfg.TourType == tourType {
			result = append(result, cfg)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ValidFrom.After(result[j].ValidFrom) })
	return result, nil
}

// Holds

// Upsert создает или заменяет резерв сессии
func (s *Store) Upsert(_ context.Context, h *domain.ReservationHold) (*domain.ReservationHold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	key := newHoldKey(h.SessionID, h.TourDate, h.TourTime.String())
	c := *h
	if prev, ok := s.holds[key]; ok {
		c.CreatedAt = prev.CreatedAt
	} else {
		c.CreatedAt = time.Now()
	}
	s.holds[key] = &c
	h.CreatedAt = c.CreatedAt
	return h, nil
}

// GetLive непросроченный резерв сессии
func (s *Store) GetLive(_ context.Context, sessionID string, tourType domain.TourType, date time.Time, tourTime string, now time.Time) (*domain.ReservationHold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	h, ok := s.holds[newHoldKey(sessionID, date, tourTime)]
	if !ok || h.TourType != tourType || !h.IsLive(now) {
		return nil, holdRepo.ErrHoldNotFound
	}
	c := *h
	return &c, nil
}

// ListLive непросроченные резервы на дату
func (s *Store) ListLive(_ context.Context, date time.Time, tourType domain.TourType, tourTime string, now time.Time) ([]*domain.ReservationHold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	day := date.Format(domain.DateFormat)
	result := make([]*domain.ReservationHold, 0)
	for key, h := range s.holds {
		if key.date != day || h.TourType != tourType || !h.IsLive(now) {
			continue
		}
		if tourTime != "" && key.time != tourTime {
			continue
		}
		c := *h
		result = append(result, &c)
	}
	return result, nil
}

// Delete удаляет резерв сессии
func (s *Store) Delete(_ context.Context, sessionID string, date time.Time, tourTime string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.holds, newHoldKey(sessionID, date, tourTime))
	return nil
}

// DeleteExpired удаляет резервы с expiresAt < now
func (s *Store) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	var deleted int64
	for key, h := range s.holds {
		if h.ExpiresAt.Before(now) {
			delete(s.holds, key)
			deleted++
		}
	}
	return deleted, nil
}

// Bookings

// Create сохраняет бронирование, повторный код дает ErrDuplicateCode
func (s *Store) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, existing := range s.bookings {
		if existing.Code == b.Code {
			return nil, fmt.Errorf("%w: code=%s", bookingRepo.ErrDuplicateCode, b.Code)
		}
	}
	s.nextID++
	b.ID = s.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	s.bookings = append(s.bookings, copyBooking(b))
	return b, nil
}

// GetByID бронирование по id
func (s *Store) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	return s.find(func(b *domain.Booking) bool { return b.ID == id })
}

// GetByCode бронирование по коду
func (s *Store) GetByCode(_ context.Context, code string) (*domain.Booking, error) {
	return s.find(func(b *domain.Booking) bool { return strings.EqualFold(b.Code, code) })
}

func (s *Store) find(match func(b *domain.Booking) bool) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, b := range s.bookings {
		if match(b) {
			return copyBooking(b), nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

// ListConfirmedByDate подтвержденные бронирования типа тура на дату
func (s *Store) ListConfirmedByDate(_ context.Context, date time.Time, tourType domain.TourType, tourTime string) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	day := date.Format(domain.DateFormat)
	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if !b.IsConfirmed() || b.TourType != tourType || b.TourDate.Format(domain.DateFormat) != day {
			continue
		}
		if tourTime != "" && b.TourTime.String() != tourTime {
			continue
		}
		result = append(result, copyBooking(b))
	}
	return result, nil
}

// List бронирования по фильтру
func (s *Store) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		day := b.TourDate.Format(domain.DateFormat)
		if filter.From != nil && day < filter.From.Format(domain.DateFormat) {
			continue
		}
		if filter.To != nil && day > filter.To.Format(domain.DateFormat) {
			continue
		}
		if filter.TourType != nil && b.TourType != *filter.TourType {
			continue
		}
		if filter.TourTime != nil && b.TourTime != *filter.TourTime {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		result = append(result, copyBooking(b))
	}
	if filter.Limit > 0 && uint64(len(result)) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

// Cancel переводит подтвержденное бронирование в cancelled
func (s *Store) Cancel(_ context.Context, id int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, b := range s.bookings {
		if b.ID == id && b.IsConfirmed() {
			b.Status = domain.StatusCancelled
			b.CancelledAt = &at
			b.UpdatedAt = at
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}
