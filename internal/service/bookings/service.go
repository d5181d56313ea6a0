package bookings

import (
	"context"
	"errors"
	"strings"

	"github.com/JakobMartens/inselbahn/internal/domain"
	bookingRepo "github.com/JakobMartens/inselbahn/internal/infra/storage/booking"
	"github.com/JakobMartens/inselbahn/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByCode получает бронирование по коду для клиента.
// Несовпадение email возвращается как ErrNotFound, чтобы не раскрывать существование кода.
func (s *Service) GetByCode(ctx context.Context, code, email string) (*models.BookingResponse, error) {
	code = domain.NormalizeBookingCode(code)
	s.logger.Info("GetByCode: fetching booking code=%s", code)

	// Некорректный код не может существовать, в БД не ходим
	if !domain.IsValidBookingCode(code) || strings.TrimSpace(email) == "" {
		return nil, domain.ErrNotFound
	}

	booking, err := s.bookingRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByCode: booking code=%s not found", code)
			return nil, domain.ErrNotFound
		}
		s.logger.Error("GetByCode: repository error for code=%s: %v", code, err)
		return nil, domain.WrapDependency(err, "GetByCode - repository error")
	}

	if !booking.MatchesEmail(email) {
		s.logger.Warn("GetByCode: email mismatch for code=%s", code)
		return nil, domain.ErrNotFound
	}

	return models.FromDomainBooking(booking), nil
}

// GetByID получает бронирование по ID (администратор)
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, domain.ErrNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, domain.WrapDependency(err, "GetByID - repository error")
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования по фильтру (администратор)
//
// Примеры:
//   - все бронирования дня: From и To указывают на одну дату
//   - только отмененные: Status = "cancelled"
//   - одно отправление: TourType и TourTime
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings from=%v to=%v tourType=%v status=%v",
		req.From, req.To, req.TourType, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, ErrInvalidFilter
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, ErrInvalidPeriod
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, domain.WrapDependency(err, "List - repository error")
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}
