// Package catalog отдает действующую конфигурацию туров вместе с лимитами мест
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/JakobMartens/inselbahn/internal/domain"
	tourRepo "github.com/JakobMartens/inselbahn/internal/infra/storage/tour"
	"github.com/JakobMartens/inselbahn/internal/service/catalog/models"
)

// Service сервис каталога туров (только чтение)
type Service struct {
	tourRepo TourRepository
	policy   CapacityPolicy
	logger   Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(tourRepo TourRepository, policy CapacityPolicy, logger Logger) *Service {
	return &Service{
		tourRepo: tourRepo,
		policy:   policy,
		logger:   logger,
	}
}

// GetCurrent получает конфигурацию, действующую на дату.
// Публичный метод, используется витриной перед выбором отправления.
func (s *Service) GetCurrent(ctx context.Context, rawType string, date time.Time) (*models.TourConfigResponse, error) {
	s.logger.Info("GetCurrent: fetching config for tour=%s, date=%s", rawType, date.Format(domain.DateFormat))

	tourType, err := domain.ParseTourType(rawType)
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, ErrInvalidDate
	}

	cfg, err := s.tourRepo.GetCurrent(ctx, tourType, date)
	if err != nil {
		if errors.Is(err, tourRepo.ErrTourNotFound) {
			s.logger.Warn("GetCurrent: no config for tour=%s on %s", tourType, date.Format(domain.DateFormat))
			return nil, domain.ErrCatalogNotFound
		}
		s.logger.Error("GetCurrent: repository error: %v", err)
		return nil, domain.WrapDependency(err, "GetCurrent - repository error")
	}

	resp, err := s.toResponse(cfg)
	if err != nil {
		return nil, err
	}
	resp.Current = true
	return resp, nil
}

// ListVersions получает все версии конфигурации типа тура, новые первыми.
// Версия, действующая на asOf, помечается Current.
func (s *Service) ListVersions(ctx context.Context, rawType string, asOf time.Time) (*models.TourConfigListResponse, error) {
	s.logger.Info("ListVersions: fetching configs for tour=%s as of %s", rawType, asOf.Format(domain.DateFormat))

	tourType, err := domain.ParseTourType(rawType)
	if err != nil {
		return nil, err
	}

	configs, err := s.tourRepo.ListByType(ctx, tourType)
	if err != nil {
		s.logger.Error("ListVersions: repository error: %v", err)
		return nil, domain.WrapDependency(err, "ListVersions - repository error")
	}

	current := domain.CurrentTourConfig(configs, tourType, asOf)

	resp := &models.TourConfigListResponse{Configs: make([]models.TourConfigResponse, 0, len(configs))}
	for _, cfg := range configs {
		item, err := s.toResponse(cfg)
		if err != nil {
			return nil, err
		}
		item.Current = cfg == current
		resp.Configs = append(resp.Configs, *item)
	}

	s.logger.Info("ListVersions: successfully fetched %d configs for tour=%s", len(configs), tourType)
	return resp, nil
}

func (s *Service) toResponse(cfg *domain.TourConfig) (*models.TourConfigResponse, error) {
	online, err := s.policy.Capacity(cfg.TourType, domain.ChannelOnline)
	if err != nil {
		s.logger.Error("GetCurrent: capacity lookup failed for tour=%s: %v", cfg.TourType, err)
		return nil, err
	}
	staffed, err := s.policy.Capacity(cfg.TourType, domain.ChannelStaffed)
	if err != nil {
		s.logger.Error("GetCurrent: capacity lookup failed for tour=%s: %v", cfg.TourType, err)
		return nil, err
	}
	return models.FromDomainTourConfig(cfg, online, staffed), nil
}
