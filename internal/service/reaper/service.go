// Package reaper удаляет просроченные резервы мест: по расписанию
// и синхронно перед чтением доступности
package reaper

import (
	"context"
	"time"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

// EventHoldsReaped имя счетчика удаленных резервов
const EventHoldsReaped = "holds_reaped"

// Service очистка просроченных резервов
type Service struct {
	holdRepo HoldRepository
	metrics  Metrics
	logger   Logger
	now      func() time.Time
}

// NewService создает новый экземпляр сервиса очистки
func NewService(holdRepo HoldRepository, metrics Metrics, logger Logger) *Service {
	return &Service{
		holdRepo: holdRepo,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// ReapExpired удаляет резервы с expiresAt < now. Идемпотентна.
// Ошибка хранилища возвращается как domain.ErrDependency.
func (s *Service) ReapExpired(ctx context.Context, now time.Time) (int64, error) {
	deleted, err := s.holdRepo.DeleteExpired(ctx, now)
	if err != nil {
		s.logger.Error("ReapExpired: failed to delete expired holds: %v", err)
		return 0, domain.WrapDependency(err, "reap expired holds")
	}

	if deleted > 0 {
		s.metrics.Record(EventHoldsReaped, int(deleted))
		s.logger.Info("ReapExpired: removed %d expired holds", deleted)
	}
	return deleted, nil
}

// Run запускает периодическую очистку до отмены ctx.
// Ошибка одного прохода не останавливает цикл.
func (s *Service) Run(ctx context.Context, interval time.Duration) error {
	s.logger.Info("Reaper: started, interval=%s", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Reaper: stopped")
			return nil
		case <-ticker.C:
			_, _ = s.ReapExpired(ctx, s.now())
		}
	}
}
