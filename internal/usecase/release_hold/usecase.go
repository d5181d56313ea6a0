package release_hold

import (
	"context"

	"github.com/JakobMartens/inselbahn/internal/domain"
	"github.com/JakobMartens/inselbahn/internal/infra/audit"
)

// UseCase use case для отказа от резерва до истечения срока
type UseCase struct {
	holdRepo HoldRepository
	audit    AuditRecorder
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(holdRepo HoldRepository, auditRecorder AuditRecorder, logger Logger) *UseCase {
	return &UseCase{holdRepo: holdRepo, audit: auditRecorder, logger: logger}
}

// Execute удаляет резерв сессии. Отсутствующий резерв не ошибка
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("ReleaseHold: session=%s, date=%s, time=%s",
		req.SessionID, req.Date.Format(domain.DateFormat), req.Time)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReleaseHold: validation failed: %v", err)
		return err
	}

	if err := uc.holdRepo.Delete(ctx, req.SessionID, req.Date, req.Time.String()); err != nil {
		uc.logger.Error("ReleaseHold: failed to delete hold: %v", err)
		return domain.WrapDependency(err, "ReleaseHold - delete hold")
	}

	if err := uc.audit.Record(ctx, audit.ActionHoldReleased, req.SessionID, map[string]interface{}{
		"date": req.Date.Format(domain.DateFormat),
		"time": req.Time.String(),
	}); err != nil {
		uc.logger.Warn("ReleaseHold: audit record failed: %v", err)
	}

	return nil
}
