package get_statistics

import (
	"context"
	"time"

	"github.com/JakobMartens/inselbahn/internal/service/statistics/models"
)

type StatisticsService interface {
	Get(ctx context.Context, from, to time.Time) (*models.StatisticsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
