package list_tour_configs

import (
	"context"
	"time"

	"github.com/JakobMartens/inselbahn/internal/service/catalog/models"
)

type CatalogService interface {
	ListVersions(ctx context.Context, rawType string, asOf time.Time) (*models.TourConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
