package get_tour_config

import (
	"context"
	"time"

	"github.com/JakobMartens/inselbahn/internal/service/catalog/models"
)

type CatalogService interface {
	GetCurrent(ctx context.Context, rawType string, date time.Time) (*models.TourConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
