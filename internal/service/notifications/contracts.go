package notifications

import (
	"context"

	"github.com/JakobMartens/inselbahn/internal/integrations/mailer"
)

// Sender транспорт исходящих писем
type Sender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
