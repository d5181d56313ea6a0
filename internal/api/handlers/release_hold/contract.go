package release_hold

import (
	"context"

	releaseHold "github.com/JakobMartens/inselbahn/internal/usecase/release_hold"
)

type ReleaseHoldUseCase interface {
	Execute(ctx context.Context, req *releaseHold.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
