package place_hold

import (
	"context"

	placeHold "github.com/JakobMartens/inselbahn/internal/usecase/place_hold"
)

type PlaceHoldUseCase interface {
	Execute(ctx context.Context, req *placeHold.Request) (*placeHold.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
