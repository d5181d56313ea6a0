package release_hold

import (
	"time"

	"github.com/JakobMartens/inselbahn/pkg/types"
)

// Request запрос на досрочное освобождение резерва сессии
type Request struct {
	SessionID string
	Date      time.Time
	Time      types.TimeString
}
