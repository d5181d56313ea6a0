package pglock

import "errors"

var (
	// ErrAcquireLock возвращается, когда advisory lock слота не удалось взять
	ErrAcquireLock = errors.New("pglock: failed to acquire slot lock")
)
