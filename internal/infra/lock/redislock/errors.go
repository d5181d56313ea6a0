package redislock

import "errors"

var (
	// ErrAcquireLock возвращается при ошибке Redis во время захвата блокировки
	ErrAcquireLock = errors.New("redislock: failed to acquire slot lock")

	// ErrLockTimeout возвращается, когда блокировка слота не освободилась за время ожидания
	ErrLockTimeout = errors.New("redislock: timed out waiting for slot lock")

	// ErrLockExpired возвращается, когда транзакция не уложилась в срок жизни блокировки
	ErrLockExpired = errors.New("redislock: transaction outlived slot lock")
)
