package notifications

import "errors"

var (
	// ErrRender возвращается при ошибке рендеринга шаблона
	ErrRender = errors.New("notifications: failed to render template")

	// ErrSend возвращается, когда транспорт не принял письмо
	ErrSend = errors.New("notifications: failed to send email")
)
