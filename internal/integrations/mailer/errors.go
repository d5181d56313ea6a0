package mailer

import "errors"

var (
	// ErrInvalidMessage возвращается, когда у письма нет адресата или темы
	ErrInvalidMessage = errors.New("mailer: invalid message")

	// ErrEncode возвращается при ошибке сериализации письма
	ErrEncode = errors.New("mailer: failed to encode message")

	// ErrPublish возвращается, когда брокер не принял сообщение
	ErrPublish = errors.New("mailer: failed to publish message")
)
