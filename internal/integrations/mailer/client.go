// Package mailer публикует исходящие письма в очередь RabbitMQ,
// откуда их забирает почтовый релей
package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Client публикует письма в durable очередь через default exchange
type Client struct {
	ch     Channel
	queue  string
	sender string
	log    Logger
}

// NewClient открывает канал и объявляет очередь
func NewClient(conn *amqp.Connection, queue, sender string, log Logger) (*Client, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%w: open channel: %v", ErrPublish, err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("%w: declare queue %s: %v", ErrPublish, queue, err)
	}
	return NewClientWithChannel(ch, queue, sender, log), nil
}

// NewClientWithChannel создает клиент поверх готового канала
func NewClientWithChannel(ch Channel, queue, sender string, log Logger) *Client {
	return &Client{ch: ch, queue: queue, sender: sender, log: log}
}

// Send публикует письмо. Отправитель по умолчанию берется из конфигурации
func (c *Client) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" || strings.TrimSpace(msg.Subject) == "" {
		return fmt.Errorf("%w: recipient and subject are required", ErrInvalidMessage)
	}
	if msg.From == "" {
		msg.From = c.sender
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	publishing := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now(),
		Body:         body,
	}

	if err := c.ch.PublishWithContext(ctx, "", c.queue, false, false, publishing); err != nil {
		return fmt.Errorf("%w: queue %s: %v", ErrPublish, c.queue, err)
	}

	c.log.Info("Mailer: queued message id=%s subject=%q", publishing.MessageId, msg.Subject)
	return nil
}

// Noop отбрасывает письма, когда RabbitMQ выключен в конфигурации
type Noop struct {
	log Logger
}

// NewNoop создает заглушку отправки
func NewNoop(log Logger) *Noop {
	return &Noop{log: log}
}

// Send логирует и ничего не отправляет
func (n *Noop) Send(_ context.Context, msg Message) error {
	n.log.Info("Mailer: disabled, dropping message subject=%q", msg.Subject)
	return nil
}
