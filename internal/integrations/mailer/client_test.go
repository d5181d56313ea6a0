package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange = exchange
	f.key = key
	f.msg = msg
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestClient_Send(t *testing.T) {
	ch := &fakeChannel{}
	client := NewClientWithChannel(ch, "mail.outbound", "buchung@inselbahn.de", nopLogger{})

	err := client.Send(context.Background(), Message{To: "anna@example.com", Subject: "Buchung", HTML: "<p>ok</p>"})
	require.NoError(t, err)

	assert.Equal(t, "", ch.exchange)
	assert.Equal(t, "mail.outbound", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.NotEmpty(t, ch.msg.MessageId)

	var decoded Message
	require.NoError(t, json.Unmarshal(ch.msg.Body, &decoded))
	assert.Equal(t, "buchung@inselbahn.de", decoded.From)
	assert.Equal(t, "anna@example.com", decoded.To)
}

func TestClient_SendValidation(t *testing.T) {
	client := NewClientWithChannel(&fakeChannel{}, "q", "from@example.com", nopLogger{})

	err := client.Send(context.Background(), Message{Subject: "x"})
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestClient_SendPublishError(t *testing.T) {
	client := NewClientWithChannel(&fakeChannel{err: errors.New("channel closed")}, "q", "from@example.com", nopLogger{})

	err := client.Send(context.Background(), Message{To: "a@example.com", Subject: "x"})
	assert.ErrorIs(t, err, ErrPublish)
}
