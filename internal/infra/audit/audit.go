// Package audit пишет журнал событий движка бронирований в MongoDB
package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Действия журнала
const (
	ActionHoldPlaced       = "hold.placed"
	ActionHoldReleased     = "hold.released"
	ActionBookingCommitted = "booking.committed"
	ActionBookingCancelled = "booking.cancelled"
)

// ErrInsert возвращается, когда запись не удалось сохранить
var ErrInsert = errors.New("audit: failed to insert record")

const writeTimeout = 2 * time.Second

// Inserter подмножество *mongo.Collection
type Inserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// Record документ журнала
type Record struct {
	ID        string    `bson:"_id"`
	Action    string    `bson:"action"`
	Subject   string    `bson:"subject"` // код бронирования или id сессии
	Timestamp time.Time `bson:"timestamp"`
	Data      bson.M    `bson:"data"`
}

// MongoRecorder сохраняет записи журнала в коллекцию
type MongoRecorder struct {
	coll Inserter
	now  func() time.Time
}

// NewMongoRecorder создает журнал поверх коллекции
func NewMongoRecorder(coll Inserter) *MongoRecorder {
	return &MongoRecorder{coll: coll, now: time.Now}
}

// Record сохраняет событие. Запись ограничена по времени, чтобы не задерживать ответ
func (r *MongoRecorder) Record(ctx context.Context, action, subject string, data map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	rec := Record{
		ID:        uuid.NewString(),
		Action:    action,
		Subject:   subject,
		Timestamp: r.now().UTC(),
		Data:      bson.M(data),
	}
	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("%w: action=%s subject=%s: %v", ErrInsert, action, subject, err)
	}
	return nil
}

// Noop журнал для конфигурации без MongoDB
type Noop struct{}

// Record ничего не делает
func (Noop) Record(context.Context, string, string, map[string]interface{}) error {
	return nil
}
