package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeCollection struct {
	docs []interface{}
	err  error
}

func (f *fakeCollection) InsertOne(_ context.Context, doc interface{}, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.docs = append(f.docs, doc)
	return &mongo.InsertOneResult{}, nil
}

func TestMongoRecorder_Record(t *testing.T) {
	coll := &fakeCollection{}
	recorder := NewMongoRecorder(coll)
	recorder.now = func() time.Time { return time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC) }

	err := recorder.Record(context.Background(), ActionBookingCommitted, "IBABCD1234", map[string]interface{}{"seats": 3})
	require.NoError(t, err)

	require.Len(t, coll.docs, 1)
	rec := coll.docs[0].(Record)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, ActionBookingCommitted, rec.Action)
	assert.Equal(t, "IBABCD1234", rec.Subject)
	assert.Equal(t, 3, rec.Data["seats"])
}

func TestMongoRecorder_InsertError(t *testing.T) {
	recorder := NewMongoRecorder(&fakeCollection{err: errors.New("no reachable servers")})

	err := recorder.Record(context.Background(), ActionHoldPlaced, "session-1", nil)
	assert.ErrorIs(t, err, ErrInsert)
}
