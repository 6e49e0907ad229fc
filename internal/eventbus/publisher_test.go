package eventbus

import (
	"context"
	"errors"
	"testing"

	"ecommerce-admin/internal/model"

	"github.com/stretchr/testify/assert"
)

type recordingPublisher struct {
	events []model.StockEvent
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, event model.StockEvent) error {
	r.events = append(r.events, event)
	return r.err
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NewNopPublisher().Publish(context.Background(), model.StockEvent{}))
}

func TestFanout_DeliversToAll(t *testing.T) {
	a, b := &recordingPublisher{}, &recordingPublisher{}
	event := model.StockEvent{Type: model.EventSaleRecorded, NewStock: 3}

	err := Fanout{a, nil, b}.Publish(context.Background(), event)

	assert.NoError(t, err)
	assert.Equal(t, []model.StockEvent{event}, a.events)
	assert.Equal(t, []model.StockEvent{event}, b.events)
}

func TestFanout_JoinsErrorsButKeepsGoing(t *testing.T) {
	boom := errors.New("broker down")
	failing, ok := &recordingPublisher{err: boom}, &recordingPublisher{}

	err := Fanout{failing, ok}.Publish(context.Background(), model.StockEvent{})

	assert.ErrorIs(t, err, boom)
	assert.Len(t, ok.events, 1)
}
