package eventbus

import (
	"context"
	"errors"

	"ecommerce-admin/internal/model"
)

// Publisher delivers committed stock events to an outside audience.
type Publisher interface {
	Publish(ctx context.Context, event model.StockEvent) error
}

type nopPublisher struct{}

// NewNopPublisher returns a Publisher that drops every event.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, model.StockEvent) error {
	return nil
}

// Fanout sends each event to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, event model.StockEvent) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
