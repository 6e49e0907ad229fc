package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"ecommerce-admin/internal/model"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const (
	publishTimeout = 5 * time.Second
	confirmBuffer  = 16
)

// RabbitMQPublisher publishes stock events to a durable topic exchange with
// publisher confirms. Routing keys come from StockEvent.RoutingKey.
type RabbitMQPublisher struct {
	url      string
	exchange string
	conn     *amqp.Connection
	channel  *amqp.Channel
	confirms chan amqp.Confirmation
	closed   chan *amqp.Error
	// published is the delivery tag of the last message sent on channel.
	published uint64
	mu        sync.Mutex
	logger    *zap.Logger
}

func NewRabbitMQPublisher(url, exchange string, logger *zap.Logger) (*RabbitMQPublisher, error) {
	p := &RabbitMQPublisher{
		url:      url,
		exchange: exchange,
		logger:   logger,
	}
	if err := p.connect(); err != nil {
		return nil, err
	}

	logger.Info("rabbitmq publisher ready", zap.String("exchange", exchange))
	return p, nil
}

func (p *RabbitMQPublisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("failed to dial RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	err = ch.ExchangeDeclare(
		p.exchange, // name
		"topic",    // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to declare exchange %s: %w", p.exchange, err)
	}

	p.conn = conn
	p.channel = ch
	p.confirms = ch.NotifyPublish(make(chan amqp.Confirmation, confirmBuffer))
	p.closed = ch.NotifyClose(make(chan *amqp.Error, 1))
	// Delivery tags restart at 1 on every confirm-mode channel.
	p.published = 0
	return nil
}

// ensureChannel redials when the broker has closed the channel or connection.
// Callers hold p.mu.
func (p *RabbitMQPublisher) ensureChannel() error {
	if p.conn != nil && !p.conn.IsClosed() {
		select {
		case amqpErr := <-p.closed:
			p.logger.Warn("rabbitmq channel closed, reconnecting", zap.Any("reason", amqpErr))
		default:
			return nil
		}
	} else {
		p.logger.Warn("rabbitmq connection lost, reconnecting")
	}

	if p.conn != nil && !p.conn.IsClosed() {
		p.conn.Close()
	}
	return p.connect()
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, event model.StockEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal stock event: %w", err)
	}

	// One outstanding publish at a time so each confirmation matches its message.
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureChannel(); err != nil {
		return err
	}

	err = p.channel.Publish(
		p.exchange,
		event.RoutingKey(),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    event.OccurredAt,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish stock event: %w", err)
	}
	p.published++

	confirm, err := awaitConfirm(ctx, p.confirms, p.published, publishTimeout)
	if err != nil {
		return err
	}
	p.logger.Debug("stock event published",
		zap.String("routingKey", event.RoutingKey()),
		zap.Uint64("deliveryTag", confirm.DeliveryTag))
	return nil
}

// awaitConfirm waits for the confirmation carrying tag. Confirmations for earlier
// tags belong to publishes that already gave up waiting and are discarded.
func awaitConfirm(ctx context.Context, confirms <-chan amqp.Confirmation, tag uint64, timeout time.Duration) (amqp.Confirmation, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case confirm, ok := <-confirms:
			if !ok {
				return amqp.Confirmation{}, errors.New("rabbitmq channel closed before confirmation")
			}
			if confirm.DeliveryTag < tag {
				continue
			}
			if !confirm.Ack {
				return confirm, errors.New("stock event nacked by broker")
			}
			return confirm, nil
		case <-ctx.Done():
			return amqp.Confirmation{}, ctx.Err()
		case <-timer.C:
			return amqp.Confirmation{}, errors.New("publish confirmation timeout")
		}
	}
}

// Close shuts the channel and connection down.
func (p *RabbitMQPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.logger.Warn("closing rabbitmq channel", zap.Error(err))
		}
	}
	if p.conn != nil && !p.conn.IsClosed() {
		if err := p.conn.Close(); err != nil {
			p.logger.Warn("closing rabbitmq connection", zap.Error(err))
		}
	}
}
