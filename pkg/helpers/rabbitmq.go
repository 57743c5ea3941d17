package helpers

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitPublisher publishes JSON jobs to one durable queue. A dropped
// connection is re-dialled on the next publish.
type RabbitPublisher struct {
	URL   string
	Queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewRabbitPublisher(url, queue string) (*RabbitPublisher, error) {
	p := &RabbitPublisher{URL: url, Queue: queue}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

// DeclareQueue declares a durable, non-exclusive queue.
func DeclareQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	return err
}

// connect must be called with mu held (or before the publisher is shared).
func (p *RabbitPublisher) connect() error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}
	if err := DeclareQueue(ch, p.Queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare %s: %w", p.Queue, err)
	}
	p.conn, p.ch = conn, ch
	return nil
}

func (p *RabbitPublisher) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.ch, p.conn = nil, nil
}

// PublishJSON publishes body as a persistent message via the default exchange.
func (p *RabbitPublisher) PublishJSON(ctx context.Context, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil || p.ch.IsClosed() || p.conn.IsClosed() {
		if p.conn != nil {
			_ = p.conn.Close()
		}
		if err := p.connect(); err != nil {
			return err
		}
	}
	return p.ch.PublishWithContext(ctx, "", p.Queue, false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         b,
		},
	)
}
