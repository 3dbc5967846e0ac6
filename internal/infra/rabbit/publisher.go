package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"dogslife-quiz/internal/app"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends finished-session summaries to a durable queue on the
// default exchange.
type Publisher struct {
	conn  *amqp.Connection
	queue string

	mu      sync.Mutex
	channel *amqp.Channel
}

// Dial connects to RabbitMQ and declares the result queue.
func Dial(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return &Publisher{conn: conn, queue: queue, channel: ch}, nil
}

func (p *Publisher) PublishResult(ctx context.Context, result app.SessionResult) error {
	msg, err := encodeResult(result)
	if err != nil {
		return err
	}

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		msg,
	)
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.channel.Close()
	return p.conn.Close()
}

func encodeResult(result app.SessionResult) (amqp.Publishing, error) {
	body, err := json.Marshal(result)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("encode result: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    result.SessionID,
		Timestamp:    result.FinishedAt,
		Type:         "quiz.session.finished",
		Body:         body,
	}, nil
}
