package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Flame-Codes/jersey-hub-direct/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrQueueClosed is returned after Close
var ErrQueueClosed = errors.New("queue notifier closed")

// publisher is the part of *amqp.Channel the queue notifier needs
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// Queue publishes notifications as persistent JSON messages on a durable
// RabbitMQ queue for an operator-side consumer
type Queue struct {
	mu        sync.Mutex
	conn      *amqp.Connection
	ch        publisher
	queueName string
	reopen    func() (publisher, error)
	closed    bool
}

// DialQueue connects to RabbitMQ and declares the queue
func DialQueue(url, queueName string) (*Queue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	q := &Queue{conn: conn, queueName: queueName}
	q.reopen = q.openChannel

	ch, err := q.openChannel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	q.ch = ch
	return q, nil
}

func (q *Queue) openChannel() (publisher, error) {
	ch, err := q.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		q.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}
	return ch, nil
}

// Notify publishes payload on the queue, reopening the channel if the
// broker closed it
func (q *Queue) Notify(ctx context.Context, payload models.RelayPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	if q.ch == nil || q.ch.IsClosed() {
		ch, err := q.reopen()
		if err != nil {
			return err
		}
		q.ch = ch
	}

	err = q.ch.PublishWithContext(ctx,
		"",          // exchange
		q.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    payload.OrderID,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish order: %w", err)
	}
	return nil
}

// Close releases the channel and connection
func (q *Queue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true

	var errs []error
	if q.ch != nil {
		errs = append(errs, q.ch.Close())
	}
	if q.conn != nil {
		errs = append(errs, q.conn.Close())
	}
	return errors.Join(errs...)
}
