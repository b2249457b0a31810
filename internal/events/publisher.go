package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"immobiliare-gpt-backend/internal/models"
)

const TypeAdRequestSubmitted = "ad_request.submitted"

// SubmittedEvent tells the fulfillment process that a request is ready to
// be worked on.
type SubmittedEvent struct {
	Type        string    `json:"type"`
	AdRequestID string    `json:"ad_request_id"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	Title       string    `json:"title"`
	ImageCount  int       `json:"image_count"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func NewSubmittedEvent(req *models.AdRequest, imageCount int) SubmittedEvent {
	return SubmittedEvent{
		Type:        TypeAdRequestSubmitted,
		AdRequestID: req.ID.String(),
		UserID:      req.UserID.String(),
		Email:       req.Email,
		Title:       req.Title,
		ImageCount:  imageCount,
		SubmittedAt: req.CreatedAt,
	}
}

// Channel is the part of an AMQP channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Connection is an open channel with its queue declared. Closed receives
// (or is closed) once the channel or its connection goes away.
type Connection struct {
	Channel Channel
	Closed  <-chan *amqp.Error
	Conn    io.Closer
}

// Connector opens a new Connection.
type Connector func() (*Connection, error)

// Publisher sends events to a durable queue. When built with a Connector it
// reopens the channel on the next publish after the broker dropped it.
type Publisher struct {
	mu      sync.Mutex
	connect Connector
	current *Connection
	queue   string
	logger  *zap.Logger
}

// NewPublisher publishes on a fixed channel and never reconnects.
func NewPublisher(ch Channel, queue string, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{current: &Connection{Channel: ch}, queue: queue, logger: logger}
}

// Connect opens the first connection right away so a wrong broker address
// fails at startup.
func Connect(connect Connector, queue string, logger *zap.Logger) (*Publisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Publisher{connect: connect, queue: queue, logger: logger}
	conn, err := connect()
	if err != nil {
		return nil, err
	}
	p.current = conn
	return p, nil
}

// Dial connects to the broker at url and declares the queue on every
// (re)connect.
func Dial(url, queue string, logger *zap.Logger) (*Publisher, error) {
	return Connect(AMQPConnector(url, queue), queue, logger)
}

func AMQPConnector(url, queue string) Connector {
	return func() (*Connection, error) {
		conn, err := amqp.Dial(url)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}

		ch, err := conn.Channel()
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to open a channel: %w", err)
		}

		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
		}

		return &Connection{
			Channel: ch,
			Closed:  ch.NotifyClose(make(chan *amqp.Error, 1)),
			Conn:    conn,
		}, nil
	}
}

// channel returns a usable channel, reconnecting when the current one was
// closed. Callers hold p.mu.
func (p *Publisher) channel() (Channel, error) {
	if p.current != nil && !p.current.closed() {
		return p.current.Channel, nil
	}
	if p.connect == nil {
		if p.current == nil {
			return nil, amqp.ErrClosed
		}
		return p.current.Channel, nil
	}

	p.logger.Warn("amqp channel closed, reconnecting", zap.String("queue", p.queue))
	p.dropConnection()

	conn, err := p.connect()
	if err != nil {
		return nil, err
	}
	p.current = conn
	p.logger.Info("amqp channel reopened", zap.String("queue", p.queue))
	return conn.Channel, nil
}

func (p *Publisher) dropConnection() {
	if p.current != nil && p.current.Conn != nil {
		_ = p.current.Conn.Close()
	}
	p.current = nil
}

func (c *Connection) closed() bool {
	if c.Closed == nil {
		return false
	}
	select {
	case <-c.Closed:
		return true
	default:
		return false
	}
}

func (p *Publisher) PublishSubmitted(ctx context.Context, req *models.AdRequest, imageCount int) error {
	body, err := json.Marshal(NewSubmittedEvent(req, imageCount))
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", TypeAdRequestSubmitted, err)
	}

	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    req.ID.String(),
		Type:         TypeAdRequestSubmitted,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		if errors.Is(err, amqp.ErrClosed) && p.connect != nil {
			p.dropConnection()
		}
		return fmt.Errorf("failed to publish %s: %w", TypeAdRequestSubmitted, err)
	}

	p.logger.Debug("event published", zap.String("queue", p.queue), zap.String("ad_request_id", req.ID.String()))
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil || p.current.Conn == nil {
		return nil
	}
	err := p.current.Conn.Close()
	p.current = nil
	return err
}

// Noop drops every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) PublishSubmitted(context.Context, *models.AdRequest, int) error { return nil }

// SubmittedPublisher is implemented by everything that reacts to a
// successful submission.
type SubmittedPublisher interface {
	PublishSubmitted(ctx context.Context, req *models.AdRequest, imageCount int) error
}

// Multi hands every event to all publishers and joins their errors.
type Multi []SubmittedPublisher

func (m Multi) PublishSubmitted(ctx context.Context, req *models.AdRequest, imageCount int) error {
	var errs []error
	for _, p := range m {
		if err := p.PublishSubmitted(ctx, req, imageCount); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
