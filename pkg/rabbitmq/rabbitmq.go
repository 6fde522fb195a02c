package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"brinquedos/internal/models"

	"github.com/google/uuid"
	amqp "github.com/streadway/amqp"
)

// DefaultQueue receives every catalog event.
const DefaultQueue = "brinquedos_events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	// amqp.Channel is not safe for concurrent publishes.
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// ToyEvent is the JSON body of every published message.
type ToyEvent struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Toy        models.Toy `json:"brinquedo"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// NewToyEvent stamps an event with a fresh id and the current time.
func NewToyEvent(eventType string, toy models.Toy) ToyEvent {
	return ToyEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Toy:        toy,
		OccurredAt: time.Now().UTC(),
	}
}

// NewClient connects to RabbitMQ, opens a channel and declares the event queue.
func NewClient(cfg Config) (*Client, error) {
	queue := cfg.Queue
	if queue == "" {
		queue = DefaultQueue
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareQueue(ch, queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", queue, err)
	}

	log.Printf("RabbitMQ client connected and %s declared.", queue)

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   queue,
	}, nil
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,  // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishToyEvent publishes a persistent JSON ToyEvent to the event queue.
// streadway/amqp has no context support, so ctx is only checked before publishing.
func (c *Client) PublishToyEvent(ctx context.Context, eventType string, toy models.Toy) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	event := NewToyEvent(eventType, toy)
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    event.ID,
			Type:         eventType,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	log.Printf(" [x] Sent %s event %s for toy %d", eventType, event.ID, toy.ID)
	return nil
}

// ConsumeToyEvents registers a consumer on the event queue and hands every
// decoded event to handler in a background goroutine. Messages that fail to
// decode are dropped; handler errors requeue the message.
func (c *Client) ConsumeToyEvents(handler func(ToyEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue, // queue
		"",      // consumer tag
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf(" [*] Waiting for events on %s", c.queue)

	go func() {
		for msg := range msgs {
			HandleDelivery(msg, handler)
		}
	}()
	return nil
}

// Acknowledger is the subset of amqp.Delivery used to settle a message.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// HandleDelivery decodes one delivery, runs handler and settles the message.
func HandleDelivery(msg amqp.Delivery, handler func(ToyEvent) error) {
	settle(&msg, msg.DeliveryTag, msg.Body, handler)
}

func settle(ack Acknowledger, tag uint64, body []byte, handler func(ToyEvent) error) {
	var event ToyEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("Dropping undecodable message %d: %v", tag, err)
		if err := ack.Nack(false, false); err != nil {
			log.Printf("Error nacking message %d: %v", tag, err)
		}
		return
	}

	if err := handler(event); err != nil {
		log.Printf("Error processing message %d: %v", tag, err)
		if err := ack.Nack(false, true); err != nil {
			log.Printf("Error nacking message %d: %v", tag, err)
		}
		return
	}
	if err := ack.Ack(false); err != nil {
		log.Printf("Error acking message %d: %v", tag, err)
	}
}

// LogToyEvent is the audit handler the server attaches to ConsumeToyEvents.
func LogToyEvent(event ToyEvent) error {
	log.Printf("Catalog event %s (%s): toy %d %q", event.Type, event.ID, event.Toy.ID, event.Toy.Name)
	return nil
}
