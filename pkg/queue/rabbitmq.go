package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"vidgro/pkg/config"
	"vidgro/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsQueueName  = "engine_events_queue"
	EventsExchange   = "engine_events"
	EventsRoutingKey = "change"
)

// Event types published by the engine. Delivery to subscribers is
// at-least-once; no ordering is guaranteed across event types.
const (
	EventTransactionCreated = "transaction.created"
	EventPromotionCreated   = "promotion.created"
	EventPromotionCancelled = "promotion.cancelled"
	EventPromotionCompleted = "promotion.completed"
	EventViewSettled        = "view.settled"
)

// Event is a change notification for a ledger or promotion row.
type Event struct {
	Type        string                 `json:"type"`
	AccountID   string                 `json:"account_id,omitempty"`
	PromotionID string                 `json:"promotion_id,omitempty"`
	Data        map[string]interface{} `json:"data,omitempty"`
	OccurredAt  time.Time              `json:"occurred_at"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		EventsExchange, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		EventsQueueName, // name
		true,            // durable
		false,           // delete when unused
		false,           // exclusive
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		EventsQueueName,  // queue name
		EventsRoutingKey, // routing key
		EventsExchange,   // exchange
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishEvent publishes a change event for downstream subscribers (the
// notifier service). Messages are persistent so an engine restart does not
// drop queued notifications.
func (c *Client) PublishEvent(event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = c.channel.Publish(
		EventsExchange,   // exchange
		EventsRoutingKey, // routing key
		false,            // mandatory
		false,            // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish %s event: %v", event.Type, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

// ConsumeEvents delivers queued events to the handler. A handler error nacks
// and requeues the message, so handlers must tolerate redelivery.
func (c *Client) ConsumeEvents(handler func(event Event) error) error {
	msgs, err := c.channel.Consume(
		EventsQueueName, // queue
		"",              // consumer
		false,           // auto-ack (we ack after processing)
		false,           // exclusive
		false,           // no-local
		false,           // no-wait
		nil,             // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("[RABBITMQ] Started consuming from %s", EventsQueueName)

	go func() {
		for msg := range msgs {
			var event Event
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				c.logger.Error("[RABBITMQ] Failed to unmarshal event: %v, body=%s", err, string(msg.Body))
				msg.Nack(false, false) // reject, don't requeue
				continue
			}

			if err := handler(event); err != nil {
				c.logger.Error("[RABBITMQ] Handler failed for %s event: %v", event.Type, err)
				msg.Nack(false, true) // reject and requeue
				continue
			}

			msg.Ack(false)
		}
	}()

	return nil
}

// QueueLength returns the number of messages waiting in the events queue.
func (c *Client) QueueLength() (int, error) {
	queue, err := c.channel.QueueInspect(EventsQueueName)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect queue: %w", err)
	}
	return queue.Messages, nil
}
