package mq

import (
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"FormUp/config"
)

const (
	// DelayedExchange routes delayed messages via the x-delayed-message plugin.
	DelayedExchange = "formup.delayed"

	QueueCurrencyReminders = "currency.reminders"
	QueueBookingReminders  = "booking.reminders"

	RoutingKeyCurrencyReminder = "reminder.currency"
	RoutingKeyBookingReminder  = "reminder.booking"
)

var (
	conn     *amqp.Connection
	connOnce sync.Once
	initErr  error
)

func Init() error {
	connOnce.Do(func() {
		url := config.Cfg.GetRabbitMQURL()

		conn, initErr = amqp.Dial(url)
		if initErr != nil {
			return
		}

		initErr = declareTopology()
	})

	return initErr
}

// declareTopology sets up the delayed exchange and the reminder queues.
// Declarations are idempotent on the broker side.
func declareTopology() error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open topology channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(
		DelayedExchange,
		"x-delayed-message",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		amqp.Table{"x-delayed-type": "direct"},
	); err != nil {
		return fmt.Errorf("failed to declare delayed exchange: %w", err)
	}

	bindings := map[string]string{
		QueueCurrencyReminders: RoutingKeyCurrencyReminder,
		QueueBookingReminders:  RoutingKeyBookingReminder,
	}

	for queue, routingKey := range bindings {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", queue, err)
		}
		if err := ch.QueueBind(queue, routingKey, DelayedExchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue %s: %w", queue, err)
		}
	}

	return nil
}

func Connection() *amqp.Connection {
	return conn
}

func Close() error {
	if conn == nil || conn.IsClosed() {
		return nil
	}

	return conn.Close()
}
