// Package notifier publishes business notifications to the message queue.
// Delivery is fire-and-forget: a publish failure is logged and swallowed so
// it can never fail the shift or swap mutation that triggered it.
package notifier

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/roosterplan/backend/internal/config"
	"github.com/roosterplan/backend/internal/domain"
)

const QueueName = "notification_queue"

// EmailLookup resolves the address a notification should be delivered to.
// internal/repository provides it.
type EmailLookup interface {
	GetEmployeeEmail(id int64) (string, error)
}

type Dispatcher struct {
	cfg     *config.Config
	channel *amqp.Channel
	emails  EmailLookup
}

func NewDispatcher(cfg *config.Config, channel *amqp.Channel, emails EmailLookup) *Dispatcher {
	return &Dispatcher{
		cfg:     cfg,
		channel: channel,
		emails:  emails,
	}
}

// Notify queues a notification for an employee. Errors are logged, never
// returned.
func (d *Dispatcher) Notify(employeeID int64, notificationType, title, message, link string, data any) {
	email, err := d.emails.GetEmployeeEmail(employeeID)
	if err != nil {
		slog.Error("could not resolve notification recipient", "employeeID", employeeID, "error", err)
		return
	}

	payload := domain.NotificationMessage{
		Type:       notificationType,
		EmployeeID: employeeID,
		Email:      email,
		Title:      title,
		Message:    message,
		Link:       link,
		Data:       data,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("could not serialize notification", "type", notificationType, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(d.cfg.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	err = d.channel.PublishWithContext(
		ctx,
		"",
		QueueName,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		slog.Error("could not publish notification", "type", notificationType, "employeeID", employeeID, "error", err)
	}
}
