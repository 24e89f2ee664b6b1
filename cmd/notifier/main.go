package main

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/roosterplan/backend/internal/config"
	"github.com/roosterplan/backend/internal/domain"
	"github.com/roosterplan/backend/internal/notifier"
	"github.com/wneessen/go-mail"
)

// buildBody picks the email template and subject for a notification and sets
// the message body. Templates live next to the binary in ./templates.
func buildBody(msg *mail.Msg, notification *domain.NotificationMessage) error {
	switch notification.Type {
	case domain.NotificationAccountCreated:
		tmpl, err := template.ParseFiles("./templates/new_account_email.html")
		if err != nil {
			return err
		}
		if err := msg.SetBodyHTMLTemplate(tmpl, notification.Data); err != nil {
			return err
		}
		msg.Subject("RoosterPlan - je nieuwe account")
	case domain.NotificationResetPassword:
		tmpl, err := template.ParseFiles("./templates/reset_password_otp_email.html")
		if err != nil {
			return err
		}
		if err := msg.SetBodyHTMLTemplate(tmpl, notification.Data); err != nil {
			return err
		}
		msg.Subject("RoosterPlan - wachtwoord opnieuw instellen")
	default:
		// Shift and swap notifications share one generic template. The title
		// and message were composed by the publisher.
		tmpl, err := template.ParseFiles("./templates/notification_email.html")
		if err != nil {
			return err
		}
		if err := msg.SetBodyHTMLTemplate(tmpl, notification); err != nil {
			return err
		}
		msg.Subject("RoosterPlan - " + notification.Title)
	}

	return nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		return
	}

	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("failed to create mail client", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("failed to connect to mail server", slog.String("error", err.Error()))
		return
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open rabbitmq channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		notifier.QueueName,
		true,  // durable
		false, // do not auto-delete while no consumer is attached
		false, // not exclusive
		false, // wait for the broker to confirm the declare
		nil,
	)
	if err != nil {
		logger.Error("failed to declare notification queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",    // let the broker pick a consumer tag
		false, // manual acks
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("failed to start consuming", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case delivery := <-msgs:
				notification := domain.NotificationMessage{}
				if err := json.Unmarshal(delivery.Body, &notification); err != nil {
					logger.Error("failed to decode notification", slog.String("error", err.Error()))
					_ = delivery.Nack(false, false)
					continue
				}
				logger.Info("received notification", slog.String("type", notification.Type), slog.Int64("employeeID", notification.EmployeeID))

				msg := mail.NewMsg()
				if err := msg.From(cfg.Email.SMTP.Username); err != nil {
					logger.Error("failed to set mail sender", slog.String("error", err.Error()))
					_ = delivery.Nack(false, false)
					continue
				}
				if err := msg.To(notification.Email); err != nil {
					logger.Error("failed to set mail recipient", slog.String("error", err.Error()))
					_ = delivery.Nack(false, false)
					continue
				}

				if err := buildBody(msg, &notification); err != nil {
					logger.Error("failed to build mail body", slog.String("type", notification.Type), slog.String("error", err.Error()))
					_ = delivery.Nack(false, false)
					continue
				}

				if err := client.DialAndSend(msg); err != nil {
					logger.Error("failed to send mail", slog.String("error", err.Error()))
					// Requeue so a transient SMTP failure does not drop the mail.
					_ = delivery.Nack(false, true)
					continue
				}

				_ = delivery.Ack(false)
			}
		}
	}()

	logger.Info("waiting for notifications... (press CTRL+C to exit)")
	<-sigChan

	slog.Info("shutting down notifier worker...")
	cancel()
	wg.Wait()
	slog.Info("notifier worker stopped")
}
