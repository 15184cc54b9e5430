// Consumes EmailJob messages from RabbitMQ and delivers them via Mailgun.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/taskflow/taskflow-api/config"
	"github.com/taskflow/taskflow-api/pkg/helpers"
	"github.com/taskflow/taskflow-api/pkg/mailer"
	tpl "github.com/taskflow/taskflow-api/pkg/mailer/templates"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		log.Println("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch across workers
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	if _, err := ch.QueueDeclare(cfg.RabbitMQEmailQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	logger.Infof("email worker consuming from %q", cfg.RabbitMQEmailQueue)

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		for d := range msgs {
			handle(mg, logger, d)
		}
	}()

	<-done
	logger.Info("email worker shutting down")
}

func handle(mg *mailer.Mailgun, logger *logrus.Logger, d amqp.Delivery) {
	var job mailer.EmailJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		logger.Errorf("bad email job payload: %v", err)
		_ = d.Nack(false, false) // drop, it will never parse
		return
	}

	subject := job.Subject
	text, html := job.Text, job.HTML
	if job.Template != "" {
		if subject == "" {
			subject = tpl.Subject(job.Template)
		}
		var err error
		text, html, err = tpl.Render(job.Template, job.Data)
		if err != nil {
			logger.Errorf("render %q for %s: %v", job.Template, job.To, err)
			_ = d.Nack(false, false)
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := mg.Send(ctx, job.To, subject, text, html); err != nil {
		logger.Errorf("send to %s: %v", job.To, err)
		_ = d.Nack(false, true) // requeue, mailgun may be transiently down
		return
	}
	logger.Infof("sent %q email to %s", job.Template, job.To)
	_ = d.Ack(false)
}
