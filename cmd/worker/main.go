package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/joho/godotenv"

	"github.com/okisetiawan/go-product-catalog/config"
	"github.com/okisetiawan/go-product-catalog/internal/application"
	"github.com/okisetiawan/go-product-catalog/pkg/helpers"
	"github.com/okisetiawan/go-product-catalog/pkg/mailer"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Worker keeps the Elasticsearch product index in sync with catalog events
// and sends queued emails through Mailgun.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-worker", cfg.Env)

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.Fatalf("elasticsearch client: %v", err)
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	eventCh, events, err := helpers.RabbitConsume(conn, cfg.RabbitMQEventQueue, 16)
	if err != nil {
		log.Fatalf("consume %s: %v", cfg.RabbitMQEventQueue, err)
	}
	defer func() { _ = eventCh.Close() }()

	emailCh, emails, err := helpers.RabbitConsume(conn, cfg.RabbitMQEmailQueue, 16)
	if err != nil {
		log.Fatalf("consume %s: %v", cfg.RabbitMQEmailQueue, err)
	}
	defer func() { _ = emailCh.Close() }()

	var mg *mailer.Mailgun
	if cfg.MailSendEnabled {
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			log.Fatal("MAIL_SEND_ENABLED=true but Mailgun not configured")
		}
		mg = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	}

	ctx := context.Background()
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		for msg := range events {
			var ev application.CatalogEvent
			if err := json.Unmarshal(msg.Body, &ev); err != nil {
				logger.WithError(err).Warn("bad catalog event")
				_ = msg.Nack(false, false)
				continue
			}
			if err := handleCatalogEvent(ctx, es, cfg.ESProductsIndex, &ev); err != nil {
				logger.WithError(err).WithField("event", ev.Type).Warn("catalog event failed")
				// requeue once; redelivered messages are dropped
				_ = msg.Nack(false, !msg.Redelivered)
				continue
			}
			_ = msg.Ack(false)
		}
	}()

	go func() {
		for msg := range emails {
			var job mailer.EmailJob
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				logger.WithError(err).Warn("bad email job")
				_ = msg.Nack(false, false)
				continue
			}
			if mg == nil {
				logger.WithField("to", job.To).Debug("mail sending disabled; dropping job")
				_ = msg.Ack(false)
				continue
			}
			c, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := mg.Send(c, job.To, job.Subject, job.Text, job.HTML)
			cancel()
			if err != nil {
				logger.WithError(err).WithField("to", job.To).Warn("send failed")
				_ = msg.Nack(false, !msg.Redelivered)
				continue
			}
			_ = msg.Ack(false)
		}
	}()

	logger.Infof("worker listening on queues %s, %s", cfg.RabbitMQEventQueue, cfg.RabbitMQEmailQueue)
	<-stop
	logger.Info("worker shutting down")
}

func handleCatalogEvent(ctx context.Context, es *elasticsearch.Client, index string, ev *application.CatalogEvent) error {
	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	switch ev.Type {
	case application.EventProductDeleted:
		req := esapi.DeleteRequest{Index: index, DocumentID: ev.ProductID}
		res, err := req.Do(c, es)
		if err != nil {
			return err
		}
		defer func() { _ = res.Body.Close() }()
		// 404 is fine: the document was never indexed
		return nil
	case application.EventProductCreated, application.EventProductUpdated:
		if ev.Product == nil {
			return nil
		}
		b, err := json.Marshal(ev.Product)
		if err != nil {
			return err
		}
		req := esapi.IndexRequest{
			Index:      index,
			DocumentID: ev.ProductID,
			Body:       strings.NewReader(string(b)),
			Refresh:    "false",
		}
		res, err := req.Do(c, es)
		if err != nil {
			return err
		}
		defer func() { _ = res.Body.Close() }()
		return nil
	default:
		return nil
	}
}
