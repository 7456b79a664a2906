package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/workhive-dev/hr-admin/backend/internal/config"
	"github.com/workhive-dev/hr-admin/backend/internal/domain"
	"github.com/workhive-dev/hr-admin/backend/internal/repository"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * set up the logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * load configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * connect to the database
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database connection pool", slog.String("error", err.Error()))
		return
	}
	defer dbpool.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()
	if err := dbpool.PingContext(pingCtx); err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * connect to RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open a channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"audit_queue", // queue name
		true,          // durable
		false,         // do not auto-delete when there are no consumers
		false,         // not exclusive
		false,         // wait for the broker to confirm the declaration
		nil,           // no extra arguments
	)
	if err != nil {
		logger.Error("failed to declare the audit queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name, // queue
		"",     // consumer tag, assigned by the broker
		false,  // manual acks
		false,  // not exclusive
		false,  // no-local is unsupported by RabbitMQ, must stay false
		false,  // wait for the broker to confirm
		nil,    // no extra arguments
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
			case msg := <-msgs:
				logger.Info("received audit event", slog.String("message", string(msg.Body)))

				event := domain.AuditEvent{}
				if err := json.Unmarshal(msg.Body, &event); err != nil {
					logger.Error("failed to decode audit event", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				// the detail blob is stored as it was published
				detail := ""
				if event.Detail != nil {
					data, err := json.Marshal(event.Detail)
					if err != nil {
						logger.Error("failed to encode audit detail", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					detail = string(data)
				}

				record := &domain.AuditRecord{
					Action:     event.Action,
					CompanyID:  event.CompanyID,
					ActorID:    event.ActorID,
					Entity:     event.Entity,
					EntityID:   event.EntityID,
					Detail:     detail,
					OccurredAt: event.OccurredAt,
				}

				if err := repo.InsertAuditRecord(record); err != nil {
					logger.Error("failed to persist audit record", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // requeue, the database may be back later
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("waiting for audit events... (press CTRL+C to exit)")
	<-sigChan

	slog.Info("shutting down audit worker...")
	cancel()
	wg.Wait()
	slog.Info("audit worker stopped")
}
