package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"freight/cmd"
	"freight/internal/adapters/in/amqp"
	"freight/internal/adapters/out/kafka"
	"freight/internal/adapters/out/postgres"
	"freight/internal/core/ports"

	amqp091 "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const positionsPrefetch = 32

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	if err := run(log); err != nil {
		log.Error("service stopped", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := gorm.Open(gorm_postgres.Open(cfg.DSN()), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err = postgres.Migrate(db); err != nil {
		return err
	}

	app := cmd.NewCompositionRoot(cfg, db, log)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
	}
	router, err := app.CreateRouter(redisClient)
	if err != nil {
		return err
	}

	var publisher ports.MessagePublisher
	if brokers := cfg.KafkaBrokerList(); len(brokers) > 0 {
		p := kafka.NewPublisher(kafka.Config{Brokers: brokers, Topic: cfg.KafkaEventsTopic})
		defer p.Close()
		publisher = p
	}

	var consumer *amqp.PositionConsumer
	if cfg.AMQPURL != "" {
		conn, err := amqp091.Dial(cfg.AMQPURL)
		if err != nil {
			return fmt.Errorf("connect amqp: %w", err)
		}
		defer conn.Close()
		ch, err := conn.Channel()
		if err != nil {
			return fmt.Errorf("open amqp channel: %w", err)
		}
		consumer = amqp.NewPositionConsumer(
			ch, cfg.AMQPPositionsQueue, positionsPrefetch, app.CreateReportPositionCommandHandler(), log)
	}

	jobManager := app.CreateJobManager(publisher)
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", "port", cfg.HTTPPort)
		if err := router.Start(":" + cfg.HTTPPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return router.Shutdown(shutdownCtx)
	})

	if consumer != nil {
		g.Go(func() error {
			return consumer.Run(gctx)
		})
	}

	return g.Wait()
}
