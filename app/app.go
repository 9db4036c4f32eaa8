package app

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/motorent/rental-service/config"
	"github.com/motorent/rental-service/internal/handler"
	"github.com/motorent/rental-service/internal/overdue"
	"github.com/motorent/rental-service/internal/repository"
	"github.com/motorent/rental-service/internal/scheduler"
	"github.com/motorent/rental-service/internal/server"
	"github.com/motorent/rental-service/internal/service"
	"github.com/motorent/rental-service/migrations"
	"github.com/motorent/rental-service/pkg/kafka"
	"github.com/motorent/rental-service/pkg/logger"
	"github.com/motorent/rental-service/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "rental")
	db, err := postgres.NewPostgresDB(context.Background(), cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	var events service.EventPublisher
	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		log.Warn("kafka producer unavailable, events disabled", zap.Error(err))
	} else {
		events = kafka.NewPublisher(producer, cfg.Kafka.Topic)
	}

	policy := overdue.Policy{
		DendaRate:  cfg.Penalty.DendaRate,
		Multiplier: cfg.Penalty.Multiplier,
		MinuteTier: cfg.Penalty.MinuteTier,
		HourTier:   cfg.Penalty.HourTier,
	}
	svc := service.NewService(repo, events, policy, log)

	sched, err := scheduler.NewScheduler(cfg.Sweep.Spec, svc, log)
	if err != nil {
		log.Fatal("scheduler", zap.Error(err))
	}
	sched.Start()

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))

	g := errgroup.Group{}
	g.Go(func() error {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	sched.Stop()
	if err := srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if err := g.Wait(); err != nil {
		log.Error("server run", zap.Error(err))
	}
	if producer != nil {
		_ = producer.Close()
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
