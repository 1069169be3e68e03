package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openbid/auction-house/pkg/cache"
	"github.com/openbid/auction-house/pkg/config"
	"github.com/openbid/auction-house/pkg/database"
	"github.com/openbid/auction-house/pkg/events"
	"github.com/openbid/auction-house/pkg/limiter"
	"github.com/openbid/auction-house/pkg/server"
	"github.com/openbid/auction-house/pkg/service"
	"github.com/openbid/auction-house/pkg/sweeper"
)

const gracefulTimeout = time.Second * 15

func main() {
	cfg := config.New()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	auctionRepo, userRepo, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("### Can't init store: %v", err)
	}
	defer closeStore()

	redis, closeRedis, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisUser, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("### Can't init redis: %v", err)
	}
	defer closeRedis()

	auctionSvc, userSvc, closeEvents, err := composeServices(auctionRepo, userRepo, redis, cfg)
	if err != nil {
		log.Fatalf("### Can't compose services: %v", err)
	}
	defer closeEvents()

	srv, err := server.New(cfg.ListenAddr, auctionSvc, userSvc, cfg.JWTSecret)
	if err != nil {
		log.Fatalf("### Can't create server: %v", err)
	}

	// The sweeper's lifecycle is owned here: it starts with the server and
	// stops with it, so no free-running timer outlives the process shutdown.
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	sw := &sweeper.Sweeper{Repo: auctionRepo, Interval: cfg.SweepInterval, Retries: cfg.BidRetryLimit}
	go sw.Run(sweepCtx)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("### Can't listen and serve: %v", err)
		}
	}()
	slog.Info(fmt.Sprintf("HTTP server listening at %s", srv.Addr))

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	<-shutdown

	stopSweeper()

	ctx, cancel := context.WithTimeout(context.Background(), gracefulTimeout)
	defer cancel()

	srv.Shutdown(ctx)
}

func openStore(cfg *config.Config) (database.AuctionRepository, database.UserRepository, func() error, error) {
	if cfg.InMemStore {
		slog.Warn("using in-memory store, data will not survive a restart")
		mem := database.NewMemory()
		return mem, mem, func() error { return nil }, nil
	}

	db, closeDB, err := database.New(cfg.PostgresAddr, cfg.PostgresDB, cfg.PostgresUser, cfg.PostgresPassword)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := database.Migrate(db); err != nil {
		closeDB()
		return nil, nil, nil, err
	}

	return &database.AuctionDatabase{DB: db}, &database.UserDatabase{DB: db}, closeDB, nil
}

func composeServices(
	auctionRepo database.AuctionRepository,
	userRepo database.UserRepository,
	redis *redis.Client,
	cfg *config.Config,
) (auction service.Auction, user service.User, closeEvents func(), err error) {
	closeEvents = func() {}

	auction = &service.AuctionGeneric{
		Repo:       auctionRepo,
		BidRetries: cfg.BidRetryLimit,
	}

	if cfg.CacheAuctions {
		auction = &service.AuctionCaching{Auction: auction, Redis: redis, TTL: cfg.AuctionCacheTTL}
	}

	auction = &service.AuctionLimiting{
		Auction:  auction,
		Limiter:  &limiter.Limiter{Redis: redis, Limit: cfg.BidsLimit},
		FailOpen: cfg.LimiterFailOpen,
	}

	if cfg.NATSAddr != "" {
		pub, closePub, err := events.NewNATS(cfg.NATSAddr)
		if err != nil {
			return nil, nil, nil, err
		}

		auction = &service.AuctionEvents{Auction: auction, Publisher: pub}
		closeEvents = closePub
	}

	auction = &service.AuctionLogging{Auction: auction}

	user = &service.UserGeneric{
		Repo:      userRepo,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	}

	return auction, user, closeEvents, nil
}

func parseLogLevel(lvl string) slog.Level {
	switch lvl {
	case slog.LevelDebug.String():
		return slog.LevelDebug
	case slog.LevelInfo.String():
		return slog.LevelInfo
	case slog.LevelWarn.String():
		return slog.LevelWarn
	case slog.LevelError.String():
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
