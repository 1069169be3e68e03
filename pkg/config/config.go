package config

import (
	"flag"
	"time"

	"github.com/openbid/auction-house/pkg/model"
)

type Config struct {
	LogLevel   string
	ListenAddr string

	PostgresAddr     string // Postgres address in host[:port] format
	PostgresDB       string
	PostgresUser     string
	PostgresPassword string
	InMemStore       bool // run against the in-memory store instead of Postgres

	RedisAddr     string // Redis address in host[:port] format
	RedisUser     string // Redis user
	RedisPassword string // Redis password

	NATSAddr string // NATS address; bid events are disabled when empty

	JWTSecret string
	TokenTTL  time.Duration

	SweepInterval   time.Duration // how often the closing sweeper scans for expired auctions
	BidRetryLimit   int           // compare-and-update attempts per bid before giving up
	BidsLimit       int           // bids that a single user can place within one hour
	LimiterFailOpen bool
	CacheAuctions   bool // whether to keep a short-lived copy of auction records in redis
	AuctionCacheTTL time.Duration

	// Demo-data generator params
	DemoUsers    int
	DemoAuctions int
	DemoDuration time.Duration
}

func New() *Config {
	c := &Config{}

	flag.StringVar(&c.LogLevel, "logLevel", LookupEnvString("LOG_LEVEL", "DEBUG"), "Set log level: DEBUG, INFO, WARNING, ERROR.")
	flag.StringVar(&c.ListenAddr, "listenAddr", LookupEnvString("LISTEN_ADDR", ":5001"), `Address in form of "[host]:port" that HTTP server should be listening on.`)

	flag.StringVar(&c.PostgresAddr, "postgresAddr", LookupEnvString("POSTGRES_ADDR", "127.0.0.1:5432"), "Set PostgreSQL address as host:port, where port is optional (without TLS).")
	flag.StringVar(&c.PostgresDB, "postgresDB", LookupEnvString("POSTGRES_DB", "auctionhouse"), "Set PostgreSQL DB.")
	flag.StringVar(&c.PostgresUser, "postgresUser", LookupEnvString("POSTGRES_USER", "develop"), "Set PostgreSQL user.")
	flag.StringVar(&c.PostgresPassword, "postgresPassword", LookupEnvString("POSTGRES_PASSWORD", "develop"), "Set PostgreSQL password.")
	flag.BoolVar(&c.InMemStore, "inMemStore", LookupEnvBool("IN_MEM_STORE", false), "Set to use the non-durable in-memory store (local development only).")

	flag.StringVar(&c.RedisAddr, "redisAddr", LookupEnvString("REDIS_ADDR", "127.0.0.1:6379"), "Redis address in host[:port] format.")
	flag.StringVar(&c.RedisUser, "redisUser", LookupEnvString("REDIS_USER", ""), "Redis user.")
	flag.StringVar(&c.RedisPassword, "redisPassword", LookupEnvString("REDIS_PASSWORD", ""), "Redis password.")

	flag.StringVar(&c.NATSAddr, "natsAddr", LookupEnvString("NATS_ADDR", ""), "NATS address for publishing bid events. Leave empty to disable publishing.")

	flag.StringVar(&c.JWTSecret, "jwtSecret", LookupEnvString("JWT_SECRET", "my_super_secret_123!"), "HMAC secret used to sign auth tokens.")
	flag.DurationVar(&c.TokenTTL, "tokenTTL", LookupEnvDuration("TOKEN_TTL", time.Hour), "Auth token lifetime in format that can be parsed by go's time.ParseDuration.")

	flag.DurationVar(&c.SweepInterval, "sweepInterval", LookupEnvDuration("SWEEP_INTERVAL", model.DefaultSweepInterval), "How often expired auctions are swept and closed. Auctions may stay open up to one interval past their closing time.")
	flag.IntVar(&c.BidRetryLimit, "bidRetryLimit", LookupEnvInt("BID_RETRY_LIMIT", model.DefaultBidRetries), "Number of compare-and-update attempts per bid under contention.")
	flag.IntVar(&c.BidsLimit, "bidsLimit", LookupEnvInt("BIDS_LIMIT", 100), "Number of bids that a single user can place within one hour.")
	flag.BoolVar(&c.LimiterFailOpen, "limiterFailOpen", LookupEnvBool("LIMITER_FAIL_OPEN", false), "Set to make limiter allow request if failed to check limits.")
	flag.BoolVar(&c.CacheAuctions, "cacheAuctions", LookupEnvBool("CACHE_AUCTIONS", false), "Set to cache auction records in redis. May be useful when single auction is requested many times.")
	flag.DurationVar(&c.AuctionCacheTTL, "auctionCacheTTL", LookupEnvDuration("AUCTION_CACHE_TTL", 2*time.Second), "How long cached auction records stay fresh.")

	flag.IntVar(&c.DemoUsers, "demoUsers", LookupEnvInt("DEMO_USERS", 10), "Number of users to generate (only for auctions-generator).")
	flag.IntVar(&c.DemoAuctions, "demoAuctions", LookupEnvInt("DEMO_AUCTIONS", 100), "Number of open auctions to generate (only for auctions-generator).")
	flag.DurationVar(&c.DemoDuration, "demoDuration", LookupEnvDuration("DEMO_DURATION", time.Hour), "How long generated auctions stay open (only for auctions-generator).")

	flag.Parse()

	return c
}
