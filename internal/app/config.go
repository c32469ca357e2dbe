package app

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/metinatakli/venue-checkout/internal/lock"
	"github.com/metinatakli/venue-checkout/internal/service"
)

const DefaultSeatLockTTL = lock.DefaultSeatLockTTL

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	DB               DBConfig
	Redis            RedisConfig
	Checkout         CheckoutConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type CheckoutConfig struct {
	PendingTransactionCap int
	Currency              string
	MaxItemQuantity       int
	SeatLockTTL           time.Duration
}

// LoadConfig reads a .env file when one exists and parses args on top of it.
// Environment variables provide the defaults, flags win.
func LoadConfig(args []string) (cfg Config, displayVersion bool, err error) {
	err = godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, false, err
	}

	flags := flag.NewFlagSet("venue-checkout", flag.ContinueOnError)

	flags.IntVar(&cfg.Port, "port", envInt("PORT", 3000), "server port")
	flags.StringVar(&cfg.Env, "env", envString("ENV", "dev"), "Environment (dev|staging|prod)")
	flags.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", envString("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")

	flags.StringVar(&cfg.DB.DSN, "db-dsn", envString("DB_DSN", ""), "PostgreSQL DSN")
	flags.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", envInt("DB_MAX_OPEN_CONNS", 25), "PostgreSQL max open connections")
	flags.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", envDuration("DB_MAX_IDLE_TIME", 15*time.Minute), "PostgreSQL max idle time for connections")

	flags.StringVar(&cfg.Redis.URL, "redis-url", envString("REDIS_URL", ""), "Redis URL")
	flags.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", envInt("REDIS_MAX_OPEN_CONNS", 25), "Redis max open connections")
	flags.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", envInt("REDIS_MAX_IDLE_CONNS", 10), "Redis max idle connections")
	flags.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", envDuration("REDIS_MAX_IDLE_TIME", 2*time.Minute), "Redis max idle time for connections")

	flags.IntVar(&cfg.Checkout.PendingTransactionCap, "pending-transaction-cap",
		envInt("PENDING_TRANSACTION_CAP", service.DefaultPendingTransactionCap), "Max PENDING transactions per user")
	flags.StringVar(&cfg.Checkout.Currency, "currency", envString("CURRENCY", service.DefaultCurrency), "Currency of wallets and transactions")
	flags.IntVar(&cfg.Checkout.MaxItemQuantity, "max-item-quantity",
		envInt("MAX_ITEM_QUANTITY", service.DefaultMaxItemQuantity), "Max quantity of a single cart item")
	flags.DurationVar(&cfg.Checkout.SeatLockTTL, "seat-lock-ttl", envDuration("SEAT_LOCK_TTL", DefaultSeatLockTTL), "Lifetime of a checkout seat lock")

	flags.BoolVar(&displayVersion, "version", false, "Display version and exit")

	err = flags.Parse(args)
	if err != nil {
		return cfg, false, err
	}

	return cfg, displayVersion, nil
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return v
}
