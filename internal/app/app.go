package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/venue-checkout/internal/lock"
	"github.com/metinatakli/venue-checkout/internal/repository"
	"github.com/metinatakli/venue-checkout/internal/service"
	appvalidator "github.com/metinatakli/venue-checkout/internal/validator"
	"github.com/metinatakli/venue-checkout/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "venue-checkout-api"

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	redis          redis.UniversalClient
	validator      *validator.Validate
	sessionManager *scs.SessionManager

	seatMapService  *service.SeatMapService
	sessionService  *service.SessionService
	cartService     *service.CartService
	checkoutService *service.CheckoutService
	paymentService  *service.PaymentService
}

// NewApp wires repositories and services on top of an open database pool and redis client.
func NewApp(cfg Config, logger *slog.Logger, db *pgxpool.Pool, redisClient *redis.Client) *Application {
	txManager := repository.NewPostgresTxManager(db)

	catalogRepo := repository.NewPostgresCatalogRepository(db)
	seatMapRepo := repository.NewPostgresSeatMapRepository(db)
	sessionRepo := repository.NewPostgresSessionRepository(db)
	cartRepo := repository.NewPostgresCartRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)
	transactionRepo := repository.NewPostgresTransactionRepository(db)
	walletRepo := repository.NewPostgresWalletRepository(db)

	seatLocker := lock.NewRedisSeatLocker(redisClient, cfg.Checkout.SeatLockTTL)

	checkoutCfg := service.CheckoutConfig{
		PendingTransactionCap: cfg.Checkout.PendingTransactionCap,
		Currency:              cfg.Checkout.Currency,
	}

	seatMapService := service.NewSeatMapService(catalogRepo, seatMapRepo, logger)

	return &Application{
		config:         cfg,
		logger:         logger,
		redis:          redisClient,
		validator:      appvalidator.NewValidator(),
		sessionManager: newSessionManager(redisClient),
		seatMapService: seatMapService,
		sessionService: service.NewSessionService(txManager, catalogRepo, seatMapService, seatMapRepo, sessionRepo, logger),
		cartService:    service.NewCartService(txManager, catalogRepo, cartRepo, logger, cfg.Checkout.MaxItemQuantity),
		checkoutService: service.NewCheckoutService(
			txManager,
			service.CheckoutRepositories{
				Catalog:      catalogRepo,
				Seats:        seatMapRepo,
				Sessions:     sessionRepo,
				Carts:        cartRepo,
				Bookings:     bookingRepo,
				Transactions: transactionRepo,
				Wallets:      walletRepo,
			},
			seatMapService,
			seatLocker,
			logger,
			checkoutCfg,
		),
		paymentService: service.NewPaymentService(
			txManager,
			service.PaymentRepositories{
				Catalog:      catalogRepo,
				Bookings:     bookingRepo,
				Transactions: transactionRepo,
				Wallets:      walletRepo,
			},
			logger,
			checkoutCfg,
		),
	}
}

func Run() error {
	cfg, displayVersion, err := LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(NewMultiHandler(
		slog.NewTextHandler(os.Stdout, nil),
		otelslog.NewHandler(serviceName),
	))

	shutdownTelemetry, err := InitTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	app := NewApp(cfg, logger, db, redisClient)

	return app.run()
}

func newSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = SessionCookieName

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
