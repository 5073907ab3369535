package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	nethttp "net/http"
	"time"

	"github.com/aq2208/gstore-api/configs"
	"github.com/aq2208/gstore-api/internal/adapter/cache"
	"github.com/aq2208/gstore-api/internal/adapter/grpc"
	"github.com/aq2208/gstore-api/internal/adapter/http"
	"github.com/aq2208/gstore-api/internal/adapter/http/middleware"
	"github.com/aq2208/gstore-api/internal/adapter/kafka"
	"github.com/aq2208/gstore-api/internal/adapter/observ"
	"github.com/aq2208/gstore-api/internal/adapter/queue"
	"github.com/aq2208/gstore-api/internal/adapter/repo"
	"github.com/aq2208/gstore-api/internal/catalog"
	"github.com/aq2208/gstore-api/internal/coupon"
	"github.com/aq2208/gstore-api/internal/logging"
	"github.com/aq2208/gstore-api/internal/pricing"
	"github.com/aq2208/gstore-api/internal/receipt"
	"github.com/aq2208/gstore-api/internal/security"
	"github.com/aq2208/gstore-api/internal/storage"
	"github.com/aq2208/gstore-api/internal/store"
	"github.com/aq2208/gstore-api/internal/usecase"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type App struct {
	Router *gin.Engine
	Store  *store.Store

	cfg     configs.Config
	health  *grpc.HealthServer
	catalog *queue.Router
	log     *slog.Logger
}

// InitWithConfig wires every adapter selected by cfg. The returned cleanup
// closes connections in reverse order of opening.
func InitWithConfig(ctx context.Context, cfg configs.Config) (*App, func(), error) {
	log := logging.Init(logging.Options{Component: cfg.App.Name, FilePath: cfg.App.LogFile, Level: cfg.App.LogLevel})
	log.Info("store-api: starting up", "storage", cfg.Storage.Driver, "events", cfg.Events.Driver)

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*App, func(), error) {
		cleanup()
		return nil, nil, err
	}

	// redis is shared by the redis storage driver and the idempotency store
	var rdb *redis.Client
	if cfg.Storage.Driver == "redis" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: 0})
		closers = append(closers, func() { _ = rdb.Close() })
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fail(fmt.Errorf("redis ping: %w", err))
		}
	}

	ls, err := openStorage(ctx, cfg, rdb, &closers)
	if err != nil {
		return fail(err)
	}

	policy, err := store.ParseQuantityPolicy(cfg.Store.QuantityPolicy)
	if err != nil {
		return fail(err)
	}
	st := store.New(ctx, store.NewReducer(coupon.Default, policy), ls,
		store.WithLogger(logging.New("store")),
		store.WithObserver(observ.StoreObserver))
	if _, err := st.Dispatch(ctx, store.SetProducts{Products: catalog.Default()}); err != nil {
		return fail(err)
	}

	var idem usecase.IdempotencyStore = usecase.NewMemoryIdempotencyStore(cfg.Idempotency.TTL)
	if rdb != nil {
		idem = cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	}

	var amqpCh *amqp.Channel
	if cfg.Events.Driver == "rabbitmq" || cfg.Rabbit.CatalogSync != "" {
		conn, err := amqp.Dial(cfg.Rabbit.URL)
		if err != nil {
			return fail(fmt.Errorf("rabbitmq dial: %w", err))
		}
		closers = append(closers, func() { _ = conn.Close() })
		if amqpCh, err = conn.Channel(); err != nil {
			return fail(fmt.Errorf("rabbitmq channel: %w", err))
		}
	}

	pub, err := openPublisher(cfg, amqpCh, &closers)
	if err != nil {
		return fail(err)
	}

	calc := pricing.New(decimal.NewFromFloat(cfg.Pricing.Shipping))
	handoff := usecase.NewHandoff()
	opts := []usecase.CheckoutOption{
		usecase.WithPaymentDelay(cfg.Checkout.PaymentDelay),
		usecase.WithIdempotency(idem),
		usecase.WithCheckoutObserver(observ.CheckoutObserver),
	}
	if pub != nil {
		opts = append(opts, usecase.WithPublisher(pub))
	}
	checkout := usecase.NewCheckout(st, receipt.NewGenerator(calc), handoff, opts...)

	tokens := security.NewTokens(security.TokenConfig{
		Secret:   cfg.Security.JWTSecret,
		Issuer:   cfg.Security.Issuer,
		Audience: cfg.Security.Audience,
		TTL:      cfg.Security.TTL,
	})

	router := http.NewRouter(http.Handlers{
		Catalog:  http.NewCatalogHandler(st),
		Cart:     http.NewCartHandler(st, calc),
		Checkout: http.NewCheckoutHandler(checkout, handoff, cfg.Checkout.Timeout),
		Auth:     http.NewAuthHandler(usecase.NewAuth(ls), tokens, st),
	}, middleware.NewAuthz(tokens), logging.New("http"))

	a := &App{Router: router, Store: st, cfg: cfg, log: log}

	if cfg.App.GRPCAddr != "" {
		a.health = grpc.NewHealthServer()
	}
	if cfg.Rabbit.CatalogSync != "" {
		a.catalog = queue.NewRouter(amqpCh, queue.WithLogger(logging.New("catalog-sync")))
		h := queue.NewCatalogSyncHandler(st)
		a.catalog.Register(cfg.Rabbit.CatalogSync, queue.JSONHandler[queue.CatalogMsg]{HandleFunc: h.HandleSync})
	}

	return a, cleanup, nil
}

func openStorage(ctx context.Context, cfg configs.Config, rdb *redis.Client, closers *[]func()) (storage.LocalStorage, error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		db, err := repo.OpenSQLite(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() { _ = db.Close() })
		return repo.NewSQLiteStorage(db), nil
	case "redis":
		return cache.NewRedisStorage(rdb, cfg.Storage.KeyPrefix, 0), nil
	default:
		return storage.NewMemory(), nil
	}
}

func openPublisher(cfg configs.Config, ch *amqp.Channel, closers *[]func()) (usecase.ReceiptPublisher, error) {
	switch cfg.Events.Driver {
	case "rabbitmq":
		return queue.NewRabbitProducer(ch, cfg.Rabbit.Exchange, cfg.Rabbit.RoutingKey)
	case "kafka":
		sp, err := kafka.NewSyncProducer(cfg.Kafka.Brokers, cfg.App.Name)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		p := kafka.NewReceiptProducer(sp, cfg.Kafka.TopicReceipts)
		*closers = append(*closers, func() { _ = p.Close() })
		return p, nil
	default:
		return nil, nil
	}
}

// Run serves HTTP (and gRPC health, and the catalog consumer when
// configured) until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	srv := &nethttp.Server{
		Addr:         a.cfg.App.HTTPAddr,
		Handler:      a.Router,
		ReadTimeout:  a.cfg.HTTP.ReadTimeout,
		WriteTimeout: a.cfg.HTTP.WriteTimeout,
		IdleTimeout:  a.cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 2)
	go func() {
		a.log.Info("http listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("http: %w", err)
		}
	}()

	runErr := a.startSidecars(ctx, errCh)
	if runErr == nil {
		select {
		case <-ctx.Done():
		case runErr = <-errCh:
		}
	}
	stop()
	if a.health != nil {
		a.health.SetServing(false)
	}

	timeout := a.cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Warn("http shutdown", "err", err)
	}
	if a.catalog != nil {
		a.catalog.Wait()
	}
	a.log.Info("store-api: stopped")
	return runErr
}

// startSidecars brings up gRPC health and the catalog consumer. A failure
// here still goes through the shutdown path in Run so the HTTP server is
// closed.
func (a *App) startSidecars(ctx context.Context, errCh chan<- error) error {
	if a.health != nil {
		lis, err := net.Listen("tcp", a.cfg.App.GRPCAddr)
		if err != nil {
			return fmt.Errorf("grpc listen: %w", err)
		}
		go func() {
			if err := a.health.Serve(ctx, lis); err != nil {
				errCh <- fmt.Errorf("grpc: %w", err)
			}
		}()
		a.health.SetServing(true)
	}

	if a.catalog != nil {
		if err := a.catalog.Start(ctx); err != nil {
			return fmt.Errorf("catalog sync: %w", err)
		}
	}
	return nil
}
