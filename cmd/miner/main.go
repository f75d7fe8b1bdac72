// Command miner serves the peer protocol from a local ClickHouse graph and
// keeps its registry commitment current.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/registry"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/repository/redis"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/transport/minerapi"
)

var config struct {
	Addr    string `long:"addr" env:"MINER_ADDR" description:"peer protocol addr" default:":8091"`
	Debug   bool   `long:"debug" env:"MINER_DEBUG" description:"development logger"`
	Hotkey  string `long:"hotkey" env:"MINER_HOTKEY" description:"hotkey answering requests" required:"true"`
	Network string `long:"network" env:"MINER_NETWORK" description:"served network" default:"bitcoin"`
	Model   string `long:"model-type" env:"MINER_MODEL_TYPE" description:"funds_flow or balance_tracking" default:"funds_flow"`
	Version string `long:"version" env:"MINER_VERSION" description:"advertised code version" default:"1.0.0"`

	ClickhouseDSN   string        `long:"clickhouse-dsn" env:"MINER_CLICKHOUSE_DSN" description:"graph store dsn" required:"true"`
	RedisAddr       string        `long:"redis-addr" env:"MINER_REDIS_ADDR" description:"commitment store" default:"localhost:6379"`
	RedisPassword   string        `long:"redis-password" env:"MINER_REDIS_PASSWORD" description:"commitment store password"`
	RedisDB         int           `long:"redis-db" env:"MINER_REDIS_DB" description:"commitment store db"`
	PublishInterval time.Duration `long:"publish-interval" env:"MINER_PUBLISH_INTERVAL" description:"commitment refresh interval" default:"10m"`
}

func main() {
	_ = godotenv.Load()

	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	logger, err := zap.NewProduction()
	if config.Debug {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Fatal("miner stopped", zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger) error {
	network, modelType := model.Network(config.Network), model.ModelType(config.Model)
	if _, ok := network.ID(); !ok {
		return errors.New("unknown network " + config.Network)
	}
	if _, ok := modelType.ID(); !ok {
		return errors.New("unknown model type " + config.Model)
	}

	repo, err := clickhouse.NewRepository(config.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return err
	}
	defer func() {
		_ = repo.Close()
	}()

	store, err := redis.NewStore(ctx, redis.Options{Addr: config.RedisAddr, Password: config.RedisPassword, DB: config.RedisDB}, metrics.NewStore("redis"))
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()
	reg, err := registry.New(store, logger)
	if err != nil {
		return err
	}

	handler := minerapi.NewHandler(repo, minerapi.Config{
		Hotkey:    config.Hotkey,
		Network:   network,
		ModelType: modelType,
		Version:   config.Version,
	}, logger)

	go func() {
		_ = clock.Every(ctx, config.PublishInterval, func(ctx context.Context) error {
			return handler.PublishCommitment(ctx, reg)
		}, func(err error) {
			logger.Warn("commitment not published", zap.Error(err))
		})
	}()

	router := handler.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	return listen(ctx, router, logger)
}

func listen(ctx context.Context, router *mux.Router, logger *zap.Logger) error {
	s := &http.Server{
		Addr:              config.Addr,
		Handler:           cors.Default().Handler(router),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// Benchmark queries may run for minutes.
		WriteTimeout:   5 * time.Minute,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", config.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
