// Command indexer builds the transaction graph of one network into ClickHouse.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/chain/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/indexer"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/repository/clickhouse"
)

var config struct {
	ClickhouseDSN string `long:"clickhouse-dsn" env:"INDEXER_CLICKHOUSE_DSN" description:"clickhouse dsn" required:"true"`
	Network       string `long:"network" env:"INDEXER_NETWORK" description:"indexed network" default:"bitcoin"`
	Direction     string `long:"direction" env:"INDEXER_DIRECTION" description:"forward follows the tip, backward sweeps towards the floor" default:"forward"`
	StartHeight   uint64 `long:"start-height" env:"INDEXER_START_HEIGHT" description:"first height of a fresh sweep"`
	EndHeight     uint64 `long:"end-height" env:"INDEXER_END_HEIGHT" description:"floor of a backward sweep"`
	ZMQAddr       string `long:"zmq-addr" env:"INDEXER_ZMQ_ADDR" description:"bitcoind zmq hashblock endpoint"`
	MetricsAddr   string `long:"metrics-addr" env:"INDEXER_METRICS_ADDR" description:"metrics addr" default:":9100"`
	Debug         bool   `long:"debug" env:"INDEXER_DEBUG" description:"development logger"`

	Lag            uint64        `long:"lag" env:"INDEXER_LAG" description:"confirmations kept behind the tip" default:"6"`
	FloodThreshold int           `long:"flood-threshold" env:"INDEXER_FLOOD_THRESHOLD" description:"transactions per block that trigger the flood delay" default:"500"`
	FloodDelay     time.Duration `long:"flood-delay" env:"INDEXER_FLOOD_DELAY" description:"pause after a flooded block" default:"1s"`
	CommitBackoff  time.Duration `long:"commit-backoff" env:"INDEXER_COMMIT_BACKOFF" description:"wait before retrying a failed commit" default:"30s"`
	RestartDelay   time.Duration `long:"restart-delay" env:"INDEXER_RESTART_DELAY" description:"wait before restarting the loop after an error" default:"60s"`

	RPCHost string `long:"rpc-host" env:"INDEXER_RPC_HOST" description:"node host:port" default:"localhost:8332"`
	RPCUser string `long:"rpc-user" env:"INDEXER_RPC_USER" description:"node rpc user"`
	RPCPass string `long:"rpc-pass" env:"INDEXER_RPC_PASS" description:"node rpc password"`
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

	if err := run(ctx, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("indexer stopped", zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger) error {
	network := model.Network(config.Network)
	if network != model.Bitcoin {
		return errors.New("only bitcoin has a block source")
	}

	repo, err := clickhouse.NewRepository(config.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return err
	}
	defer func() {
		_ = repo.Close()
	}()

	client, err := rpcclient.New(&rpcclient.ConnConfig{
		Host:         config.RPCHost,
		User:         config.RPCUser,
		Pass:         config.RPCPass,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
	if err != nil {
		return err
	}
	defer client.Shutdown()

	node, err := bitcoin.NewNode(bitcoin.NewRPCClient(client, metrics.NewRPCClient(network)), network, bitcoin.NodeConfig{})
	if err != nil {
		return err
	}

	blockSignal, err := startBlockSignal(ctx, config.ZMQAddr, logger)
	if err != nil {
		return err
	}

	svc, err := indexer.NewService(node, repo, metrics.NewIndexer(network), indexerConfig(network), logger, blockSignal)
	if err != nil {
		return err
	}

	go serveMetrics(ctx, logger)
	return svc.Run(ctx)
}

func indexerConfig(network model.Network) indexer.Config {
	return indexer.Config{
		Network:        network,
		Direction:      indexer.Direction(config.Direction),
		StartHeight:    config.StartHeight,
		EndHeight:      config.EndHeight,
		Lag:            config.Lag,
		FloodThreshold: config.FloodThreshold,
		FloodDelay:     config.FloodDelay,
		CommitBackoff:  config.CommitBackoff,
		RestartDelay:   config.RestartDelay,
	}
}

func serveMetrics(ctx context.Context, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	s := &http.Server{
		Addr:              config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		_ = s.Shutdown(context.Background())
	}()
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server stopped", zap.Error(err))
	}
}
