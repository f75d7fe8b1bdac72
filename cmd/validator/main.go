// Command validator scores the peers of the subnet on a cron schedule.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/benchmark"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/chain/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/challenge"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/registry"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/repository/postgres"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/repository/redis"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/reward"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/scoreboard"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/transport/peer"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/uptime"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/validator"
	"github.com/goodnatureofminers/blockinsight7000-validator/pkg/batcher"
)

var config struct {
	Addr     string `long:"addr" env:"VALIDATOR_ADDR" description:"grpc addr" default:":8100"`
	RestAddr string `long:"rest-addr" env:"VALIDATOR_REST_ADDR" description:"rest and metrics addr" default:":8101"`
	Debug    bool   `long:"debug" env:"VALIDATOR_DEBUG" description:"development logger"`

	Schedule       string        `long:"schedule" env:"VALIDATOR_SCHEDULE" description:"cron spec of scoring rounds" default:"@every 5m"`
	PeersFile      string        `long:"peers-file" env:"VALIDATOR_PEERS_FILE" description:"peer directory yaml" default:"peers.yaml"`
	ScoreboardDB   string        `long:"scoreboard-db" env:"VALIDATOR_SCOREBOARD_DB" description:"bbolt file holding moving scores" default:"scoreboard.db"`
	Alpha          float64       `long:"alpha" env:"VALIDATOR_ALPHA" description:"moving average factor" default:"0.1"`
	BatchSize      int           `long:"batch-size" env:"VALIDATOR_BATCH_SIZE" description:"peers sampled per round" default:"16"`
	MinSamples     int           `long:"min-samples" env:"VALIDATOR_MIN_SAMPLES" description:"data samples required in discovery, 0 disables the check"`
	MaxInstances   int           `long:"max-instances" env:"VALIDATOR_MAX_INSTANCES" description:"peers allowed per ip or coldkey" default:"9"`
	Workers        int           `long:"workers" env:"VALIDATOR_WORKERS" description:"concurrent peer requests" default:"32"`
	TrustDivisor   float64       `long:"trust-divisor" env:"VALIDATOR_TRUST_DIVISOR" description:"divisor applied to trust on soft failures" default:"4"`
	RoundTimeout   time.Duration `long:"round-timeout" env:"VALIDATOR_ROUND_TIMEOUT" description:"bound on one scoring round" default:"4m"`
	PeerTimeout    time.Duration `long:"peer-timeout" env:"VALIDATOR_PEER_TIMEOUT" description:"discovery and challenge timeout" default:"10s"`
	QueryTimeout   time.Duration `long:"query-timeout" env:"VALIDATOR_QUERY_TIMEOUT" description:"benchmark query timeout" default:"120s"`
	ChunkSize      int           `long:"benchmark-chunk-size" env:"VALIDATOR_BENCHMARK_CHUNK_SIZE" description:"peers per benchmark group" default:"5"`
	FundsTolerance uint64        `long:"funds-flow-tolerance" env:"VALIDATOR_FUNDS_FLOW_TOLERANCE" description:"funds flow benchmark window before jitter" default:"500"`
	BalanceTol     uint64        `long:"balance-tracking-tolerance" env:"VALIDATOR_BALANCE_TRACKING_TOLERANCE" description:"balance tracking benchmark window before jitter" default:"1000"`
	UptimeImmunity time.Duration `long:"uptime-immunity" env:"VALIDATOR_UPTIME_IMMUNITY" description:"grace window after registration" default:"26h40m"`

	PostgresDSN   string `long:"postgres-dsn" env:"VALIDATOR_POSTGRES_DSN" description:"uptime ledger dsn" required:"true"`
	RedisAddr     string `long:"redis-addr" env:"VALIDATOR_REDIS_ADDR" description:"commitment store" default:"localhost:6379"`
	RedisPassword string `long:"redis-password" env:"VALIDATOR_REDIS_PASSWORD" description:"commitment store password"`
	RedisDB       int    `long:"redis-db" env:"VALIDATOR_REDIS_DB" description:"commitment store db"`
	ClickhouseDSN string `long:"clickhouse-dsn" env:"VALIDATOR_CLICKHOUSE_DSN" description:"reward audit dsn, empty disables the audit trail"`

	Hotkey      string `long:"hotkey" env:"VALIDATOR_HOTKEY" description:"hotkey the validator commitment is published under, empty disables publishing"`
	DockerImage string `long:"docker-image" env:"VALIDATOR_DOCKER_IMAGE" description:"image advertised in the validator commitment" default:"blockinsight7000-validator:latest"`
	Version     string `long:"version" env:"VALIDATOR_VERSION" description:"code version advertised in the validator commitment" default:"1.0.0"`

	BitcoinRPCHost string `long:"bitcoin-rpc-host" env:"VALIDATOR_BITCOIN_RPC_HOST" description:"bitcoind host:port" default:"localhost:8332"`
	BitcoinRPCUser string `long:"bitcoin-rpc-user" env:"VALIDATOR_BITCOIN_RPC_USER" description:"bitcoind rpc user"`
	BitcoinRPCPass string `long:"bitcoin-rpc-pass" env:"VALIDATOR_BITCOIN_RPC_PASS" description:"bitcoind rpc password"`
}

func main() {
	// A missing .env is fine, flags and the environment still apply.
	_ = godotenv.Load()

	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	logger, err := newLogger(config.Debug)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Fatal("validator stopped", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, logger *zap.Logger) error {
	pgStore, err := postgres.NewStore(ctx, config.PostgresDSN, postgres.DefaultPoolConfig(), metrics.NewStore("postgres"), logger)
	if err != nil {
		return err
	}
	defer pgStore.Close()

	redisStore, err := redis.NewStore(ctx, redis.Options{Addr: config.RedisAddr, Password: config.RedisPassword, DB: config.RedisDB}, metrics.NewStore("redis"))
	if err != nil {
		return err
	}
	defer func() {
		_ = redisStore.Close()
	}()

	reg, err := registry.New(redisStore, logger)
	if err != nil {
		return err
	}

	board, err := scoreboard.Open(config.ScoreboardDB, config.Alpha)
	if err != nil {
		return err
	}
	defer func() {
		_ = board.Close()
	}()

	audit, closeAudit, err := newAudit(ctx, logger)
	if err != nil {
		return err
	}
	defer closeAudit()

	nodes := chain.NewFactory()
	nodes.Register(model.Bitcoin, func() (chain.Node, error) {
		client, err := rpcclient.New(&rpcclient.ConnConfig{
			Host:         config.BitcoinRPCHost,
			User:         config.BitcoinRPCUser,
			Pass:         config.BitcoinRPCPass,
			HTTPPostMode: true,
			DisableTLS:   true,
		}, nil)
		if err != nil {
			return nil, err
		}
		return bitcoin.NewNode(bitcoin.NewRPCClient(client, metrics.NewRPCClient(model.Bitcoin)), model.Bitcoin, bitcoin.NodeConfig{})
	})

	publishCommitment(ctx, reg, nodes, logger)

	pool := pond.NewPool(config.Workers)
	defer pool.StopAndWait()

	peers := peer.NewClient(&http.Client{}, metrics.NewPeerTransport())
	ledger := uptime.NewLedger(pgStore, config.UptimeImmunity, logger)
	aggregator, err := reward.NewAggregator(ledger, reward.NewWeightedScorer(reward.DefaultScorerConfig(config.QueryTimeout)), config.TrustDivisor, logger)
	if err != nil {
		return err
	}

	v, err := validator.New(validator.Dependencies{
		Directory:  validator.NewFileDirectory(config.PeersFile),
		Discoverer: peers,
		Registry:   reg,
		Nodes:      nodes,
		Challenger: challenge.NewProtocol(peers, config.PeerTimeout, logger),
		Benchmark:  benchmark.NewEngine(peers, pool, benchmarkConfig(), logger),
		Rewarder:   aggregator,
		Ledger:     ledger,
		Scoreboard: board,
		Audit:      audit,
		Metrics:    metrics.NewValidator(),
	}, validator.Config{
		BatchSize:        config.BatchSize,
		DiscoveryTimeout: config.PeerTimeout,
		MinSamples:       config.MinSamples,
		MaxInstances:     config.MaxInstances,
	}, pool, logger)
	if err != nil {
		return err
	}

	sched, err := newScheduler(ctx, v, config.Schedule, config.RoundTimeout, logger)
	if err != nil {
		return err
	}
	sched.Start()
	defer func() {
		<-sched.Stop().Done()
	}()

	return serve(ctx, board, logger)
}

func benchmarkConfig() benchmark.Config {
	return benchmark.Config{
		ChunkSize:                config.ChunkSize,
		FundsFlowTolerance:       config.FundsTolerance,
		BalanceTrackingTolerance: config.BalanceTol,
		Timeout:                  config.QueryTimeout,
	}
}

// publishCommitment advertises the validator under its hotkey with the
// bitcoin tip as the commitment block. Failures are logged and never stop
// the validator.
func publishCommitment(ctx context.Context, reg *registry.Registry, nodes *chain.Factory, logger *zap.Logger) {
	if config.Hotkey == "" {
		return
	}
	logger = logger.With(zap.String("hotkey", config.Hotkey))

	node, err := nodes.Node(model.Bitcoin)
	if err != nil {
		logger.Warn("skipping validator commitment", zap.Error(err))
		return
	}
	tip, err := node.LatestHeight(ctx)
	if err != nil {
		logger.Warn("skipping validator commitment", zap.Error(err))
		return
	}

	version := config.Version
	if _, err := reg.PublishValidator(ctx, config.Hotkey, registry.ValidatorCommitment{
		Block:       tip,
		DockerImage: config.DockerImage,
		CodeVersion: &version,
	}); err != nil {
		logger.Warn("validator commitment not published", zap.Error(err))
	}
}

// newAudit batches reward rows into ClickHouse. Without a dsn the audit
// trail is disabled.
func newAudit(ctx context.Context, logger *zap.Logger) (validator.Audit, func(), error) {
	if config.ClickhouseDSN == "" {
		logger.Info("reward audit disabled")
		return nil, func() {}, nil
	}
	repo, err := clickhouse.NewRepository(config.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return nil, nil, err
	}
	b := batcher.New(logger, repo.InsertRewards, 500, 5*time.Second, 10)
	b.Start(ctx)
	return b, func() {
		b.Stop()
		_ = repo.Close()
	}, nil
}
