// Package minerapi serves the peer side of the discovery, challenge and
// benchmark protocol from the local graph store.
package minerapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/benchmark"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/registry"
	"github.com/goodnatureofminers/blockinsight7000-validator/internal/transport/peer"
	"github.com/goodnatureofminers/blockinsight7000-validator/pkg/safe"
)

const maxRequestBytes = 1 << 20

var errNothingIndexed = errors.New("nothing indexed yet")

// Config identifies what this miner serves.
type Config struct {
	Hotkey    string
	Network   model.Network
	ModelType model.ModelType
	Version   string
}

// Handler answers validator requests.
type Handler struct {
	graph  Graph
	cfg    Config
	logger *zap.Logger
}

func NewHandler(graph Graph, cfg Config, logger *zap.Logger) *Handler {
	return &Handler{graph: graph, cfg: cfg, logger: logger.Named("minerapi")}
}

// NewRouter registers the protocol routes.
func (h *Handler) NewRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.identify)
	r.HandleFunc(peer.DiscoveryPath, h.HandleDiscovery).Methods(http.MethodPost)
	r.HandleFunc(peer.ChallengePath, h.HandleChallenge).Methods(http.MethodPost)
	r.HandleFunc(peer.BenchmarkPath, h.HandleBenchmark).Methods(http.MethodPost)
	return r
}

func (h *Handler) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(peer.HotkeyHeader, h.cfg.Hotkey)
		next.ServeHTTP(w, r)
	})
}

// Window returns the lowest start and highest end of the indexed ranges.
func (h *Handler) Window(ctx context.Context) (uint64, uint64, error) {
	ranges, err := h.graph.IndexedRanges(ctx, h.cfg.Network)
	if err != nil {
		return 0, 0, fmt.Errorf("indexed ranges: %w", err)
	}
	if len(ranges) == 0 {
		return 0, 0, errNothingIndexed
	}
	start, end := ranges[0].Start, ranges[0].End
	for _, r := range ranges[1:] {
		start = min(start, r.Start)
		end = max(end, r.End)
	}
	return start, end, nil
}

// HandleDiscovery reports the indexed window.
// POST /v1/discovery
func (h *Handler) HandleDiscovery(w http.ResponseWriter, r *http.Request) {
	var req peer.DiscoveryRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start, end, err := h.Window(r.Context())
	if errors.Is(err, errNothingIndexed) {
		h.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("discovery failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "graph store unavailable")
		return
	}

	startHeight, err := safe.Int64(start)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	endHeight, err := safe.Int64(end)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	balance := int64(0)
	if h.cfg.ModelType == model.BalanceTracking {
		balance = endHeight
	}
	resp := peer.DiscoveryResponse{
		Network:       h.cfg.Network,
		ModelType:     h.cfg.ModelType,
		StartHeight:   &startHeight,
		EndHeight:     &endHeight,
		BalanceHeight: &balance,
		Version:       h.cfg.Version,
	}
	if req.MinSamples > 0 {
		samples, err := h.graph.BlockSamples(r.Context(), h.cfg.Network, req.MinSamples)
		if err != nil {
			h.logger.Error("block samples failed", zap.Error(err))
			h.writeError(w, http.StatusInternalServerError, "graph store unavailable")
			return
		}
		resp.DataSamples = samples
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// HandleChallenge answers a funds-flow or balance-tracking challenge. An
// unknown answer is an empty output.
// POST /v1/challenge
func (h *Handler) HandleChallenge(w http.ResponseWriter, r *http.Request) {
	var task model.ChallengeTask
	if err := decode(r, &task); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if task.Network != h.cfg.Network {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("network %q is not served", task.Network))
		return
	}

	var (
		output string
		err    error
	)
	switch task.Kind {
	case model.ChallengeFundsFlow:
		output, _, err = h.graph.FindTransaction(r.Context(), task.Network, task.InTotal, task.OutTotal, task.TxIDSuffix)
	case model.ChallengeBalanceTracking:
		var (
			total uint64
			found bool
		)
		total, found, err = h.graph.BlockOutputTotal(r.Context(), task.Network, task.BlockHeight)
		if found {
			output = strconv.FormatUint(total, 10)
		}
	default:
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown challenge kind %q", task.Kind))
		return
	}
	if err != nil {
		h.logger.Error("challenge failed", zap.String("kind", string(task.Kind)), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "graph store unavailable")
		return
	}
	h.writeJSON(w, http.StatusOK, peer.ChallengeResponse{Output: output})
}

// HandleBenchmark runs an allow-listed query and returns its first cell.
// POST /v1/benchmark
func (h *Handler) HandleBenchmark(w http.ResponseWriter, r *http.Request) {
	var req peer.BenchmarkRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := benchmark.ValidateQuery(req.Network, req.ModelType, req.Query); err != nil {
		h.logger.Warn("benchmark query rejected", zap.String("network", string(req.Network)), zap.Error(err))
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.graph.RunQuery(r.Context(), req.Query)
	if err != nil {
		h.logger.Error("benchmark query failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "graph store unavailable")
		return
	}
	var resp peer.BenchmarkResponse
	if len(rows) > 0 && len(rows[0]) > 0 {
		out := fmt.Sprint(rows[0][0])
		resp.Output = &out
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// PublishCommitment stores the commitment of the current indexed window.
func (h *Handler) PublishCommitment(ctx context.Context, publisher Publisher) error {
	start, end, err := h.Window(ctx)
	if err != nil {
		return err
	}
	var balanceEnd *uint64
	if h.cfg.ModelType == model.BalanceTracking {
		balanceEnd = &end
	}
	c, err := registry.PeerCommitmentFor(h.cfg.Network, h.cfg.ModelType, start, end, balanceEnd, h.cfg.Version)
	if err != nil {
		return fmt.Errorf("build commitment: %w", err)
	}
	if err := publisher.Publish(ctx, h.cfg.Hotkey, c); err != nil {
		return fmt.Errorf("publish commitment: %w", err)
	}
	h.logger.Info("commitment published", zap.Uint64("start", start), zap.Uint64("end", end))
	return nil
}

func decode(r *http.Request, v any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes)).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func (h *Handler) writeError(w http.ResponseWriter, statusCode int, message string) {
	h.writeJSON(w, statusCode, map[string]string{"error": message})
}
