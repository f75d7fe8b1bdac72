// Package peer implements the JSON over HTTP protocol spoken between the validator and peers.
package peer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

var (
	// ErrTimeout is returned when a peer does not answer within the query timeout.
	ErrTimeout = errors.New("peer query timed out")
	// ErrStatus is returned for non-2xx peer responses.
	ErrStatus = errors.New("unexpected peer status")
)

const maxResponseBytes = 1 << 20

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Result is a decoded peer response with transport details.
type Result[T any] struct {
	Body       T
	StatusCode int
	Latency    time.Duration
	Hotkey     string
}

// Client queries peers.
type Client struct {
	http    *http.Client
	metrics Metrics
}

// NewClient wraps httpClient. Per-call timeouts are applied through the context.
func NewClient(httpClient *http.Client, metrics Metrics) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{http: httpClient, metrics: metrics}
}

// Discovery asks p for its current claim.
func (c *Client) Discovery(ctx context.Context, p model.PeerInfo, req DiscoveryRequest, timeout time.Duration) (Result[DiscoveryResponse], error) {
	return doJSON[DiscoveryResponse](ctx, c, p, "discovery", DiscoveryPath, req, timeout)
}

// Challenge sends task to p.
func (c *Client) Challenge(ctx context.Context, p model.PeerInfo, task model.ChallengeTask, timeout time.Duration) (Result[ChallengeResponse], error) {
	return doJSON[ChallengeResponse](ctx, c, p, "challenge", ChallengePath, task, timeout)
}

// Benchmark runs a benchmark query on p.
func (c *Client) Benchmark(ctx context.Context, p model.PeerInfo, req BenchmarkRequest, timeout time.Duration) (Result[BenchmarkResponse], error) {
	return doJSON[BenchmarkResponse](ctx, c, p, "benchmark", BenchmarkPath, req, timeout)
}

func doJSON[T any](ctx context.Context, c *Client, p model.PeerInfo, operation, path string, payload any, timeout time.Duration) (result Result[T], err error) {
	started := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.Observe(operation, err, started)
		}
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return result, fmt.Errorf("encode %s request: %w", operation, err)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint(p)+path, bytes.NewReader(body))
	if err != nil {
		return result, fmt.Errorf("build %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	result.Latency = time.Since(started)
	if err != nil {
		if isTimeout(ctx, err) {
			return result, fmt.Errorf("%w: %s %s", ErrTimeout, operation, p.Hotkey)
		}
		return result, fmt.Errorf("%s %s: %w", operation, p.Hotkey, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	result.StatusCode = resp.StatusCode
	result.Hotkey = resp.Header.Get(HotkeyHeader)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return result, fmt.Errorf("%w: %s %s returned %d", ErrStatus, operation, p.Hotkey, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&result.Body); err != nil {
		if isTimeout(ctx, err) {
			return result, fmt.Errorf("%w: %s %s", ErrTimeout, operation, p.Hotkey)
		}
		return result, fmt.Errorf("decode %s response: %w", operation, err)
	}
	result.Latency = time.Since(started)
	return result, nil
}

func endpoint(p model.PeerInfo) string {
	return "http://" + net.JoinHostPort(p.IP, strconv.Itoa(p.Port))
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
