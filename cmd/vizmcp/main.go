// vizmcp serves the data-collection and visualization tools over MCP.
// All durable state lives in the configured state store; the process itself
// is stateless between tool calls and safe to restart.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/mark3labs/mcp-go/server"
	"github.com/redis/go-redis/v9"

	"github.com/dedalus-labs/viz-mcp-example/chart"
	"github.com/dedalus-labs/viz-mcp-example/config"
	"github.com/dedalus-labs/viz-mcp-example/metrics"
	"github.com/dedalus-labs/viz-mcp-example/store"
	"github.com/dedalus-labs/viz-mcp-example/tools"
)

const serverName = "viz"

var version = "0.1.0"

var logger = xlog.NewPackageLogger("github.com/dedalus-labs/viz-mcp-example", "vizmcp")

func main() {
	cfgFile := flag.String("cfg", "", "path to configuration file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	// stdout belongs to the MCP stdio transport, so all logging goes to stderr.
	xlog.SetFormatter(xlog.NewStringFormatter(os.Stderr))
	xlog.SetGlobalLogLevel(xlog.INFO)
	if *debug {
		xlog.SetGlobalLogLevel(xlog.DEBUG)
	}

	if err := run(*cfgFile); err != nil {
		logger.KV(xlog.ERROR, "reason", "run", "err", err.Error())
		os.Exit(1)
	}
}

func run(cfgFile string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	st, closer, err := newStateStore(cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	if cfg.Store.Retry.MaxRetries > 0 {
		st = store.NewRetryStore(st, cfg.Store.Retry.MaxRetries, cfg.Store.Retry.InitialInterval)
	}

	acc := metrics.NewAccumulator(st).WithMaxSamples(cfg.Store.MaxSamples)
	reg := tools.NewRegistry(acc, chart.NewLineRenderer(), cfg.Store.Scope).
		WithChartDefaults(chart.Request{Width: cfg.Chart.Width, Height: cfg.Chart.Height})

	srv := server.NewMCPServer(serverName, version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	)
	reg.Register(srv)

	logger.KV(xlog.INFO, "status", "serving", "mode", cfg.Server.Mode, "backend", cfg.Store.Backend, "scope", cfg.Store.Scope)

	switch cfg.Server.Mode {
	case "sse":
		return server.NewSSEServer(srv).Start(cfg.Server.ListenAddr)
	default:
		return server.ServeStdio(srv)
	}
}

// newStateStore builds the configured backend and verifies it is reachable
// once at startup, per-call operations do not re-validate connectivity.
func newStateStore(cfg *config.Config) (store.StateStore, io.Closer, error) {
	switch cfg.Store.Backend {
	case "redis":
		opts, err := redis.ParseURL(cfg.Store.RedisURL)
		if err != nil {
			return nil, nil, errors.Wrap(err, "invalid redis URL")
		}
		client := redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, errors.Wrap(err, "failed to connect to Redis")
		}
		return store.NewRedisStore(client, cfg.Store.Prefix), client, nil
	case "badger":
		st, err := store.NewBadgerStore(cfg.Store.BadgerDir, cfg.Store.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return st, st, nil
	case "webhook":
		return store.NewWebhookStore(cfg.Store.WebhookURL, cfg.Store.WebhookToken), nil, nil
	case "memory":
		return store.NewMemoryStore(), nil, nil
	default:
		return nil, nil, errors.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}
}
