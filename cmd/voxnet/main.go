// SPDX-License-Identifier: MIT

// Command voxnet replays scenario files onto per-world network graphs and
// prints a summary of the resulting groups and grids.
//
// Usage:
//
//	voxnet [flags] scenario.yaml...
//
// Scenarios naming the same world share its graph. The exit status is 1 if
// any scenario fails to load, run or meet its expectations.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/voxnet/metrics"
	"github.com/katalvlaran/voxnet/network"
	"github.com/katalvlaran/voxnet/scenario"
	"github.com/katalvlaran/voxnet/world"
)

type config struct {
	logLevel    string
	dev         bool
	verify      bool
	format      string
	metricsOut  string
	concurrency int
	files       []string
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("voxnet", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg := &config{}
	fs.StringVar(&cfg.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.dev, "dev", false, "Human-readable development logging")
	fs.BoolVar(&cfg.verify, "verify", true, "Recount groups and grids after every step")
	fs.StringVar(&cfg.format, "format", "text", "Report format (text, yaml)")
	fs.StringVar(&cfg.metricsOut, "metrics-out", "", "Write Prometheus metrics to this file")
	fs.IntVar(&cfg.concurrency, "concurrency", 0, "Worlds ticked in parallel (0 = GOMAXPROCS)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.files = fs.Args()
	if len(cfg.files) == 0 {
		return nil, fmt.Errorf("no scenario files given")
	}
	if cfg.format != "text" && cfg.format != "yaml" {
		return nil, fmt.Errorf("unknown format %q", cfg.format)
	}
	return cfg, nil
}

func newLogger(cfg *config, stderr io.Writer) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.logLevel)
	if err != nil {
		return nil, err
	}
	encCfg := zap.NewProductionEncoderConfig()
	enc := zapcore.NewJSONEncoder(encCfg)
	if cfg.dev {
		encCfg = zap.NewDevelopmentEncoderConfig()
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(stderr), level)), nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "voxnet:", err)
		return 2
	}
	log, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "voxnet:", err)
		return 2
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := metrics.NewRegistry()
	reg := world.NewRegistry[scenario.Cable, scenario.Machine](
		world.WithLogger(log),
		world.WithConcurrency(cfg.concurrency),
		world.WithGraphOptions(func(name string) []network.Option {
			return []network.Option{
				network.WithLogger(log.With(zap.String("world", name))),
				network.WithObserver(m.Observer(name)),
			}
		}),
		world.WithOnUnload(m.Forget),
	)

	failed := 0
	for _, path := range cfg.files {
		if ctx.Err() != nil {
			break
		}
		if err := replay(reg, cfg, log, path, stdout); err != nil {
			log.Error("scenario failed", zap.String("file", path), zap.Error(err))
			failed++
		}
	}

	var groups, blocks atomic.Int64
	err = reg.Tick(ctx, func(_ context.Context, _ string, _ network.GroupID, gr *network.Group[scenario.Cable, scenario.Machine]) error {
		groups.Add(1)
		blocks.Add(int64(gr.CountBlocks()))
		return nil
	})
	if err != nil {
		log.Error("tick failed", zap.Error(err))
		failed++
	}
	log.Info("replay finished",
		zap.Int("scenarios", len(cfg.files)),
		zap.Int("failed", failed),
		zap.Strings("worlds", reg.Worlds()),
		zap.Int64("groups", groups.Load()),
		zap.Int64("blocks", blocks.Load()))

	if cfg.metricsOut != "" {
		if err := m.WriteTextfile(cfg.metricsOut); err != nil {
			log.Error("write metrics", zap.String("file", cfg.metricsOut), zap.Error(err))
			failed++
		}
	}
	if failed > 0 {
		return 1
	}
	return 0
}

// replay runs one scenario file in its world and prints its report.
func replay(reg *world.Registry[scenario.Cable, scenario.Machine], cfg *config, log *zap.Logger, path string, stdout io.Writer) error {
	s, err := scenario.Load(path)
	if err != nil {
		return err
	}

	var report *scenario.Report
	err = reg.With(s.WorldName(), func(g *scenario.Graph) error {
		report, err = scenario.Run(s, g,
			scenario.WithLogger(log.With(zap.String("file", path))),
			scenario.WithVerify(cfg.verify))
		return err
	})
	if err != nil {
		return err
	}

	switch cfg.format {
	case "yaml":
		enc := yaml.NewEncoder(stdout)
		if err := enc.Encode(report); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	default:
		if err := report.WriteText(stdout); err != nil {
			return err
		}
	}
	return report.Check(s.Expect)
}
