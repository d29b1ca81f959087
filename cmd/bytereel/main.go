// Package main provides the CLI entry point for bytereel.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/bytereel/pkg/adapters/logger"
	"github.com/user/bytereel/pkg/config"
	"github.com/user/bytereel/pkg/ports"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "bytereel",
		Usage:   l10n.T("Store files as lossless video frames and restore them"),
		Version: version,
		Description: l10n.T("bytereel packs the bytes of a file into RGB frames, writes them as a lossless video, " +
			"and reads the video back into the original file."),
		Flags: globalFlags(),
		Commands: []*cli.Command{
			encodeCommand(),
			decodeCommand(),
			resolutionsCommand(),
			listCommand(),
			versionCommand(),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "config",
			Aliases:  []string{"c"},
			Usage:    l10n.T("YAML configuration file"),
			Category: l10n.T("Configuration"),
		},
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			Category: l10n.T("Logging"),
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"Q"},
			Usage:    l10n.T("Suppress all log output"),
			Category: l10n.T("Logging"),
		},
		&cli.BoolFlag{
			Name:     "debug",
			Aliases:  []string{"d"},
			Usage:    l10n.T("Save packed frames and manifests for inspection"),
			Category: l10n.T("Debug"),
		},
		&cli.StringFlag{
			Name:     "debug-dir",
			Usage:    l10n.T("Directory for debug output"),
			Category: l10n.T("Debug"),
		},
		&cli.StringFlag{
			Name:     "metrics-file",
			Usage:    l10n.T("Write Prometheus metrics to file (text format)"),
			Category: l10n.T("Output"),
		},
		&cli.StringFlag{
			Name:     "summary",
			Usage:    l10n.T("Output execution summary to file (Markdown, or YAML for .yaml/.yml; - for stdout)"),
			Category: l10n.T("Output"),
		},
		&cli.StringFlag{
			Name:     "delimiter",
			Usage:    l10n.T("Separator between token fields"),
			Category: l10n.T("Configuration"),
		},
	}
}

// loadConfig layers the YAML file, the environment and command-line flags
// over the defaults.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	b := config.NewBuilder(cfg)
	if c.IsSet("log-level") {
		b.WithLogLevel(c.String("log-level"))
	}
	if c.IsSet("debug") || c.IsSet("debug-dir") {
		b.WithDebug(c.Bool("debug") || cfg.Debug, c.String("debug-dir"))
	}
	if c.IsSet("metrics-file") {
		b.WithMetricsFile(c.String("metrics-file"))
	}
	if c.IsSet("summary") {
		b.WithSummaryFile(c.String("summary"))
	}
	if c.IsSet("delimiter") {
		b.WithDelimiter(c.String("delimiter"))
	}
	if c.IsSet("resolution") {
		b.WithResolution(c.String("resolution"))
	}
	if c.IsSet("strict-resolution") {
		b.WithStrictResolution(c.Bool("strict-resolution"))
	}
	if c.IsSet("codec") {
		b.WithCodec(c.String("codec"))
	}
	if c.IsSet("fps") {
		b.WithFPS(c.Float64("fps"))
	}
	if c.IsSet("frame-format") {
		b.WithFrameFormat(c.String("frame-format"))
	}
	if c.IsSet("workers") {
		b.WithWorkers(c.Int("workers"))
	}
	if c.IsSet("threads") {
		b.WithThreads(c.Int("threads"))
	}
	if c.IsSet("ffmpeg") {
		b.WithFFmpegPath(c.String("ffmpeg"))
	}
	if c.IsSet("ffprobe") {
		b.WithFFprobePath(c.String("ffprobe"))
	}
	if c.IsSet("skip-probe") {
		b.WithSkipProbe(c.Bool("skip-probe"))
	}
	if c.IsSet("no-manifest") {
		b.WithManifest(!c.Bool("no-manifest"))
	}
	if c.IsSet("no-verify") {
		b.WithVerify(!c.Bool("no-verify"))
	}
	if c.IsSet("input-dir") {
		b.WithInputDir(c.String("input-dir"))
	}
	if c.Command != nil && c.IsSet("output-dir") {
		switch c.Command.Name {
		case "encode":
			b.WithEncodedDir(c.String("output-dir"))
		case "decode":
			b.WithDecodedDir(c.String("output-dir"))
		}
	}
	if c.IsSet("encoded-dir") {
		b.WithEncodedDir(c.String("encoded-dir"))
	}
	return b.Build()
}

func newLogger(c *cli.Context, cfg config.Config) ports.Logger {
	return logger.New(cfg.Level(), c.Bool("quiet"))
}

// withSignals returns a context that is cancelled on SIGINT or SIGTERM.
func withSignals(parent context.Context, log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}
