package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/bytereel/pkg/adapters/osfilesystem"
	"github.com/user/bytereel/pkg/bytereel"
	"github.com/user/bytereel/pkg/config"
	"github.com/user/bytereel/pkg/geometry"
	"github.com/user/bytereel/pkg/metrics"
	"github.com/user/bytereel/pkg/ports"
	"github.com/user/bytereel/pkg/summarizer"
)

var errNoInputs = errors.New("no input files")

func encodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     l10n.T("Pack files into lossless videos"),
		ArgsUsage: "[file...]",
		Description: l10n.T("Each file is written to the encoded directory as <name><delimiter><W>x<H><delimiter><size> " +
			"plus the container extension. Without arguments every file in the input directory is encoded."),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "resolution", Aliases: []string{"r"}, Usage: l10n.T("Frame resolution (label, menu key or WxH)"), Category: l10n.T("Video")},
			&cli.BoolFlag{Name: "strict-resolution", Usage: l10n.T("Only accept resolutions from the table"), Category: l10n.T("Video")},
			&cli.StringFlag{Name: "codec", Usage: l10n.T("Lossless codec (ffv1, h264rgb, png, frames)"), Category: l10n.T("Video")},
			&cli.Float64Flag{Name: "fps", Usage: l10n.T("Frame rate of the output video"), Category: l10n.T("Video")},
			&cli.StringFlag{Name: "frame-format", Usage: l10n.T("Image format for the frames codec (png, bmp, tiff)"), Category: l10n.T("Video")},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: l10n.T("Number of packing workers"), Category: l10n.T("Performance")},
			&cli.IntFlag{Name: "threads", Usage: l10n.T("Encoder threads (0 = encoder default)"), Category: l10n.T("Performance")},
			&cli.StringFlag{Name: "input-dir", Usage: l10n.T("Directory scanned when no file is given"), Category: l10n.T("Output")},
			&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Usage: l10n.T("Directory for encoded videos"), Category: l10n.T("Output")},
			&cli.BoolFlag{Name: "no-manifest", Usage: l10n.T("Do not write the manifest sidecar"), Category: l10n.T("Integrity")},
			&cli.BoolFlag{Name: "no-verify", Usage: l10n.T("Do not probe the output after encoding"), Category: l10n.T("Integrity")},
			&cli.StringFlag{Name: "ffmpeg", Usage: l10n.T("Path to ffmpeg executable"), Category: l10n.T("External tools")},
			&cli.StringFlag{Name: "ffprobe", Usage: l10n.T("Path to ffprobe executable"), Category: l10n.T("External tools")},
			&cli.BoolFlag{Name: "skip-probe", Usage: l10n.T("Run without ffprobe, skipping frame size checks"), Category: l10n.T("External tools")},
		},
		Action: runEncode,
	}
}

func decodeCommand() *cli.Command {
	return &cli.Command{
		Name:        "decode",
		Usage:       l10n.T("Restore files from encoded videos"),
		ArgsUsage:   "<video>...",
		Description: l10n.T("The original name, frame size and byte length are read from the video file name."),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Usage: l10n.T("Directory for restored files"), Category: l10n.T("Output")},
			&cli.BoolFlag{Name: "no-manifest", Usage: l10n.T("Ignore the manifest sidecar"), Category: l10n.T("Integrity")},
			&cli.StringFlag{Name: "ffmpeg", Usage: l10n.T("Path to ffmpeg executable"), Category: l10n.T("External tools")},
			&cli.StringFlag{Name: "ffprobe", Usage: l10n.T("Path to ffprobe executable"), Category: l10n.T("External tools")},
			&cli.BoolFlag{Name: "skip-probe", Usage: l10n.T("Run without ffprobe, skipping frame size checks"), Category: l10n.T("External tools")},
		},
		Action: runDecode,
	}
}

func resolutionsCommand() *cli.Command {
	return &cli.Command{
		Name:   "resolutions",
		Usage:  l10n.T("Show the supported resolutions and their capacity per frame"),
		Action: runResolutions,
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: l10n.T("List input files, or encoded videos with --encoded"),
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "encoded", Aliases: []string{"e"}, Usage: l10n.T("List encoded videos and their decoded names")},
			&cli.StringFlag{Name: "input-dir", Usage: l10n.T("Directory scanned when no file is given")},
			&cli.StringFlag{Name: "encoded-dir", Usage: l10n.T("Directory for encoded videos")},
		},
		Action: runList,
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, l10n.F("bytereel version %s", version))
			return nil
		},
	}
}

func runEncode(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(c, cfg)
	ctx, stop := withSignals(c.Context, log)
	defer stop()

	inputs := c.Args().Slice()
	if len(inputs) == 0 {
		if inputs, err = inputFiles(cfg.InputDir); err != nil {
			return err
		}
		if len(inputs) == 0 {
			return fmt.Errorf("%w in %s", errNoInputs, cfg.InputDir)
		}
	}

	m := metrics.New()
	runner, err := bytereel.NewRunner(cfg, bytereel.WithLogger(log), bytereel.WithMetrics(m))
	if err != nil {
		return err
	}

	summary := summarizer.NewBuilder().WithSettings(settingsOf(cfg))
	var errs []error
	for _, input := range inputs {
		result, err := runner.Encode(ctx, input)
		if err != nil {
			log.Error("Failed to encode %s: %s", input, err)
			errs = append(errs, fmt.Errorf("%s: %w", input, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		summary.AddEncode(result)
		fmt.Fprintln(c.App.Writer, result.OutputPath)
	}

	finish(c, cfg, m, summary.Build(), log)
	return errors.Join(errs...)
}

func runDecode(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New(l10n.T("At least one video argument is required"))
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(c, cfg)
	ctx, stop := withSignals(c.Context, log)
	defer stop()

	m := metrics.New()
	runner, err := bytereel.NewRunner(cfg, bytereel.WithLogger(log), bytereel.WithMetrics(m))
	if err != nil {
		return err
	}

	summary := summarizer.NewBuilder().WithSettings(settingsOf(cfg))
	var errs []error
	for _, video := range c.Args().Slice() {
		result, err := runner.Decode(ctx, video)
		if err != nil {
			log.Error("Failed to decode %s: %s", video, err)
			errs = append(errs, fmt.Errorf("%s: %w", video, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		summary.AddDecode(result)
		fmt.Fprintln(c.App.Writer, result.OutputPath)
	}

	finish(c, cfg, m, summary.Build(), log)
	return errors.Join(errs...)
}

// finish writes the optional metrics and summary files. Failures are logged
// and do not change the exit status.
func finish(c *cli.Context, cfg config.Config, m *metrics.Metrics, s *summarizer.Summary, log ports.Logger) {
	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn("Failed to write metrics: %s", err)
		} else {
			log.Info("Metrics saved to %s", cfg.MetricsFile)
		}
	}

	if cfg.SummaryFile != "" {
		formatter := summarizer.ForPath(cfg.SummaryFile, summarizer.NewMarkdownFormatter(
			summarizer.WithTranslator(l10n.T),
			summarizer.WithVersion(version),
		))
		w := summarizer.NewWriter(formatter).WithConsole(c.App.Writer)
		if err := w.Write(cfg.SummaryFile, s); err != nil {
			log.Warn("Failed to write summary: %s", err)
		} else if cfg.SummaryFile != summarizer.Stdout {
			log.Info("Summary saved to %s", cfg.SummaryFile)
		}
	}
}

func settingsOf(cfg config.Config) summarizer.Settings {
	res := cfg.Resolution
	if g, err := cfg.Geometry(); err == nil && g.String() != res {
		res = fmt.Sprintf("%s (%s)", res, g)
	}
	return summarizer.Settings{
		Resolution:  res,
		Codec:       cfg.Codec,
		FPS:         int(cfg.FPS),
		FrameFormat: cfg.FrameFormat,
		Delimiter:   cfg.Delimiter,
		Workers:     cfg.Workers,
	}
}

func runResolutions(c *cli.Context) error {
	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, l10n.T("KEY\tLABEL\tSIZE\tBYTES/FRAME"))
	for _, r := range geometry.Resolutions() {
		mark := ""
		if r.Label == geometry.DefaultLabel {
			mark = " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d%s\n", r.Key, r.Label, r.Geometry, r.Capacity(), mark)
	}
	return tw.Flush()
}

func runList(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)

	if !c.Bool("encoded") {
		files, err := inputFiles(cfg.InputDir)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, l10n.T("FILE\tBYTES"))
		for _, f := range files {
			info, err := os.Stat(f)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t%d\n", f, info.Size())
		}
		return tw.Flush()
	}

	tokens, err := cfg.TokenCodec()
	if err != nil {
		return err
	}
	entries, err := bytereel.List(osfilesystem.New(), cfg.EncodedDir, tokens)
	if err != nil {
		return err
	}
	fmt.Fprintln(tw, l10n.T("VIDEO\tNAME\tSIZE\tBYTES\tFRAMES"))
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n",
			filepath.Base(e.Path), e.Metadata.OriginalName, e.Metadata.Geometry(),
			e.Metadata.OriginalSizeBytes, e.Metadata.FrameCount())
	}
	return tw.Flush()
}

// inputFiles returns the regular files directly inside dir.
func inputFiles(dir string) ([]string, error) {
	names, err := osfilesystem.New().List(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}
	var files []string
	for _, name := range names {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.Mode().IsRegular() {
			files = append(files, path)
		}
	}
	return files, nil
}
