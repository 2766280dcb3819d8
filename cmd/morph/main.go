// Package main is the morph command line tool: binary morphology on image files and benchmarks
// of the filters on synthetic images.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"github.com/blowekamp/itkBinaryMorphologyPerformance/bench"
	"github.com/blowekamp/itkBinaryMorphologyPerformance/config"
	"github.com/blowekamp/itkBinaryMorphologyPerformance/logging"
	"github.com/blowekamp/itkBinaryMorphologyPerformance/morphology"
	"github.com/blowekamp/itkBinaryMorphologyPerformance/rimage"
	"github.com/blowekamp/itkBinaryMorphologyPerformance/utils"
)

const (
	// Flags.
	flagConfig               = "config"
	flagDebug                = "debug"
	flagLogFile              = "log-file"
	flagRadius               = "radius"
	flagForeground           = "foreground"
	flagBackground           = "background"
	flagBoundaryToForeground = "boundary-to-foreground"
	flagWorkers              = "workers"
	flagSize                 = "size"
	flagDensity              = "density"
	flagRepeats              = "repeats"
	flagWarmup               = "warmup"
	flagOperation            = "operation"
	flagPlot                 = "plot"
	flagSeed                 = "seed"
)

func main() {
	if err := realMain(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func realMain(args []string) error {
	return newApp(os.Stdout).Run(args)
}

func newApp(out io.Writer) *cli.App {
	var logger logging.Logger
	var logFile io.Closer

	filterFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  flagRadius,
			Usage: "box radius `R[,R...]`, one value for every axis or one per axis",
		},
		&cli.Float64Flag{
			Name:  flagForeground,
			Usage: "foreground pixel value (default: largest pixel value)",
		},
		&cli.Float64Flag{
			Name:  flagBackground,
			Usage: "background pixel value (default: 0)",
		},
		&cli.BoolFlag{
			Name:  flagBoundaryToForeground,
			Usage: "treat pixels beyond the image as foreground (default: false for dilate, true for erode)",
		},
		&cli.IntFlag{
			Name:  flagWorkers,
			Usage: "number of parallel workers (default: $" + utils.WorkersEnvVar + " or the number of CPUs)",
		},
	}

	filterCommand := func(op morphology.Operation) *cli.Command {
		return &cli.Command{
			Name:      op.String(),
			Usage:     op.String() + " a binary image",
			ArgsUsage: "<input> <output>",
			Flags:     filterFlags,
			Action: func(c *cli.Context) error {
				cfg, err := loadConfig(c)
				if err != nil {
					return err
				}
				cfg.Operation = op.String()
				if err := applyFilterFlags(c, cfg); err != nil {
					return err
				}
				if c.NArg() != 2 {
					return errors.New("expected <input> and <output> image paths")
				}
				cfg.Input = c.Args().Get(0)
				cfg.Output = c.Args().Get(1)
				return runConfig(c.Context, cfg, logger)
			},
		}
	}

	return &cli.App{
		Name:      "morph",
		Usage:     "binary dilation and erosion with a box structuring element",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load run configuration from `FILE`",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  flagLogFile,
				Usage: "also write logs to `FILE`, rotated as it grows",
			},
		},
		Before: func(c *cli.Context) error {
			logger = logging.NewBlankLogger("morph")
			logger.AddAppender(logging.NewWriterAppender(out))
			if c.Bool(flagDebug) || utils.DebugFromEnv() {
				c.Context = logging.EnableDebugMode(c.Context, "")
			} else {
				logger.SetLevel(logging.INFO)
			}
			if path := c.String(flagLogFile); path != "" {
				closer, appender := logging.NewFileAppender(path)
				logger.AddAppender(appender)
				logFile = closer
			}
			logging.ReplaceGlobal(logger)
			return nil
		},
		After: func(c *cli.Context) error {
			if logFile == nil {
				return nil
			}
			return multierr.Combine(logger.Sync(), logFile.Close())
		},
		Commands: []*cli.Command{
			filterCommand(morphology.Dilate),
			filterCommand(morphology.Erode),
			filterCommand(morphology.Open),
			filterCommand(morphology.Close),
			{
				Name:  "run",
				Usage: "run the operation described by --config",
				Action: func(c *cli.Context) error {
					if !c.IsSet(flagConfig) {
						return errors.New("run needs --config")
					}
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					return runConfig(c.Context, cfg, logger)
				},
			},
			{
				Name:  "bench",
				Usage: "time filters on random binary images",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagOperation,
						Value: morphology.Dilate.String(),
						Usage: "operation to time",
					},
					&cli.StringFlag{
						Name:  flagSize,
						Value: "512x512",
						Usage: "image size `WxH[xD...]`",
					},
					&cli.StringFlag{
						Name:  flagRadius,
						Value: "1,4,16,32",
						Usage: "radii to sweep `R[,R...]`, each applied along every axis",
					},
					&cli.Float64Flag{
						Name:  flagDensity,
						Value: 0.05,
						Usage: "fraction of foreground pixels",
					},
					&cli.IntFlag{
						Name:  flagRepeats,
						Value: 5,
						Usage: "timed runs per case",
					},
					&cli.IntFlag{
						Name:  flagWarmup,
						Value: 1,
						Usage: "untimed runs per case",
					},
					&cli.IntFlag{
						Name:  flagWorkers,
						Usage: "number of parallel workers",
					},
					&cli.Int64Flag{
						Name:  flagSeed,
						Value: 1,
						Usage: "seed of the random images",
					},
					&cli.StringFlag{
						Name:  flagPlot,
						Usage: "also plot the timings to `FILE` (png, svg or pdf)",
					},
				},
				Action: func(c *cli.Context) error {
					return benchAction(c, out, logger)
				},
			},
			{
				Name:  "schema",
				Usage: "print the JSON schema of the configuration file",
				Action: func(c *cli.Context) error {
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(config.Schema())
				},
			},
		},
	}
}

// loadConfig reads --config when given, or returns an empty config to fill from flags.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String(flagConfig)
	if path == "" {
		return &config.Config{}, nil
	}
	return config.Read(path)
}

// applyFilterFlags overrides cfg with the filter flags that were set.
func applyFilterFlags(c *cli.Context, cfg *config.Config) error {
	if c.IsSet(flagRadius) {
		radius, err := parseIntList(c.String(flagRadius), ",")
		if err != nil {
			return errors.Wrapf(err, "bad --%s", flagRadius)
		}
		cfg.Radius = radius
	}
	if c.IsSet(flagForeground) {
		v := c.Float64(flagForeground)
		cfg.Foreground = &v
	}
	if c.IsSet(flagBackground) {
		v := c.Float64(flagBackground)
		cfg.Background = &v
	}
	if c.IsSet(flagBoundaryToForeground) {
		v := c.Bool(flagBoundaryToForeground)
		cfg.BoundaryToForeground = &v
	}
	if c.IsSet(flagWorkers) {
		cfg.Workers = c.Int(flagWorkers)
	}
	return nil
}

func parseIntList(s, sep string) ([]int, error) {
	parts := strings.Split(s, sep)
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.Wrapf(err, "cannot parse %q", s)
		}
		out = append(out, v)
	}
	return out, nil
}

// runConfig filters cfg.Input into cfg.Output. 16 bit gray inputs are filtered as 16 bit,
// anything else is converted to 8 bit gray first.
func runConfig(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	if err := cfg.Validate("morph"); err != nil {
		return err
	}
	if cfg.Input == "" {
		return goutils.NewConfigValidationFieldRequiredError("morph", "input")
	}
	if cfg.Output == "" {
		return goutils.NewConfigValidationFieldRequiredError("morph", "output")
	}
	if cfg.LogLevel != "" {
		level, err := logging.LevelFromString(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
	}

	pic, err := rimage.ReadImageFromFile(cfg.Input)
	if err != nil {
		return err
	}
	var result image.Image
	if gray16, ok := pic.(*image.Gray16); ok {
		out, err := config.NewFilter[uint16](cfg, logger).Apply(ctx, rimage.FromGray16(gray16))
		if err != nil {
			return err
		}
		result = rimage.ToGray16(out)
	} else {
		out, err := config.NewFilter[uint8](cfg, logger).Apply(ctx, rimage.FromGray(rimage.MakeGray(pic)))
		if err != nil {
			return err
		}
		result = rimage.ToGray(out)
	}
	if err := rimage.WriteImageToFile(cfg.Output, result); err != nil {
		return err
	}
	logger.Infow("wrote image", "operation", cfg.Operation, "radius", []int(cfg.Radius), "output", cfg.Output)
	return nil
}

func benchAction(c *cli.Context, out io.Writer, logger logging.Logger) error {
	op, err := morphology.ParseOperation(c.String(flagOperation))
	if err != nil {
		return err
	}
	size, err := parseIntList(c.String(flagSize), "x")
	if err != nil {
		return errors.Wrapf(err, "bad --%s", flagSize)
	}
	radii, err := parseIntList(c.String(flagRadius), ",")
	if err != nil {
		return errors.Wrapf(err, "bad --%s", flagRadius)
	}

	runner := bench.NewRunner(logger)
	runner.Repeats = c.Int(flagRepeats)
	runner.Warmup = c.Int(flagWarmup)
	base := bench.Case{
		Operation: op,
		Size:      size,
		Density:   c.Float64(flagDensity),
		Workers:   c.Int(flagWorkers),
		Seed:      c.Int64(flagSeed),
	}
	results, err := runner.RunAll(c.Context, bench.SweepRadius(base, radii))
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, bench.Report(results)); err != nil {
		return err
	}
	if path := c.String(flagPlot); path != "" {
		return bench.PlotTimings(results, path)
	}
	return nil
}
