package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorustyt/gonavgrid/common"
	"github.com/gorustyt/gonavgrid/common/log"
	"github.com/gorustyt/gonavgrid/config"
	"github.com/gorustyt/gonavgrid/debug_utils"
	"github.com/gorustyt/gonavgrid/navgrid"
	"github.com/gorustyt/gonavgrid/sampler"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "navgen:", err)
		os.Exit(1)
	}
}

func run() (err error) {
	var (
		configPath = flag.String("config", "", "YAML config file")
		scenePath  = flag.String("scene", "", "YAML scene file, overrides config scene")
		outPath    = flag.String("out", "", "output file, overrides config output dir/file")
		format     = flag.String("format", "", "output format: text, bin or proto")
		heatmap    = flag.String("heatmap", "", "write a PNG cost heatmap to this path")
		spacing    = flag.Int("spacing", 0, "cell spacing, overrides config")
		interval   = flag.Duration("interval", -1, "step interval, 0 runs steps back to back")
		logLevel   = flag.String("log-level", "", "debug, info, warn or error")
	)
	flag.Parse()

	cfg := config.NewConfig()
	if *configPath != "" {
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if *scenePath != "" {
		cfg.Scene = *scenePath
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *heatmap != "" {
		cfg.Output.Heatmap = *heatmap
	}
	if *spacing > 0 {
		cfg.CellSpacing = *spacing
	}
	if *interval >= 0 {
		cfg.StepInterval = *interval
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	cfg.Clamp()
	if err = cfg.Validate(); err != nil {
		return err
	}
	if cfg.Scene == "" {
		return errors.New("no scene given, use -scene or the config scene key")
	}

	logger, closeLog, err := log.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() {
		// Sync on a console fd can fail with EINVAL, nothing to do about it.
		_ = logger.Sync()
		err = multierr.Append(err, closeLog())
	}()

	terrain, err := sampler.LoadScene(cfg.Scene, cfg.TraceOptions())
	if err != nil {
		return err
	}
	origin, extent := cfg.BoundsVec()
	if !cfg.HasBounds() {
		var ok bool
		if origin, extent, ok = terrain.Bounds(); !ok {
			return errors.New("scene has no geometry and config has no bounds")
		}
	} else if sOrigin, sExtent, ok := terrain.Bounds(); ok && !overlapXY(origin, extent, sOrigin, sExtent) {
		logger.Warn("bounds miss the scene geometry, every cell will be impassable",
			zap.Any("origin", origin), zap.Any("extent", extent))
	}

	exporter := cfg.Exporter()
	if *outPath != "" {
		exporter.Path = *outPath
	}

	counter := debug_utils.NewCounter()
	bctx := navgrid.NewBuildContext(logger, counter)
	field := navgrid.NewGridField(origin, extent, cfg.CellSpacing)
	gen, err := navgrid.NewGenerator(bctx, field, terrain, exporter, cfg.Params())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err = navgrid.Run(ctx, gen, cfg.StepInterval); err != nil {
		return err
	}
	logger.Info("grid written",
		zap.String("path", exporter.Path),
		zap.Stringer("format", exporter.Format),
		zap.Int("obstacles", counter.Count(navgrid.MarkObstacle)),
		zap.Int("slopes", counter.Count(navgrid.MarkSlope)))

	if cfg.Output.Heatmap != "" {
		return writeHeatmap(cfg.Output.Heatmap, field, cfg.Output.HeatmapScale)
	}
	return nil
}

func overlapXY(ao, ae, bo, be common.Vec3) bool {
	return common.OverlapRect(
		common.Vec2{ao[0] - ae[0], ao[1] - ae[1]}, common.Vec2{ao[0] + ae[0], ao[1] + ae[1]},
		common.Vec2{bo[0] - be[0], bo[1] - be[1]}, common.Vec2{bo[0] + be[0], bo[1] + be[1]})
}

func writeHeatmap(p string, field *navgrid.GridField, scale int) (err error) {
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return debug_utils.WriteHeatmap(f, field, scale)
}
