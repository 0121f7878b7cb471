package navgrid

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// GenerationState is the active stage of a generation run. States only move
// forward.
type GenerationState int

const (
	ScanningObstacles GenerationState = iota
	ScanningHeightDifference
	DiffusingCost
	Exporting
	Done
)

func (s GenerationState) String() string {
	switch s {
	case ScanningObstacles:
		return "scanning_obstacles"
	case ScanningHeightDifference:
		return "scanning_height_difference"
	case DiffusingCost:
		return "diffusing_cost"
	case Exporting:
		return "exporting"
	case Done:
		return "done"
	}
	return "unknown"
}

// Generator sequences the stages of one generation run. Each Step does a
// bounded slice of work for the active stage. It is not safe for concurrent
// use.
type Generator struct {
	ctx         *BuildContext
	field       *GridField
	queue       *ObstacleQueue
	passability *PassabilityScanner
	height      *HeightDifferenceScanner
	diffusion   *CostDiffusionEngine
	exporter    Exporter
	state       GenerationState
	steps       int
	lastPercent int
}

func NewGenerator(ctx *BuildContext, field *GridField, sampler TerrainSampler, exporter Exporter, params Params) (*Generator, error) {
	if field == nil || sampler == nil {
		return nil, fmt.Errorf("%w: generator needs a grid field and a terrain sampler", ErrBadParams)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = NewBuildContext(nil, nil)
	}
	queue := NewObstacleQueue()
	g := &Generator{
		ctx:         ctx,
		field:       field,
		queue:       queue,
		passability: NewPassabilityScanner(field, sampler, queue, params),
		height:      NewHeightDifferenceScanner(field, queue, params),
		diffusion:   NewCostDiffusionEngine(field, queue, params),
		exporter:    exporter,
		state:       ScanningObstacles,
		lastPercent: -1,
	}
	ctx.Logger().Info("grid allocated",
		zap.Int("rows", field.Rows),
		zap.Int("cols", field.Cols),
		zap.Int("cell_spacing", field.CellSpacing),
		zap.Stringer("diffusion", params.DiffusionMode))
	return g, nil
}

func (g *Generator) State() GenerationState {
	return g.state
}

func (g *Generator) Field() *GridField {
	return g.field
}

func (g *Generator) Queue() *ObstacleQueue {
	return g.queue
}

// Steps returns how many times Step did work.
func (g *Generator) Steps() int {
	return g.steps
}

// Progress returns the completion percentage of the active scan stage,
// 100 once scanning is over.
func (g *Generator) Progress() int {
	total := g.field.Len()
	var cursor int
	switch g.state {
	case ScanningObstacles:
		cursor = g.passability.Cursor()
	case ScanningHeightDifference:
		cursor = g.height.Cursor()
	default:
		return 100
	}
	if total == 0 {
		return 100
	}
	return int(float64(cursor) / float64(total) * 100)
}

// Step advances the active stage by one bounded slice and returns the state
// after it. An export error leaves the generator in Exporting so the caller
// may retry. Once Done, Step does nothing.
func (g *Generator) Step() (GenerationState, error) {
	if g.state == Done {
		return g.state, nil
	}
	g.steps++
	g.ctx.StartTimer(TimerTotal)
	defer g.ctx.StopTimer(TimerTotal)

	switch g.state {
	case ScanningObstacles:
		g.ctx.StartTimer(TimerScanObstacle)
		done := g.passability.Step(g.ctx)
		g.ctx.StopTimer(TimerScanObstacle)
		if done {
			g.advance(ScanningHeightDifference, zap.Int("obstacles", g.queue.Len()))
		} else {
			g.logProgress()
		}
	case ScanningHeightDifference:
		g.ctx.StartTimer(TimerScanHeight)
		done := g.height.Step(g.ctx)
		g.ctx.StopTimer(TimerScanHeight)
		if done {
			g.advance(DiffusingCost, zap.Int("obstacles", g.queue.Len()))
		} else {
			g.logProgress()
		}
	case DiffusingCost:
		g.ctx.StartTimer(TimerDiffuseCost)
		done := g.diffusion.Step(g.ctx)
		g.ctx.StopTimer(TimerDiffuseCost)
		if done {
			g.advance(Exporting)
		}
	case Exporting:
		g.ctx.StartTimer(TimerExport)
		err := g.export()
		g.ctx.StopTimer(TimerExport)
		if err != nil {
			g.ctx.Logger().Error("export failed", zap.Error(err))
			return g.state, err
		}
		g.advance(Done)
		g.ctx.Logger().Info("generation complete", g.timingFields()...)
	}
	return g.state, nil
}

func (g *Generator) export() error {
	if g.exporter == nil {
		return nil
	}
	return g.exporter.Export(g.field)
}

func (g *Generator) advance(next GenerationState, fields ...zap.Field) {
	fields = append([]zap.Field{zap.Stringer("from", g.state), zap.Stringer("to", next)}, fields...)
	g.ctx.Logger().Info("stage complete", fields...)
	g.state = next
	g.lastPercent = -1
}

func (g *Generator) logProgress() {
	percent := g.Progress()
	if g.lastPercent >= 0 && percent/10 == g.lastPercent/10 {
		return
	}
	g.lastPercent = percent
	g.ctx.Logger().Debug("scan progressed", zap.Stringer("stage", g.state), zap.Int("percent", percent))
}

func (g *Generator) timingFields() []zap.Field {
	fields := []zap.Field{zap.Int("steps", g.steps)}
	for label := TimerTotal; label < TimerMax; label++ {
		fields = append(fields, zap.Duration(label.String(), g.ctx.AccumulatedTime(label)))
	}
	return fields
}

// Run drives g to Done, calling Step every interval (back to back when
// interval is zero). It returns the first step error or ctx.Err() if the
// context ends first; the run is then abandoned.
func Run(ctx context.Context, g *Generator, interval time.Duration) error {
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	for g.State() != Done {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := g.Step(); err != nil {
			return err
		}
	}
	return nil
}
