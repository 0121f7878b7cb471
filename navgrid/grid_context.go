package navgrid

import (
	"time"

	"go.uber.org/zap"
)

type TimerLabel int

const (
	TimerTotal TimerLabel = iota
	TimerScanObstacle
	TimerScanHeight
	TimerDiffuseCost
	TimerExport
	TimerMax
)

var timerNames = [TimerMax]string{"total", "scan_obstacle", "scan_height", "diffuse_cost", "export"}

func (l TimerLabel) String() string {
	if l < 0 || l >= TimerMax {
		return "unknown"
	}
	return timerNames[l]
}

// MarkKind tells an Observer why a cell was annotated.
type MarkKind int

const (
	MarkObstacle MarkKind = iota ///< Hard obstacle hit by the obstacle probe.
	MarkGround                   ///< Ground found by the ground probe.
	MarkSlope                    ///< Soft obstacle next to a height jump.
	MarkCostHigh                 ///< Diffused cost >= 8.
	MarkCostLow                  ///< Diffused cost below 8.
)

// Observer receives per-cell annotations while the grid is built.
type Observer interface {
	Mark(pos Position, z float64, kind MarkKind)
}

type nopObserver struct{}

func (nopObserver) Mark(Position, float64, MarkKind) {}

// BuildContext carries the logger, the observer and per-stage timers through
// a generation run.
type BuildContext struct {
	logger    *zap.Logger
	observer  Observer
	startTime [TimerMax]time.Time
	accTime   [TimerMax]time.Duration
}

// NewBuildContext returns a context. Nil arguments fall back to no-ops.
func NewBuildContext(logger *zap.Logger, observer Observer) *BuildContext {
	if logger == nil {
		logger = zap.NewNop()
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &BuildContext{logger: logger, observer: observer}
}

func (c *BuildContext) Logger() *zap.Logger {
	return c.logger
}

func (c *BuildContext) StartTimer(label TimerLabel) {
	c.startTime[label] = time.Now()
}

func (c *BuildContext) StopTimer(label TimerLabel) {
	if c.startTime[label].IsZero() {
		return
	}
	c.accTime[label] += time.Since(c.startTime[label])
	c.startTime[label] = time.Time{}
}

// AccumulatedTime returns the time spent in label across all steps.
func (c *BuildContext) AccumulatedTime(label TimerLabel) time.Duration {
	return c.accTime[label]
}

func (c *BuildContext) ResetTimers() {
	c.startTime = [TimerMax]time.Time{}
	c.accTime = [TimerMax]time.Duration{}
}

func (c *BuildContext) mark(pos Position, z float64, kind MarkKind) {
	c.observer.Mark(pos, z, kind)
}
