package navgrid

import (
	"go.uber.org/zap"
)

// PassabilityScanner probes every cell once, row-major, resolving passability
// and ground height. Hard obstacles are queued for cost diffusion.
type PassabilityScanner struct {
	field        *GridField
	sampler      TerrainSampler
	queue        *ObstacleQueue
	obstacleCost int
	budget       int
	cursor       int
}

func NewPassabilityScanner(field *GridField, sampler TerrainSampler, queue *ObstacleQueue, params Params) *PassabilityScanner {
	return &PassabilityScanner{
		field:        field,
		sampler:      sampler,
		queue:        queue,
		obstacleCost: params.ObstacleCost,
		budget:       params.CellsPerStep,
	}
}

// Cursor returns the linear index of the next cell to scan.
func (s *PassabilityScanner) Cursor() int {
	return s.cursor
}

// Step scans up to the per-step budget of cells. It returns true once the
// whole grid has been scanned, leaving the cursor reset to zero.
func (s *PassabilityScanner) Step(ctx *BuildContext) bool {
	total := s.field.Len()
	for count := 0; count < s.budget && s.cursor < total; count++ {
		s.scanCell(ctx, s.cursor)
		s.cursor++
	}
	if s.cursor >= total {
		s.cursor = 0
		return true
	}
	return false
}

func (s *PassabilityScanner) scanCell(ctx *BuildContext, idx int) {
	cell := &s.field.Cells[idx]
	x, y := float64(cell.Pos.X), float64(cell.Pos.Y)

	hit := s.probe(ctx, x, y, ProbeObstacle)
	cell.IsPassable = !hit.Blocking
	if hit.Blocking {
		cell.ExtraCost = s.obstacleCost * 100
		s.queue.Push(s.field.GridIndexOf(idx))
		ctx.mark(cell.Pos, hit.ImpactHeight, MarkObstacle)
		return
	}

	// No obstacle, look for ground. No ground means nothing to stand on.
	hit = s.probe(ctx, x, y, ProbeGround)
	cell.IsPassable = hit.Blocking
	if hit.Blocking {
		cell.Height = hit.ImpactHeight
		ctx.mark(cell.Pos, hit.ImpactHeight, MarkGround)
	}
}

func (s *PassabilityScanner) probe(ctx *BuildContext, x, y float64, class ProbeClass) ProbeHit {
	hit, err := s.sampler.Probe(x, y, class)
	if err != nil {
		ctx.Logger().Debug("probe failed, treated as no hit",
			zap.Float64("x", x), zap.Float64("y", y), zap.Stringer("class", class), zap.Error(err))
		return ProbeHit{}
	}
	return hit
}
