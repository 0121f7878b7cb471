package navgrid

// HeightDifferenceScanner flags passable cells whose orthogonal neighbour
// rises more than the configured limit. Flagged cells become soft obstacles.
type HeightDifferenceScanner struct {
	field        *GridField
	queue        *ObstacleQueue
	obstacleCost int
	limit        float64
	budget       int
	cursor       int
}

func NewHeightDifferenceScanner(field *GridField, queue *ObstacleQueue, params Params) *HeightDifferenceScanner {
	return &HeightDifferenceScanner{
		field:        field,
		queue:        queue,
		obstacleCost: params.ObstacleCost,
		limit:        params.HeightDifferenceLimit,
		budget:       params.HeightCellsPerStep,
	}
}

func (s *HeightDifferenceScanner) Cursor() int {
	return s.cursor
}

// Step behaves like PassabilityScanner.Step.
func (s *HeightDifferenceScanner) Step(ctx *BuildContext) bool {
	total := s.field.Len()
	for count := 0; count < s.budget && s.cursor < total; count++ {
		s.scanCell(ctx, s.field.GridIndexOf(s.cursor))
		s.cursor++
	}
	if s.cursor >= total {
		s.cursor = 0
		return true
	}
	return false
}

func (s *HeightDifferenceScanner) scanCell(ctx *BuildContext, idx GridIndex) {
	cell := s.field.AtIndex(idx)
	if !cell.IsPassable {
		return
	}
	for _, d := range Dir4 {
		n := idx.Add(d)
		if !s.field.InBounds(n.Row, n.Col) {
			continue
		}
		next := s.field.AtIndex(n)
		if !next.IsPassable {
			continue
		}
		if next.Height-cell.Height <= s.limit {
			continue
		}

		s.queue.Push(idx)
		cell.ExtraCost = (s.obstacleCost - costDecay) * 100
		ctx.mark(cell.Pos, cell.Height, MarkSlope)
		break
	}
}
