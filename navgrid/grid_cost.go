package navgrid

// CostDiffusionEngine drains the obstacle queue, spreading a penalty that
// decays by two per ring through the eight neighbours of each cell. A cell is
// only overwritten by a strictly higher cost.
type CostDiffusionEngine struct {
	field        *GridField
	queue        *ObstacleQueue
	obstacleCost int
	budget       int
	mode         DiffusionMode

	// Per-flood ring buffers, reused across floods.
	frontier []GridIndex
	next     []GridIndex

	// Synchronized mode state.
	seeded  bool
	level   int
	pending map[int][]GridIndex
}

func NewCostDiffusionEngine(field *GridField, queue *ObstacleQueue, params Params) *CostDiffusionEngine {
	return &CostDiffusionEngine{
		field:        field,
		queue:        queue,
		obstacleCost: params.ObstacleCost,
		budget:       params.ObstaclesPerStep,
		mode:         params.DiffusionMode,
	}
}

// Step runs one budgeted slice of diffusion and reports whether all queued
// obstacles have been diffused. Calling it with nothing queued is a no-op.
func (e *CostDiffusionEngine) Step(ctx *BuildContext) bool {
	if e.mode == DiffusionSynchronized {
		return e.stepSynchronized(ctx)
	}
	for count := 0; count < e.budget && !e.queue.Empty(); count++ {
		idx, _ := e.queue.Pop()
		e.flood(ctx, idx)
	}
	return e.queue.Empty()
}

// sourceCost returns the cost the first ring around idx receives.
func (e *CostDiffusionEngine) sourceCost(idx GridIndex) int {
	cell := e.field.AtIndex(idx)
	if cell.ExtraCost != 0 {
		return cell.Cost() - costDecay
	}
	return e.obstacleCost - costDecay
}

// flood expands ring by ring from a single obstacle until the cost decays
// past the floor or no cell was improved.
func (e *CostDiffusionEngine) flood(ctx *BuildContext, start GridIndex) {
	currentCost := e.sourceCost(start)
	e.frontier = append(e.frontier[:0], start)
	for len(e.frontier) > 0 && currentCost >= minDiffusedCost {
		e.next = e.next[:0]
		for _, c := range e.frontier {
			for _, d := range Dir8 {
				n := c.Add(d)
				if e.raise(ctx, n, currentCost) && currentCost > minDiffusedCost {
					e.next = append(e.next, n)
				}
			}
		}
		e.frontier, e.next = e.next, e.frontier
		currentCost -= costDecay
	}
}

// raise writes cost into the cell at n if it is in bounds and holds less.
func (e *CostDiffusionEngine) raise(ctx *BuildContext, n GridIndex, cost int) bool {
	if !e.field.InBounds(n.Row, n.Col) {
		return false
	}
	cell := e.field.AtIndex(n)
	if cell.Cost() >= cost {
		return false
	}
	cell.ExtraCost = cost * 100
	if cost < 8 {
		ctx.mark(cell.Pos, cell.Height, MarkCostLow)
	} else {
		ctx.mark(cell.Pos, cell.Height, MarkCostHigh)
	}
	return true
}

// stepSynchronized seeds every queued obstacle into buckets keyed by the
// cost its neighbours receive, then expands buckets from the highest level
// down. Each cell ends with the maximum decayed cost over all sources
// regardless of queue order.
func (e *CostDiffusionEngine) stepSynchronized(ctx *BuildContext) bool {
	if !e.seeded {
		e.seed()
	}
	budget := e.budget * len(Dir8)
	for budget > 0 && e.level >= minDiffusedCost {
		bucket := e.pending[e.level]
		if len(bucket) == 0 {
			delete(e.pending, e.level)
			e.level--
			continue
		}
		c := bucket[len(bucket)-1]
		e.pending[e.level] = bucket[:len(bucket)-1]
		for _, d := range Dir8 {
			n := c.Add(d)
			if e.raise(ctx, n, e.level) && e.level > minDiffusedCost {
				e.push(e.level-costDecay, n)
			}
		}
		budget--
	}
	if e.level < minDiffusedCost {
		e.pending = nil
		return e.queue.Empty()
	}
	return false
}

func (e *CostDiffusionEngine) seed() {
	e.seeded = true
	e.pending = make(map[int][]GridIndex)
	e.level = minDiffusedCost - 1
	for !e.queue.Empty() {
		idx, _ := e.queue.Pop()
		if cost := e.sourceCost(idx); cost >= minDiffusedCost {
			e.push(cost, idx)
		}
	}
}

func (e *CostDiffusionEngine) push(level int, idx GridIndex) {
	e.pending[level] = append(e.pending[level], idx)
	if level > e.level {
		e.level = level
	}
}
