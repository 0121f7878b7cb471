package navgrid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type markRecorder struct {
	marks map[MarkKind]int
}

func (m *markRecorder) Mark(_ Position, _ float64, kind MarkKind) {
	if m.marks == nil {
		m.marks = make(map[MarkKind]int)
	}
	m.marks[kind]++
}

func constSampler(obstacle, ground bool, height float64) TerrainSampler {
	return SamplerFunc(func(x, y float64, class ProbeClass) (ProbeHit, error) {
		switch class {
		case ProbeObstacle:
			return ProbeHit{Blocking: obstacle, ImpactHeight: height}, nil
		default:
			return ProbeHit{Blocking: ground, ImpactHeight: height}, nil
		}
	})
}

func runScan(t *testing.T, step func(*BuildContext) bool, ctx *BuildContext) int {
	t.Helper()
	for steps := 1; steps < 10000; steps++ {
		if step(ctx) {
			return steps
		}
	}
	t.Fatal("scan did not finish")
	return 0
}

func drain(q *ObstacleQueue) []GridIndex {
	var out []GridIndex
	for {
		idx, ok := q.Pop()
		if !ok {
			return out
		}
		out = append(out, idx)
	}
}

func TestPassabilityAlwaysBlocked(t *testing.T) {
	g := newTestField(4, 5)
	q := NewObstacleQueue()
	rec := &markRecorder{}
	s := NewPassabilityScanner(g, constSampler(true, true, 3), q, DefaultParams())
	runScan(t, s.Step, NewBuildContext(nil, rec))

	for i := range g.Cells {
		assert.False(t, g.Cells[i].IsPassable)
		assert.Equal(t, 1200, g.Cells[i].ExtraCost)
	}
	got := drain(q)
	require.Len(t, got, g.Len())
	seen := make(map[GridIndex]bool)
	for k, idx := range got {
		assert.False(t, seen[idx], "duplicate %v", idx)
		seen[idx] = true
		// Row-major queue order.
		assert.Equal(t, g.GridIndexOf(k), idx)
	}
	assert.Equal(t, g.Len(), rec.marks[MarkObstacle])
}

func TestPassabilityAlwaysGround(t *testing.T) {
	g := newTestField(3, 3)
	q := NewObstacleQueue()
	s := NewPassabilityScanner(g, constSampler(false, true, 7.5), q, DefaultParams())
	runScan(t, s.Step, NewBuildContext(nil, nil))

	for i := range g.Cells {
		assert.True(t, g.Cells[i].IsPassable)
		assert.Equal(t, 7.5, g.Cells[i].Height)
		assert.Zero(t, g.Cells[i].ExtraCost)
	}
	assert.True(t, q.Empty())
}

func TestPassabilityNoGround(t *testing.T) {
	g := newTestField(2, 2)
	q := NewObstacleQueue()
	s := NewPassabilityScanner(g, constSampler(false, false, 99), q, DefaultParams())
	runScan(t, s.Step, NewBuildContext(nil, nil))

	for i := range g.Cells {
		assert.False(t, g.Cells[i].IsPassable)
		assert.Zero(t, g.Cells[i].Height)
		assert.Zero(t, g.Cells[i].ExtraCost)
	}
	assert.True(t, q.Empty())
}

func TestPassabilitySamplerErrorIsNoHit(t *testing.T) {
	g := newTestField(1, 2)
	q := NewObstacleQueue()
	failing := SamplerFunc(func(x, y float64, class ProbeClass) (ProbeHit, error) {
		return ProbeHit{Blocking: true, ImpactHeight: 1}, errors.New("probe lost")
	})
	s := NewPassabilityScanner(g, failing, q, DefaultParams())
	runScan(t, s.Step, NewBuildContext(nil, nil))

	for i := range g.Cells {
		assert.False(t, g.Cells[i].IsPassable)
		assert.Zero(t, g.Cells[i].ExtraCost)
	}
	assert.True(t, q.Empty())
}

func TestPassabilityProbesCellPosition(t *testing.T) {
	g := newTestField(2, 3)
	var probed []Position
	sampler := SamplerFunc(func(x, y float64, class ProbeClass) (ProbeHit, error) {
		if class == ProbeObstacle {
			probed = append(probed, Position{Y: int(y), X: int(x)})
		}
		return ProbeHit{Blocking: class == ProbeGround}, nil
	})
	s := NewPassabilityScanner(g, sampler, NewObstacleQueue(), DefaultParams())
	runScan(t, s.Step, NewBuildContext(nil, nil))

	require.Len(t, probed, g.Len())
	for i := range g.Cells {
		assert.Equal(t, g.Cells[i].Pos, probed[i])
	}
}

func TestPassabilityBudget(t *testing.T) {
	g := newTestField(3, 3)
	params := DefaultParams()
	params.CellsPerStep = 4
	s := NewPassabilityScanner(g, constSampler(false, true, 0), NewObstacleQueue(), params)
	ctx := NewBuildContext(nil, nil)

	assert.False(t, s.Step(ctx))
	assert.Equal(t, 4, s.Cursor())
	assert.False(t, s.Step(ctx))
	assert.Equal(t, 8, s.Cursor())
	assert.True(t, s.Step(ctx))
	assert.Zero(t, s.Cursor())
}

func TestPassabilityEmptyGrid(t *testing.T) {
	g := newTestField(0, 0)
	s := NewPassabilityScanner(g, constSampler(true, true, 0), NewObstacleQueue(), DefaultParams())
	assert.True(t, s.Step(NewBuildContext(nil, nil)))
}

func setPassable(g *GridField, heights ...float64) {
	for i, h := range heights {
		g.Cells[i].IsPassable = true
		g.Cells[i].Height = h
	}
}

func TestHeightDifferenceRow(t *testing.T) {
	g := newTestField(1, 3)
	setPassable(g, 0, 0, 25)
	q := NewObstacleQueue()
	rec := &markRecorder{}
	s := NewHeightDifferenceScanner(g, q, DefaultParams())
	runScan(t, s.Step, NewBuildContext(nil, rec))

	assert.Zero(t, g.Cells[0].ExtraCost)
	assert.Equal(t, 1000, g.Cells[1].ExtraCost)
	assert.Zero(t, g.Cells[2].ExtraCost)
	assert.Equal(t, []GridIndex{{0, 1}}, drain(q))
	assert.Equal(t, 1, rec.marks[MarkSlope])
}

func TestHeightDifferenceLimitIsExclusive(t *testing.T) {
	g := newTestField(1, 2)
	setPassable(g, 0, 20)
	q := NewObstacleQueue()
	s := NewHeightDifferenceScanner(g, q, DefaultParams())
	runScan(t, s.Step, NewBuildContext(nil, nil))

	assert.Zero(t, g.Cells[0].ExtraCost)
	assert.True(t, q.Empty())
}

func TestHeightDifferenceSkipsImpassable(t *testing.T) {
	g := newTestField(1, 3)
	setPassable(g, 0, 100, 0)
	// An impassable cell is never flagged and never counts as a neighbour.
	g.Cells[0].IsPassable = false
	g.Cells[1].IsPassable = false
	q := NewObstacleQueue()
	s := NewHeightDifferenceScanner(g, q, DefaultParams())
	runScan(t, s.Step, NewBuildContext(nil, nil))

	for i := range g.Cells {
		assert.Zero(t, g.Cells[i].ExtraCost)
	}
	assert.True(t, q.Empty())
}

func TestHeightDifferenceFirstMatchOnly(t *testing.T) {
	// Center cell of a plus shape is lower than all four neighbours.
	g := newTestField(3, 3)
	setPassable(g,
		0, 50, 0,
		50, 0, 50,
		0, 50, 0)
	q := NewObstacleQueue()
	s := NewHeightDifferenceScanner(g, q, DefaultParams())
	runScan(t, s.Step, NewBuildContext(nil, nil))

	got := drain(q)
	assert.Equal(t, []GridIndex{{0, 0}, {0, 2}, {1, 1}, {2, 0}, {2, 2}}, got)
	assert.Equal(t, 1000, g.At(1, 1).ExtraCost)
	assert.Zero(t, g.At(0, 1).ExtraCost)
}

func TestHeightDifferenceCustomCost(t *testing.T) {
	g := newTestField(1, 2)
	setPassable(g, 0, 5)
	params := DefaultParams()
	params.ObstacleCost = 20
	params.HeightDifferenceLimit = 4
	s := NewHeightDifferenceScanner(g, NewObstacleQueue(), params)
	runScan(t, s.Step, NewBuildContext(nil, nil))

	assert.Equal(t, 1800, g.Cells[0].ExtraCost)
}

func TestObstacleQueueRejectsDuplicates(t *testing.T) {
	q := NewObstacleQueue()
	assert.True(t, q.Push(GridIndex{1, 2}))
	assert.False(t, q.Push(GridIndex{1, 2}))
	assert.True(t, q.Push(GridIndex{0, 0}))
	assert.Equal(t, 2, q.Len())

	idx, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, GridIndex{1, 2}, idx)
	assert.Equal(t, []GridIndex{{1, 2}, {0, 0}}, drain(q))

	_, ok = q.Pop()
	assert.False(t, ok)
	// Still rejected after it was drained.
	assert.False(t, q.Push(GridIndex{1, 2}))
}
