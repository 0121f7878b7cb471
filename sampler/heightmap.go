package sampler

import (
	"errors"
	"fmt"

	"github.com/gorustyt/gonavgrid/navgrid"
)

var ErrOutOfRange = errors.New("sampler: position outside heightmap")

// Heightmap is a regular grid of ground heights with an obstacle mask. Cell
// (r, c) covers the square starting at (OriginX + c*Spacing, OriginY + r*Spacing).
type Heightmap struct {
	OriginX, OriginY float64
	Spacing          float64
	Rows, Cols       int
	Heights          []float64 ///< Ground height per cell. [Size: Rows*Cols]
	Obstacles        []bool    ///< Obstacle mask. [Size: Rows*Cols] or nil.
	Holes            []bool    ///< Cells without ground. [Size: Rows*Cols] or nil.
}

func NewHeightmap(originX, originY, spacing float64, rows, cols int) *Heightmap {
	return &Heightmap{
		OriginX:   originX,
		OriginY:   originY,
		Spacing:   spacing,
		Rows:      rows,
		Cols:      cols,
		Heights:   make([]float64, rows*cols),
		Obstacles: make([]bool, rows*cols),
		Holes:     make([]bool, rows*cols),
	}
}

func (h *Heightmap) index(x, y float64) (int, bool) {
	if h.Spacing <= 0 {
		return 0, false
	}
	c := int((x - h.OriginX) / h.Spacing)
	r := int((y - h.OriginY) / h.Spacing)
	if x < h.OriginX || y < h.OriginY || r >= h.Rows || c >= h.Cols {
		return 0, false
	}
	return r*h.Cols + c, true
}

func (h *Heightmap) Set(row, col int, height float64) {
	h.Heights[row*h.Cols+col] = height
}

func (h *Heightmap) SetObstacle(row, col int, blocked bool) {
	h.Obstacles[row*h.Cols+col] = blocked
}

func (h *Heightmap) SetHole(row, col int, hole bool) {
	h.Holes[row*h.Cols+col] = hole
}

// Probe reports obstacles for ProbeObstacle and ground for ProbeGround.
// Positions outside the map return ErrOutOfRange.
func (h *Heightmap) Probe(x, y float64, class navgrid.ProbeClass) (navgrid.ProbeHit, error) {
	i, ok := h.index(x, y)
	if !ok {
		return navgrid.ProbeHit{}, fmt.Errorf("%w: (%g, %g)", ErrOutOfRange, x, y)
	}
	switch class {
	case navgrid.ProbeObstacle:
		if h.Obstacles != nil && h.Obstacles[i] {
			return navgrid.ProbeHit{Blocking: true, ImpactHeight: h.Heights[i]}, nil
		}
	case navgrid.ProbeGround:
		if h.Holes == nil || !h.Holes[i] {
			return navgrid.ProbeHit{Blocking: true, ImpactHeight: h.Heights[i]}, nil
		}
	}
	return navgrid.ProbeHit{}, nil
}
