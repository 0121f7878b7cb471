package navgrid

import (
	"github.com/gorustyt/gonavgrid/common"
)

// Position is a world space coordinate pair, row axis first.
type Position struct {
	Y, X int
}

func (p Position) Add(o Position) Position {
	return Position{Y: p.Y + o.Y, X: p.X + o.X}
}

// Less orders positions row-major.
func (p Position) Less(o Position) bool {
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.X < o.X
}

// Distance returns the manhattan distance between p and o.
func (p Position) Distance(o Position) int {
	return common.Abs(p.X-o.X) + common.Abs(p.Y-o.Y)
}

// GridIndex addresses a cell by row and column.
type GridIndex struct {
	Row, Col int
}

func (g GridIndex) Add(o GridIndex) GridIndex {
	return GridIndex{Row: g.Row + o.Row, Col: g.Col + o.Col}
}

// Orthogonal neighbour order: up, left, down, right.
// The height scan stops at the first match so the order is part of the output.
var Dir4 = [4]GridIndex{
	{-1, 0},
	{0, -1},
	{1, 0},
	{0, 1},
}

// Dir8 is Dir4 followed by the diagonals.
var Dir8 = [8]GridIndex{
	{-1, 0},
	{0, -1},
	{1, 0},
	{0, 1},
	{-1, -1},
	{1, -1},
	{1, 1},
	{-1, 1},
}

type Cell struct {
	Pos        Position ///< World position of the cell.
	Height     float64  ///< Ground height. Zero when no ground was found.
	IsPassable bool     ///< False for obstacles and cells without ground.
	ExtraCost  int      ///< Cost penalty * 100. Zero means no penalty.
}

// Cost returns the penalty in source units.
func (c *Cell) Cost() int {
	return c.ExtraCost / 100
}

// GridField is the row-major cell array covering a bounding volume.
type GridField struct {
	Origin      common.Vec3 ///< Center of the bounding volume.
	Extent      common.Vec3 ///< Half extents of the bounding volume.
	CellSpacing int         ///< World units between cell centers.
	Rows        int         ///< Cells along y.
	Cols        int         ///< Cells along x.
	Cells       []Cell      ///< [Size: Rows*Cols]
}

// NewGridField allocates the grid for the bounding volume. Rows and columns
// round half up; a degenerate volume or spacing gives an empty grid.
func NewGridField(origin, extent common.Vec3, cellSpacing int) *GridField {
	g := &GridField{
		Origin:      origin,
		Extent:      extent,
		CellSpacing: cellSpacing,
	}
	if cellSpacing <= 0 {
		return g
	}
	spacing := float64(cellSpacing)
	g.Rows = common.RoundSize(float64(extent[1]*2) / spacing)
	g.Cols = common.RoundSize(float64(extent[0]*2) / spacing)
	g.Cells = make([]Cell, g.Rows*g.Cols)

	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			y := (origin[1] + float32(cellSpacing*i)) - extent[1]
			x := (origin[0] + float32(cellSpacing*j)) - extent[0]
			g.Cells[i*g.Cols+j].Pos = Position{Y: int(y), X: int(x)}
		}
	}
	return g
}

func (g *GridField) Len() int {
	return len(g.Cells)
}

func (g *GridField) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

func (g *GridField) Index(row, col int) int {
	return row*g.Cols + col
}

// GridIndexOf converts a linear cell index back to row and column.
func (g *GridField) GridIndexOf(idx int) GridIndex {
	return GridIndex{Row: idx / g.Cols, Col: idx % g.Cols}
}

// At returns the cell at row, col. The caller checks bounds.
func (g *GridField) At(row, col int) *Cell {
	return &g.Cells[row*g.Cols+col]
}

func (g *GridField) AtIndex(idx GridIndex) *Cell {
	return g.At(idx.Row, idx.Col)
}
