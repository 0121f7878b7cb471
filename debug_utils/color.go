package debug_utils

import (
	"image/color"

	"github.com/gorustyt/gonavgrid/navgrid"
)

type Colorb [4]uint8

func (c Colorb) R() uint8 {
	return c[0]
}

func (c Colorb) G() uint8 {
	return c[1]
}

func (c Colorb) B() uint8 {
	return c[2]
}

func (c Colorb) A() uint8 {
	return c[3]
}

// RGBA converts to the image/color model.
func (c Colorb) RGBA() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

func DuRGBA[T int | int32 | uint8](r, g, b, a T) Colorb {
	return Colorb{uint8(r), uint8(g), uint8(b), uint8(a)}
}

func duMultCol(col Colorb, d uint8) Colorb {
	r := int(col.R())
	g := int(col.G())
	b := int(col.B())
	di := int(d)
	return DuRGBA(r*di>>8, g*di>>8, b*di>>8, int(col.A()))
}

// DuLerpCol blends ca towards cb by u/255.
func DuLerpCol(ca, cb Colorb, u uint8) Colorb {
	lerp := func(a, b uint8) int {
		return (int(a)*(255-int(u)) + int(b)*int(u)) / 255
	}
	return DuRGBA(lerp(ca.R(), cb.R()), lerp(ca.G(), cb.G()), lerp(ca.B(), cb.B()), lerp(ca.A(), cb.A()))
}

var (
	ColorObstacle = DuRGBA(255, 0, 0, 255)
	ColorGround   = DuRGBA(0, 255, 0, 255)
	ColorSlope    = DuRGBA(128, 0, 128, 255)
	ColorCostHigh = DuRGBA(255, 165, 0, 255)
	ColorCostLow  = DuRGBA(255, 255, 0, 255)
	ColorVoid     = DuRGBA(0, 0, 0, 255)
)

// MarkColor returns the debug point color for a mark kind.
func MarkColor(kind navgrid.MarkKind) Colorb {
	switch kind {
	case navgrid.MarkObstacle:
		return ColorObstacle
	case navgrid.MarkGround:
		return ColorGround
	case navgrid.MarkSlope:
		return ColorSlope
	case navgrid.MarkCostHigh:
		return ColorCostHigh
	case navgrid.MarkCostLow:
		return ColorCostLow
	}
	return ColorVoid
}

// CellColor shades a finished cell: red for obstacles, black for cells with
// no ground, otherwise green darkening towards orange as the cost rises.
func CellColor(cell *navgrid.Cell, maxCost int) Colorb {
	if !cell.IsPassable {
		if cell.ExtraCost == 0 {
			return ColorVoid
		}
		return ColorObstacle
	}
	if cell.ExtraCost == 0 || maxCost <= 0 {
		return ColorGround
	}
	u := cell.Cost() * 255 / maxCost
	if u > 255 {
		u = 255
	}
	return DuLerpCol(duMultCol(ColorGround, 200), ColorCostHigh, uint8(u))
}
