package debug_utils

import (
	"image"
	"image/png"
	"io"

	"github.com/gorustyt/gonavgrid/navgrid"
	"golang.org/x/image/draw"
)

// DrawHeatmap renders one pixel per cell, row 0 at the top, then scales the
// image by scale with nearest neighbour sampling.
func DrawHeatmap(field *navgrid.GridField, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	maxCost := 0
	for i := range field.Cells {
		if field.Cells[i].IsPassable && field.Cells[i].Cost() > maxCost {
			maxCost = field.Cells[i].Cost()
		}
	}

	src := image.NewRGBA(image.Rect(0, 0, field.Cols, field.Rows))
	for i := 0; i < field.Rows; i++ {
		for j := 0; j < field.Cols; j++ {
			src.SetRGBA(j, i, CellColor(field.At(i, j), maxCost).RGBA())
		}
	}
	if scale == 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, field.Cols*scale, field.Rows*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// WriteHeatmap encodes DrawHeatmap as PNG.
func WriteHeatmap(w io.Writer, field *navgrid.GridField, scale int) error {
	return png.Encode(w, DrawHeatmap(field, scale))
}
