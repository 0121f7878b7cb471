package navgrid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorustyt/gonavgrid/common"
	"github.com/gorustyt/gonavgrid/common/message"
	"github.com/gorustyt/gonavgrid/common/rw"
	"go.uber.org/multierr"
	"google.golang.org/protobuf/encoding/protowire"
)

var (
	ErrBadHeader     = errors.New("navgrid: bad grid header")
	ErrBadRecord     = errors.New("navgrid: bad cell record")
	ErrUnknownFormat = errors.New("navgrid: unknown output format")
)

// Format is an on-disk encoding of a GridField.
type Format int

const (
	FormatText Format = iota
	FormatBin
	FormatProto
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatBin:
		return "bin"
	case FormatProto:
		return "proto"
	}
	return "unknown"
}

func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "text":
		return FormatText, nil
	case "bin":
		return FormatBin, nil
	case "proto":
		return FormatProto, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// checkSize rejects dimensions whose cell count is negative or overflows int.
func checkSize(rows, cols int) error {
	if rows < 0 || cols < 0 || (cols != 0 && rows > math.MaxInt/cols) {
		return fmt.Errorf("%w: bad size %dx%d", ErrBadHeader, rows, cols)
	}
	return nil
}

// EncodeText writes the newline delimited text layout:
//
//	origin.x origin.y origin.z
//	extent.x extent.y extent.z
//	cellSpacing
//	rows
//	cols
//	posX posY height isPassable extraCost   (rows*cols lines, row-major)
//
// legacyHeight writes the height of cell (0,0) into every record, as older
// generators did.
func (g *GridField) EncodeText(w io.Writer, legacyHeight bool) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%f %f %f\n", g.Origin[0], g.Origin[1], g.Origin[2])
	fmt.Fprintf(bw, "%f %f %f\n", g.Extent[0], g.Extent[1], g.Extent[2])
	fmt.Fprintf(bw, "%d\n%d\n%d\n", g.CellSpacing, g.Rows, g.Cols)
	for i := range g.Cells {
		cell := &g.Cells[i]
		height := cell.Height
		if legacyHeight {
			height = g.Cells[0].Height
		}
		fmt.Fprintf(bw, "%d %d %f %d %d\n",
			cell.Pos.X, cell.Pos.Y, height, common.BoolToInt(cell.IsPassable), cell.ExtraCost)
	}
	return bw.Flush()
}

// DecodeText reads one grid written by EncodeText.
func DecodeText(r io.Reader) (*GridField, error) {
	sc := bufio.NewScanner(r)
	line := 0
	nextFields := func(n int) ([]string, error) {
		for sc.Scan() {
			line++
			text := strings.TrimSpace(sc.Text())
			if text == "" {
				continue
			}
			fields := strings.Fields(text)
			if len(fields) != n {
				return nil, fmt.Errorf("line %d: want %d fields, got %d", line, n, len(fields))
			}
			return fields, nil
		}
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, io.ErrUnexpectedEOF
	}

	g := &GridField{}
	for _, v := range []*common.Vec3{&g.Origin, &g.Extent} {
		fields, err := nextFields(3)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadHeader, err)
		}
		for k, f := range fields {
			x, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrBadHeader, line, err)
			}
			v[k] = float32(x)
		}
	}
	for _, v := range []*int{&g.CellSpacing, &g.Rows, &g.Cols} {
		fields, err := nextFields(1)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadHeader, err)
		}
		if *v, err = strconv.Atoi(fields[0]); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrBadHeader, line, err)
		}
	}
	if err := checkSize(g.Rows, g.Cols); err != nil {
		return nil, err
	}

	// The header is untrusted, grow as records arrive.
	n := g.Rows * g.Cols
	g.Cells = make([]Cell, 0, min(n, 1<<16))
	for i := 0; i < n; i++ {
		fields, err := nextFields(5)
		if err != nil {
			return nil, fmt.Errorf("%w: cell %d: %w", ErrBadRecord, i, err)
		}
		var cell Cell
		var passable int
		cell.Pos.X, err = strconv.Atoi(fields[0])
		if err == nil {
			cell.Pos.Y, err = strconv.Atoi(fields[1])
		}
		if err == nil {
			cell.Height, err = strconv.ParseFloat(fields[2], 64)
		}
		if err == nil {
			passable, err = strconv.Atoi(fields[3])
		}
		if err == nil {
			cell.ExtraCost, err = strconv.Atoi(fields[4])
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrBadRecord, line, err)
		}
		cell.IsPassable = passable != 0
		g.Cells = append(g.Cells, cell)
	}
	return g, nil
}

const (
	binMagic   = 'N'<<24 | 'G'<<16 | 'R'<<8 | 'D'
	binVersion = 1
)

// ToBin encodes the grid in a little-endian fixed layout.
func (g *GridField) ToBin() []byte {
	w := rw.NewBinWriter()
	w.WriteInt32(int32(binMagic))
	w.WriteInt32(int32(binVersion))
	w.WriteFloat32s(g.Origin[:])
	w.WriteFloat32s(g.Extent[:])
	w.WriteInt32(g.CellSpacing)
	w.WriteInt32(g.Rows)
	w.WriteInt32(g.Cols)
	for i := range g.Cells {
		cell := &g.Cells[i]
		w.WriteInt32(cell.Pos.X)
		w.WriteInt32(cell.Pos.Y)
		w.WriteFloat64(cell.Height)
		w.WriteInt8(cell.IsPassable)
		w.WriteInt32(cell.ExtraCost)
	}
	return w.GetWriteBytes()
}

// cell record: x, y int32; height float64; passable uint8; extraCost int32
const binCellSize = 4 + 4 + 8 + 1 + 4

func (g *GridField) FromBin(data []byte) error {
	r := rw.NewBinReader(data)
	if magic := r.ReadInt32(); magic != binMagic {
		return fmt.Errorf("%w: magic %#x", ErrBadHeader, magic)
	}
	if version := r.ReadInt32(); version != binVersion {
		return fmt.Errorf("%w: version %d", ErrBadHeader, version)
	}
	var origin, extent common.Vec3
	r.ReadFloat32s(origin[:])
	r.ReadFloat32s(extent[:])
	spacing := int(r.ReadInt32())
	rows := int(r.ReadInt32())
	cols := int(r.ReadInt32())
	if err := r.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	if err := checkSize(rows, cols); err != nil {
		return err
	}
	if n := rows * cols; n > r.Size()/binCellSize || n*binCellSize != r.Size() {
		return fmt.Errorf("%w: %dx%d grid with %d bytes of cells", ErrBadHeader, rows, cols, r.Size())
	}
	cells := make([]Cell, rows*cols)
	for i := range cells {
		cells[i].Pos.X = int(r.ReadInt32())
		cells[i].Pos.Y = int(r.ReadInt32())
		cells[i].Height = r.ReadFloat64()
		cells[i].IsPassable = r.ReadUInt8() != 0
		cells[i].ExtraCost = int(r.ReadInt32())
	}
	if err := r.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRecord, err)
	}
	*g = GridField{Origin: origin, Extent: extent, CellSpacing: spacing, Rows: rows, Cols: cols, Cells: cells}
	return nil
}

// Proto field numbers.
const (
	protoOrigin      protowire.Number = 1
	protoExtent      protowire.Number = 2
	protoCellSpacing protowire.Number = 3
	protoRows        protowire.Number = 4
	protoCols        protowire.Number = 5
	protoCell        protowire.Number = 6

	protoCellX         protowire.Number = 1
	protoCellY         protowire.Number = 2
	protoCellHeight    protowire.Number = 3
	protoCellPassable  protowire.Number = 4
	protoCellExtraCost protowire.Number = 5
)

// ToProto encodes the grid in protobuf wire format.
func (g *GridField) ToProto() []byte {
	e := message.NewEncoder()
	vec := func(v common.Vec3) func(*message.Encoder) {
		return func(sub *message.Encoder) {
			for k := range v {
				sub.Float(protowire.Number(k+1), v[k])
			}
		}
	}
	e.Message(protoOrigin, vec(g.Origin))
	e.Message(protoExtent, vec(g.Extent))
	e.Int(protoCellSpacing, int64(g.CellSpacing))
	e.Int(protoRows, int64(g.Rows))
	e.Int(protoCols, int64(g.Cols))
	for i := range g.Cells {
		cell := &g.Cells[i]
		e.Message(protoCell, func(sub *message.Encoder) {
			sub.Int(protoCellX, int64(cell.Pos.X))
			sub.Int(protoCellY, int64(cell.Pos.Y))
			sub.Double(protoCellHeight, cell.Height)
			sub.Bool(protoCellPassable, cell.IsPassable)
			sub.Int(protoCellExtraCost, int64(cell.ExtraCost))
		})
	}
	return e.Bytes()
}

func (g *GridField) FromProto(data []byte) error {
	out := GridField{}
	decodeVec := func(b []byte, v *common.Vec3) error {
		return message.Decode(b, func(f message.Field) error {
			if f.Num >= 1 && f.Num <= 3 && f.Type == protowire.Fixed32Type {
				v[f.Num-1] = f.Float()
			}
			return nil
		})
	}
	err := message.Decode(data, func(f message.Field) error {
		switch f.Num {
		case protoOrigin:
			return decodeVec(f.Bytes, &out.Origin)
		case protoExtent:
			return decodeVec(f.Bytes, &out.Extent)
		case protoCellSpacing:
			out.CellSpacing = int(f.Int())
		case protoRows:
			out.Rows = int(f.Int())
		case protoCols:
			out.Cols = int(f.Int())
		case protoCell:
			var cell Cell
			err := message.Decode(f.Bytes, func(cf message.Field) error {
				switch cf.Num {
				case protoCellX:
					cell.Pos.X = int(cf.Int())
				case protoCellY:
					cell.Pos.Y = int(cf.Int())
				case protoCellHeight:
					cell.Height = cf.Double()
				case protoCellPassable:
					cell.IsPassable = cf.Bool()
				case protoCellExtraCost:
					cell.ExtraCost = int(cf.Int())
				}
				return nil
			})
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBadRecord, err)
			}
			out.Cells = append(out.Cells, cell)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := checkSize(out.Rows, out.Cols); err != nil {
		return err
	}
	if len(out.Cells) != out.Rows*out.Cols {
		return fmt.Errorf("%w: %dx%d grid with %d cells", ErrBadHeader, out.Rows, out.Cols, len(out.Cells))
	}
	*g = out
	return nil
}

// Encode writes g to w in the given format.
func (g *GridField) Encode(w io.Writer, format Format, legacyHeight bool) error {
	switch format {
	case FormatText:
		return g.EncodeText(w, legacyHeight)
	case FormatBin:
		_, err := w.Write(g.ToBin())
		return err
	case FormatProto:
		_, err := w.Write(g.ToProto())
		return err
	}
	return fmt.Errorf("%w: %d", ErrUnknownFormat, format)
}

// Exporter persists a finished grid.
type Exporter interface {
	Export(g *GridField) error
}

type ExporterFunc func(g *GridField) error

func (f ExporterFunc) Export(g *GridField) error {
	return f(g)
}

// FileExporter appends the grid to Path, creating the file and its directory
// when missing. Existing content is never truncated.
type FileExporter struct {
	Path         string
	Format       Format
	LegacyHeight bool
}

func (e *FileExporter) Export(g *GridField) (err error) {
	if dir := filepath.Dir(e.Path); dir != "" {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("navgrid: export %s: %w", e.Path, err)
		}
	}
	f, err := os.OpenFile(e.Path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("navgrid: export %s: %w", e.Path, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	if err = g.Encode(f, e.Format, e.LegacyHeight); err != nil {
		return fmt.Errorf("navgrid: export %s: %w", e.Path, err)
	}
	return nil
}
