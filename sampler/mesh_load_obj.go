package sampler

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/gorustyt/gonavgrid/common"
)

// 负责加载对象数据
type MeshLoaderObj struct {
	filename string
	scale    float32
	verts    []common.Vec3
	tris     []int
}

func NewMeshLoaderObj(scale float32) *MeshLoaderObj {
	if scale == 0 {
		scale = 1
	}
	return &MeshLoaderObj{scale: scale}
}

func (m *MeshLoaderObj) Verts() []common.Vec3 { return m.verts }
func (m *MeshLoaderObj) Tris() []int          { return m.tris }
func (m *MeshLoaderObj) VertCount() int       { return len(m.verts) }
func (m *MeshLoaderObj) TriCount() int        { return len(m.tris) / 3 }
func (m *MeshLoaderObj) FileName() string     { return m.filename }

func (m *MeshLoaderObj) Load(p string) error {
	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := m.Read(f); err != nil {
		return fmt.Errorf("%s: %w", p, err)
	}
	m.filename = path.Base(p)
	return nil
}

// Read parses vertices and faces from an OBJ stream. Faces with more than
// three vertices are fanned into triangles.
func (m *MeshLoaderObj) Read(r io.Reader) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		row := strings.TrimSpace(sc.Text())
		if row == "" || strings.HasPrefix(row, "#") {
			continue
		}
		if err := m.parseRow(strings.Fields(row)); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return sc.Err()
}

func (m *MeshLoaderObj) parseRow(ss []string) error {
	switch ss[0] {
	case "v":
		return m.parseVertex(ss[1:])
	case "f":
		return m.parseFace(ss[1:])
	}
	return nil
}

func (m *MeshLoaderObj) parseVertex(ss []string) error {
	if len(ss) < 3 {
		return fmt.Errorf("vertex needs 3 coordinates, got %d", len(ss))
	}
	var v common.Vec3
	for i := 0; i < 3; i++ {
		x, err := strconv.ParseFloat(ss[i], 32)
		if err != nil {
			return err
		}
		v[i] = float32(x) * m.scale
	}
	m.verts = append(m.verts, v)
	return nil
}

func (m *MeshLoaderObj) parseFace(ss []string) error {
	data := make([]int, 0, len(ss))
	for _, s := range ss {
		vi, err := strconv.Atoi(strings.Split(s, "/")[0])
		if err != nil {
			return err
		}
		if vi < 0 {
			vi += len(m.verts)
		} else {
			vi--
		}
		data = append(data, vi)
		if len(data) > 32 {
			break
		}
	}
	for i := 2; i < len(data); i++ {
		a, b, c := data[0], data[i-1], data[i]
		n := len(m.verts)
		if a < 0 || a >= n || b < 0 || b >= n || c < 0 || c >= n {
			continue
		}
		m.tris = append(m.tris, a, b, c)
	}
	return nil
}
