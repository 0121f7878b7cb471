package sampler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gorustyt/gonavgrid/navgrid"
	"gopkg.in/yaml.v3"
)

// SceneMesh is one OBJ file and the probe classes it answers.
type SceneMesh struct {
	File    string   `yaml:"file"`
	Scale   float32  `yaml:"scale"`
	Classes []string `yaml:"classes"`
}

// Scene describes the geometry a MeshSampler is built from.
type Scene struct {
	Meshes []SceneMesh `yaml:"meshes"`
}

// TraceOptions bounds the vertical probes of a MeshSampler.
type TraceOptions struct {
	Top       float32
	Bottom    float32
	ChunkSize float32
}

func DefaultTraceOptions() TraceOptions {
	return TraceOptions{Top: DefaultTraceTop, Bottom: DefaultTraceBottom, ChunkSize: DefaultChunkSize}
}

func parseProbeClass(s string) (navgrid.ProbeClass, error) {
	switch s {
	case "obstacle":
		return navgrid.ProbeObstacle, nil
	case "ground":
		return navgrid.ProbeGround, nil
	}
	return 0, fmt.Errorf("sampler: unknown probe class %q", s)
}

// LoadScene reads a YAML scene file. Mesh paths are relative to the scene file.
func LoadScene(p string, opts TraceOptions) (*MeshSampler, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	scene := &Scene{}
	if err := yaml.Unmarshal(data, scene); err != nil {
		return nil, fmt.Errorf("sampler: scene %s: %w", p, err)
	}
	return scene.Build(filepath.Dir(p), opts)
}

// Build loads every mesh of the scene relative to dir.
func (s *Scene) Build(dir string, opts TraceOptions) (*MeshSampler, error) {
	ms := NewMeshSampler(opts.Top, opts.Bottom, opts.ChunkSize)
	for _, m := range s.Meshes {
		classes := make([]navgrid.ProbeClass, 0, len(m.Classes))
		for _, c := range m.Classes {
			class, err := parseProbeClass(c)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", m.File, err)
			}
			classes = append(classes, class)
		}
		file := m.File
		if !filepath.IsAbs(file) {
			file = filepath.Join(dir, file)
		}
		loader := NewMeshLoaderObj(m.Scale)
		if err := loader.Load(file); err != nil {
			return nil, fmt.Errorf("sampler: %w", err)
		}
		ms.AddMesh(loader.Verts(), loader.Tris(), classes...)
	}
	return ms, nil
}
