package sampler

import (
	"math"

	"github.com/gorustyt/gonavgrid/common"
	"github.com/gorustyt/gonavgrid/navgrid"
)

const (
	DefaultTraceTop    = 1000
	DefaultTraceBottom = -1000
	DefaultChunkSize   = 256
)

// MeshSampler answers vertical probes against triangle meshes grouped by
// probe class. A probe traces from TraceTop down to TraceBottom and reports
// the highest surface hit.
type MeshSampler struct {
	layers      map[navgrid.ProbeClass][]*chunkyTriMesh
	traceTop    float32
	traceBottom float32
	chunkSize   float32
	bmin, bmax  common.Vec3
	hasBounds   bool
}

func NewMeshSampler(traceTop, traceBottom, chunkSize float32) *MeshSampler {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &MeshSampler{
		layers:      make(map[navgrid.ProbeClass][]*chunkyTriMesh),
		traceTop:    traceTop,
		traceBottom: traceBottom,
		chunkSize:   chunkSize,
	}
}

// AddMesh registers a mesh for the probe classes listed.
func (s *MeshSampler) AddMesh(verts []common.Vec3, tris []int, classes ...navgrid.ProbeClass) {
	cm := newChunkyTriMesh(verts, tris, s.chunkSize)
	for _, class := range classes {
		s.layers[class] = append(s.layers[class], cm)
	}
	for _, v := range verts {
		if !s.hasBounds {
			s.bmin, s.bmax = v, v
			s.hasBounds = true
			continue
		}
		for k := 0; k < 3; k++ {
			s.bmin[k] = min(s.bmin[k], v[k])
			s.bmax[k] = max(s.bmax[k], v[k])
		}
	}
}

// Bounds returns the center and half extents of every registered vertex.
func (s *MeshSampler) Bounds() (origin, extent common.Vec3, ok bool) {
	if !s.hasBounds {
		return origin, extent, false
	}
	origin = s.bmin.Add(s.bmax).Mul(0.5)
	extent = s.bmax.Sub(s.bmin).Mul(0.5)
	return origin, extent, true
}

func (s *MeshSampler) Probe(x, y float64, class navgrid.ProbeClass) (navgrid.ProbeHit, error) {
	p := common.Vec2{float32(x), float32(y)}
	best := float32(-math.MaxFloat32)
	found := false
	for _, cm := range s.layers[class] {
		if h, ok := cm.raycastDown(p, s.traceTop, s.traceBottom); ok && h > best {
			best = h
			found = true
		}
	}
	if !found {
		return navgrid.ProbeHit{}, nil
	}
	return navgrid.ProbeHit{Blocking: true, ImpactHeight: float64(best)}, nil
}
