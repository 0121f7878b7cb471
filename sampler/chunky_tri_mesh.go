package sampler

import (
	"math"

	"github.com/gorustyt/gonavgrid/common"
)

// chunkyTriMesh buckets triangles by their xy footprint so a vertical probe
// only tests the triangles of one chunk.
type chunkyTriMesh struct {
	verts     []common.Vec3
	tris      []int
	bmin      common.Vec2
	chunkSize float32
	width     int
	height    int
	chunks    [][]int ///< Triangle ids per chunk. [Size: width*height]
}

func newChunkyTriMesh(verts []common.Vec3, tris []int, chunkSize float32) *chunkyTriMesh {
	cm := &chunkyTriMesh{verts: verts, tris: tris, chunkSize: chunkSize}
	ntris := len(tris) / 3
	if ntris == 0 {
		return cm
	}

	bmin := common.Vec2{math.MaxFloat32, math.MaxFloat32}
	bmax := common.Vec2{-math.MaxFloat32, -math.MaxFloat32}
	for _, v := range verts {
		bmin[0], bmin[1] = min(bmin[0], v[0]), min(bmin[1], v[1])
		bmax[0], bmax[1] = max(bmax[0], v[0]), max(bmax[1], v[1])
	}
	if chunkSize <= 0 {
		chunkSize = max(bmax[0]-bmin[0], bmax[1]-bmin[1], 1)
		cm.chunkSize = chunkSize
	}
	cm.bmin = bmin
	cm.width = int((bmax[0]-bmin[0])/chunkSize) + 1
	cm.height = int((bmax[1]-bmin[1])/chunkSize) + 1
	cm.chunks = make([][]int, cm.width*cm.height)

	for i := 0; i < ntris; i++ {
		tmin, tmax := cm.triBounds(i)
		x0, y0 := cm.chunkCoord(tmin)
		x1, y1 := cm.chunkCoord(tmax)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				cm.chunks[x+y*cm.width] = append(cm.chunks[x+y*cm.width], i)
			}
		}
	}
	return cm
}

func (cm *chunkyTriMesh) triBounds(i int) (bmin, bmax common.Vec2) {
	t := cm.tris[i*3 : i*3+3]
	v := cm.verts[t[0]]
	bmin = common.Vec2{v[0], v[1]}
	bmax = bmin
	for j := 1; j < 3; j++ {
		v = cm.verts[t[j]]
		bmin[0], bmin[1] = min(bmin[0], v[0]), min(bmin[1], v[1])
		bmax[0], bmax[1] = max(bmax[0], v[0]), max(bmax[1], v[1])
	}
	return bmin, bmax
}

func (cm *chunkyTriMesh) chunkCoord(p common.Vec2) (int, int) {
	x := int((p[0] - cm.bmin[0]) / cm.chunkSize)
	y := int((p[1] - cm.bmin[1]) / cm.chunkSize)
	return common.Clamp(x, 0, cm.width-1), common.Clamp(y, 0, cm.height-1)
}

// trisAt returns the ids of triangles whose footprint chunk holds p, nil when
// p is outside the mesh bounds.
func (cm *chunkyTriMesh) trisAt(p common.Vec2) []int {
	if len(cm.chunks) == 0 {
		return nil
	}
	if p[0] < cm.bmin[0] || p[1] < cm.bmin[1] {
		return nil
	}
	x := int((p[0] - cm.bmin[0]) / cm.chunkSize)
	y := int((p[1] - cm.bmin[1]) / cm.chunkSize)
	if x >= cm.width || y >= cm.height {
		return nil
	}
	return cm.chunks[x+y*cm.width]
}

// raycastDown returns the highest surface z at p within [bottom, top].
func (cm *chunkyTriMesh) raycastDown(p common.Vec2, top, bottom float32) (float32, bool) {
	q := common.Vec3{p[0], p[1], 0}
	best := float32(0)
	found := false
	for _, i := range cm.trisAt(p) {
		t := cm.tris[i*3 : i*3+3]
		h, ok := common.ClosestHeightPointTriangle(q, cm.verts[t[0]], cm.verts[t[1]], cm.verts[t[2]])
		if !ok || h > top || h < bottom {
			continue
		}
		if !found || h > best {
			best = h
			found = true
		}
	}
	return best, found
}
