package sampler

import (
	"testing"

	"github.com/gorustyt/gonavgrid/navgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeightmapProbe(t *testing.T) {
	h := NewHeightmap(-20, -10, 10, 2, 4)
	h.Set(0, 0, 3)
	h.Set(1, 3, 9)
	h.SetObstacle(1, 3, true)
	h.SetHole(0, 1, true)

	hit, err := h.Probe(-20, -10, navgrid.ProbeGround)
	require.NoError(t, err)
	assert.Equal(t, navgrid.ProbeHit{Blocking: true, ImpactHeight: 3}, hit)

	hit, err = h.Probe(-20, -10, navgrid.ProbeObstacle)
	require.NoError(t, err)
	assert.False(t, hit.Blocking)

	hit, err = h.Probe(15, 5, navgrid.ProbeObstacle)
	require.NoError(t, err)
	assert.Equal(t, navgrid.ProbeHit{Blocking: true, ImpactHeight: 9}, hit)

	hit, err = h.Probe(-5, -5, navgrid.ProbeGround)
	require.NoError(t, err)
	assert.False(t, hit.Blocking)
}

func TestHeightmapOutOfRange(t *testing.T) {
	h := NewHeightmap(0, 0, 10, 2, 2)
	for _, p := range [][2]float64{{-1, 0}, {0, -1}, {20, 0}, {0, 20}} {
		_, err := h.Probe(p[0], p[1], navgrid.ProbeGround)
		assert.ErrorIs(t, err, ErrOutOfRange)
	}
	_, err := (&Heightmap{}).Probe(0, 0, navgrid.ProbeGround)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestHeightmapNilMasks(t *testing.T) {
	h := &Heightmap{Spacing: 1, Rows: 1, Cols: 1, Heights: []float64{4}}
	hit, err := h.Probe(0.5, 0.5, navgrid.ProbeGround)
	require.NoError(t, err)
	assert.Equal(t, 4.0, hit.ImpactHeight)
	hit, err = h.Probe(0.5, 0.5, navgrid.ProbeObstacle)
	require.NoError(t, err)
	assert.False(t, hit.Blocking)
}
