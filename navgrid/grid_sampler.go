package navgrid

// ProbeClass selects the collision filter the host applies to a vertical probe.
type ProbeClass int

const (
	ProbeObstacle ProbeClass = iota
	ProbeGround
)

func (c ProbeClass) String() string {
	switch c {
	case ProbeObstacle:
		return "obstacle"
	case ProbeGround:
		return "ground"
	}
	return "unknown"
}

type ProbeHit struct {
	Blocking     bool    ///< The vertical probe hit a surface.
	ImpactHeight float64 ///< Z of the impact point when Blocking.
}

// TerrainSampler answers vertical probes at a horizontal world position.
type TerrainSampler interface {
	Probe(x, y float64, class ProbeClass) (ProbeHit, error)
}

// SamplerFunc adapts a function to TerrainSampler.
type SamplerFunc func(x, y float64, class ProbeClass) (ProbeHit, error)

func (f SamplerFunc) Probe(x, y float64, class ProbeClass) (ProbeHit, error) {
	return f(x, y, class)
}
