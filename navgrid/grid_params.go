package navgrid

import (
	"errors"
	"fmt"
)

// DiffusionMode selects how queued obstacles spread their cost.
type DiffusionMode int

const (
	// DiffusionSequential floods one obstacle at a time in queue order.
	DiffusionSequential DiffusionMode = iota
	// DiffusionSynchronized expands every obstacle together, highest cost level first.
	DiffusionSynchronized
)

func (m DiffusionMode) String() string {
	switch m {
	case DiffusionSequential:
		return "sequential"
	case DiffusionSynchronized:
		return "synchronized"
	}
	return "unknown"
}

func ParseDiffusionMode(s string) (DiffusionMode, error) {
	switch s {
	case "", "sequential":
		return DiffusionSequential, nil
	case "synchronized":
		return DiffusionSynchronized, nil
	}
	return 0, fmt.Errorf("navgrid: unknown diffusion mode %q", s)
}

const (
	DefaultObstacleCost          = 12
	DefaultHeightDifferenceLimit = 20
	DefaultCellsPerStep          = 200
	DefaultObstaclesPerStep      = 100

	// Diffusion stops once the decayed cost falls below this floor.
	minDiffusedCost = 4
	// Cost lost per ring.
	costDecay = 2
)

var ErrBadParams = errors.New("navgrid: invalid params")

// Params holds the tunables of a generation run.
type Params struct {
	ObstacleCost          int           ///< Cost of a hard obstacle in source units.
	HeightDifferenceLimit float64       ///< Max height rise to an orthogonal neighbour.
	CellsPerStep          int           ///< Passability scan budget per step.
	HeightCellsPerStep    int           ///< Height scan budget per step.
	ObstaclesPerStep      int           ///< Diffusion budget per step, in floods.
	DiffusionMode         DiffusionMode ///< See DiffusionMode.
}

func DefaultParams() Params {
	return Params{
		ObstacleCost:          DefaultObstacleCost,
		HeightDifferenceLimit: DefaultHeightDifferenceLimit,
		CellsPerStep:          DefaultCellsPerStep,
		HeightCellsPerStep:    DefaultCellsPerStep,
		ObstaclesPerStep:      DefaultObstaclesPerStep,
		DiffusionMode:         DiffusionSequential,
	}
}

func (p Params) Validate() error {
	if p.ObstacleCost < 0 {
		return fmt.Errorf("%w: obstacle cost %d", ErrBadParams, p.ObstacleCost)
	}
	if p.CellsPerStep <= 0 || p.HeightCellsPerStep <= 0 || p.ObstaclesPerStep <= 0 {
		return fmt.Errorf("%w: step budgets must be positive", ErrBadParams)
	}
	if p.DiffusionMode != DiffusionSequential && p.DiffusionMode != DiffusionSynchronized {
		return fmt.Errorf("%w: diffusion mode %d", ErrBadParams, p.DiffusionMode)
	}
	return nil
}
