package maze

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAlgorithm is returned for an algorithm name that has no implementation.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithm selects the growth strategy a Generator runs.
type Algorithm string

const (
	// AlgorithmPrim grows the maze from a random start cell by repeatedly
	// attaching a uniformly chosen frontier cell to a random in-maze neighbor.
	AlgorithmPrim Algorithm = "prim"
)

// DefaultAlgorithm is used when none is configured.
const DefaultAlgorithm = AlgorithmPrim

// Algorithms lists every supported algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmPrim}
}

// ParseAlgorithm resolves a case-insensitive algorithm name.
// An empty name selects DefaultAlgorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultAlgorithm, nil
	}
	for _, a := range Algorithms() {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("maze: %q: %w", name, ErrUnknownAlgorithm)
}

// String returns the algorithm name.
func (a Algorithm) String() string {
	return string(a)
}

// State is the lifecycle of a generation run.
type State int32

const (
	// StateIdle means no run has started.
	StateIdle State = iota
	// StateGrowing means the frontier is still being consumed.
	StateGrowing
	// StateComplete means the frontier emptied and the grid is a spanning tree.
	StateComplete
	// StateCancelled means the run stopped early. The grid is valid but
	// partial: some cells may still carry Frontier or be unvisited.
	StateCancelled
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGrowing:
		return "growing"
	case StateComplete:
		return "complete"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal returns true for states a run cannot leave.
func (s State) Terminal() bool {
	return s == StateComplete || s == StateCancelled
}
