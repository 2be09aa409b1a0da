package searcher

import (
	"errors"
	"fmt"

	"gametree/game"
)

// Formulation selects how alpha-beta bookkeeping is done.
type Formulation string

const (
	Minimax Formulation = "minimax" // Separate MAX and MIN branches, values from MAX's view
	Negamax Formulation = "negamax" // Single maximizing branch, values from the mover's view
)

var (
	ErrUnsupportedFormulation = errors.New("unsupported formulation")
	ErrReconstruction         = errors.New("principal variation reconstruction failed")
)

type UnsupportedFormulationError struct {
	Formulation string
}

func (e *UnsupportedFormulationError) Error() string {
	return fmt.Sprintf("%s: %q (want %q or %q)", ErrUnsupportedFormulation, e.Formulation, Minimax, Negamax)
}

func (e *UnsupportedFormulationError) Unwrap() error {
	return ErrUnsupportedFormulation
}

// ReconstructionError means no child of Node carried the value the walk was
// looking for, i.e. the annotations do not match the tree.
type ReconstructionError struct {
	Node   game.NodeID
	Target float64
}

func (e *ReconstructionError) Error() string {
	return fmt.Sprintf("%s: no child of node %d is annotated with %v", ErrReconstruction, e.Node, e.Target)
}

func (e *ReconstructionError) Unwrap() error {
	return ErrReconstruction
}

func ParseFormulation(s string) (Formulation, error) {
	switch f := Formulation(s); f {
	case Minimax, Negamax:
		return f, nil
	default:
		return "", &UnsupportedFormulationError{Formulation: s}
	}
}

// Annotations maps node ids to the values computed for them by one search.
// Minimax stores values from MAX's view; negamax stores mover-relative values.
// Nodes skipped by pruning have no entry.
type Annotations map[game.NodeID]float64

// Annotate records value for id, overwriting any earlier value.
func (a Annotations) Annotate(id game.NodeID, value float64) {
	a[id] = value
}

func (a Annotations) Value(id game.NodeID) (float64, bool) {
	v, ok := a[id]
	return v, ok
}
