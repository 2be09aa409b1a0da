package game

import (
	"errors"
	"fmt"
)

var ErrMalformedTree = errors.New("malformed tree")

// MalformedTreeError reports a structural violation found while building a Tree.
type MalformedTreeError struct {
	Node   NodeID
	Reason string
}

func (e *MalformedTreeError) Error() string {
	return fmt.Sprintf("%s: node %d: %s", ErrMalformedTree, e.Node, e.Reason)
}

func (e *MalformedTreeError) Unwrap() error {
	return ErrMalformedTree
}

func malformed(id NodeID, reason string) error {
	return &MalformedTreeError{Node: id, Reason: reason}
}
