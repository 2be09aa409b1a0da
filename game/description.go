package game

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Description is the serialized form of a tree as handed over by the
// presentation layer:
//
//	root_role: max
//	edges:
//	  0: [1, 2]
//	  1: [3, 4]
//	leaves:
//	  2: 7
//	  3: 3
//	  4: 5
type Description struct {
	RootRole string              `yaml:"root_role,omitempty"`
	Edges    map[NodeID][]NodeID `yaml:"edges"`
	Leaves   map[NodeID]float64  `yaml:"leaves"`
}

// LoadDescription decodes a YAML tree description and builds the tree.
func LoadDescription(r io.Reader) (*Tree, error) {
	var d Description
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode tree description: %w", err)
	}
	return d.Build()
}

func (d Description) Build() (*Tree, error) {
	var options []BuildOption
	switch d.RootRole {
	case "", "max":
		options = append(options, WithRootRole(Max))
	case "min":
		options = append(options, WithRootRole(Min))
	default:
		return nil, fmt.Errorf("unknown root role %q", d.RootRole)
	}
	return Build(d.Edges, d.Leaves, options...)
}

// Describe returns the Description a tree was built from.
func Describe(t *Tree) Description {
	d := Description{
		RootRole: t.SideOf(RootID).String(),
		Edges:    make(map[NodeID][]NodeID),
		Leaves:   make(map[NodeID]float64),
	}
	for id, n := range t.nodes {
		if n.role == Leaf {
			d.Leaves[id] = n.value
		} else {
			d.Edges[id] = t.ChildrenOf(id)
		}
	}
	return d
}

// WriteDescription encodes t as YAML.
func WriteDescription(w io.Writer, t *Tree) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	if err := encoder.Encode(Describe(t)); err != nil {
		return fmt.Errorf("failed to encode tree description: %w", err)
	}
	return nil
}
