package game

import (
	"fmt"
	"math"
	"slices"
)

// NodeID identifies a node within a Tree. The root is always 0.
type NodeID int

const RootID NodeID = 0

// Role classifies a node: the player to move at an internal node, or Leaf.
type Role int

const (
	Max Role = iota
	Min
	Leaf
)

func (r Role) String() string {
	switch r {
	case Max:
		return "max"
	case Min:
		return "min"
	case Leaf:
		return "leaf"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Opponent returns the other player. Leaf has no opponent and is returned as is.
func (r Role) Opponent() Role {
	switch r {
	case Max:
		return Min
	case Min:
		return Max
	default:
		return r
	}
}

type node struct {
	role     Role
	side     Role // Max or Min, assigned by depth alternation, leaves included
	parent   NodeID
	children []NodeID
	value    float64 // terminal value, leaves only
	depth    int
}

// Tree is an immutable, fully materialized game tree rooted at RootID.
// Search results are kept outside the tree, so a Tree can be shared by
// concurrent searches.
type Tree struct {
	nodes    map[NodeID]*node
	leaves   []NodeID // depth-first, left to right
	maxDepth int
}

type BuildOption func(*buildConfig)

type buildConfig struct {
	rootRole Role
}

// WithRootRole sets the mover at the root. Only Max and Min are accepted; the
// default is Max.
func WithRootRole(role Role) BuildOption {
	return func(c *buildConfig) {
		if role == Max || role == Min {
			c.rootRole = role
		}
	}
}

// Build constructs a Tree from an adjacency mapping (parent -> ordered
// children) and the terminal values of the leaves. Roles alternate by depth
// starting from the root role.
func Build(adjacency map[NodeID][]NodeID, leafValues map[NodeID]float64, options ...BuildOption) (*Tree, error) {
	cfg := buildConfig{rootRole: Max}
	for _, option := range options {
		option(&cfg)
	}

	_, rootIsParent := adjacency[RootID]
	_, rootIsLeaf := leafValues[RootID]
	if !rootIsParent && !rootIsLeaf {
		return nil, malformed(RootID, "root is neither a parent nor a leaf")
	}

	parents := make(map[NodeID]NodeID, len(adjacency)+len(leafValues))
	for id, children := range adjacency {
		if _, ok := leafValues[id]; ok {
			return nil, malformed(id, "node is both a parent and a leaf")
		}
		if len(children) == 0 {
			return nil, malformed(id, "internal node has no children")
		}
		for _, child := range children {
			if child == RootID {
				return nil, malformed(child, fmt.Sprintf("root is listed as a child of node %d", id))
			}
			if p, ok := parents[child]; ok {
				return nil, malformed(child, fmt.Sprintf("node has more than one parent (%d and %d)", p, id))
			}
			_, isParent := adjacency[child]
			_, isLeaf := leafValues[child]
			if !isParent && !isLeaf {
				return nil, malformed(child, fmt.Sprintf("child of node %d is neither a parent nor a leaf", id))
			}
			parents[child] = id
		}
	}
	for id, v := range leafValues {
		if math.IsNaN(v) {
			return nil, malformed(id, "leaf value is NaN")
		}
	}

	t := &Tree{nodes: make(map[NodeID]*node, len(adjacency)+len(leafValues))}

	// Explicit stack, children pushed in reverse so leaves come out left to right
	type frame struct {
		id     NodeID
		parent NodeID
		side   Role
		depth  int
	}
	stack := []frame{{id: RootID, parent: RootID, side: cfg.rootRole}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &node{side: f.side, parent: f.parent, depth: f.depth}
		if children, ok := adjacency[f.id]; ok {
			n.role = f.side
			n.children = slices.Clone(children)
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, frame{id: children[i], parent: f.id, side: f.side.Opponent(), depth: f.depth + 1})
			}
		} else {
			n.role = Leaf
			n.value = leafValues[f.id]
			t.leaves = append(t.leaves, f.id)
		}
		t.nodes[f.id] = n
		t.maxDepth = max(t.maxDepth, f.depth)
	}

	// Parent uniqueness and no edge into the root make every reachable set a
	// tree, so anything left over is disconnected from the root.
	for id := range adjacency {
		if _, ok := t.nodes[id]; !ok {
			return nil, malformed(id, "node is not reachable from the root")
		}
	}
	for id := range leafValues {
		if _, ok := t.nodes[id]; !ok {
			return nil, malformed(id, "node is not reachable from the root")
		}
	}

	return t, nil
}

func (t *Tree) get(id NodeID) *node {
	n, ok := t.nodes[id]
	if !ok {
		panic(fmt.Sprintf("node %d is not in the tree", id))
	}
	return n
}

func (t *Tree) Root() NodeID {
	return RootID
}

func (t *Tree) Len() int {
	return len(t.nodes)
}

// Depth returns the length of the longest root-to-leaf path.
func (t *Tree) Depth() int {
	return t.maxDepth
}

func (t *Tree) Contains(id NodeID) bool {
	_, ok := t.nodes[id]
	return ok
}

// ChildrenOf returns the ordered children of id. The slice is a copy.
// Panics if id is not in the tree.
func (t *Tree) ChildrenOf(id NodeID) []NodeID {
	return slices.Clone(t.get(id).children)
}

func (t *Tree) RoleOf(id NodeID) Role {
	return t.get(id).role
}

// SideOf returns the player the alternation rule assigns to id. Unlike
// RoleOf it is Max or Min for leaves too.
func (t *Tree) SideOf(id NodeID) Role {
	return t.get(id).side
}

// TerminalValue returns the value of a leaf. ok is false for internal nodes.
func (t *Tree) TerminalValue(id NodeID) (value float64, ok bool) {
	n := t.get(id)
	if n.role != Leaf {
		return 0, false
	}
	return n.value, true
}

// Parent returns the parent of id; ok is false for the root.
func (t *Tree) Parent(id NodeID) (parent NodeID, ok bool) {
	if id == RootID {
		return RootID, false
	}
	return t.get(id).parent, true
}

func (t *Tree) IsEdge(parent, child NodeID) bool {
	if child == RootID || !t.Contains(child) || !t.Contains(parent) {
		return false
	}
	return t.nodes[child].parent == parent
}

// Leaves returns every leaf id in depth-first, left-to-right order.
func (t *Tree) Leaves() []NodeID {
	return slices.Clone(t.leaves)
}
