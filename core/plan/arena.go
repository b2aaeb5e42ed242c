// Package plan flattens an entity graph into an arena of nodes and orders the
// tables those nodes are written to.
//
// Nodes are addressed by a transient NodeIndex. A Binding records that a
// column of one node must receive the id of another node once that node is
// written. Ids are never stored as cross-pointers between entities.
package plan

import (
	"github.com/stokaro/leaguesync/core/entity"
)

// NodeIndex addresses a node within one Arena.
type NodeIndex int

// NoNode is the parent index of root nodes.
const NoNode NodeIndex = -1

// Binding says column must hold the id of the Target node.
type Binding struct {
	Column string
	Target NodeIndex
}

// Node is one row-to-be.
type Node struct {
	Entity   entity.Entity
	Table    string
	Parent   NodeIndex
	Bindings []Binding

	// ID is the row id once written. Written is false until then, or when the
	// write failed.
	ID      any
	Written bool
}

// Arena owns every node of a plan.
type Arena struct {
	nodes []Node
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Add appends a node for e and returns its index.
func (a *Arena) Add(e entity.Entity, parent NodeIndex, bindings ...Binding) NodeIndex {
	idx := NodeIndex(len(a.nodes))
	a.nodes = append(a.nodes, Node{
		Entity:   e,
		Table:    e.Kind().Table(),
		Parent:   parent,
		Bindings: bindings,
	})
	return idx
}

// Bind adds a binding to node i. Bindings to NoNode are ignored.
func (a *Arena) Bind(i NodeIndex, column string, target NodeIndex) {
	if target == NoNode {
		return
	}
	a.nodes[i].Bindings = append(a.nodes[i].Bindings, Binding{Column: column, Target: target})
}

// Len returns the number of nodes.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Node returns node i. The pointer stays valid until the next Add.
func (a *Arena) Node(i NodeIndex) *Node {
	return &a.nodes[i]
}

// Tables lists the tables of the arena in order of first appearance.
func (a *Arena) Tables() []string {
	seen := make(map[string]bool)
	var tables []string
	for _, n := range a.nodes {
		if seen[n.Table] {
			continue
		}
		seen[n.Table] = true
		tables = append(tables, n.Table)
	}
	return tables
}

// NodesOf returns the indexes of the nodes written to table, in arena order.
func (a *Arena) NodesOf(table string) []NodeIndex {
	var out []NodeIndex
	for i, n := range a.nodes {
		if n.Table == table {
			out = append(out, NodeIndex(i))
		}
	}
	return out
}
