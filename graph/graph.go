// Package graph defines the static computation-graph contract consumed by
// the shape inference engine.
//
// A Graph is an ordered sequence of Nodes plus designated input and output
// edges. Edges are represented by Value: an opaque identity created once at
// graph-build time and thereafter only compared by pointer -- the engine
// uses it purely as a map key and never copies it.
//
// Graphs are produced by an external capture/tracing component; the helpers
// here (New, NewValue, AddNode, ...) exist so hosts and tests can assemble
// small graphs by hand. Node order is taken as given: it must respect data
// dependencies, an invariant this package does not verify.
package graph

import (
	"github.com/gomlx/exceptions"
)

// ValueKind is the declared static type of an edge or constant literal.
//
// It routes constant materialization (tensor-typed edges store dimensions,
// everything else stores a scalar/list payload) and tags runtime inputs.
type ValueKind int

const (
	KindInvalid ValueKind = iota
	KindTensor
	KindFloat
	KindInt
	KindBool
	KindIntList
	KindNone
)

var kindNames = [...]string{"invalid", "tensor", "float", "int", "bool", "int-list", "none"}

// String implements stringer.
func (k ValueKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// Value is one data-flow slot: the output of a node (or a graph input) that
// downstream nodes consume. Identity is the pointer itself.
type Value struct {
	name string
	kind ValueKind

	// node that produces this value, nil for graph inputs.
	node *Node
}

// Name returns the debug name given at creation. Names are for diagnostics
// only, they carry no identity.
func (v *Value) Name() string { return v.name }

// Kind returns the declared static type of the edge.
func (v *Value) Kind() ValueKind { return v.kind }

// Node returns the producing node, or nil for graph inputs.
func (v *Value) Node() *Node { return v.node }

// Literal is a constant embedded in an OpTypeConstant node at
// graph-build time.
type Literal struct {
	// Kind selects which of the remaining fields is meaningful:
	// KindFloat and KindNone carry nothing, KindInt and KindBool carry
	// Int (bools as 1/0), KindTensor carries Dims.
	Kind ValueKind
	Int  int64
	Dims []int64
}

// Node is one operator application: a kind tag, ordered input and output
// edges, and a bag of static integer attributes fixed at graph-build time.
type Node struct {
	op      OpType
	inputs  []*Value
	outputs []*Value
	attrs   map[string]int64
	literal *Literal
}

// Op returns the operator kind tag.
func (n *Node) Op() OpType { return n.op }

// Inputs returns the ordered input edges. The slice is owned by the node,
// callers must not mutate it.
func (n *Node) Inputs() []*Value { return n.inputs }

// Outputs returns the ordered output edges, owned by the node.
func (n *Node) Outputs() []*Value { return n.outputs }

// Int returns the named integer attribute. A missing attribute is a
// graph-construction defect and panics: rules only ask for attributes the
// operator kind is defined to carry.
func (n *Node) Int(name string) int64 {
	v, found := n.attrs[name]
	if !found {
		exceptions.Panicf("node %s has no attribute %q", n.op, name)
	}
	return v
}

// SetInt sets the named integer attribute and returns the node, for
// chaining during graph construction.
func (n *Node) SetInt(name string, value int64) *Node {
	if n.attrs == nil {
		n.attrs = make(map[string]int64)
	}
	n.attrs[name] = value
	return n
}

// Literal returns the embedded constant, or nil if the node carries none.
// A constant node without a literal materializes a none value.
func (n *Node) Literal() *Literal { return n.literal }

// SetLiteral attaches the constant literal, for chaining.
func (n *Node) SetLiteral(lit *Literal) *Node {
	n.literal = lit
	return n
}

// AddOutput creates a new edge produced by this node, appends it to the
// node's outputs and returns it.
func (n *Node) AddOutput(name string, kind ValueKind) *Value {
	v := &Value{name: name, kind: kind, node: n}
	n.outputs = append(n.outputs, v)
	return v
}

// Graph is an ordered sequence of nodes plus the designated input and
// output edge lists.
type Graph struct {
	name    string
	nodes   []*Node
	inputs  []*Value
	outputs []*Value
}

// New creates an empty graph with the given debug name.
func New(name string) *Graph {
	return &Graph{name: name}
}

// Name returns the graph's debug name.
func (g *Graph) Name() string { return g.name }

// Nodes returns the nodes in the order they were added, which callers must
// ensure is a valid topological order.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Inputs returns the declared graph input edges, in order.
func (g *Graph) Inputs() []*Value { return g.inputs }

// Outputs returns the declared graph output edges, in order.
func (g *Graph) Outputs() []*Value { return g.outputs }

// Input creates a new graph input edge and appends it to the declared
// input list.
func (g *Graph) Input(name string, kind ValueKind) *Value {
	v := &Value{name: name, kind: kind}
	g.inputs = append(g.inputs, v)
	return v
}

// AddNode appends a node of the given operator kind consuming the given
// edges. Outputs are declared separately with Node.AddOutput.
func (g *Graph) AddNode(op OpType, inputs ...*Value) *Node {
	n := &Node{op: op, inputs: inputs}
	g.nodes = append(g.nodes, n)
	return n
}

// MarkOutput appends the edge to the declared graph output list.
func (g *Graph) MarkOutput(v *Value) {
	g.outputs = append(g.outputs, v)
}
