// Package kdl implements a small KDL document parser sufficient for zel2wez layout files.
//
// It deliberately parses a pragmatic subset of KDL:
//   - bare identifiers and double-quoted strings (with the usual escapes)
//   - numbers, booleans, and null captured verbatim as string values
//   - key=value properties (last write wins; keys are unique per node)
//   - { ... } children blocks, newline/";" node terminators
//   - "//" line comments, nested "/* */" block comments, "/-" slash-dash skips
//   - "\" line continuations
//
// Goals:
//   - Produce an immutable, generic node tree that downstream packages consume
//     without knowing anything about KDL syntax.
//   - Report every syntax error with line/column instead of stopping at the first,
//     so a broken layout file yields one useful diagnostic pass.
//
// Non-goals: type annotations, raw strings, multi-line strings, full escape coverage.
package kdl

// Document is a parsed KDL document: an ordered list of top-level nodes.
type Document struct {
	Nodes []*Node
}

// Node is a generic document node. It carries no layout semantics; pkg/layout
// interprets names, properties, and values.
type Node struct {
	// Name is the node identifier (e.g. "layout", "pane", "args").
	Name string

	// Props maps property keys to their (stringified) values. Keys are unique.
	Props map[string]string

	// Args are the node's positional values, in document order.
	Args []string

	// Children are nested nodes, in document order.
	Children []*Node
}

// Prop returns the value of the named property, or "" when absent.
func (n *Node) Prop(key string) string {
	if n == nil || n.Props == nil {
		return ""
	}
	return n.Props[key]
}

// Child returns the first child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Named returns all children with the given name, preserving document order.
func (n *Node) Named(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// First returns the first top-level node with the given name, or nil.
func (d *Document) First(name string) *Node {
	if d == nil {
		return nil
	}
	for _, n := range d.Nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}
