// Package layout defines the pane-tree model that zel2wez builds from a layout
// document and hands to the Lua generator.
//
// Files (project-local):
//   - layout.kdl (primary, zellij-style KDL)
//   - layout.yaml / layout.yml / layout.json (same vocabulary, typed schema)
//
// Goals:
//   - Provide a declarative, format-agnostic pane tree: name, command, args,
//     split direction, ordered children.
//   - Tolerate sparse input: missing name/command are absent values, not errors.
//
// Non-goals:
//   - Validating split directions (they are opaque data passed through).
//   - Resolving identifier collisions between panes with the same sanitized
//     name; the generated script simply shadows the earlier variable.
package layout

import (
	"errors"
	"strings"
)

// ErrNoLayout is returned when a document parses but contains no top-level
// "layout" node. No output should be written in that case.
var ErrNoLayout = errors.New("document has no top-level layout node")

// Pane is a rectangular terminal region that may run a command and may be
// split into further panes. Child order equals document order and decides the
// split order downstream.
type Pane struct {
	// Name is an optional identifier, used for display and for deriving a
	// script-safe variable name.
	Name string

	// Command is the optional program to launch in this pane.
	Command string

	// Args are the command's arguments, meaningful only when Command is set.
	// They are stored verbatim; quoting/escaping is the emitter's job.
	Args []string

	// SplitDirection is carried through unvalidated ("vertical", "horizontal",
	// or whatever the document says). The generator derives actual directions
	// from tree position, not from this field.
	SplitDirection string

	// Children are nested panes in document order.
	Children []*Pane
}

// Leaf reports whether the pane has no nested panes.
func (p *Pane) Leaf() bool {
	return p == nil || len(p.Children) == 0
}

// Count returns the number of panes in the subtree rooted at p, excluding p
// itself. For the synthetic root this is the total pane count of the document.
func (p *Pane) Count() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, c := range p.Children {
		n += 1 + c.Count()
	}
	return n
}

// Sanitize converts a pane name into a script-safe identifier fragment:
// lower-cased, with every character outside [a-zA-Z0-9_] replaced by '_'.
// It is total and idempotent; the result matches ^[a-z0-9_]*$.
func Sanitize(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
