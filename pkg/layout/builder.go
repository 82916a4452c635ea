package layout

import (
	"github.com/charmbracelet/log"

	"github.com/wighawag/zel2wez/pkg/kdl"
)

// Document node vocabulary recognized inside "layout".
const (
	nodeLayout = "layout"
	nodePane   = "pane"
	nodeArgs   = "args"

	propName           = "name"
	propCommand        = "command"
	propSplitDirection = "split_direction"
)

// Builder walks a generic document tree and produces the typed pane tree.
// The zero value is not usable; call NewBuilder.
type Builder struct {
	// Log receives debug traces during the walk (depth, names). Informational
	// only; the walk never fails on pane content.
	Log *log.Logger
}

// NewBuilder returns a Builder logging to the default logger.
func NewBuilder() *Builder {
	return &Builder{Log: log.Default()}
}

// FromDocument locates the top-level "layout" node and builds the pane tree
// beneath a synthetic root. The root carries no name or command; it only holds
// the top-level groups and is never emitted as a split.
//
// A document without a "layout" node returns ErrNoLayout.
func (b *Builder) FromDocument(doc *kdl.Document) (*Pane, error) {
	root := doc.First(nodeLayout)
	if root == nil {
		return nil, ErrNoLayout
	}
	synthetic := &Pane{}
	b.buildChildren(synthetic, root.Children, 0)
	return synthetic, nil
}

// buildChildren appends a Pane to parent for every child node named "pane",
// in encounter order. Non-pane nodes are skipped; unknown vocabulary is not an
// error. depth is purely diagnostic.
func (b *Builder) buildChildren(parent *Pane, nodes []*kdl.Node, depth int) {
	for _, n := range nodes {
		if n.Name != nodePane {
			continue
		}

		p := &Pane{
			Name:           n.Prop(propName),
			Command:        n.Prop(propCommand),
			SplitDirection: n.Prop(propSplitDirection),
		}

		// Args only mean something with a command; without one the node's
		// args child is ignored entirely.
		if p.Command != "" {
			if args := n.Child(nodeArgs); args != nil {
				p.Args = append([]string(nil), args.Args...)
			}
		}

		if b.Log != nil {
			b.Log.Debug("pane",
				"depth", depth,
				"name", p.Name,
				"command", p.Command,
				"args", len(p.Args))
		}

		b.buildChildren(p, n.Children, depth+1)
		parent.Children = append(parent.Children, p)
	}
}

// FromDocument builds a pane tree using a default Builder.
func FromDocument(doc *kdl.Document) (*Pane, error) {
	return NewBuilder().FromDocument(doc)
}
