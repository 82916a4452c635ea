// Package luagen linearizes a pane tree into split statements and renders them
// as a WezTerm gui-startup config.
//
// WezTerm's mux model creates the first window/pane for you inside the startup
// hook; every other pane must be created by splitting an existing one. The
// planner therefore picks, for each pane, which already-created pane it splits
// from and in which direction. Rendering is a separate, purely textual step.
package luagen

import (
	"fmt"

	"github.com/wighawag/zel2wez/pkg/layout"
)

// Split directions understood by WezTerm's MuxPane:split.
const (
	DirBottom = "Bottom"
	DirRight  = "Right"
)

// Split is one planned split statement: declare Ident as the result of
// splitting Parent in Direction, optionally launching Args[0] with the rest of
// Args as its arguments.
type Split struct {
	Ident     string
	Parent    string
	Direction string

	// Args is the spawn argv (command first). Empty means the pane runs the
	// default shell and the rendered statement omits the args key.
	Args []string
}

// MainPane marks the pane whose region is satisfied by the window the host
// spawns at startup. It is never the target of a split statement; it exists on
// the plan so the skip rule is explicit and testable rather than a silent
// index-zero special case.
type MainPane struct {
	Pane *layout.Pane
}

// Plan is the linearized split sequence for one layout.
type Plan struct {
	// Main is nil only for an empty layout.
	Main *MainPane

	// Splits are emitted in order; parents always precede their dependents.
	Splits []Split
}

// BuildPlan linearizes the pane tree rooted at the synthetic root.
//
// Layout files declare panes in visual top-to-bottom order, but WezTerm
// renders splits bottom-up, so both the top-level groups and each group's
// children are reversed before emission (see reverseTopToBottom). After
// reversal:
//
//   - the first group becomes the main pane (pre-created by the host, never
//     split, its own children not descended into), and
//   - each remaining group opens with a Bottom split of the fixed base
//     identifier, then chains Right splits through its children.
//
// Only two levels of nesting are processed (groups, and panes within a
// group); deeper panes are ignored. That is a structural property of the
// split-chain emission, kept deliberately rather than generalized.
func BuildPlan(root *layout.Pane, baseIdent string) Plan {
	var plan Plan
	if root == nil || len(root.Children) == 0 {
		return plan
	}

	groups := reverseTopToBottom(root.Children)
	plan.Main = &MainPane{Pane: groups[0]}

	for _, g := range groups[1:] {
		names := nameContext{}
		parent := baseIdent
		for i, k := range reverseTopToBottom(g.Children) {
			dir := DirRight
			if i == 0 {
				dir = DirBottom
			}

			s := Split{
				Ident:     names.identFor(k),
				Parent:    parent,
				Direction: dir,
			}
			if k.Command != "" {
				s.Args = append([]string{k.Command}, k.Args...)
			}

			plan.Splits = append(plan.Splits, s)
			parent = s.Ident
		}
	}

	return plan
}

// reverseTopToBottom returns a reversed copy of panes. Declaration order is
// visual top-to-bottom; WezTerm builds bottom-up, so creation order is the
// reverse. Kept as a named step so the normalization is testable on its own.
func reverseTopToBottom(panes []*layout.Pane) []*layout.Pane {
	out := make([]*layout.Pane, len(panes))
	for i, p := range panes {
		out[len(panes)-1-i] = p
	}
	return out
}

// nameContext derives split identifiers within a single group. It is local
// state threaded through the plan build; there are no package-level counters.
type nameContext struct {
	index int
}

// identFor returns pane_<sanitized name>. Unnamed panes fall back to
// "unnamed" for the group's first pane and "unnamed_<index>" after that.
// Two panes with the same sanitized name produce the same identifier; the
// later declaration shadows the earlier variable in the script.
func (c *nameContext) identFor(p *layout.Pane) string {
	name := p.Name
	if name == "" {
		if c.index == 0 {
			name = "unnamed"
		} else {
			name = fmt.Sprintf("unnamed_%d", c.index)
		}
	}
	c.index++
	return "pane_" + layout.Sanitize(name)
}
