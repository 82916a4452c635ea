package layout

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the current schema version for YAML/JSON layout files.
const CurrentVersion = 1

// File is the YAML/JSON layout document. It mirrors the KDL vocabulary with a
// typed shape so editors and generators can produce layouts without a KDL
// toolchain.
type File struct {
	// Version is optional and defaults to CurrentVersion.
	Version int `json:"version,omitempty" yaml:"version,omitempty"`

	// Layout holds the top-level pane groups. A file without a layout key is
	// rejected with ErrNoLayout, matching the KDL behavior.
	Layout *Group `json:"layout,omitempty" yaml:"layout,omitempty"`
}

// Group is the content of the layout root.
type Group struct {
	Panes []PaneSpec `json:"panes,omitempty" yaml:"panes,omitempty"`
}

// PaneSpec describes one pane in the typed schema.
type PaneSpec struct {
	Name           string     `json:"name,omitempty" yaml:"name,omitempty"`
	Command        string     `json:"command,omitempty" yaml:"command,omitempty"`
	Args           []string   `json:"args,omitempty" yaml:"args,omitempty"`
	SplitDirection string     `json:"split_direction,omitempty" yaml:"split_direction,omitempty"`
	Panes          []PaneSpec `json:"panes,omitempty" yaml:"panes,omitempty"`
}

// Tree converts the typed schema into the same synthetic-root pane tree the
// KDL builder produces.
func (f *File) Tree() (*Pane, error) {
	if f.Version == 0 {
		f.Version = CurrentVersion
	}
	if f.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported layout version %d (expected %d)", f.Version, CurrentVersion)
	}
	if f.Layout == nil {
		return nil, ErrNoLayout
	}

	root := &Pane{}
	appendSpecs(root, f.Layout.Panes)
	return root, nil
}

func appendSpecs(parent *Pane, specs []PaneSpec) {
	for _, s := range specs {
		p := &Pane{
			Name:           s.Name,
			Command:        s.Command,
			SplitDirection: s.SplitDirection,
		}
		if p.Command != "" && len(s.Args) > 0 {
			p.Args = append([]string(nil), s.Args...)
		}
		appendSpecs(p, s.Panes)
		parent.Children = append(parent.Children, p)
	}
}

func treeFromYAML(data []byte) (*Pane, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Tree()
}

func treeFromJSON(data []byte) (*Pane, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Tree()
}
