package kdl

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDocuments(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want *Document
	}{
		{
			name: "empty document",
			src:  "",
			want: &Document{},
		},
		{
			name: "single node",
			src:  "layout\n",
			want: &Document{Nodes: []*Node{{Name: "layout"}}},
		},
		{
			name: "props and args",
			src:  `pane name="editor" command="nvim" .`,
			want: &Document{Nodes: []*Node{{
				Name:  "pane",
				Props: map[string]string{"name": "editor", "command": "nvim"},
				Args:  []string{"."},
			}}},
		},
		{
			name: "quoted args with escapes",
			src:  `pane "a b" "tab\there"`,
			want: &Document{Nodes: []*Node{{
				Name: "pane",
				Args: []string{"a b", "tab\there"},
			}}},
		},
		{
			name: "children block",
			src: `layout {
	pane name="top"
	pane name="bottom" {
		args "-la"
	}
}`,
			want: &Document{Nodes: []*Node{{
				Name: "layout",
				Children: []*Node{
					{Name: "pane", Props: map[string]string{"name": "top"}},
					{
						Name:  "pane",
						Props: map[string]string{"name": "bottom"},
						Children: []*Node{
							{Name: "args", Args: []string{"-la"}},
						},
					},
				},
			}}},
		},
		{
			name: "semicolon terminators",
			src:  "pane; pane; pane",
			want: &Document{Nodes: []*Node{
				{Name: "pane"}, {Name: "pane"}, {Name: "pane"},
			}}},
		{
			name: "line comments",
			src: `// header
pane name="a" // trailing
// footer`,
			want: &Document{Nodes: []*Node{{
				Name:  "pane",
				Props: map[string]string{"name": "a"},
			}}},
		},
		{
			name: "nested block comments",
			src:  "pane /* outer /* inner */ still outer */ name=\"x\"",
			want: &Document{Nodes: []*Node{{
				Name:  "pane",
				Props: map[string]string{"name": "x"},
			}}},
		},
		{
			name: "slashdash skips node",
			src: `/-pane name="gone"
pane name="kept"`,
			want: &Document{Nodes: []*Node{{
				Name:  "pane",
				Props: map[string]string{"name": "kept"},
			}}},
		},
		{
			name: "slashdash skips entry",
			src:  `pane /-name="gone" command="htop"`,
			want: &Document{Nodes: []*Node{{
				Name:  "pane",
				Props: map[string]string{"command": "htop"},
			}}},
		},
		{
			name: "slashdash skips children block",
			src:  `pane name="p" /-{ pane name="inner" }`,
			want: &Document{Nodes: []*Node{{
				Name:  "pane",
				Props: map[string]string{"name": "p"},
			}}},
		},
		{
			name: "line continuation",
			src:  "pane name=\"a\" \\\n  command=\"htop\"",
			want: &Document{Nodes: []*Node{{
				Name:  "pane",
				Props: map[string]string{"name": "a", "command": "htop"},
			}}},
		},
		{
			name: "bare values kept verbatim",
			src:  `node 42 true null`,
			want: &Document{Nodes: []*Node{{
				Name: "node",
				Args: []string{"42", "true", "null"},
			}}},
		},
		{
			name: "quoted node name",
			src:  `"my node" arg`,
			want: &Document{Nodes: []*Node{{
				Name: "my node",
				Args: []string{"arg"},
			}}},
		},
		{
			name: "last property write wins",
			src:  `pane name="first" name="second"`,
			want: &Document{Nodes: []*Node{{
				Name:  "pane",
				Props: map[string]string{"name": "second"},
			}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantMsgs []string
	}{
		{
			name:     "unterminated string",
			src:      "pane name=\"oops\n",
			wantMsgs: []string{"unterminated string"},
		},
		{
			name:     "unterminated block comment",
			src:      "pane /* never closed",
			wantMsgs: []string{"unterminated block comment"},
		},
		{
			name:     "missing closing brace",
			src:      "layout {\n  pane\n",
			wantMsgs: []string{"missing '}'"},
		},
		{
			name:     "stray closing brace",
			src:      "}\npane",
			wantMsgs: []string{"unexpected '}'"},
		},
		{
			name: "multiple errors reported in one pass",
			src:  "}\npane name=\"broken\n",
			wantMsgs: []string{
				"unexpected '}'",
				"unterminated string",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse() error type = %T, want *ParseError", err)
			}
			if len(perr.Diags) < len(tt.wantMsgs) {
				t.Fatalf("got %d diagnostics, want at least %d: %v",
					len(perr.Diags), len(tt.wantMsgs), perr.Diags)
			}
			for i, want := range tt.wantMsgs {
				if !strings.Contains(perr.Diags[i].Msg, want) {
					t.Errorf("diag[%d] = %q, want substring %q", i, perr.Diags[i].Msg, want)
				}
			}
		})
	}
}

func TestDiagPositions(t *testing.T) {
	_, err := Parse("pane ok\npane name=\"broken\n")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	d := perr.Diags[0]
	if d.Line != 2 {
		t.Errorf("diag line = %d, want 2", d.Line)
	}
	if d.Col <= 1 {
		t.Errorf("diag col = %d, want > 1", d.Col)
	}
	if got := d.String(); !strings.HasPrefix(got, "2:") {
		t.Errorf("String() = %q, want prefix \"2:\"", got)
	}
}

func TestNodeAccessors(t *testing.T) {
	doc, err := Parse(`layout {
	pane name="a"
	args "x" "y"
	pane name="b"
}`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	root := doc.First("layout")
	if root == nil {
		t.Fatal("First(layout) = nil")
	}
	if doc.First("missing") != nil {
		t.Error("First(missing) should be nil")
	}

	if got := len(root.Named("pane")); got != 2 {
		t.Errorf("Named(pane) len = %d, want 2", got)
	}
	args := root.Child("args")
	if args == nil {
		t.Fatal("Child(args) = nil")
	}
	if diff := cmp.Diff([]string{"x", "y"}, args.Args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
	if got := root.Children[0].Prop("name"); got != "a" {
		t.Errorf("Prop(name) = %q, want \"a\"", got)
	}
	if got := root.Children[0].Prop("missing"); got != "" {
		t.Errorf("Prop(missing) = %q, want empty", got)
	}
}
