package luagen

import (
	"strings"
	"testing"
)

func TestRenderScriptFraming(t *testing.T) {
	script := RenderScript(Plan{}, DefaultOptions())

	wantLines := []string{
		"local wezterm = require 'wezterm'",
		"local mux = wezterm.mux",
		"wezterm.on('gui-startup', function(cmd)",
		"local project_dir = wezterm.home_dir",
		"if cmd and cmd.args and cmd.args[1] then",
		"project_dir = cmd.args[1]",
		"local tab, pane_main, window = mux.spawn_window {",
		"cwd = project_dir,",
		"window:set_title('zel2wez')",
		"tab:set_title('zel2wez')",
		"wezterm.log_info('workspace dir: ' .. project_dir)",
		"end)",
		"return {",
		"prefer_egl = true,",
	}
	for _, want := range wantLines {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q\nscript:\n%s", want, script)
		}
	}
}

func TestRenderScriptOptions(t *testing.T) {
	opts := Options{Title: "myproj", BaseIdent: "pane_root", PreferEGL: false}
	script := RenderScript(Plan{}, opts)

	if !strings.Contains(script, "local tab, pane_root, window = mux.spawn_window {") {
		t.Errorf("base ident not applied:\n%s", script)
	}
	if !strings.Contains(script, "window:set_title('myproj')") {
		t.Errorf("title not applied:\n%s", script)
	}
	if !strings.Contains(script, "prefer_egl = false,") {
		t.Errorf("prefer_egl not applied:\n%s", script)
	}
}

func TestRenderScriptDefaultsApplied(t *testing.T) {
	script := RenderScript(Plan{}, Options{})
	if !strings.Contains(script, "local tab, pane_main, window") {
		t.Errorf("empty options should fall back to pane_main:\n%s", script)
	}
	if !strings.Contains(script, "set_title('zel2wez')") {
		t.Errorf("empty options should fall back to default title:\n%s", script)
	}
}

func TestRenderScriptSplits(t *testing.T) {
	plan := Plan{Splits: []Split{
		{Ident: "pane_y", Parent: "pane_main", Direction: DirBottom},
		{Ident: "pane_x", Parent: "pane_y", Direction: DirRight, Args: []string{"htop"}},
		{Ident: "pane_r", Parent: "pane_x", Direction: DirRight, Args: []string{"ssh", "-p", "22", "host"}},
	}}
	script := RenderScript(plan, DefaultOptions())

	wantStmts := []string{
		"  local pane_y = pane_main:split { direction = 'Bottom' }",
		"  local pane_x = pane_y:split { direction = 'Right', args = {'htop'} }",
		"  local pane_r = pane_x:split { direction = 'Right', args = {'ssh', '-p', '22', 'host'} }",
	}
	for _, want := range wantStmts {
		if !strings.Contains(script, want) {
			t.Errorf("script missing statement %q\nscript:\n%s", want, script)
		}
	}

	// Splits belong inside the startup handler.
	if strings.Index(script, "pane_y = ") > strings.Index(script, "end)") {
		t.Error("split statements must precede the handler close")
	}
}

func TestRenderScriptSplitOrder(t *testing.T) {
	plan := Plan{Splits: []Split{
		{Ident: "pane_b", Parent: "pane_main", Direction: DirBottom},
		{Ident: "pane_a", Parent: "pane_b", Direction: DirRight},
	}}
	script := RenderScript(plan, DefaultOptions())
	if strings.Index(script, "local pane_b") > strings.Index(script, "local pane_a") {
		t.Error("splits rendered out of plan order")
	}
}

func TestLuaQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "'plain'"},
		{"it's", `'it\'s'`},
		{`back\slash`, `'back\\slash'`},
		{"line\nbreak", `'line\nbreak'`},
	}
	for _, tt := range tests {
		if got := luaQuote(tt.in); got != tt.want {
			t.Errorf("luaQuote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
