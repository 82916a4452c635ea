package luagen

import (
	"strings"
)

// Options controls the fixed framing of the rendered script. Zero values are
// replaced by the defaults below, so callers can set only what they need.
type Options struct {
	// Title is the literal window/tab title the startup handler sets.
	Title string

	// BaseIdent is the Lua variable bound to the pane spawned in the startup
	// hook. Every group's first split targets it.
	BaseIdent string

	// PreferEGL is the compatibility flag emitted in the trailing config
	// table.
	PreferEGL bool
}

// DefaultOptions returns the canonical framing values.
func DefaultOptions() Options {
	return Options{
		Title:     "zel2wez",
		BaseIdent: "pane_main",
		PreferEGL: true,
	}
}

func (o Options) WithDefaults() Options {
	if strings.TrimSpace(o.Title) == "" {
		o.Title = "zel2wez"
	}
	if strings.TrimSpace(o.BaseIdent) == "" {
		o.BaseIdent = "pane_main"
	}
	return o
}

// RenderScript renders the plan into a complete wezterm.lua: a fixed prologue
// (module require, gui-startup handler, window spawn, titles, a log line),
// the split statements in plan order, and a fixed epilogue returning the
// config table. Rendering is pure; it performs no I/O.
func RenderScript(plan Plan, opts Options) string {
	opts = opts.WithDefaults()

	var b strings.Builder

	b.WriteString("local wezterm = require 'wezterm'\n")
	b.WriteString("local mux = wezterm.mux\n")
	b.WriteString("\n")
	b.WriteString("wezterm.on('gui-startup', function(cmd)\n")
	b.WriteString("  local project_dir = wezterm.home_dir\n")
	b.WriteString("  if cmd and cmd.args and cmd.args[1] then\n")
	b.WriteString("    project_dir = cmd.args[1]\n")
	b.WriteString("  end\n")
	b.WriteString("  local tab, " + opts.BaseIdent + ", window = mux.spawn_window {\n")
	b.WriteString("    cwd = project_dir,\n")
	b.WriteString("  }\n")
	b.WriteString("  window:set_title(" + luaQuote(opts.Title) + ")\n")
	b.WriteString("  tab:set_title(" + luaQuote(opts.Title) + ")\n")
	b.WriteString("  wezterm.log_info('workspace dir: ' .. project_dir)\n")

	for _, s := range plan.Splits {
		b.WriteString("  " + splitStatement(s) + "\n")
	}

	b.WriteString("end)\n")
	b.WriteString("\n")
	b.WriteString("return {\n")
	if opts.PreferEGL {
		b.WriteString("  prefer_egl = true,\n")
	} else {
		b.WriteString("  prefer_egl = false,\n")
	}
	b.WriteString("}\n")

	return b.String()
}

// splitStatement renders one split as a local declaration:
//
//	local pane_x = pane_y:split { direction = 'Right', args = {'htop'} }
//
// The args key is omitted for panes without a command.
func splitStatement(s Split) string {
	var b strings.Builder
	b.WriteString("local ")
	b.WriteString(s.Ident)
	b.WriteString(" = ")
	b.WriteString(s.Parent)
	b.WriteString(":split { direction = ")
	b.WriteString(luaQuote(s.Direction))
	if len(s.Args) > 0 {
		b.WriteString(", args = ")
		b.WriteString(luaArgs(s.Args))
	}
	b.WriteString(" }")
	return b.String()
}

// luaArgs renders an argv as a Lua table of single-quoted strings, without
// padding inside the braces: {'ssh', '-p', '22', 'host'}.
func luaArgs(args []string) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, luaQuote(a))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// luaQuote returns s as a single-quoted Lua string literal, escaping
// backslashes, embedded quotes, and newlines.
func luaQuote(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		"\n", `\n`,
		"\r", `\r`,
	)
	return "'" + r.Replace(s) + "'"
}
