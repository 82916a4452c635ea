// Package convert orchestrates the full conversion pipeline:
// read a layout file, parse it into a pane tree, plan the pane splits,
// render the WezTerm startup script, and write it out.
package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/wighawag/zel2wez/pkg/layout"
	"github.com/wighawag/zel2wez/pkg/luagen"
)

// Options controls a single conversion run.
type Options struct {
	// InputPath is the layout file to read (KDL, YAML, or JSON by extension).
	InputPath string

	// OutputPath is where the generated script is written. Empty means
	// "wezterm.lua" in the input file's directory. Ignored when DryRun is
	// true.
	OutputPath string

	// Script controls the rendered Lua framing (title, base ident, prefer_egl).
	Script luagen.Options

	// MaxPanes caps the pane count as a guardrail against runaway inputs.
	// Zero means no cap.
	MaxPanes int

	// DryRun, when true, renders the script without writing any file.
	DryRun bool

	// Writer, when non-nil, replaces the default file writer. Useful for
	// tests and for the preview TUI, which defers the write decision.
	Writer luagen.Writer

	// Log, when non-nil, receives progress and debug output.
	Log *log.Logger
}

// Result describes a completed conversion.
type Result struct {
	InputPath  string
	OutputPath string
	Panes      int // panes emitted as splits plus the main pane
	Splits     int
	Script     string
}

// Run executes the pipeline described by opt.
// On any failure no output file is written.
func Run(opt Options) (Result, error) {
	in := strings.TrimSpace(opt.InputPath)
	if in == "" {
		return Result{}, errors.New("input path is required")
	}
	out := ResolveOutputPath(in, opt.OutputPath)

	logger := opt.Log
	if logger == nil {
		logger = log.New(os.Stderr)
		logger.SetLevel(log.FatalLevel)
	}

	data, err := os.ReadFile(in)
	if err != nil {
		return Result{}, fmt.Errorf("read layout: %w", err)
	}
	logger.Debug("read layout file", "path", in, "bytes", len(data))

	b := layout.NewBuilder()
	b.Log = logger
	root, err := layout.Parse(data, layout.FormatForPath(in), b)
	if err != nil {
		return Result{}, fmt.Errorf("parse layout: %w", err)
	}

	if opt.MaxPanes > 0 {
		if n := root.Count(); n > opt.MaxPanes {
			return Result{}, fmt.Errorf("layout has %d panes, limit is %d", n, opt.MaxPanes)
		}
	}

	scriptOpts := opt.Script.WithDefaults()
	plan := luagen.BuildPlan(root, scriptOpts.BaseIdent)
	script := luagen.RenderScript(plan, scriptOpts)

	res := Result{
		InputPath:  in,
		OutputPath: out,
		Panes:      len(plan.Splits) + 1,
		Splits:     len(plan.Splits),
		Script:     script,
	}
	logger.Debug("planned splits", "splits", res.Splits)

	if opt.DryRun {
		return res, nil
	}

	w := opt.Writer
	if w == nil {
		w = &luagen.FileWriter{}
	}
	if err := w.WriteScript(out, script); err != nil {
		return res, err
	}
	logger.Info("wrote script", "path", out)

	return res, nil
}

// ResolveOutputPath derives a default output path from an input path when
// none is given: the input's directory joined with "wezterm.lua".
func ResolveOutputPath(inputPath, outputPath string) string {
	out := strings.TrimSpace(outputPath)
	if out != "" {
		return out
	}
	dir := filepath.Dir(strings.TrimSpace(inputPath))
	return filepath.Join(dir, "wezterm.lua")
}
