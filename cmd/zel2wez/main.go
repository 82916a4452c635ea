package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/wighawag/zel2wez/pkg/config"
	"github.com/wighawag/zel2wez/pkg/convert"
	"github.com/wighawag/zel2wez/pkg/kdl"
	"github.com/wighawag/zel2wez/pkg/layout"
	"github.com/wighawag/zel2wez/pkg/luagen"
	"github.com/wighawag/zel2wez/pkg/preview"
	"github.com/wighawag/zel2wez/pkg/wezterm"
)

const version = "0.2.0"

var (
	flagConfigPath string
	flagTitle      string
	flagBaseIdent  string
	flagPreferEGL  bool
	flagMaxPanes   int

	flagDryRun  bool
	flagPreview bool
	flagDebug   bool
	flagVersion bool
)

func init() {
	flag.StringVar(&flagConfigPath, "config", "", "Path to a config file (.yaml/.yml/.json); default: .zel2wez.* in the current directory")
	flag.StringVar(&flagTitle, "title", "", "Window/tab title set by the generated script")
	flag.StringVar(&flagBaseIdent, "base-ident", "", "Lua variable name for the startup pane")
	flag.BoolVar(&flagPreferEGL, "prefer-egl", true, "Emit prefer_egl = true in the generated config table")
	flag.IntVar(&flagMaxPanes, "max-panes", 0, "Maximum pane count allowed in a layout (0 uses default)")

	flag.BoolVar(&flagDryRun, "dry-run", false, "Print the generated script to stdout instead of writing it")
	flag.BoolVar(&flagPreview, "preview", false, "Review the generated script interactively before writing")
	flag.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	flag.BoolVar(&flagVersion, "version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "zel2wez - convert terminal layout files to WezTerm startup scripts\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  zel2wez [options] [input] [output]\n\n")
		fmt.Fprintf(os.Stderr, "Arguments default to layout.kdl and wezterm.lua. YAML and JSON\n")
		fmt.Fprintf(os.Stderr, "layouts are accepted by extension.\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  zel2wez\n")
		fmt.Fprintf(os.Stderr, "  zel2wez dev.kdl ~/.config/wezterm/wezterm.lua\n")
		fmt.Fprintf(os.Stderr, "  zel2wez -dry-run layout.kdl\n")
		fmt.Fprintf(os.Stderr, "  zel2wez -preview -title myproject\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	if flagVersion {
		fmt.Printf("zel2wez %s\n", version)
		return
	}

	cfg := config.Defaults()

	// Config file overlay first: explicit -config path wins, otherwise look
	// for a project-local .zel2wez.* file. Env overlays after, so ZEL2WEZ_*
	// variables beat the file.
	if p := strings.TrimSpace(flagConfigPath); p != "" {
		f, err := config.LoadFile(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "zel2wez: load config: %v\n", err)
			os.Exit(1)
		}
		cfg = cfg.ApplyFile(f)
	} else if f, used, ok, err := config.FindProjectFile("."); ok {
		if err != nil {
			fmt.Fprintf(os.Stderr, "zel2wez: load config %s: %v\n", used, err)
			os.Exit(1)
		}
		cfg = cfg.ApplyFile(f)
	}
	cfg = cfg.ApplyEnv(config.DefaultEnvKeys())

	// Explicit flags override env and config file.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["title"] {
		cfg.Title = flagTitle
	}
	if set["base-ident"] {
		cfg.BaseIdent = flagBaseIdent
	}
	if set["prefer-egl"] {
		cfg.PreferEGL = flagPreferEGL
	}
	if set["max-panes"] && flagMaxPanes > 0 {
		cfg.MaxPanes = flagMaxPanes
	}
	if set["debug"] {
		cfg.Debug = flagDebug
	}

	if args := flag.Args(); len(args) > 0 {
		cfg.InputPath = args[0]
		if len(args) > 1 {
			cfg.OutputPath = args[1]
		}
		if len(args) > 2 {
			fmt.Fprintf(os.Stderr, "zel2wez: unexpected arguments: %v\n", args[2:])
			flag.Usage()
			os.Exit(2)
		}
	}

	logger := newLogger(cfg.Debug)

	wt := wezterm.New()
	if wt.IsAvailable() {
		if v, err := wt.Version(); err == nil {
			logger.Debug("wezterm found", "version", v)
		}
	} else {
		logger.Debug("wezterm binary not found in PATH; generating script anyway")
	}

	opt := convert.Options{
		InputPath:  cfg.InputPath,
		OutputPath: cfg.OutputPath,
		Script: luagen.Options{
			Title:     cfg.Title,
			BaseIdent: cfg.BaseIdent,
			PreferEGL: cfg.PreferEGL,
		},
		MaxPanes: cfg.MaxPanes,
		DryRun:   flagDryRun,
		Log:      logger,
	}

	if flagPreview && !flagDryRun {
		out, err := preview.Run(preview.Options{Convert: opt})
		if err != nil {
			fail(logger, err)
		}
		if !out.Written {
			logger.Info("aborted; nothing written")
			return
		}
		logger.Info("wrote script", "path", out.Result.OutputPath, "panes", out.Result.Panes)
		return
	}

	res, err := convert.Run(opt)
	if err != nil {
		fail(logger, err)
	}

	if flagDryRun {
		fmt.Print(res.Script)
		return
	}
	logger.Info("done", "input", res.InputPath, "output", res.OutputPath, "panes", res.Panes, "splits", res.Splits)
	logActiveConfigHint(logger, res.OutputPath)
}

// logActiveConfigHint points out when the written script is not the config
// file WezTerm would load, so the user knows a copy or symlink is still
// needed.
func logActiveConfigHint(logger *log.Logger, outputPath string) {
	active := wezterm.DefaultConfigPath()
	if active == "" {
		return
	}
	abs, err := filepath.Abs(outputPath)
	if err != nil || abs == active {
		return
	}
	logger.Debug("output is not the active wezterm config", "active", active)
}

func newLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// fail prints err in the most useful shape available and exits nonzero.
// Parse failures carry per-line diagnostics; print them all.
func fail(logger *log.Logger, err error) {
	var perr *kdl.ParseError
	switch {
	case errors.As(err, &perr):
		fmt.Fprintf(os.Stderr, "zel2wez: layout has %d syntax error(s):\n", len(perr.Diags))
		for _, d := range perr.Diags {
			fmt.Fprintf(os.Stderr, "  %s\n", d)
		}
	case errors.Is(err, layout.ErrNoLayout):
		fmt.Fprintln(os.Stderr, "zel2wez: input parses but contains no layout node; nothing to convert")
	default:
		logger.Error(err.Error())
	}
	os.Exit(1)
}
