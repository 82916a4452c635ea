package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config contains runtime configuration resolved from (in priority order):
//  1. Explicit CLI flags and positional arguments (wired in the cmd layer)
//  2. Environment variables (ZEL2WEZ_*)
//  3. An optional project-local config file (.zel2wez.yaml/.yml/.json)
//  4. Defaults
//
// Layering is explicit: start from Defaults, overlay the file with ApplyFile,
// then overlay the environment with ApplyEnv, so a later layer always wins.
//
// This package does not read layout files or write scripts; it only decides
// where the pipeline reads and writes and how the script is framed.
type Config struct {
	// InputPath is the layout file to read. Default "layout.kdl".
	InputPath string

	// OutputPath is the script file to write. Empty means "wezterm.lua"
	// next to the input file; the pipeline derives it.
	OutputPath string

	// Title is the literal window/tab title set by the generated handler.
	Title string

	// BaseIdent is the Lua variable bound to the startup-spawned pane.
	BaseIdent string

	// PreferEGL controls the compatibility flag in the trailing config table.
	PreferEGL bool

	// MaxPanes is a guardrail against runaway layout files.
	MaxPanes int

	// Debug enables debug-level logging.
	Debug bool
}

// EnvKeys groups the supported environment variables.
type EnvKeys struct {
	Input     string
	Output    string
	Title     string
	BaseIdent string
	PreferEGL string
	MaxPanes  string
	Debug     string
}

// DefaultEnvKeys returns the canonical env variable names.
func DefaultEnvKeys() EnvKeys {
	return EnvKeys{
		Input:     "ZEL2WEZ_INPUT",
		Output:    "ZEL2WEZ_OUTPUT",
		Title:     "ZEL2WEZ_TITLE",
		BaseIdent: "ZEL2WEZ_BASE_IDENT",
		PreferEGL: "ZEL2WEZ_PREFER_EGL",
		MaxPanes:  "ZEL2WEZ_MAX_PANES",
		Debug:     "ZEL2WEZ_DEBUG",
	}
}

// Defaults returns the base Config every other layer overlays.
func Defaults() Config {
	return defaultConfig().withDerivedDefaults()
}

// Resolve builds a Config from defaults and env. The cmd layer applies the
// config file before env (ApplyFile then ApplyEnv) and CLI flags afterwards.
func Resolve() Config {
	return ResolveWithEnv(DefaultEnvKeys())
}

// ResolveWithEnv builds a Config using a provided EnvKeys set.
func ResolveWithEnv(keys EnvKeys) Config {
	return Defaults().ApplyEnv(keys)
}

// ApplyEnv overlays environment variables onto c. Only set, parseable values
// override; env beats the config file, so this runs after ApplyFile.
func (c Config) ApplyEnv(keys EnvKeys) Config {
	out := c

	if v := strings.TrimSpace(os.Getenv(keys.Input)); v != "" {
		out.InputPath = v
	}
	if v := strings.TrimSpace(os.Getenv(keys.Output)); v != "" {
		out.OutputPath = v
	}
	if v := strings.TrimSpace(os.Getenv(keys.Title)); v != "" {
		out.Title = v
	}
	if v := strings.TrimSpace(os.Getenv(keys.BaseIdent)); v != "" {
		out.BaseIdent = v
	}
	if v := strings.TrimSpace(os.Getenv(keys.PreferEGL)); v != "" {
		out.PreferEGL = parseBool(v, out.PreferEGL)
	}
	if v := strings.TrimSpace(os.Getenv(keys.MaxPanes)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			out.MaxPanes = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(keys.Debug)); v != "" {
		out.Debug = parseBool(v, out.Debug)
	}

	return out.withDerivedDefaults()
}

func defaultConfig() Config {
	return Config{
		InputPath:  "layout.kdl",
		Title:      "zel2wez",
		BaseIdent:  "pane_main",
		PreferEGL:  true,
		MaxPanes:   200,
		Debug:      false,
	}
}

func (c Config) withDerivedDefaults() Config {
	out := c
	if strings.TrimSpace(out.InputPath) == "" {
		out.InputPath = "layout.kdl"
	}
	if strings.TrimSpace(out.Title) == "" {
		out.Title = "zel2wez"
	}
	if strings.TrimSpace(out.BaseIdent) == "" {
		out.BaseIdent = "pane_main"
	}
	if out.MaxPanes <= 0 {
		out.MaxPanes = 200
	}
	return out
}

// File is the project-local config file shape. Pointer fields distinguish
// "unset" from zero values so the overlay only overrides what is present.
type File struct {
	Input     string `json:"input,omitempty" yaml:"input,omitempty"`
	Output    string `json:"output,omitempty" yaml:"output,omitempty"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	BaseIdent string `json:"base_ident,omitempty" yaml:"base_ident,omitempty"`
	PreferEGL *bool  `json:"prefer_egl,omitempty" yaml:"prefer_egl,omitempty"`
	MaxPanes  *int   `json:"max_panes,omitempty" yaml:"max_panes,omitempty"`
	Debug     *bool  `json:"debug,omitempty" yaml:"debug,omitempty"`
}

// ApplyFile overlays a config file onto c. Only set fields override.
func (c Config) ApplyFile(f File) Config {
	out := c
	if strings.TrimSpace(f.Input) != "" {
		out.InputPath = strings.TrimSpace(f.Input)
	}
	if strings.TrimSpace(f.Output) != "" {
		out.OutputPath = strings.TrimSpace(f.Output)
	}
	if strings.TrimSpace(f.Title) != "" {
		out.Title = strings.TrimSpace(f.Title)
	}
	if strings.TrimSpace(f.BaseIdent) != "" {
		out.BaseIdent = strings.TrimSpace(f.BaseIdent)
	}
	if f.PreferEGL != nil {
		out.PreferEGL = *f.PreferEGL
	}
	if f.MaxPanes != nil && *f.MaxPanes > 0 {
		out.MaxPanes = *f.MaxPanes
	}
	if f.Debug != nil {
		out.Debug = *f.Debug
	}
	return out.withDerivedDefaults()
}

// LoadFile loads a config file from a YAML or JSON path.
func LoadFile(path string) (File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return File{}, errors.New("empty path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &f)
	default:
		err = yaml.Unmarshal(data, &f)
	}
	if err != nil {
		return File{}, err
	}
	return f, nil
}

// FindProjectFile looks for a project-local config file in dir. It checks
// (in order): .zel2wez.yaml, .zel2wez.yml, .zel2wez.json.
// Returns (file, pathUsed, ok, err); ok=false means none was found.
func FindProjectFile(dir string) (File, string, bool, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "."
	}
	for _, name := range []string{".zel2wez.yaml", ".zel2wez.yml", ".zel2wez.json"} {
		p := filepath.Join(dir, name)
		st, err := os.Stat(p)
		if err != nil || st.IsDir() {
			continue
		}
		f, err := LoadFile(p)
		if err != nil {
			return File{}, p, true, err
		}
		return f, p, true, nil
	}
	return File{}, "", false, nil
}

func parseBool(v string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
