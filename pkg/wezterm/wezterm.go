// Package wezterm provides a small wrapper around invoking the `wezterm`
// binary. The converter never needs a running WezTerm to produce a script,
// so everything here is advisory: detection and version probing used for
// friendlier CLI output, never for gating the conversion itself.
package wezterm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// CLI wraps invocations of the wezterm binary.
type CLI struct {
	// Bin is the path to the wezterm binary. If empty, "wezterm" is
	// resolved via PATH.
	Bin string

	// Timeout applies to each invocation. Zero means a 3s default.
	Timeout time.Duration

	// Debug, when true, prints executed commands to stderr.
	Debug bool
}

// New returns a CLI wrapper with sensible defaults.
func New() *CLI {
	return &CLI{
		Bin:     "wezterm",
		Timeout: 0,
		Debug:   false,
	}
}

// IsAvailable reports whether the wezterm binary can be found.
func (c *CLI) IsAvailable() bool {
	_, err := exec.LookPath(c.bin())
	return err == nil
}

// Version returns the output of `wezterm --version`, trimmed.
func (c *CLI) Version() (string, error) {
	out, err := c.output("--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// DefaultConfigPath returns the config file WezTerm would read, if one of
// its conventional locations exists: $WEZTERM_CONFIG_FILE, then
// ~/.config/wezterm/wezterm.lua, then ~/.wezterm.lua. Empty when none does.
func DefaultConfigPath() string {
	var candidates []string
	if p := strings.TrimSpace(os.Getenv("WEZTERM_CONFIG_FILE")); p != "" {
		candidates = append(candidates, p)
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".config", "wezterm", "wezterm.lua"),
			filepath.Join(home, ".wezterm.lua"),
		)
	}
	for _, p := range candidates {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

func (c *CLI) bin() string {
	if strings.TrimSpace(c.Bin) == "" {
		return "wezterm"
	}
	return c.Bin
}

func (c *CLI) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 3 * time.Second
	}
	return c.Timeout
}

func (c *CLI) output(args ...string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("wezterm: missing args")
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, c.bin(), args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if c.Debug {
		fmt.Fprintf(os.Stderr, "wezterm: exec: %s %s\n", c.bin(), strings.Join(args, " "))
	}

	if err := cmd.Run(); err != nil {
		serr := strings.TrimSpace(stderr.String())
		if serr == "" {
			return "", fmt.Errorf("wezterm: %s: %w", strings.Join(args, " "), err)
		}
		return "", fmt.Errorf("wezterm: %s: %w (stderr=%q)", strings.Join(args, " "), err, serr)
	}

	return stdout.String(), nil
}
