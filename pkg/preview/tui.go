// Package preview implements an interactive terminal preview of a generated
// script. The conversion runs in dry-run mode first, the user reviews the
// result in a scrollable view, and only an explicit confirm writes the file.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wighawag/zel2wez/pkg/convert"
	"github.com/wighawag/zel2wez/pkg/luagen"
)

// Options controls the preview session.
type Options struct {
	// Convert is the pipeline configuration. The preview forces a dry run
	// internally and only writes on confirmation.
	Convert convert.Options

	// Writer performs the write on confirmation. If nil, a FileWriter is
	// used.
	Writer luagen.Writer
}

// Outcome reports what the user decided.
type Outcome struct {
	// Written is true when the user confirmed and the script was written.
	Written bool

	Result convert.Result
}

// Run converts the input, shows the script, and writes it on confirmation.
func Run(opts Options) (Outcome, error) {
	dry := opts.Convert
	dry.DryRun = true
	res, err := convert.Run(dry)
	if err != nil {
		return Outcome{}, err
	}

	m := newModel(res)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Outcome{Result: res}, fmt.Errorf("preview: %w", err)
	}

	fm, ok := final.(model)
	if !ok || !fm.accepted {
		return Outcome{Written: false, Result: res}, nil
	}

	w := opts.Writer
	if w == nil {
		w = &luagen.FileWriter{}
	}
	if err := w.WriteScript(res.OutputPath, res.Script); err != nil {
		return Outcome{Written: false, Result: res}, err
	}
	return Outcome{Written: true, Result: res}, nil
}

type model struct {
	res      convert.Result
	vp       viewport.Model
	ready    bool
	accepted bool
	quitting bool
}

func newModel(res convert.Result) model {
	return model{res: res}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "y", "enter":
			m.accepted = true
			m.quitting = true
			return m, tea.Quit
		case "q", "esc", "ctrl+c", "n":
			m.accepted = false
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		headerH := lipgloss.Height(m.headerView())
		footerH := lipgloss.Height(m.footerView())
		vpH := msg.Height - headerH - footerH
		if vpH < 1 {
			vpH = 1
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, vpH)
			m.vp.SetContent(m.res.Script)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = vpH
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading preview..."
	}
	return m.headerView() + "\n" + m.vp.View() + "\n" + m.footerView()
}

func (m model) headerView() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", titleStyle.Render("zel2wez"), dimStyle.Render("preview"))
	fmt.Fprintf(&b, "%s\n", dimStyle.Render(fmt.Sprintf("%s -> %s  (%d panes, %d splits)",
		m.res.InputPath, m.res.OutputPath, m.res.Panes, m.res.Splits)))
	return b.String()
}

func (m model) footerView() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	pct := fmt.Sprintf("%3.0f%%", m.vp.ScrollPercent()*100)
	return dimStyle.Render("y/enter: write  q/esc: abort  up/down: scroll  " + pct)
}
