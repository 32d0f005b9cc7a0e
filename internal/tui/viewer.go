// Package tui provides an interactive viewer for finished replay reports.
package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/replaylab/internal/storage"
	"github.com/san-kum/replaylab/internal/table"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

type viewer struct {
	meta   storage.RunMetadata
	report *table.Table

	cursor int // selected column
	row    int // scrub position

	width  int
	height int
}

// RunViewer opens the report viewer for a stored run.
func RunViewer(meta storage.RunMetadata, report *table.Table) error {
	v := viewer{
		meta:   meta,
		report: report,
		width:  80,
		height: 24,
	}
	_, err := tea.NewProgram(v, tea.WithAltScreen()).Run()
	return err
}

func (v viewer) Init() tea.Cmd { return nil }

func (v viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return v, tea.Quit
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < v.report.NumCols()-1 {
				v.cursor++
			}
		case "left", "h":
			if v.row > 0 {
				v.row--
			}
		case "right", "l":
			if v.row < v.report.NumRows()-1 {
				v.row++
			}
		case "home", "g":
			v.row = 0
		case "end", "G":
			v.row = v.report.NumRows() - 1
		}
	}
	return v, nil
}

func (v viewer) View() string {
	var b strings.Builder

	b.WriteString(cyan.Render(v.meta.ID))
	b.WriteString(dim.Render(fmt.Sprintf("  model=%s  rows=%d  type=%s",
		v.meta.Model, v.report.NumRows(), v.meta.Type)))
	b.WriteString("\n\n")

	labels := v.report.Labels()
	if len(labels) == 0 || v.report.NumRows() == 0 {
		b.WriteString(dim.Render("empty report"))
		return b.String()
	}

	listHeight := v.height - 18
	if listHeight < 3 {
		listHeight = 3
	}
	start := 0
	if v.cursor >= listHeight {
		start = v.cursor - listHeight + 1
	}
	for i := start; i < len(labels) && i < start+listHeight; i++ {
		if i == v.cursor {
			b.WriteString(green.Render("> " + labels[i]))
		} else {
			b.WriteString(dim.Render("  " + labels[i]))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	col, err := v.report.Column(labels[v.cursor])
	if err != nil {
		b.WriteString(dim.Render(err.Error()))
		return b.String()
	}

	graphWidth := v.width - 12
	if graphWidth < 20 {
		graphWidth = 20
	}
	b.WriteString(asciigraph.Plot(col,
		asciigraph.Height(8),
		asciigraph.Width(graphWidth),
		asciigraph.Caption(labels[v.cursor]),
	))
	b.WriteString("\n\n")

	min, max, mean := stats(col)
	b.WriteString(dim.Render(fmt.Sprintf("min %.4g  max %.4g  mean %.4g", min, max, mean)))
	b.WriteString("\n")
	b.WriteString(white.Render(fmt.Sprintf("row %d/%d  t=%.4f  value=",
		v.row+1, v.report.NumRows(), v.report.Time(v.row))))
	b.WriteString(yellow.Render(fmt.Sprintf("%.6g", col[v.row])))
	b.WriteString("\n\n")
	b.WriteString(dim.Render("↑/↓ column  ←/→ scrub  g/G first/last  q quit"))

	return b.String()
}

func stats(vals []float64) (min, max, mean float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	sum := 0.0
	for _, v := range vals {
		min = math.Min(min, v)
		max = math.Max(max, v)
		sum += v
	}
	return min, max, sum / float64(len(vals))
}
