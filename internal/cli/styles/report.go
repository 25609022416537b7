package styles

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"

	"github.com/bnema/fsearch/internal/domain/build"
	"github.com/bnema/fsearch/internal/domain/entity"
)

// ReportRenderer renders the non-interactive command output.
type ReportRenderer struct {
	theme *Theme
}

// NewReportRenderer creates a renderer using theme.
func NewReportRenderer(theme *Theme) *ReportRenderer {
	return &ReportRenderer{theme: theme}
}

// RenderSuggestions renders the stored suggestions as a table.
func (r *ReportRenderer) RenderSuggestions(list []entity.Suggestion) string {
	t := r.theme
	if len(list) == 0 {
		return t.Subtle.Render("No suggestions stored.")
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Border)).
		Headers("ID", "QUERY", "USES").
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return style.Foreground(t.Accent).Bold(true)
			case col == 1:
				return style.Foreground(t.Text)
			default:
				return style.Foreground(t.Muted)
			}
		})
	for _, s := range list {
		tbl.Row(strconv.Itoa(s.ID), s.Text, strconv.Itoa(s.UseCount))
	}

	return tbl.Render() + "\n" + t.Subtle.Render(fmt.Sprintf("%d suggestions", len(list)))
}

// RenderSettings renders every settings key with its current value.
func (r *ReportRenderer) RenderSettings(s entity.Settings) string {
	t := r.theme

	data, err := json.Marshal(s)
	if err != nil {
		return r.RenderError(err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return r.RenderError(err)
	}

	keys := lo.Keys(fields)
	slices.Sort(keys)
	width := lo.Max(lo.Map(keys, func(k string, _ int) int { return len(k) }))

	var b strings.Builder
	b.WriteString(t.Title.Render("Settings"))
	b.WriteString("\n")
	for _, k := range keys {
		b.WriteString(t.HelpKey.Render(fmt.Sprintf("%-*s", width, k)))
		b.WriteString("  ")
		b.WriteString(t.Normal.Render(string(fields[k])))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderVersion renders build information.
func (r *ReportRenderer) RenderVersion(info build.Info) string {
	t := r.theme
	row := func(label, value string) string {
		return t.Subtle.Render(fmt.Sprintf("%-10s", label)) + t.Normal.Render(value)
	}
	return t.Box.Render(strings.Join([]string{
		t.Highlight.Render("fsearch") + " " + t.Title.Render(info.Version),
		"",
		row("commit", info.Commit),
		row("built", info.BuildDate),
		row("go", info.GoVersion),
		row("repo", build.RepoURL()),
	}, "\n"))
}

// RenderSuccess renders a confirmation line.
func (r *ReportRenderer) RenderSuccess(msg string) string {
	return r.theme.SuccessStyle.Render("✓ " + msg)
}

// RenderError renders an error line.
func (r *ReportRenderer) RenderError(err error) string {
	return r.theme.ErrorStyle.Render("✗ " + err.Error())
}
