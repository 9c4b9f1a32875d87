package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sbs-ecosystem/ecocheck/internal/domain"
)

const (
	colorSuccess   = "#10B981"
	colorWarning   = "#F59E0B"
	colorError     = "#EF4444"
	colorInfo      = "#3B82F6"
	colorHighlight = "#06B6D4"
)

const ruleWidth = 60

// Renderer prints run results. Colours are dropped when out is not a terminal.
type Renderer struct {
	out io.Writer

	title  lipgloss.Style
	pass   lipgloss.Style
	fail   lipgloss.Style
	warn   lipgloss.Style
	skip   lipgloss.Style
	detail lipgloss.Style
}

// NewRenderer builds a renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	r := lipgloss.NewRenderer(out)
	return &Renderer{
		out:    out,
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorHighlight)),
		pass:   r.NewStyle().Foreground(lipgloss.Color(colorSuccess)),
		fail:   r.NewStyle().Foreground(lipgloss.Color(colorError)),
		warn:   r.NewStyle().Foreground(lipgloss.Color(colorWarning)),
		skip:   r.NewStyle().Foreground(lipgloss.Color(colorInfo)),
		detail: r.NewStyle().Foreground(lipgloss.Color(colorHighlight)),
	}
}

// Render prints the summary, optionally every result, then the verdict.
func (r *Renderer) Render(results []domain.CheckResult, detailed bool) {
	summary := domain.Summarize(results)

	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.title.Render(rule))
	fmt.Fprintln(r.out, r.title.Render("🎯 SBS n8n Ecosystem Health Check Results"))
	fmt.Fprintln(r.out, r.title.Render(rule))
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, "📊 Summary:")
	fmt.Fprintln(r.out, "  "+r.pass.Render(fmt.Sprintf("✅ Passed: %d", summary.Passed)))
	fmt.Fprintln(r.out, "  "+r.fail.Render(fmt.Sprintf("❌ Failed: %d", summary.Failed)))
	fmt.Fprintln(r.out, "  "+r.warn.Render(fmt.Sprintf("⚠️  Warnings: %d", summary.Warnings)))
	fmt.Fprintln(r.out, "  "+r.skip.Render(fmt.Sprintf("⏭️  Skipped: %d", summary.Skipped)))
	fmt.Fprintf(r.out, "  📈 Total: %d\n\n", summary.Total)

	if detailed {
		for _, result := range results {
			r.renderResult(result)
		}
	}

	r.renderVerdict(summary)
}

func (r *Renderer) renderResult(result domain.CheckResult) {
	line := fmt.Sprintf("%s %s: %s", Glyph(result.Status), result.Name, result.Message)
	if result.DurationMS > 0 {
		line += fmt.Sprintf(" (%dms)", result.DurationMS)
	}
	fmt.Fprintln(r.out, r.statusStyle(result.Status).Render(line))

	if result.Details.Len() == 0 {
		return
	}
	for _, f := range result.Details.Fields() {
		fmt.Fprintln(r.out, "     "+r.detail.Render(fmt.Sprintf("%s: %s", f.Key, f.Value)))
	}
	fmt.Fprintln(r.out)
}

func (r *Renderer) renderVerdict(summary domain.Summary) {
	switch summary.Verdict() {
	case domain.VerdictUnhealthy:
		fmt.Fprintln(r.out, r.fail.Render(fmt.Sprintf("🚨 ECOSYSTEM STATUS: UNHEALTHY - %d critical issues detected", summary.Failed)))
	case domain.VerdictDegraded:
		fmt.Fprintln(r.out, r.warn.Render(fmt.Sprintf("⚠️  ECOSYSTEM STATUS: DEGRADED - %d warnings detected", summary.Warnings)))
	default:
		fmt.Fprintln(r.out, r.pass.Render("🎉 ECOSYSTEM STATUS: HEALTHY - All systems operational"))
	}
}

// Exported reports where the JSON document went.
func (r *Renderer) Exported(path string) {
	fmt.Fprintln(r.out, r.pass.Render("📄 Results exported to: "+path))
}

// Interrupted is printed when a run is cancelled by a signal.
func (r *Renderer) Interrupted() {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.warn.Render("⏹️  Health check interrupted by user"))
}

func (r *Renderer) statusStyle(status domain.Status) lipgloss.Style {
	switch status {
	case domain.StatusPass:
		return r.pass
	case domain.StatusFail:
		return r.fail
	case domain.StatusWarning:
		return r.warn
	default:
		return r.skip
	}
}

// Glyph is the console icon for a status.
func Glyph(status domain.Status) string {
	switch status {
	case domain.StatusPass:
		return "✅"
	case domain.StatusFail:
		return "❌"
	case domain.StatusWarning:
		return "⚠️ "
	case domain.StatusSkip:
		return "⏭️ "
	default:
		return "❓"
	}
}
