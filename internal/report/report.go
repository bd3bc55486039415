package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"netdiag/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	descStyle    = lipgloss.NewStyle().Faint(true)
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	verdictStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
)

// Assembler renders the layer results and inference for display and
// produces the plain-text lines the run log expects.
type Assembler struct {
	LatencyWarnMS float64
}

func New(latencyWarnMS float64) *Assembler {
	return &Assembler{LatencyWarnMS: latencyWarnMS}
}

// StatusLine formats one probe outcome in the run-log shape:
//
//	[Layer 4 - Transport] ✅ OK - TCP connect to example.com:443 (12.34 ms)
//	[Layer 3 - Network] ❌ Ping public IP 8.8.8.8 - FAIL (timeout: ...)
func (a *Assembler) StatusLine(r domain.LayerResult) string {
	if !r.Passed {
		return fmt.Sprintf("[Layer %s] ❌ %s - FAIL (%s)", r.Label, r.Check, r.Outcome.Message)
	}
	note := ""
	if r.Outcome.LatencyMS > 0 {
		if a.LatencyWarnMS > 0 && r.Outcome.LatencyMS >= a.LatencyWarnMS {
			note = fmt.Sprintf(" (high latency: %.2f ms)", r.Outcome.LatencyMS)
		} else {
			note = fmt.Sprintf(" (%.2f ms)", r.Outcome.LatencyMS)
		}
	}
	return fmt.Sprintf("[Layer %s] ✅ OK - %s%s", r.Label, r.Check, note)
}

// InferenceLines formats the engine verdict as run-log lines.
func (a *Assembler) InferenceLines(inf domain.Inference) []string {
	lines := []string{"Root Cause Inference: " + inf.Explanation}
	if inf.Recovery != "" {
		lines = append(lines, "Recovery Suggestion: "+inf.Recovery)
	}
	if inf.Advice != "" {
		lines = append(lines, "Advice: "+inf.Advice)
	}
	return lines
}

// Render builds the styled terminal report for a completed run.
func (a *Assembler) Render(rs domain.Results, inf domain.Inference) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("===== NETWORK DIAGNOSTIC (Bottom-Up OSI View) ====="))
	b.WriteString("\n\n")

	passed := 0
	for _, r := range rs {
		b.WriteString(descStyle.Render("▶ " + r.Layer.Description()))
		b.WriteString("\n")
		b.WriteString(a.styledStatus(r))
		b.WriteString("\n")
		if r.Passed {
			passed++
		}
	}

	b.WriteString("\n")
	summary := fmt.Sprintf("%d/%d layers passed", passed, len(rs))
	if passed == len(rs) {
		b.WriteString(passStyle.Render(summary))
	} else {
		b.WriteString(failStyle.Render(summary))
	}
	b.WriteString("\n\n")

	b.WriteString(verdictStyle.Render("Root Cause Inference"))
	b.WriteString("\n" + inf.Explanation + "\n")
	if inf.Recovery != "" {
		b.WriteString(verdictStyle.Render("Recovery Suggestion"))
		b.WriteString("\n" + inf.Recovery + "\n")
	}
	if inf.Advice != "" {
		b.WriteString(descStyle.Render("Advice: " + inf.Advice))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *Assembler) styledStatus(r domain.LayerResult) string {
	line := a.StatusLine(r)
	switch {
	case !r.Passed:
		return failStyle.Render(line)
	case a.LatencyWarnMS > 0 && r.Outcome.LatencyMS >= a.LatencyWarnMS:
		return warnStyle.Render(line)
	default:
		return line
	}
}
