// Package render は端末向けの表示（チャート要約と金額表記）を提供します。
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"stock_tracker/internal/shared/market"

	"github.com/charmbracelet/glamour"
)

// ErrEmptySeries is returned when there is nothing to draw.
var ErrEmptySeries = errors.New("empty series")

const (
	sparkWidth = 60
	tableRows  = 5
	wordWrap   = 100
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Renderer draws a price series. Presentation only; it never touches the store.
type Renderer interface {
	Render(w io.Writer, code string, series []market.Bar) error
}

// TerminalRenderer renders markdown through glamour. Without a usable
// glamour renderer it writes the raw markdown.
type TerminalRenderer struct {
	md *glamour.TermRenderer
}

var _ Renderer = (*TerminalRenderer)(nil)

// NewTerminalRenderer creates a renderer with terminal-detected styling.
func NewTerminalRenderer() *TerminalRenderer {
	return newTerminalRenderer(glamour.WithAutoStyle())
}

// NewPlainRenderer creates a renderer without ANSI styling (pipes, tests).
func NewPlainRenderer() *TerminalRenderer {
	return newTerminalRenderer(glamour.WithStandardStyle("notty"))
}

func newTerminalRenderer(style glamour.TermRendererOption) *TerminalRenderer {
	md, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(wordWrap))
	if err != nil {
		md = nil
	}
	return &TerminalRenderer{md: md}
}

// Render writes a summary of the closes in series: range, change, a sparkline and the last bars.
func (r *TerminalRenderer) Render(w io.Writer, code string, series []market.Bar) error {
	values := closes(series)
	if len(values) == 0 {
		return fmt.Errorf("%s: %w", code, ErrEmptySeries)
	}
	return r.Markdown(w, chartMarkdown(code, series, values))
}

// Markdown renders an arbitrary markdown document.
func (r *TerminalRenderer) Markdown(w io.Writer, doc string) error {
	if r.md == nil {
		_, err := io.WriteString(w, doc)
		return err
	}
	out, err := r.md.Render(doc)
	if err != nil {
		_, werr := io.WriteString(w, doc)
		return werr
	}
	_, err = io.WriteString(w, out)
	return err
}

func chartMarkdown(code string, series []market.Bar, closes []float64) string {
	first, last := closes[0], closes[len(closes)-1]
	lo, hi := minMax(closes)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", code)
	fmt.Fprintf(&b, "%s → %s, %d bars\n\n",
		series[0].Time.Format("2006-01-02"), series[len(series)-1].Time.Format("2006-01-02"), len(series))
	fmt.Fprintf(&b, "- **Last:** %.2f\n", last)
	if first != 0 {
		fmt.Fprintf(&b, "- **Change:** %+.2f%%\n", (last-first)/first*100)
	}
	fmt.Fprintf(&b, "- **Low / High:** %.2f / %.2f\n\n", lo, hi)
	fmt.Fprintf(&b, "```\n%s\n```\n\n", Sparkline(closes, sparkWidth))

	b.WriteString("| Date | Open | High | Low | Close | Volume |\n")
	b.WriteString("|---|---:|---:|---:|---:|---:|\n")
	start := max(0, len(series)-tableRows)
	for _, bar := range series[start:] {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			bar.Time.Format("2006-01-02"), cell(bar.Open, 2), cell(bar.High, 2), cell(bar.Low, 2), cell(bar.Close, 2), cell(bar.Volume, 0))
	}
	return b.String()
}

// Sparkline maps values onto block characters, sampling down to at most width points.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	switch {
	case width == 1:
		values = values[len(values)-1:]
	case len(values) > width:
		sampled := make([]float64, width)
		for i := range sampled {
			sampled[i] = values[i*(len(values)-1)/(width-1)]
		}
		values = sampled
	}
	lo, hi := minMax(values)
	out := make([]rune, len(values))
	for i, v := range values {
		idx := 0
		if hi > lo {
			idx = int(math.Round((v - lo) / (hi - lo) * float64(len(sparkBlocks)-1)))
		}
		out[i] = sparkBlocks[idx]
	}
	return string(out)
}

func closes(series []market.Bar) []float64 {
	out := make([]float64, 0, len(series))
	for _, b := range series {
		if b.Close != nil {
			out = append(out, *b.Close)
		}
	}
	return out
}

func minMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

func cell(v *float64, prec int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.*f", prec, *v)
}
