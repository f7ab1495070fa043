package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/xerrors"

	"github.com/aquasecurity/device-eol-report/lifecycle"
)

const (
	dateFormat  = "2006-01-02"
	maxColWidth = 32
	colSep      = "  "
)

var headers = []string{"OS", "Cycle", "Version", "Device", "Model", "User", "Phase", "EOL", "Days", "Lowest", "Newest"}

type RenderOptions struct {
	NoColor bool
}

// Render writes the report as a table grouped by status, followed by a summary.
func Render(w io.Writer, r Report, opts RenderOptions) error {
	p := newPalette(opts.NoColor)

	if len(r.Results) == 0 {
		if _, err := fmt.Fprintln(w, "No devices to report."); err != nil {
			return xerrors.Errorf("failed to write report: %w", err)
		}
		return nil
	}

	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		rows = append(rows, row(res))
	}
	widths := columnWidths(rows)

	var b strings.Builder
	var current lifecycle.Status
	for i, res := range r.Results {
		if i == 0 || res.Status != current {
			current = res.Status
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(p.status(current).Sprintf("%s (%d)", current, r.Counts[current]))
			b.WriteString("\n")
			b.WriteString(p.header.Sprint(line(headers, widths)))
			b.WriteString("\n")
		}
		b.WriteString(p.row(res).Sprint(line(rows[i], widths)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(summary(r, p))
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return xerrors.Errorf("failed to write report: %w", err)
	}
	return nil
}

func row(r lifecycle.Result) []string {
	eol, days := lifecycle.NoSummary, lifecycle.NoSummary
	if r.EOL != nil {
		eol = r.EOL.Format(dateFormat)
	}
	if r.DaysToEOL != nil {
		days = strconv.Itoa(*r.DaysToEOL)
	}
	return []string{
		orDash(r.OS),
		orDash(r.Cycle),
		orDash(r.Version),
		orDash(r.Device),
		orDash(r.Model),
		orDash(r.User),
		string(r.Phase),
		eol,
		days,
		r.LowestSupported,
		r.NewestAvailable,
	}
}

func columnWidths(rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, cols := range rows {
		for i, col := range cols {
			widths[i] = max(widths[i], min(runewidth.StringWidth(col), maxColWidth))
		}
	}
	return widths
}

func line(cols []string, widths []int) string {
	cells := make([]string, len(cols))
	for i, col := range cols {
		col = runewidth.Truncate(col, widths[i], "…")
		cells[i] = runewidth.FillRight(col, widths[i])
	}
	return strings.TrimRight(strings.Join(cells, colSep), " ")
}

func summary(r Report, p palette) string {
	parts := []string{fmt.Sprintf("Report date: %s", r.Date.Format(dateFormat))}
	for _, s := range []lifecycle.Status{lifecycle.StatusEndOfLife, lifecycle.StatusUnknown, lifecycle.StatusSupported} {
		parts = append(parts, p.status(s).Sprintf("%s: %d", s, r.Counts[s]))
	}
	parts = append(parts, fmt.Sprintf("Total: %d", len(r.Results)))
	return strings.Join(parts, colSep)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return lifecycle.NoSummary
	}
	return s
}

type palette struct {
	header    *color.Color
	eol       *color.Color
	unknown   *color.Color
	supported *color.Color
	nearing   *color.Color
	plain     *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		header:    color.New(color.Bold, color.Underline),
		eol:       color.New(color.FgRed, color.Bold),
		unknown:   color.New(color.FgYellow),
		supported: color.New(color.FgGreen),
		nearing:   color.New(color.FgHiYellow, color.Bold),
		plain:     color.New(color.Reset),
	}
	if noColor {
		for _, c := range []*color.Color{p.header, p.eol, p.unknown, p.supported, p.nearing, p.plain} {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) status(s lifecycle.Status) *color.Color {
	switch s {
	case lifecycle.StatusEndOfLife:
		return p.eol
	case lifecycle.StatusUnknown:
		return p.unknown
	case lifecycle.StatusSupported:
		return p.supported
	}
	return p.plain
}

func (p palette) row(r lifecycle.Result) *color.Color {
	if r.Phase == lifecycle.PhaseNearingEOL {
		return p.nearing
	}
	return p.status(r.Status)
}
