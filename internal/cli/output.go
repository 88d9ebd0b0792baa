package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/katalvlaran/qmlkit/internal/config"
)

// Output formats.
const (
	FormatTable    = "table"
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

func formatNames() []string {
	return []string{FormatTable, FormatJSON, FormatCSV, FormatMarkdown}
}

// Renderer prints command results in the configured format.
type Renderer struct {
	w         io.Writer
	format    string
	precision int
}

// NewRenderer validates format; precision <= 0 selects the default.
func NewRenderer(w io.Writer, format string, precision int) (*Renderer, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	switch f {
	case "":
		f = FormatTable
	case "md":
		f = FormatMarkdown
	case FormatTable, FormatJSON, FormatCSV, FormatMarkdown:
	default:
		return nil, fmt.Errorf("unknown output format %q (want %s)", format, strings.Join(formatNames(), "|"))
	}
	if precision <= 0 {
		precision = config.DefaultPrecision
	}

	return &Renderer{w: w, format: f, precision: precision}, nil
}

// Format returns the resolved output format.
func (r *Renderer) Format() string { return r.format }

// Float formats v with the configured significant digits.
func (r *Renderer) Float(v float64) string {
	return strconv.FormatFloat(v, 'g', r.precision, 64)
}

// Grid is a labelled numeric table. Payload, when set, replaces the grid in
// JSON output.
type Grid struct {
	Title   string
	Labels  []string
	Header  []string
	Rows    [][]float64
	Payload any
}

// Render prints g.
func (r *Renderer) Render(g Grid) error {
	if r.format == FormatJSON {
		var v any = g.Payload
		if v == nil {
			v = g.Rows
		}
		return r.json(v)
	}
	t := r.table(g.Header)
	if g.Title != "" && r.format == FormatTable {
		t.SetTitle("%s", g.Title)
	}
	for i, row := range g.Rows {
		out := make(table.Row, 0, len(row)+1)
		if g.Labels != nil {
			out = append(out, g.Labels[i])
		}
		for _, v := range row {
			out = append(out, r.Float(v))
		}
		t.AppendRow(out)
	}
	r.flush(t)

	return nil
}

// RenderAll prints every grid, or payload as one JSON document.
func (r *Renderer) RenderAll(gs []Grid, payload any) error {
	if r.format == FormatJSON {
		return r.json(payload)
	}
	for _, g := range gs {
		g.Payload = nil
		if err := r.Render(g); err != nil {
			return err
		}
	}

	return nil
}

// Records prints rows of mixed cells; JSON output encodes payload.
func (r *Renderer) Records(header []string, rows []table.Row, payload any) error {
	if r.format == FormatJSON {
		return r.json(payload)
	}
	t := r.table(header)
	t.AppendRows(rows)
	r.flush(t)

	return nil
}

func (r *Renderer) json(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) table(header []string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	if len(header) > 0 {
		hdr := make(table.Row, len(header))
		for i, h := range header {
			hdr[i] = h
		}
		t.AppendHeader(hdr)
	}

	return t
}

func (r *Renderer) flush(t table.Writer) {
	switch r.format {
	case FormatCSV:
		t.RenderCSV()
	case FormatMarkdown:
		t.RenderMarkdown()
	default:
		t.Render()
	}
}
