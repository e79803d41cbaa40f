// Package ui - Terminal user interface
// Colored headers, status lines and aligned tables for CLI output.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	noColor   bool
	verbosity int
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		noColor:   noColor,
		verbosity: 1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// Color applies color if enabled
func (w *Writer) Color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

// Print writes formatted text
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line with newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println("%s", w.Color(Bold+Cyan, "━━━ "+title+" ━━━"))
	w.Println("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Println("%s", w.Color(Bold, "▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	w.Println("%s%s", w.Color(Green, "✓ "), fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Println("%s%s", w.Color(Yellow, "⚠ "), fmt.Sprintf(format, args...))
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	w.Println("%s%s", w.Color(Red, "✗ "), fmt.Sprintf(format, args...))
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	w.Println("%s%s", w.Color(Blue, "ℹ "), fmt.Sprintf(format, args...))
}

// Detail prints a dimmed line that only appears at verbose level
func (w *Writer) Detail(format string, args ...interface{}) {
	if w.verbosity < 2 {
		return
	}
	w.Println("%s", w.Color(Dim, "  "+fmt.Sprintf(format, args...)))
}

// Bullet prints an indented list item
func (w *Writer) Bullet(format string, args ...interface{}) {
	w.Println("  • %s", fmt.Sprintf(format, args...))
}

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	marks   []bool
	widths  []int
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		widths:  widths,
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	t.add(false, cells)
}

// AddHighlightedRow adds a row rendered in green
func (t *Table) AddHighlightedRow(cells ...string) {
	t.add(true, cells)
}

func (t *Table) add(mark bool, cells []string) {
	// Pad or truncate cells to match header count
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if n := utf8.RuneCountInString(row[i]); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	t.rows = append(t.rows, row)
	t.marks = append(t.marks, mark)
}

// Render prints the table
func (t *Table) Render() {
	t.w.Println("%s", t.w.Color(Bold, t.line(t.headers)))

	sep := make([]string, len(t.widths))
	for i, w := range t.widths {
		sep[i] = strings.Repeat("─", w)
	}
	t.w.Println("%s", strings.Join(sep, "─┼─"))

	for i, row := range t.rows {
		line := t.line(row)
		if t.marks[i] {
			line = t.w.Color(Green, line)
		}
		t.w.Println("%s", line)
	}
}

func (t *Table) line(cells []string) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = c + strings.Repeat(" ", t.widths[i]-utf8.RuneCountInString(c))
	}
	return strings.TrimRight(strings.Join(padded, " │ "), " ")
}

// Box renders labelled values inside a rounded frame
type Box struct {
	w      *Writer
	labels []string
	values []string
}

// NewBox creates a box
func (w *Writer) NewBox() *Box {
	return &Box{w: w}
}

// Add appends a labelled value
func (b *Box) Add(label, value string) *Box {
	b.labels = append(b.labels, label)
	b.values = append(b.values, value)
	return b
}

// Render prints the box
func (b *Box) Render() {
	lw, vw := 0, 0
	for i := range b.labels {
		if n := utf8.RuneCountInString(b.labels[i]); n > lw {
			lw = n
		}
		if n := utf8.RuneCountInString(b.values[i]); n > vw {
			vw = n
		}
	}
	inner := lw + vw + 7

	b.w.Println("%s", b.w.Color(Bold, "╭"+strings.Repeat("─", inner)+"╮"))
	for i := range b.labels {
		label := b.labels[i] + ":" + strings.Repeat(" ", lw-utf8.RuneCountInString(b.labels[i]))
		value := b.values[i] + strings.Repeat(" ", vw-utf8.RuneCountInString(b.values[i]))
		b.w.Println("%s  %s %s   %s", b.w.Color(Bold, "│"), label, b.w.Color(Green, value), b.w.Color(Bold, "│"))
	}
	b.w.Println("%s", b.w.Color(Bold, "╰"+strings.Repeat("─", inner)+"╯"))
}
