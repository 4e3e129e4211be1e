package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/jetsetgo/dispatchdesk/internal/config"
	"github.com/jetsetgo/dispatchdesk/internal/report"
	"github.com/jetsetgo/dispatchdesk/internal/tui"
	"github.com/jetsetgo/dispatchdesk/internal/view"
)

// OutputFormat is the encoding of non-interactive command output.
type OutputFormat string

// Supported output formats.
const (
	OutputTable  OutputFormat = "table"
	OutputJSON   OutputFormat = "json"
	OutputNDJSON OutputFormat = "ndjson"
)

// ErrUnsupportedFormat is returned for --output values other than table, json or ndjson.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

// resolveOutputFormat returns the --output flag value, or the configured default when the
// flag is empty.
func resolveOutputFormat(flag string) (OutputFormat, error) {
	value := strings.ToLower(strings.TrimSpace(flag))
	if value == "" {
		value = config.GetDefaultOutputFormat()
	}
	switch f := OutputFormat(value); f {
	case OutputTable, OutputJSON, OutputNDJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: table, json, ndjson)", ErrUnsupportedFormat, flag)
	}
}

// OutputMode is how table output is decorated.
type OutputMode int

const (
	// OutputModePlain writes undecorated text, for pipes and files.
	OutputModePlain OutputMode = iota
	// OutputModeStyled adds lipgloss styling, for terminals.
	OutputModeStyled
)

// detectOutputMode picks styled output when w is a terminal and NO_COLOR is unset.
func detectOutputMode(w io.Writer) OutputMode {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return OutputModePlain
	}
	f, ok := w.(*os.File)
	if !ok || !isTerminal(f) {
		return OutputModePlain
	}
	return OutputModeStyled
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

// writeNDJSON writes one JSON document per line.
func writeNDJSON[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for i := range items {
		if err := enc.Encode(items[i]); err != nil {
			return fmt.Errorf("encoding NDJSON line %d: %w", i+1, err)
		}
	}
	return nil
}

// isBrokenPipe checks if an error is a broken pipe error (SIGPIPE).
// This occurs when output is piped to commands like `head` that close the pipe early.
func isBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EPIPE
	}
	return strings.Contains(err.Error(), "broken pipe")
}

// ignoreBrokenPipe drops broken pipe errors from streaming output.
func ignoreBrokenPipe(err error) error {
	if isBrokenPipe(err) {
		return nil
	}
	return err
}

// renderTable writes a header and rows through a tabwriter. Styled mode underlines the
// aligned header with the TUI table header style instead of a dashed rule.
func renderTable(w io.Writer, mode OutputMode, columns []view.Column, rows [][]string) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, tabPadding, ' ', 0)

	titles := make([]string, len(columns))
	rules := make([]string, len(columns))
	for i, c := range columns {
		titles[i] = c.Title
		rules[i] = strings.Repeat("-", len(c.Title))
	}
	fmt.Fprintln(tw, strings.Join(titles, "\t"))
	if mode == OutputModePlain {
		fmt.Fprintln(tw, strings.Join(rules, "\t"))
	}
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	out := buf.String()
	if mode == OutputModeStyled {
		header, rest, _ := strings.Cut(out, "\n")
		out = tui.TableHeaderStyle.Render(strings.TrimRight(header, " ")) + "\n" + rest
	}
	_, err := io.WriteString(w, out)
	return err
}

// renderDispatchRows writes dispatch rows as a table.
func renderDispatchRows(w io.Writer, mode OutputMode, rows []report.DispatchRow) error {
	cells := make([][]string, len(rows))
	for i, r := range view.DispatchRowViews(rows) {
		cells[i] = r.Cells()
	}
	return renderTable(w, mode, view.DispatchColumns, cells)
}

// renderOrderRows writes outstanding orders as a table.
func renderOrderRows(w io.Writer, mode OutputMode, orders []report.OutstandingOrder) error {
	cells := make([][]string, len(orders))
	for i, o := range view.OrderRowViews(orders) {
		cells[i] = o.Cells()
	}
	return renderTable(w, mode, view.OrderColumns, cells)
}

// renderNotice writes an informational line, styled on terminals.
func renderNotice(w io.Writer, mode OutputMode, text string) {
	if mode == OutputModeStyled {
		fmt.Fprintln(w, tui.SubtleStyle.Render(text))
		return
	}
	fmt.Fprintln(w, text)
}
