package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiBlue  = "\033[34m"
	ansiCyan  = "\033[36m"
	ansiWhite = "\033[37m"
	ansiGray  = "\033[90m"
)

// detailWidth is the column at which Detail text wraps.
const detailWidth = 70

// colorEnabled is off when NO_COLOR is set.
var colorEnabled = os.Getenv("NO_COLOR") == ""

// DisableColors turns off ANSI colors in Format and PrintError.
func DisableColors() { colorEnabled = false }

// EnableColors turns ANSI colors back on.
func EnableColors() { colorEnabled = true }

func paint(text string, codes ...string) string {
	if !colorEnabled || len(codes) == 0 {
		return text
	}
	return strings.Join(codes, "") + text + ansiReset
}

func red(text string) string   { return paint(text, ansiRed) }
func blue(text string) string  { return paint(text, ansiBlue) }
func cyan(text string) string  { return paint(text, ansiCyan) }
func white(text string) string { return paint(text, ansiWhite) }
func gray(text string) string  { return paint(text, ansiGray) }

// Format renders the error as a multi-line terminal report: a header, the
// source excerpt around Location, then detail, hint, example and doc link.
func (e *Error) Format() string {
	var b strings.Builder
	b.WriteString("\n")
	e.writeHeader(&b)
	e.writeSource(&b)

	if lines := wrapText(e.Detail, detailWidth); len(lines) > 0 {
		writeBlock(&b, "  ", lines)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s%s\n\n", cyan("Hint: "), e.Suggestion)
	}
	if e.Example != "" {
		fmt.Fprintf(&b, "  %s\n", cyan("Example:"))
		writeBlock(&b, "    ", strings.Split(e.Example, "\n"))
	}
	if e.DocURL != "" {
		fmt.Fprintf(&b, "  %s%s\n", gray("Learn more: "), blue(e.DocURL))
	}
	return b.String()
}

func (e *Error) writeHeader(w io.Writer) {
	label := paint("ERROR: ", ansiRed, ansiBold)
	if e.Code != "" {
		label = paint("ERROR ", ansiRed, ansiBold) + paint(e.Code+": ", ansiWhite, ansiBold)
	}
	fmt.Fprintf(w, "%s%s\n\n", label, white(e.Message))
}

// writeSource prints the location and, when context lines were captured,
// a numbered excerpt with the failing line marked.
func (e *Error) writeSource(w io.Writer) {
	loc := e.Location
	if loc == nil {
		return
	}
	fmt.Fprintf(w, "  %s\n\n", cyan(loc.String()))
	if len(e.Context) == 0 {
		return
	}

	first := loc.Line - len(e.Context)/2
	for i, text := range e.Context {
		n := first + i
		if n != loc.Line {
			fmt.Fprintf(w, "    %4d%s%s\n", n, gray(" │ "), text)
			continue
		}
		fmt.Fprintf(w, "  %s%4d%s%s\n", red("→ "), n, gray(" │ "), text)
		if loc.Column > 0 {
			fmt.Fprintf(w, "       %s%s%s\n", gray("│ "), strings.Repeat(" ", loc.Column-1), red("^"))
		}
	}
	io.WriteString(w, "\n")
}

func writeBlock(b *strings.Builder, indent string, lines []string) {
	for _, line := range lines {
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
}

// FormatCompact returns "location: code: message", omitting absent parts.
// The preview overlay and log lines use this form.
func (e *Error) FormatCompact() string {
	parts := make([]string, 0, 3)
	if e.Location != nil {
		parts = append(parts, e.Location.String())
	}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	return strings.Join(append(parts, e.Message), ": ")
}

type jsonLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type jsonError struct {
	Code       string        `json:"code,omitempty"`
	Category   Category      `json:"category"`
	Message    string        `json:"message"`
	Detail     string        `json:"detail,omitempty"`
	Location   *jsonLocation `json:"location,omitempty"`
	Suggestion string        `json:"suggestion,omitempty"`
	DocURL     string        `json:"docUrl,omitempty"`
}

// FormatJSON returns the error as a single JSON object.
func (e *Error) FormatJSON() string {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
		DocURL:     e.DocURL,
	}
	if l := e.Location; l != nil {
		out.Location = &jsonLocation{File: l.File, Line: l.Line, Column: l.Column}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Message)
	}
	return string(data)
}

// wrapText breaks text on spaces into lines of at most width bytes. A word
// longer than width gets a line of its own.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := []string{words[0]}
	for _, word := range words[1:] {
		last := &lines[len(lines)-1]
		if len(*last)+1+len(word) > width {
			lines = append(lines, word)
			continue
		}
		*last += " " + word
	}
	return lines
}

// PrintError writes err to stderr, fully formatted when it is (or wraps)
// an *Error.
func PrintError(err error) {
	var coded *Error
	if stderrors.As(err, &coded) {
		fmt.Fprint(os.Stderr, coded.Format())
		return
	}
	fmt.Fprintf(os.Stderr, "\n%s %s\n\n", paint("ERROR:", ansiRed, ansiBold), err.Error())
}

// PrintErrorJSON writes err to w as one line of JSON. Errors that are not an
// *Error are reported under the cli category without a code.
func PrintErrorJSON(w io.Writer, err error) {
	var coded *Error
	if !stderrors.As(err, &coded) {
		coded = Newf(CategoryCLI, "%s", err.Error())
	}
	fmt.Fprintln(w, coded.FormatJSON())
}
