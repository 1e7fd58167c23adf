package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var lineRe = regexp.MustCompile(`line (\d+)`)

// Category represents the type of error.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryPageFile Category = "pagefile"
	CategoryPublish  Category = "publish"
	CategoryServer   Category = "server"
	CategoryCLI      Category = "cli"
)

// Location represents a source code location.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Line == 0 {
		return l.File
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Error is a structured error with source location, suggestions, and documentation.
type Error struct {
	// Code is a unique error identifier (e.g., "E201").
	Code string

	// Category is the error type (config, pagefile, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the source code location where the error occurred.
	Location *Location

	// Context contains surrounding source code lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example shows the correct approach, usually a config or page file snippet.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds source location to the error.
func (e *Error) WithLocation(file string, line, column int) *Error {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithLocationFromError extracts a line number from a decoder error such
// as "yaml: line 4: mapping values are not allowed in this context".
func (e *Error) WithLocationFromError(file string, err error) *Error {
	if err == nil {
		return e
	}
	m := lineRe.FindStringSubmatch(err.Error())
	if m == nil {
		e.Location = &Location{File: file}
		return e
	}
	line, _ := strconv.Atoi(m[1])
	return e.WithLocation(file, line, 0)
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithExample adds a code example to the error.
func (e *Error) WithExample(ex string) *Error {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// readContextLines returns up to contextSize lines of filename centred on
// targetLine (1-based). Unreadable files yield nil.
func readContextLines(filename string, targetLine, contextSize int) []string {
	data, err := os.ReadFile(filename)
	if err != nil || targetLine < 1 {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")

	from := max(targetLine-contextSize/2, 1)
	to := min(targetLine+contextSize/2, len(lines))
	if from > to {
		return nil
	}
	return lines[from-1 : to]
}

// New creates an Error from a registered error code.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &Error{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new Error with a formatted message (no code).
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an Error.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	var ve *Error
	if stderrors.As(err, &ve) {
		return ve
	}
	return New(code).Wrap(err)
}
