package domain

import (
	"fmt"
	"strings"
)

// SourceError describes a syntax or compile error located in a source file.
// It unwraps to ErrSourceSyntax.
type SourceError struct {
	Class   AssetClass
	File    string
	Line    int
	Column  int
	Message string
}

// Error formats the error as file:line:col: message.
func (e *SourceError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
			if e.Column > 0 {
				fmt.Fprintf(&b, ":%d", e.Column)
			}
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// Unwrap allows errors.Is(err, ErrSourceSyntax).
func (e *SourceError) Unwrap() error {
	return ErrSourceSyntax
}
