package javatree

import "fmt"

// SyntaxError is returned when tree-sitter could not parse part of a file.
type SyntaxError struct {
	File   string
	Line   int
	Column int
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: syntax error", e.File, e.Line, e.Column)
	}
	return fmt.Sprintf("%d:%d: syntax error", e.Line, e.Column)
}

// FileReadError is returned when a source file cannot be read.
type FileReadError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileReadError) Unwrap() error {
	return e.Err
}
