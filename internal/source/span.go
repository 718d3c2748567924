// Package source holds the primitive data model shared by every compiler
// phase: source spans, file identity, file roles, and deterministic
// workspace path ordering.
package source

import "fmt"

// FileID identifies a source file within a Workspace. IDs are assigned in
// discovery walk order and never reused.
type FileID uint32

// PackageID identifies a package within a Workspace. IDs are assigned in
// discovery walk order and never reused.
type PackageID uint32

// Span is a half-open byte range within a single file, carrying the
// line/column of both endpoints for diagnostic rendering. Lines and columns
// are 1-based; Column counts UTF-8 runes, not bytes.
type Span struct {
	File        FileID
	StartOffset uint32
	EndOffset   uint32
	StartLine   uint32
	StartColumn uint32
	EndLine     uint32
	EndColumn   uint32
}

// Len reports the byte length of the span.
func (s Span) Len() uint32 {
	if s.EndOffset < s.StartOffset {
		return 0
	}
	return s.EndOffset - s.StartOffset
}

// Contains reports whether the half-open span covers the given byte offset.
func (s Span) Contains(offset uint32) bool {
	return offset >= s.StartOffset && offset < s.EndOffset
}

// Join returns the smallest span covering both s and other. The two spans
// must belong to the same file; Join panics otherwise, since joining spans
// across files is always a caller bug rather than recoverable input.
func (s Span) Join(other Span) Span {
	if s.File != other.File {
		panic(fmt.Sprintf("source: Join across files %d and %d", s.File, other.File))
	}
	joined := s
	if other.StartOffset < s.StartOffset {
		joined.StartOffset = other.StartOffset
		joined.StartLine = other.StartLine
		joined.StartColumn = other.StartColumn
	}
	if other.EndOffset > s.EndOffset {
		joined.EndOffset = other.EndOffset
		joined.EndLine = other.EndLine
		joined.EndColumn = other.EndColumn
	}
	return joined
}

// String renders "line:column" of the span's start, for error messages.
func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.StartLine, s.StartColumn)
}
