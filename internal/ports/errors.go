package ports

import "fmt"

// The error taxonomy below is deliberately flat: every failure mode an
// extraction can hit maps to exactly one typed error, matchable with
// errors.As. Single-file operations return the first error directly;
// directory scans record err.Error() per file and keep going.

// DetectionError reports a path whose language could not be determined.
type DetectionError struct {
	Path   string
	Reason string
}

func (e *DetectionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// RegistryError reports a language whose grammar could not be supplied.
type RegistryError struct {
	Language string
	Reason   string
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("grammar %s: %s", e.Language, e.Reason)
}

// ParseError reports a file the grammar provider failed to parse into a tree.
type ParseError struct {
	Path     string
	Language string
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s (%s): %s", e.Path, e.Language, e.Reason)
}

// BinaryFileError reports a file rejected by the NUL-byte sniff before any
// parser ran.
type BinaryFileError struct {
	Path string
}

func (e *BinaryFileError) Error() string {
	return fmt.Sprintf("%s: binary file", e.Path)
}

// QueryError reports a structural pattern that failed to compile. Row and
// Column locate the offending token within the pattern text.
type QueryError struct {
	Message string
	Row     int
	Column  int
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query pattern: %s at %d:%d", e.Message, e.Row, e.Column)
}

// BuildError reports a candidate node with inconsistent position data. The
// symbol is dropped and the error recorded; it is never fatal.
type BuildError struct {
	Path string
	Name string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: inconsistent node positions for %q", e.Path, e.Name)
}
