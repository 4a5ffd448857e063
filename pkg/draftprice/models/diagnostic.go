package models

// DiagnosticKind classifies a recoverable problem.
type DiagnosticKind string

const (
	// KindFetch marks a source that could not be retrieved or matched no schema.
	KindFetch DiagnosticKind = "fetch"
	// KindSchema marks a sub-table without the required columns.
	KindSchema DiagnosticKind = "schema"
	// KindFormat marks a row whose price or record cell did not parse.
	KindFormat DiagnosticKind = "format"
)

// Diagnostic records a skipped row, sub-table or source.
type Diagnostic struct {
	// Source is the source identifier.
	Source string `json:"source"`
	// SubTable is the sub-table name, empty for source-level problems.
	SubTable string `json:"sub_table,omitempty"`
	// Row is the 1-based data row, 0 when not row specific.
	Row int `json:"row,omitempty"`
	// Kind classifies the problem.
	Kind DiagnosticKind `json:"kind"`
	// Err is the underlying error.
	Err error `json:"-"`
}

// Message returns the error text, or "" when Err is nil.
func (d Diagnostic) Message() string {
	if d.Err == nil {
		return ""
	}
	return d.Err.Error()
}
