package model

// Input formats accepted by LowerRequest.Format.
const (
	FormatClangJSON = "clang-json"
	FormatTxtar     = "txtar"
)

// LowerRequest represents a request to lower a clang AST dump
type LowerRequest struct {
	Source        string `json:"source"`
	Format        string `json:"format"`                  // "clang-json" or "txtar"
	SchemaVersion string `json:"schemaVersion,omitempty"` // semver, e.g. "v1.0.0"
}

// Position represents a position in source code
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// FileInfo represents one file of a txtar archive
type FileInfo struct {
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
}

// FileDocument is the lowered document of one archive file
type FileDocument struct {
	Name     string    `json:"name"`
	Document *Document `json:"document,omitempty"`
}

// LowerResponse represents the response from lowering
type LowerResponse struct {
	SchemaVersion string         `json:"schemaVersion"`
	Document      *Document      `json:"document,omitempty"`
	Documents     []FileDocument `json:"documents,omitempty"`
	Files         []FileInfo     `json:"files,omitempty"`
	Errors        []ParseError   `json:"errors,omitempty"`
}

// ParseError represents a front-end or lowering failure
type ParseError struct {
	File     string   `json:"file,omitempty"`
	Message  string   `json:"message"`
	Position Position `json:"position"`
	Severity string   `json:"severity"` // "error" or "warning"
}
