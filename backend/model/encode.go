package model

import (
	"encoding/json"
	"io"
)

// Encode writes v as JSON followed by a newline. Unless compact is set the
// output is indented by four spaces.
func Encode(w io.Writer, v any, compact bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if !compact {
		enc.SetIndent("", "    ")
	}
	return enc.Encode(v)
}
