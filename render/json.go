package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/childes/extract"
)

// JSONRenderer writes extraction results as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes the result as a JSON array: tokens for a flat
// result, token groups for a grouped one.
func (r *JSONRenderer) Render(res extract.Result) {
	if res.Grouped {
		json.NewEncoder(r.W).Encode(res.Groups)
		return
	}

	json.NewEncoder(r.W).Encode(res.Tokens)
}

// compile-time interface check
var _ Renderer = (*JSONRenderer)(nil)
