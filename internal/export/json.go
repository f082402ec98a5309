package export

import (
	"encoding/json"
	"io"
)

// JSONExporter writes the full payload as indented JSON. This is the
// canonical output; CSV and XLSX are flattened views of the same data.
type JSONExporter struct{}

func (e *JSONExporter) Export(w io.Writer, p *Payload) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
