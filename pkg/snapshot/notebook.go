package snapshot

import (
	"bytes"
	"encoding/json"
)

// StripNotebookOutputs removes execution artifacts from a Jupyter
// notebook: cell outputs and metadata are dropped and every cell's
// execution count is set to null, so the rendered size tracks the
// authored code and markdown rather than embedded images and stdout
// blobs. Cell sources are left untouched. Returns an error when the
// input is not valid notebook JSON; callers fall back to the raw
// content.
func StripNotebookOutputs(raw []byte) ([]byte, error) {
	var nb map[string]interface{}
	if err := json.Unmarshal(raw, &nb); err != nil {
		return nil, err
	}

	if cells, ok := nb["cells"].([]interface{}); ok {
		for _, c := range cells {
			cell, ok := c.(map[string]interface{})
			if !ok {
				continue
			}
			delete(cell, "outputs")
			delete(cell, "metadata")
			cell["execution_count"] = nil
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	if err := enc.Encode(nb); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
