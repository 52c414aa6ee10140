package taxonomy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/katalvlaran/fracturedpane/pathcode"
)

// ReadJSON parses either a bare array of relations or {"relations": [...]}.
func ReadJSON(r io.Reader) ([]pathcode.Relation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var rels []pathcode.Relation
	if data[0] == '[' {
		err = json.Unmarshal(data, &rels)
	} else {
		var doc struct {
			Relations []pathcode.Relation `json:"relations"`
		}
		err = json.Unmarshal(data, &doc)
		rels = doc.Relations
	}
	if err != nil {
		return nil, fmt.Errorf("%w: json: %w", ErrMalformedInput, err)
	}
	return rels, nil
}
