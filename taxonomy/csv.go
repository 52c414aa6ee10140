package taxonomy

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/fracturedpane/pathcode"
)

// ReadCSV parses parent/concept rows. If the first row names a "concept"
// column it is a header and "parent" must be named too; otherwise every row
// is data with the parent in the first cell and the concept in the second.
// An empty parent cell marks an explicit root.
func ReadCSV(r io.Reader) ([]pathcode.Relation, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: csv: %w", ErrMalformedInput, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	parentCol, conceptCol, header, err := columns(records[0])
	if err != nil {
		return nil, err
	}
	if header {
		records = records[1:]
	}

	need := max(parentCol, conceptCol) + 1
	rels := make([]pathcode.Relation, 0, len(records))
	for i, rec := range records {
		line := i + 1
		if header {
			line++
		}
		if len(rec) < need {
			return nil, fmt.Errorf("%w: csv line %d: %d field(s), need %d", ErrMalformedInput, line, len(rec), need)
		}
		rels = append(rels, pathcode.Relation{
			Parent:  strings.TrimSpace(rec[parentCol]),
			Concept: strings.TrimSpace(rec[conceptCol]),
		})
	}
	return rels, nil
}

// columns locates the parent and concept columns from the first record.
func columns(first []string) (parent, concept int, header bool, err error) {
	parent, concept = -1, -1
	for i, cell := range first {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "parent":
			parent = i
		case "concept":
			concept = i
		}
	}
	switch {
	case concept < 0:
		return 0, 1, false, nil
	case parent < 0:
		return 0, 0, false, fmt.Errorf("%w: csv header has a concept column but no parent column", ErrMalformedInput)
	default:
		return parent, concept, true, nil
	}
}
