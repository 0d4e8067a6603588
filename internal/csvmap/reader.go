package csvmap

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/groupledger/groupledger/internal/domain"
)

// ReadFile parses a CSV stream into its header row and data rows. Headers
// are kept verbatim (whitespace and all) because they double as row-map
// keys; only a leading byte-order-mark on the first header is stripped.
// Rows shorter than the header are padded with empty cells, longer rows
// keep only the headed cells. A file without data rows is ErrEmptyFile.
func ReadFile(r io.Reader) ([]string, []map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, domain.ErrEmptyFile
	}

	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlankRecord(rec) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, nil, domain.ErrEmptyFile
	}
	return headers, rows, nil
}

func isBlankRecord(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
