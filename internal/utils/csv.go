package utils

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// ParseCSVRecords reads header-keyed CSV data into a slice of maps, one per
// row. Used by the admin bulk-import endpoint.
func ParseCSVRecords(data string) ([]map[string]string, error) {
	reader := csv.NewReader(strings.NewReader(strings.TrimSpace(data)))
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	headers := rows[0]
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				record[h] = strings.TrimSpace(row[i])
			} else {
				record[h] = ""
			}
		}
		records = append(records, record)
	}
	return records, nil
}
