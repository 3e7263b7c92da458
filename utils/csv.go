package utils

import (
	"encoding/csv"
	"io"
)

// WriteCSV writes a header row followed by data rows. Fields containing
// commas or quotes are quoted with embedded quotes doubled, per RFC 4180.
func WriteCSV(w io.Writer, headers []string, rows [][]string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
