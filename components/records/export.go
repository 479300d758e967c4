package records

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"strconv"
)

// ExportHeader is the column header written by WriteCSV.
var ExportHeader = []string{"id", "name", "email", "role", "status", "last_login"}

// Values returns the row cells in ExportHeader order.
func (r ExportRow) Values() []string {
	return []string{strconv.Itoa(r.ID), r.Name, r.Email, r.Role, r.Status, r.LastLogin}
}

// WriteCSV renders rows as CSV with a header line. It returns the number of
// data rows written.
func WriteCSV(w io.Writer, rows iter.Seq[ExportRow]) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return 0, fmt.Errorf("records: write csv header: %w", err)
	}
	n := 0
	for row := range rows {
		if err := cw.Write(row.Values()); err != nil {
			return n, fmt.Errorf("records: write csv row %d: %w", row.ID, err)
		}
		n++
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return n, fmt.Errorf("records: flush csv: %w", err)
	}
	return n, nil
}
