// Package report writes enrichment reports as TSV or XLSX.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"gobayes/domain/enrichment"
)

// Header is the column layout shared by all report formats
var Header = []string{"run_id", "module", "mode", "term", "total", "annotated", "drawn", "hits", "p_value"}

// WriteTSV writes every row of every report as one tab-separated line
func WriteTSV(w io.Writer, reports []enrichment.Report) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range reports {
		for _, row := range r.Rows {
			if err := cw.Write(record(r, row)); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(r enrichment.Report, row enrichment.TermResult) []string {
	return []string{
		r.RunID.String(),
		r.Module,
		r.Mode.String(),
		row.Term.String(),
		strconv.Itoa(row.Total),
		strconv.Itoa(row.Annotated),
		strconv.Itoa(row.Drawn),
		strconv.Itoa(row.Hits),
		strconv.FormatFloat(row.PValue, 'g', -1, 64),
	}
}
