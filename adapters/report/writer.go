package report

import (
	"io"
	"path/filepath"
	"strings"

	"gobayes/domain/enrichment"
	"gobayes/ports"
)

var _ ports.ReportWriter = Writer(nil)

// Writer adapts a write function to ports.ReportWriter
type Writer func(io.Writer, []enrichment.Report) error

// WriteReports implements ports.ReportWriter
func (f Writer) WriteReports(w io.Writer, reports []enrichment.Report) error {
	return f(w, reports)
}

// ForPath picks the XLSX writer for .xlsx paths and TSV otherwise
func ForPath(path string) Writer {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return WriteXLSX
	}
	return WriteTSV
}
