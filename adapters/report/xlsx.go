package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"gobayes/domain/enrichment"
)

const maxSheetName = 31

// WriteXLSX writes one worksheet per report. Sheet names are the module
// names, cleaned of characters Excel rejects and made unique ignoring case,
// as Excel compares sheet names case-insensitively.
func WriteXLSX(w io.Writer, reports []enrichment.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	if len(reports) == 0 {
		if err := f.SetSheetRow(defaultSheet, "A1", &Header); err != nil {
			return err
		}
		return f.Write(w)
	}

	used := make(map[string]bool)
	for i, r := range reports {
		name := sheetName(r.Module, used)
		if i == 0 {
			// The first module takes over the default sheet.
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("rename sheet to %s: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
		if err := writeSheet(f, name, r); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeSheet(f *excelize.File, sheet string, r enrichment.Report) error {
	if err := f.SetSheetRow(sheet, "A1", &Header); err != nil {
		return err
	}
	for i, row := range r.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			r.RunID.String(),
			r.Module,
			r.Mode.String(),
			row.Term.String(),
			row.Total,
			row.Annotated,
			row.Drawn,
			row.Hits,
			row.PValue,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "D", "D", 14)
}

func sheetName(module string, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, module)
	if name == "" {
		name = "module"
	}
	if strings.HasPrefix(name, "'") {
		name = "_" + name[1:]
	}
	if strings.HasSuffix(name, "'") {
		name = name[:len(name)-1] + "_"
	}

	base := truncateRunes(name, maxSheetName)
	name = base
	for i := 2; used[strings.ToLower(name)]; i++ {
		suffix := fmt.Sprintf("~%d", i)
		name = truncateRunes(base, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
