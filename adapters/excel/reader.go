// Package excel reads gene modules from XLSX workbooks.
package excel

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"gobayes/domain/annotation"
)

// ReadModules reads one module per worksheet, named after the sheet. Genes
// come from the first column. A first cell reading "gene" or "genes" is a
// header and is skipped, as are blank cells and cells starting with '#'.
// Sheets without genes are left out.
func ReadModules(r io.Reader) (map[string]annotation.GeneSet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	modules := make(map[string]annotation.GeneSet)
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}
		genes := annotation.NewGeneSet()
		for i, row := range rows {
			if len(row) == 0 {
				continue
			}
			cell := strings.TrimSpace(row[0])
			if cell == "" || strings.HasPrefix(cell, "#") {
				continue
			}
			if i == 0 && isHeader(cell) {
				continue
			}
			genes.Add(annotation.Gene(cell))
		}
		if len(genes) > 0 {
			modules[sheet] = genes
		}
	}
	return modules, nil
}

// ReadModulesFile opens path and calls ReadModules
func ReadModulesFile(path string) (map[string]annotation.GeneSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadModules(file)
}

func isHeader(cell string) bool {
	switch strings.ToLower(cell) {
	case "gene", "genes":
		return true
	}
	return false
}
