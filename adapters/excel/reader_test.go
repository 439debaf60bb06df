package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gobayes/domain/annotation"
)

func workbook(t *testing.T, sheets map[string][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for name, cells := range sheets {
		if name != "Sheet1" {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, v := range cells {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(name, cell, v))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestReadModules(t *testing.T) {
	buf := workbook(t, map[string][]string{
		"Sheet1":    {"Gene", "TP53", "BRCA1", "TP53"},
		"apoptosis": {"# curated", "CASP3", "", "BAX"},
		"unused":    {"genes"},
	})

	modules, err := ReadModules(buf)
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.Equal(t, []annotation.Gene{"BRCA1", "TP53"}, modules["Sheet1"].Sorted())
	assert.Equal(t, []annotation.Gene{"BAX", "CASP3"}, modules["apoptosis"].Sorted())
}

func TestReadModules_NotAWorkbook(t *testing.T) {
	_, err := ReadModules(bytes.NewBufferString("TP53\nBRCA1\n"))
	assert.Error(t, err)
}
