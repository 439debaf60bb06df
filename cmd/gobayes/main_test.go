package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobayes/internal/errors"
)

type fixture struct {
	dir         string
	ontology    string
	annotations string
	module      string
}

func writeFixture(t *testing.T) fixture {
	t.Helper()
	t.Setenv("GOBAYES_CONFIG", "")
	t.Setenv("LOG_LEVEL", "ERROR")

	dir := t.TempDir()
	f := fixture{
		dir:         dir,
		ontology:    filepath.Join(dir, "edges.csv"),
		annotations: filepath.Join(dir, "annotations.gaf"),
		module:      filepath.Join(dir, "cluster1.txt"),
	}
	require.NoError(t, os.WriteFile(f.ontology, []byte("T1,T2\nT2,T3\n"), 0o644))

	var gaf strings.Builder
	gaf.WriteString("!gaf-version: 2.2\n")
	for _, a := range [][2]string{{"g1", "T1"}, {"g2", "T1"}, {"g3", "T2"}, {"g4", "T3"}, {"g5", "T3"}} {
		gaf.WriteString(strings.Join([]string{"DB", "id", a[0], "", a[1], "ref", "EXP"}, "\t") + "\n")
	}
	gaf.WriteString(strings.Join([]string{"DB", "id", "g6", "", "T1", "ref", "IEA"}, "\t") + "\n")
	require.NoError(t, os.WriteFile(f.annotations, []byte(gaf.String()), 0o644))

	require.NoError(t, os.WriteFile(f.module, []byte("# cluster\ng1\ng2\n"), 0o644))
	return f
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEnrich_TSV(t *testing.T) {
	f := writeFixture(t)

	out, err := run(t, "enrich", f.module,
		"--ontology", f.ontology, "--format", "pairs", "--annotations", f.annotations)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "run_id\tmodule\tmode\tterm"))
	// g6 is IEA and discarded, so the universe has five genes
	assert.Contains(t, lines[1], "\tcluster1\tstandard\tT1\t5\t2\t2\t2\t")
	assert.Contains(t, lines[3], "\tT3\t5\t5\t2\t2\t")
}

func TestEnrich_XLSX(t *testing.T) {
	f := writeFixture(t)
	outPath := filepath.Join(f.dir, "report.xlsx")

	_, err := run(t, "enrich", f.module, "--mode", "conditional",
		"--ontology", f.ontology, "--format", "pairs", "--annotations", f.annotations, "--out", outPath)
	require.NoError(t, err)

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestEnrich_UnknownGene(t *testing.T) {
	f := writeFixture(t)
	require.NoError(t, os.WriteFile(f.module, []byte("g1\ng6\n"), 0o644))

	_, err := run(t, "enrich", f.module,
		"--ontology", f.ontology, "--format", "pairs", "--annotations", f.annotations)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestEnrich_MissingAnnotations(t *testing.T) {
	f := writeFixture(t)
	t.Setenv("GOBAYES_ANNOTATION_FILE", "")

	_, err := run(t, "enrich", f.module, "--ontology", f.ontology, "--format", "pairs")
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestClosure(t *testing.T) {
	f := writeFixture(t)

	out, err := run(t, "closure", "--ontology", f.ontology, "--format", "pairs")
	require.NoError(t, err)
	assert.Equal(t, "T1\tT2\tT3\nT2\tT3\nT3\n", out)
}

func TestSimulate(t *testing.T) {
	f := writeFixture(t)

	out, err := run(t, "simulate", "--term", "T1", "--size", "2", "--runs", "6", "--bias", "3",
		"--ontology", f.ontology, "--format", "pairs", "--annotations", f.annotations, "--workers", "2")
	require.NoError(t, err)

	var summary struct {
		RunID       string  `json:"run_id"`
		Represented float64 `json:"represented"`
		Standard    struct {
			Median float64 `json:"median"`
		} `json:"standard"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.NotEmpty(t, summary.RunID)
	assert.GreaterOrEqual(t, summary.Represented, 0.0)
	assert.LessOrEqual(t, summary.Represented, 1.0)
	assert.LessOrEqual(t, summary.Standard.Median, 1.0)
}
