// Package pairs reads an ontology from a plain edge list, one
// "child<sep>parent" pair per line.
package pairs

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gobayes/domain/core"
	"gobayes/domain/ontology"
)

// DefaultSeparator separates child and parent on a line
const DefaultSeparator = ","

// Read builds a DAG from an edge list. Blank lines and lines starting with
// '#' are skipped; every other line must hold exactly two non-empty fields.
func Read(r io.Reader, sep string) (*ontology.DAG, error) {
	if sep == "" {
		sep = DefaultSeparator
	}

	dag := ontology.NewDAG()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, sep)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d has %d fields", core.ErrMalformedPair, lineNo, len(fields))
		}
		child, parent := strings.TrimSpace(fields[0]), strings.TrimSpace(fields[1])
		if child == "" || parent == "" {
			return nil, fmt.Errorf("%w: line %d has an empty field", core.ErrMalformedPair, lineNo)
		}
		if err := dag.AddEdge(ontology.Term(child), ontology.Term(parent)); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return dag, nil
}
