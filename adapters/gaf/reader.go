// Package gaf reads tab-separated GO annotation tables.
package gaf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gobayes/domain/annotation"
)

const scannerBufferSize = 1 << 20 // 1 MB

// Discard drops rows whose Column holds Value
type Discard struct {
	Column int
	Value  string
}

// DefaultDiscard drops electronically inferred annotations (evidence code
// IEA in column 6). A fresh slice is returned on each call.
func DefaultDiscard() []Discard {
	return []Discard{{Column: 6, Value: "IEA"}}
}

// ParseDiscard parses "6:IEA,6:ND" into discard rules. An empty string
// yields no rules.
func ParseDiscard(s string) ([]Discard, error) {
	var out []Discard
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		col, val, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("discard rule %q: want column:value", part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(col))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("discard rule %q: invalid column", part)
		}
		out = append(out, Discard{Column: n, Value: strings.TrimSpace(val)})
	}
	return out, nil
}

// Read returns the data rows of an annotation table. Comment lines
// starting with '!' and blank lines are skipped.
func Read(r io.Reader, discard []Discard) ([]annotation.Row, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, scannerBufferSize), scannerBufferSize)

	var rows []annotation.Row
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		row := annotation.Row(strings.Split(line, "\t"))
		if discarded(row, discard) {
			continue
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

func discarded(row annotation.Row, discard []Discard) bool {
	for _, d := range discard {
		if d.Column < len(row) && row[d.Column] == d.Value {
			return true
		}
	}
	return false
}
