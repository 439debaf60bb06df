// Package genelist reads modules stored as one gene identifier per line.
package genelist

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gobayes/domain/annotation"
)

// Read returns the genes listed in r. Blank lines and '#' comments are
// skipped and duplicates collapse. Only the first whitespace-separated
// field of a line is used.
func Read(r io.Reader) (annotation.GeneSet, error) {
	genes := annotation.NewGeneSet()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		genes.Add(annotation.Gene(strings.Fields(line)[0]))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return genes, nil
}

// ReadFile reads a module file and names it after the file's base name
// without extension.
func ReadFile(path string) (string, annotation.GeneSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	genes, err := Read(f)
	if err != nil {
		return "", nil, err
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)), genes, nil
}
