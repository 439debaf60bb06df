package obo

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gobayes/domain/core"
)

const scannerBufferSize = 1 << 20 // 1 MB

// Parse reads an OBO document. Header lines come first, then stanzas
// opened by a bracketed name; stanzas other than [Term] and [Typedef] are
// skipped.
func Parse(r io.Reader) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, scannerBufferSize), scannerBufferSize)

	doc := &Document{Header: make(map[string][]string)}
	stanza := ""
	var term *Term
	var typedef *Typedef

	flush := func(line int) error {
		if term != nil {
			if term.ID == "" {
				return fmt.Errorf("%w: [Term] ending at line %d has no id", core.ErrMalformedOBO, line)
			}
			doc.Terms = append(doc.Terms, *term)
			term = nil
		}
		if typedef != nil {
			if typedef.ID == "" {
				return fmt.Errorf("%w: [Typedef] ending at line %d has no id", core.ErrMalformedOBO, line)
			}
			doc.Typedefs = append(doc.Typedefs, *typedef)
			typedef = nil
		}
		return nil
	}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			if err := flush(lineNo); err != nil {
				return nil, err
			}
			stanza = line[1 : len(line)-1]
			switch stanza {
			case "Term":
				term = &Term{}
			case "Typedef":
				typedef = &Typedef{}
			}
			continue
		}

		key, val, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%w: line %d is not a key: value pair", core.ErrMalformedOBO, lineNo)
		}
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)

		switch {
		case stanza == "":
			doc.Header[key] = append(doc.Header[key], val)
		case term != nil:
			parseTermLine(term, key, val)
		case typedef != nil:
			parseTypedefLine(typedef, key, val)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(lineNo); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseTermLine(t *Term, key, val string) {
	switch key {
	case "id":
		t.ID = stripComment(val)
	case "name":
		t.Name = val
	case "namespace":
		t.Namespace = val
	case "alt_id":
		t.AltIDs = append(t.AltIDs, stripComment(val))
	case "is_a":
		t.Relationships = append(t.Relationships, Relationship{Type: "is_a", Target: stripComment(val)})
	case "relationship":
		rel, target, ok := strings.Cut(stripComment(val), " ")
		if ok {
			t.Relationships = append(t.Relationships, Relationship{Type: rel, Target: strings.TrimSpace(target)})
		}
	case "is_obsolete":
		t.IsObsolete = val == "true"
	}
}

func parseTypedefLine(td *Typedef, key, val string) {
	switch key {
	case "id":
		td.ID = stripComment(val)
	case "name":
		td.Name = val
	case "is_transitive":
		td.IsTransitive = val == "true"
	}
}

// stripComment drops a trailing "! name" comment and "{...}" qualifiers
// from a reference: "GO:0005623 {source=x} ! cell" -> "GO:0005623".
func stripComment(val string) string {
	if i := strings.Index(val, " !"); i >= 0 {
		val = val[:i]
	}
	if i := strings.Index(val, " {"); i >= 0 {
		val = val[:i]
	}
	return strings.TrimSpace(val)
}
