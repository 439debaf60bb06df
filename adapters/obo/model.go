package obo

// Document is a parsed OBO flat file
type Document struct {
	Header   map[string][]string
	Terms    []Term
	Typedefs []Typedef
}

// Term is a [Term] stanza
type Term struct {
	ID            string
	Name          string
	Namespace     string
	AltIDs        []string
	Relationships []Relationship
	IsObsolete    bool
}

// Relationship is a typed edge from the stanza's term to Target. is_a
// lines are recorded with Type "is_a".
type Relationship struct {
	Type   string
	Target string
}

// Typedef is a [Typedef] stanza
type Typedef struct {
	ID           string
	Name         string
	IsTransitive bool
}

// DefaultRelationships are the edge types that propagate annotations
func DefaultRelationships() []string {
	return []string{"is_a", "part_of"}
}
