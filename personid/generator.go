package personid

// Issuer hands out fresh person ids.
type Issuer interface {
	Next() ID
}

var (
	_ Issuer = (*Generator)(nil)
	_ Issuer = (*AtomicGenerator)(nil)
)

// Generator is a plain counter. Not safe for concurrent use: the owner
// of the store it feeds is expected to serialize calls.
type Generator struct {
	next ID
}

// NewGenerator starts counting at start, unless existing is non-empty, in
// which case counting resumes right after the greatest existing id.
func NewGenerator(start ID, existing []ID) *Generator {
	return &Generator{next: seed(start, existing)}
}

// Next returns the current counter value and increments it.
func (g *Generator) Next() ID {
	id := g.next
	g.next++
	return id
}

// Peek returns the id the next call to Next will issue.
func (g *Generator) Peek() ID {
	return g.next
}

func seed(start ID, existing []ID) ID {
	if len(existing) > 0 {
		start = Max(existing...) + 1
	}
	if !start.Valid() {
		return 1
	}
	return start
}
