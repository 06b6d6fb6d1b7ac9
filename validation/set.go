package validation

// Set collects diagnostics, collapsing duplicates.
type Set struct {
	items map[Diagnostic]struct{}
}

// NewSet returns a set holding diagnostics.
func NewSet(diagnostics ...Diagnostic) *Set {
	s := &Set{items: make(map[Diagnostic]struct{}, len(diagnostics))}
	s.Add(diagnostics...)
	return s
}

// Add inserts diagnostics into the set.
func (s *Set) Add(diagnostics ...Diagnostic) {
	if s.items == nil {
		s.items = make(map[Diagnostic]struct{}, len(diagnostics))
	}
	for _, d := range diagnostics {
		s.items[d] = struct{}{}
	}
}

// Contains reports whether d is in the set.
func (s *Set) Contains(d Diagnostic) bool {
	_, ok := s.items[d]
	return ok
}

func (s *Set) Len() int {
	return len(s.items)
}

// Sorted returns the diagnostics ordered by line, then severity, then message.
func (s *Set) Sorted() []Diagnostic {
	out := make([]Diagnostic, 0, len(s.items))
	for d := range s.items {
		out = append(out, d)
	}
	SortDiagnostics(out)
	return out
}
