package domain

import "slices"

// Symbols interns normalized titles into dense uint32 identifiers.
// Identifiers are assigned in first-seen order starting at zero and are
// stable for the lifetime of the table.
type Symbols struct {
	ids    map[string]uint32
	titles []string
}

// NewSymbols creates an empty symbol table.
func NewSymbols() *Symbols {
	return &Symbols{
		ids: make(map[string]uint32),
	}
}

// NewSymbolsWithCapacity creates an empty symbol table sized for n titles.
func NewSymbolsWithCapacity(n int) *Symbols {
	return &Symbols{
		ids:    make(map[string]uint32, n),
		titles: make([]string, 0, n),
	}
}

// Intern returns the identifier of title, assigning a new one if needed.
// The title must already be normalized.
func (s *Symbols) Intern(title string) uint32 {
	if id, ok := s.ids[title]; ok {
		return id
	}
	id := uint32(len(s.titles)) //nolint:gosec // a corpus never holds 2^32 distinct titles
	s.ids[title] = id
	s.titles = append(s.titles, title)
	return id
}

// Lookup returns the identifier of an already interned title.
func (s *Symbols) Lookup(title string) (uint32, bool) {
	id, ok := s.ids[title]
	return id, ok
}

// Title returns the title for id, or the empty string if id was never assigned.
func (s *Symbols) Title(id uint32) string {
	if int(id) >= len(s.titles) {
		return ""
	}
	return s.titles[id]
}

// Len returns the number of interned titles.
func (s *Symbols) Len() int {
	return len(s.titles)
}

// Titles returns the interned titles indexed by identifier.
// The returned slice must not be modified.
func (s *Symbols) Titles() []string {
	return s.titles
}

// compact releases spare capacity left over from append growth.
func (s *Symbols) compact() {
	if cap(s.titles) > len(s.titles) {
		s.titles = slices.Clone(s.titles)
	}
}
