package moderation

import (
	"strings"
	"sync"
)

// TermSet is the ordered list of banned terms. Terms are stored lowercase
// and never duplicated.
type TermSet struct {
	mu    sync.RWMutex
	terms []string
}

func NewTermSet(terms []string) *TermSet {
	s := &TermSet{}
	for _, t := range terms {
		s.Add(t)
	}
	return s
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Add appends term and returns the new size. It returns ErrEmptyTerm or
// ErrDuplicateTerm without touching the set.
func (s *TermSet) Add(term string) (int, error) {
	key := normalizeTerm(term)
	if key == "" {
		return s.Len(), ErrEmptyTerm
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.terms {
		if existing == key {
			return len(s.terms), ErrDuplicateTerm
		}
	}
	s.terms = append(s.terms, key)
	return len(s.terms), nil
}

// Remove deletes term, keeping the order of the remaining entries.
func (s *TermSet) Remove(term string) (int, error) {
	key := normalizeTerm(term)
	if key == "" {
		return s.Len(), ErrEmptyTerm
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.terms {
		if existing == key {
			s.terms = append(s.terms[:i:i], s.terms[i+1:]...)
			return len(s.terms), nil
		}
	}
	return len(s.terms), ErrTermNotFound
}

func (s *TermSet) Contains(term string) bool {
	key := normalizeTerm(term)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, existing := range s.terms {
		if existing == key {
			return true
		}
	}
	return false
}

func (s *TermSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.terms)
}

// List returns a copy of the terms in insertion order.
func (s *TermSet) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.terms...)
}

// Match returns every term contained in text, in set order. text is
// lowercased before the comparison; there is no word-boundary handling.
func (s *TermSet) Match(text string) []string {
	lower := strings.ToLower(text)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var found []string
	for _, term := range s.terms {
		if strings.Contains(lower, term) {
			found = append(found, term)
		}
	}
	return found
}
