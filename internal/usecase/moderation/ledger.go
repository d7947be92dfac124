package moderation

import "sync"

// Ledger counts violations per user for the lifetime of the process.
type Ledger struct {
	mu     sync.Mutex
	counts map[string]int
}

func NewLedger() *Ledger {
	return &Ledger{counts: make(map[string]int)}
}

func (l *Ledger) Increment(userID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[userID]++
	return l.counts[userID]
}

// Clear drops the user's entry and returns the count it held.
func (l *Ledger) Clear(userID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	prev := l.counts[userID]
	delete(l.counts, userID)
	return prev
}

func (l *Ledger) Get(userID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[userID]
}
