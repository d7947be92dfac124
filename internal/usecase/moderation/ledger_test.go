package moderation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerBasics(t *testing.T) {
	assert := assert.New(t)

	l := NewLedger()
	assert.Equal(0, l.Get("u1"))
	assert.Equal(1, l.Increment("u1"))
	assert.Equal(2, l.Increment("u1"))
	assert.Equal(1, l.Increment("u2"))
	assert.Equal(2, l.Get("u1"))

	assert.Equal(2, l.Clear("u1"))
	assert.Equal(0, l.Get("u1"))
	assert.Equal(0, l.Clear("u1"))
	assert.Equal(1, l.Get("u2"))
}

func TestLedgerConcurrentIncrements(t *testing.T) {
	l := NewLedger()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 250; j++ {
				l.Increment("u1")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 2000, l.Get("u1"))
}
