package presence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUpdater struct {
	mu   sync.Mutex
	seen []string
	err  error
}

func (f *fakeUpdater) SetActivity(_ context.Context, activity string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, activity)
	return f.err
}

func (f *fakeUpdater) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seen)
}

func TestRotatorCyclesActivities(t *testing.T) {
	up := &fakeUpdater{}
	r := NewRotator(up, []string{"a", "b", "c"}, 5*time.Millisecond, nil)
	next := 0
	r.pick = func(n int) int {
		i := next % n
		next++
		return i
	}
	var changed []string
	var mu sync.Mutex
	r.OnChange(func(a string) {
		mu.Lock()
		changed = append(changed, a)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return up.count() >= 3 }, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	up.mu.Lock()
	assert.Equal(t, []string{"a", "b", "c"}, up.seen[:3])
	up.mu.Unlock()
	mu.Lock()
	assert.GreaterOrEqual(t, len(changed), 3)
	mu.Unlock()
}

func TestRotatorErrorsAndEmpty(t *testing.T) {
	up := &fakeUpdater{err: errors.New("gateway closed")}
	r := NewRotator(up, []string{"only"}, time.Hour, nil)
	called := false
	r.OnChange(func(string) { called = true })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, r.Run(ctx))
	assert.Equal(t, 1, up.count())
	assert.False(t, called)

	assert.NoError(t, NewRotator(up, nil, 0, nil).Run(context.Background()))
}
