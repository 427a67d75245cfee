package scene

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleClock_StartsAfterNoHandle(t *testing.T) {
	var c handleClock
	assert.Equal(t, NoHandle, c.last())

	assert.Equal(t, Handle(1), c.next())
	assert.Equal(t, Handle(2), c.next())
	assert.Equal(t, Handle(2), c.last(), "last does not advance")
}

func TestHandleClock_ConcurrentHandlesAreDistinct(t *testing.T) {
	var c handleClock
	const workers, perWorker = 16, 64

	var (
		mu   sync.Mutex
		seen = make(map[Handle]bool)
		wg   sync.WaitGroup
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				h := c.next()
				mu.Lock()
				seen[h] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
	assert.Equal(t, Handle(workers*perWorker), c.last())
}
