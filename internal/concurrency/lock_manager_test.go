package concurrency

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLock_SameKeySameMutex(t *testing.T) {
	lm := NewLockManager()
	assert.Same(t, lm.GetLock("save:main"), lm.GetLock("save:main"))
	assert.NotSame(t, lm.GetLock("save:main"), lm.GetLock("save:alt"))
}

func TestWithLock_Serializes(t *testing.T) {
	lm := NewLockManager()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = lm.WithLock("save:main", func() error {
				v := counter
				counter = v + 1
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestWithLock_ReturnsError(t *testing.T) {
	lm := NewLockManager()
	boom := errors.New("boom")
	assert.ErrorIs(t, lm.WithLock("k", func() error { return boom }), boom)

	// The lock is released after an error
	assert.True(t, lm.GetLock("k").TryLock())
}
