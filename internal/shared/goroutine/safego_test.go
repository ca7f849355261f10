package goroutine

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/orris-inc/subhub/internal/shared/logger"
)

func TestSafeGo_RecoversPanic(t *testing.T) {
	done := make(chan struct{})
	SafeGo(logger.NewNopLogger(), "panics", func() {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not run")
	}
}

func TestGroup_BoundsConcurrency(t *testing.T) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, 2)
	var running, peak int32

	for i := 0; i < 8; i++ {
		Group(&wg, sem, logger.NewNopLogger(), "worker", func() {
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&running, -1)
		})
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestGroup_PanicStillReleases(t *testing.T) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, 1)

	Group(&wg, sem, logger.NewNopLogger(), "panics", func() { panic("boom") })
	Group(&wg, sem, logger.NewNopLogger(), "after", func() {})
	wg.Wait()

	assert.Len(t, sem, 0)
}
