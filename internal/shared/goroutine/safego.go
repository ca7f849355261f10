// Package goroutine launches goroutines that log panics instead of crashing.
package goroutine

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/orris-inc/subhub/internal/shared/logger"
)

// SafeGo runs fn in a new goroutine. A panic is logged with its stack.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer recoverPanic(log, name)
		fn()
	}()
}

// Group runs fn under wg, bounded by sem when sem is non-nil. The slot is
// taken before the goroutine starts so callers block once sem is full.
func Group(wg *sync.WaitGroup, sem chan struct{}, log logger.Interface, name string, fn func()) {
	wg.Add(1)
	if sem != nil {
		sem <- struct{}{}
	}
	go func() {
		defer wg.Done()
		if sem != nil {
			defer func() { <-sem }()
		}
		defer recoverPanic(log, name)
		fn()
	}()
}

func recoverPanic(log logger.Interface, name string) {
	if r := recover(); r != nil {
		log.Errorw("goroutine panicked",
			"goroutine", name,
			"panic", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)
	}
}
