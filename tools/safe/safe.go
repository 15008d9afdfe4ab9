package safe

import (
	"runtime/debug"

	"EMProject/logger"
)

// Go starts a goroutine that recovers from panics, so a fault in one
// connection or worker never takes down the process.
func Go(f func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("[safe.Go] panic recovered: %v\n%s", r, debug.Stack())
			}
		}()
		f()
	}()
}
