package utils

import (
	"fmt"

	"go.uber.org/zap"
)

// GoSafe runs fn in a new goroutine and recovers any panic, logging it through the global zap logger.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				zap.L().Error("Recovered from panic in goroutine", zap.String("panic", fmt.Sprint(r)), zap.Stack("stack"))
			}
		}()
		fn()
	}()
}
