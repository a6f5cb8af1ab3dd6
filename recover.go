package gainknob

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// RecoverPanic logs a panic in the calling goroutine instead of letting it
// take down the host. Defer it at the top of goroutines that do not run on
// the audio thread; code on the audio thread must not panic in the first
// place.
func RecoverPanic(logger *slog.Logger, where string) {
	if r := recover(); r != nil {
		logger.Error("a panic occurred", "where", where, "cause", fmt.Sprint(r), "stack", string(debug.Stack()))
	}
}
