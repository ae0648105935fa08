package sim

import (
	"log"
)

// LogHookBase is embedded by hooks that print simulation activity.
type LogHookBase struct {
	*log.Logger
}

// LogAt prints one line that starts with the simulated time t.
func (h LogHookBase) LogAt(t VTimeInSec, format string, args ...any) {
	h.Printf("%.10f, "+format, append([]any{float64(t)}, args...)...)
}
