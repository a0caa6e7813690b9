package recorder

import (
	"runtime"
	"strconv"
	"strings"
)

// goroutineID parses the numeric goroutine ID out of the runtime.Stack
// header, which starts with "goroutine <id> [<state>]:". The runtime exposes
// no direct accessor for it.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	header := strings.TrimPrefix(string(buf[:n]), "goroutine ")
	if i := strings.IndexByte(header, ' '); i > 0 {
		if id, err := strconv.ParseUint(header[:i], 10, 64); err == nil {
			return id
		}
	}
	return 0
}
