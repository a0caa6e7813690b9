package errorutil

import "errors"

// ErrNoData signals that no profiling data has been recorded yet. The core
// recording surface never returns it; it exists for boundaries (such as the
// report server) that need to distinguish "nothing recorded" from a real
// result.
var ErrNoData = errors.New("no profiling data recorded")
