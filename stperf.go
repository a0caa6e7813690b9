// Package stperf is an in-process call-tree profiler. Code marks scopes
// (function bodies or sub-blocks) as profiled; on scope exit the elapsed
// wall-clock time is recorded into a per-goroutine call tree. Reports
// collapse repeated same-named scopes into single nodes with summed durations
// and hit counts, annotated with each node's share of its root.
//
// Recording never returns errors and never panics: degenerate states (a stop
// racing a reset, a stop with no matching start) degrade to no-ops so the
// profiler cannot become a failure source in the code it measures.
package stperf

import (
	"runtime"
	"strings"

	"github.com/cagware/stperf/calltree"
	"github.com/cagware/stperf/internal/recorder"
	"github.com/cagware/stperf/internal/report"
)

// ThreadID identifies a recorded goroutine. IDs are assigned in first-seen
// order and stay stable for the process lifetime, across resets.
type ThreadID = recorder.ThreadID

var registry = recorder.New()

// StartScope opens a named scope on the calling goroutine and returns the
// handle that closes it.
func StartScope(name string) *Timer {
	t := NewTimer(name)
	t.Start()
	return t
}

// StopScope closes the scope opened by StartScope.
func StopScope(t *Timer) {
	t.Stop()
}

// Scope opens a named scope and returns the function closing it, meant for
// use with defer so the scope is closed on every exit path:
//
//	defer stperf.Scope("load config")()
func Scope(name string) func() {
	t := StartScope(name)
	return t.Stop
}

// Func behaves like Scope but names the scope after the calling function,
// with a "()" suffix to tell auto-named scopes apart from explicit ones.
func Func() func() {
	return Scope(callerName() + "()")
}

func callerName() string {
	pc, _, _, ok := runtime.Caller(2)
	if !ok {
		return "unknown"
	}
	name := runtime.FuncForPC(pc).Name()
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// ResetAll discards every goroutine's recorded state. An in-flight scope
// whose Stop lands after the reset is silently dropped.
func ResetAll() {
	registry.Reset()
}

// GetTree returns each goroutine's reduced, percentage-annotated call tree,
// keyed by ThreadID. Goroutines with no recorded activity are omitted.
func GetTree() map[ThreadID][]*calltree.Node {
	return registry.CallTrees()
}

// GetRawTree returns an unreduced copy of the recorded trees, one node per
// activation. Raw nodes carry no percentages; useful when debugging the
// recording itself.
func GetRawTree() map[ThreadID][]*calltree.Node {
	return registry.RawTrees()
}

// Render formats a tree as an indented, per-thread text report. An empty
// tree renders as the empty string.
func Render(tree map[ThreadID][]*calltree.Node) string {
	return report.Render(tree)
}

// Report is shorthand for Render(GetTree()).
func Report() string {
	return Render(GetTree())
}

// CurrentThreadID returns the identifier assigned to the calling goroutine,
// allocating one on first use.
func CurrentThreadID() ThreadID {
	return registry.CurrentThreadID()
}
