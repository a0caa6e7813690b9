package main

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cagware/stperf"
)

// runWorkload records a small instrumented workload so the report endpoints
// have something to show: leaf scopes, a loop whose iterations collapse into
// one node, recursion, and parallel goroutines with independent trees.
func (e *environment) runWorkload() {
	stop := stperf.Scope("workload")

	var wg sync.WaitGroup
	for i := 0; i < e.config.DemoWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(e.config)
		}()
	}
	wg.Wait()

	stop()
	log.Info().
		Uint32("thread_id", uint32(stperf.CurrentThreadID())).
		Int("workers", e.config.DemoWorkers).
		Msg("demo workload finished")
	log.Debug().Msg("\n" + stperf.Report())
}

func worker(c ServiceConfig) {
	defer stperf.Func()()

	for i := 0; i < c.DemoLoopIters; i++ {
		parseChunk()
	}
	recurse(c.DemoDepth)
}

func parseChunk() {
	defer stperf.Scope("parse chunk")()
	time.Sleep(2 * time.Millisecond)
}

func recurse(depth int) {
	stop := stperf.Scope("recurse")
	defer stop()
	if depth > 0 {
		recurse(depth - 1)
	}
	time.Sleep(time.Millisecond)
}
