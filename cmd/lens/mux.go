package main

import (
	"context"
	"sync"

	"github.com/tinytelemetry/lens/internal/logsource"
	"github.com/tinytelemetry/lens/internal/model"
)

// DefaultMuxBuffer bounds the merged line stream feeding the ingest loop.
const DefaultMuxBuffer = 50_000

// lineMux fans the line streams of several sources into one bounded channel.
// Forwarding starts at construction; the output closes once every source
// stream has closed. Blank lines are dropped before they reach the channel.
type lineMux struct {
	out      chan model.IngestEnvelope
	sources  []logsource.LogSource
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

func muxSources(parent context.Context, sources []logsource.LogSource, buffer int) *lineMux {
	if buffer <= 0 {
		buffer = DefaultMuxBuffer
	}
	ctx, cancel := context.WithCancel(parent)
	m := &lineMux{
		out:     make(chan model.IngestEnvelope, buffer),
		sources: sources,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	var wg sync.WaitGroup
	for _, src := range sources {
		wg.Add(1)
		go func(lines <-chan model.IngestEnvelope) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case env, ok := <-lines:
					if !ok {
						return
					}
					if env.Line == "" {
						continue
					}
					select {
					case m.out <- env:
					case <-ctx.Done():
						return
					}
				}
			}
		}(src.Lines())
	}

	go func() {
		wg.Wait()
		close(m.out)
		close(m.done)
	}()

	return m
}

// Lines is the merged stream. It closes when all sources have closed or the
// mux is stopped.
func (m *lineMux) Lines() <-chan model.IngestEnvelope { return m.out }

// Stop cancels forwarding, stops every source, and waits for the output
// channel to close. Safe to call more than once.
func (m *lineMux) Stop() {
	m.stopOnce.Do(func() {
		m.cancel()
		for _, src := range m.sources {
			src.Stop()
		}
	})
	<-m.done
}
