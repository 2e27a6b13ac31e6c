package ingest_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/trekscout/trekscout/internal/ingest"
)

type runCounter struct {
	runs atomic.Int32
	ran  chan struct{}
}

func (r *runCounter) Run(context.Context) *ingest.Result {
	r.runs.Add(1)
	select {
	case r.ran <- struct{}{}:
	default:
	}
	return &ingest.Result{}
}

type staticFlags bool

func (f staticFlags) IsProviderSyncDisabled(context.Context) bool { return bool(f) }

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	runner := &runCounter{ran: make(chan struct{}, 1)}
	s := ingest.NewScheduler(ingest.SchedulerConfig{
		Runner:   runner,
		Interval: 10 * time.Millisecond,
		Flags:    staticFlags(false),
		Logger:   zerolog.Nop(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	for i := 0; i < 3; i++ {
		select {
		case <-runner.ran:
		case <-time.After(2 * time.Second):
			t.Fatal("scheduler did not run")
		}
	}
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.GreaterOrEqual(t, runner.runs.Load(), int32(3))
}

func TestScheduler_DisabledByFlag(t *testing.T) {
	runner := &runCounter{ran: make(chan struct{}, 1)}
	s := ingest.NewScheduler(ingest.SchedulerConfig{
		Runner:   runner,
		Interval: 5 * time.Millisecond,
		Flags:    staticFlags(true),
		Logger:   zerolog.Nop(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := s.Start(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(0), runner.runs.Load())
}
