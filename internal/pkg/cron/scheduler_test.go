package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunOnce(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	var ran int32
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})
	s.AddJob("failing", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return errors.New("boom")
	})
	s.AddJob("after-failure", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})

	s.RunOnce(context.Background())

	if got := atomic.LoadInt32(&ran); got != 3 {
		t.Errorf("RunOnce executed %d jobs, want 3", got)
	}
}

func TestStartRunsJobsImmediately(t *testing.T) {
	s := NewScheduler()

	done := make(chan struct{})
	s.AddJob("immediate", time.Hour, func(ctx context.Context) error {
		close(done)
		return nil
	})

	s.Start()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on scheduler start")
	}
	s.Stop()
}
