package scheduler

import (
	"context"
	"testing"
)

func TestStartWithoutSnapshotFunctionIsNoop(t *testing.T) {
	s := New()
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.IsRunning() {
		t.Fatal("scheduler should not schedule without a snapshot function")
	}
	s.Stop()
}

func TestStartRegistersDailyJob(t *testing.T) {
	s := New()
	s.SetSnapshotFunction(func(ctx context.Context) error { return nil })
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !s.IsRunning() {
		t.Fatal("expected a scheduled entry")
	}
	s.Stop()
}
