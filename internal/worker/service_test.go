package worker

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/avaldez-dev/storefront-pricing/pkg/logger"
	"github.com/google/uuid"
)

type fakeLock struct {
	acquired bool
	held     bool
}

func (f *fakeLock) Acquire(context.Context) (bool, error) {
	if f.held {
		return false, nil
	}
	f.acquired = true
	f.held = true
	return true, nil
}

func (f *fakeLock) Release(context.Context) error { f.held = false; return nil }

type testJob struct {
	name string
	err  error
	runs int
}

func (t *testJob) Name() string { return t.name }

func (t *testJob) Run(context.Context) error {
	t.runs++
	return t.err
}

func workerTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "worker-test", Output: io.Discard})
}

func TestRunCycleRunsAllJobsEvenOnFailure(t *testing.T) {
	success := &testJob{name: "success"}
	failure := &testJob{name: "fail", err: errors.New("boom")}
	service, err := NewService(ServiceParams{
		Logger:   workerTestLogger(),
		Registry: NewRegistry(success, failure),
		Lock:     &fakeLock{},
	})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}

	if err := service.runCycle(context.Background()); err != nil {
		t.Fatalf("run cycle: %v", err)
	}
	if success.runs != 1 || failure.runs != 1 {
		t.Fatalf("expected both jobs to run once, got %d and %d", success.runs, failure.runs)
	}
}

func TestRunCycleSkipsWhenLockHeld(t *testing.T) {
	job := &testJob{name: "catalog"}
	service, err := NewService(ServiceParams{
		Logger:   workerTestLogger(),
		Registry: NewRegistry(job),
		Lock:     &fakeLock{held: true},
	})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}

	if err := service.runCycle(context.Background()); err != nil {
		t.Fatalf("run cycle: %v", err)
	}
	if job.runs != 0 {
		t.Fatalf("job ran while the lock was held elsewhere")
	}
}

type stubGenerator struct {
	written int
	err     error
	calls   int
	storeID *uuid.UUID
}

func (s *stubGenerator) Generate(ctx context.Context, storeID *uuid.UUID) (int, error) {
	s.calls++
	s.storeID = storeID
	return s.written, s.err
}

func TestCatalogJobRunsGenerator(t *testing.T) {
	gen := &stubGenerator{written: 42}
	job, err := NewCatalogJob(gen, nil)
	if err != nil {
		t.Fatalf("NewCatalogJob: %v", err)
	}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("generator ran %d times, want 1", gen.calls)
	}
	if gen.storeID != nil {
		t.Fatal("scheduled job must rebuild every store")
	}

	gen.err = errors.New("db down")
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("generator failure must surface")
	}
}
