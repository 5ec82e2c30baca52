package devs

import (
	"testing"

	"github.com/dvicino/pdevs/devs/emit"
)

func TestDefaultConfigUsesHeapSchedulerAndNullEmitter(t *testing.T) {
	cfg := defaultConfig[IntTime, string]()
	if cfg.scheduler != SchedulerHeap {
		t.Errorf("default scheduler = %v, want SchedulerHeap", cfg.scheduler)
	}
	if cfg.emitter == nil {
		t.Error("default emitter = nil, want a NullEmitter")
	}
	if cfg.metrics != nil {
		t.Error("default metrics collector should be nil")
	}
	if cfg.traceStore != nil {
		t.Error("default trace store should be nil")
	}
}

func TestWithSchedulerOverridesDefault(t *testing.T) {
	cfg := defaultConfig[IntTime, string]()
	opt := WithScheduler[IntTime, string](SchedulerPoll)
	if err := opt(&cfg); err != nil {
		t.Fatalf("WithScheduler: %v", err)
	}
	if cfg.scheduler != SchedulerPoll {
		t.Errorf("scheduler after WithScheduler(SchedulerPoll) = %v, want SchedulerPoll", cfg.scheduler)
	}
}

func TestWithEmitterOverridesDefault(t *testing.T) {
	cfg := defaultConfig[IntTime, string]()
	buf := emit.NewBufferedEmitter()
	opt := WithEmitter[IntTime, string](buf)
	if err := opt(&cfg); err != nil {
		t.Fatalf("WithEmitter: %v", err)
	}
	if cfg.emitter != buf {
		t.Error("WithEmitter did not install the given emitter")
	}
}

func TestWithTraceStoreSetsRunID(t *testing.T) {
	cfg := defaultConfig[IntTime, string]()
	opt := WithTraceStore[IntTime, string](nil, "run-42")
	if err := opt(&cfg); err != nil {
		t.Fatalf("WithTraceStore: %v", err)
	}
	if cfg.runID != "run-42" {
		t.Errorf("runID = %q, want run-42", cfg.runID)
	}
}
