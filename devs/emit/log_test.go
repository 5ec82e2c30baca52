package emit

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogEmitter_TextMode(t *testing.T) {
	t.Run("emits event with all fields", func(t *testing.T) {
		var buf bytes.Buffer
		emitter := NewLogEmitter(&buf, false)

		emitter.Emit(Event{
			RunID: "run-001", Step: 1, NodeID: "generator-1", Msg: "transition",
			Meta: map[string]interface{}{"kind": "internal"},
		})

		output := buf.String()
		if !strings.Contains(output, "[transition]") {
			t.Errorf("expected output to contain [transition], got: %s", output)
		}
		if !strings.Contains(output, "runID=run-001") {
			t.Errorf("expected output to contain runID=run-001, got: %s", output)
		}
		if !strings.Contains(output, "nodeID=generator-1") {
			t.Errorf("expected output to contain nodeID=generator-1, got: %s", output)
		}
	})

	t.Run("emits multiple events", func(t *testing.T) {
		var buf bytes.Buffer
		emitter := NewLogEmitter(&buf, false)

		emitter.Emit(Event{RunID: "run-001", Step: 0, NodeID: "root", Msg: "run_init"})
		emitter.Emit(Event{RunID: "run-001", Step: 1, NodeID: "root", Msg: "passivate"})

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 2 {
			t.Errorf("expected 2 lines of output, got %d", len(lines))
		}
	})
}

func TestLogEmitter_JSONFormatting(t *testing.T) {
	t.Run("emits valid JSON when JSON mode enabled", func(t *testing.T) {
		var buf bytes.Buffer
		emitter := NewLogEmitter(&buf, true)

		emitter.Emit(Event{
			RunID: "run-001", Step: 2, NodeID: "counter", Msg: "transition",
			Meta: map[string]interface{}{"count": 42},
		})

		var parsed map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
			t.Fatalf("expected valid JSON, got error: %v\nOutput: %s", err, buf.String())
		}

		if parsed["runID"] != "run-001" {
			t.Errorf("expected runID = run-001, got %v", parsed["runID"])
		}
		if parsed["step"] != float64(2) {
			t.Errorf("expected step = 2, got %v", parsed["step"])
		}
		meta, ok := parsed["meta"].(map[string]interface{})
		if !ok || meta["count"] != float64(42) {
			t.Errorf("expected meta.count = 42, got %v", parsed["meta"])
		}
	})

	t.Run("emits multiple JSON events on separate lines", func(t *testing.T) {
		var buf bytes.Buffer
		emitter := NewLogEmitter(&buf, true)

		emitter.Emit(Event{RunID: "run-001", Step: 0, Msg: "run_init"})
		emitter.Emit(Event{RunID: "run-001", Step: 1, Msg: "transition"})

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(lines))
		}
		for i, line := range lines {
			var parsed map[string]interface{}
			if err := json.Unmarshal([]byte(line), &parsed); err != nil {
				t.Errorf("line %d: expected valid JSON, got error: %v", i, err)
			}
		}
	})
}

func TestLogEmitter_EmitBatch(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewLogEmitter(&buf, false)

	events := []Event{
		{RunID: "run-001", Step: 0, NodeID: "a", Msg: "run_init"},
		{RunID: "run-001", Step: 1, NodeID: "a", Msg: "transition"},
	}
	if err := emitter.EmitBatch(context.Background(), events); err != nil {
		t.Fatalf("EmitBatch: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Errorf("expected 2 lines, got %q", buf.String())
	}
}

func TestLogEmitter_EmitBatchEmpty(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewLogEmitter(&buf, false)
	if err := emitter.EmitBatch(context.Background(), nil); err != nil {
		t.Fatalf("EmitBatch: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestLogEmitter_FlushIsNoop(t *testing.T) {
	emitter := NewLogEmitter(nil, false)
	if err := emitter.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func TestLogEmitter_InterfaceContract(t *testing.T) {
	var buf bytes.Buffer
	var _ Emitter = NewLogEmitter(&buf, false)
}
