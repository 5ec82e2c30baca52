package store

import (
	"context"
	"testing"
)

func TestSQLiteStoreAppendLoad(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	if err := s.Append(ctx, "run-1", "0", "tick"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(ctx, "run-1", "1", "tock"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	records, err := s.Load(ctx, "run-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 || records[0].Msg != "tick" || records[1].Msg != "tock" {
		t.Errorf("Load = %+v, want [tick tock] in order", records)
	}
}

func TestSQLiteStoreLoadNotFound(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	if _, err := s.Load(context.Background(), "missing"); err != ErrNotFound {
		t.Errorf("Load on missing run = %v, want ErrNotFound", err)
	}
}
