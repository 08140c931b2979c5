package store

import (
	"context"
	"testing"
	"time"

	"github.com/HamletDuFromage/x-stitch/pkg/errors"
)

func TestMemoryStoreSaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	p := &SavedPattern{Name: "sampler", ConfigJSON: []byte(`{"width":10}`)}
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if p.ID == "" {
		t.Error("Save() did not assign an ID")
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("Save() did not assign timestamps")
	}

	got, err := s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "sampler" {
		t.Errorf("Name = %q, want %q", got.Name, "sampler")
	}
	if string(got.ConfigJSON) != `{"width":10}` {
		t.Errorf("ConfigJSON = %s", got.ConfigJSON)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "no-such-id")
	if !errors.Is(err, errors.ErrCodePatternNotFound) {
		t.Errorf("Get() error = %v, want PATTERN_NOT_FOUND", err)
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"oldest", "middle", "newest"} {
		p := &SavedPattern{
			Name:      name,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := s.Save(ctx, p); err != nil {
			t.Fatalf("Save(%q) error = %v", name, err)
		}
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("List() returned %d entries, want 3", len(list))
	}
	want := []string{"newest", "middle", "oldest"}
	for i, p := range list {
		if p.Name != want[i] {
			t.Errorf("List()[%d].Name = %q, want %q", i, p.Name, want[i])
		}
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	p := &SavedPattern{Name: "gone-soon"}
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, p.ID); !errors.Is(err, errors.ErrCodePatternNotFound) {
		t.Errorf("Get() after delete: error = %v, want PATTERN_NOT_FOUND", err)
	}
	if err := s.Delete(ctx, p.ID); !errors.Is(err, errors.ErrCodePatternNotFound) {
		t.Errorf("Delete() twice: error = %v, want PATTERN_NOT_FOUND", err)
	}
}

func TestMemoryStoreRejectsInvalidName(t *testing.T) {
	s := NewMemoryStore()

	err := s.Save(context.Background(), &SavedPattern{Name: ""})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Save() error = %v, want INVALID_INPUT", err)
	}
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	p := &SavedPattern{Name: "isolated", ConfigJSON: []byte(`{"width":4}`)}
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Mutating the caller's copy must not leak into the store.
	p.ConfigJSON[2] = 'X'
	p.Name = "mutated"

	got, err := s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "isolated" || string(got.ConfigJSON) != `{"width":4}` {
		t.Errorf("stored entry mutated: name=%q config=%s", got.Name, got.ConfigJSON)
	}

	// And mutating a returned copy must not affect subsequent reads.
	got.ConfigJSON[2] = 'Y'
	again, _ := s.Get(ctx, p.ID)
	if string(again.ConfigJSON) != `{"width":4}` {
		t.Errorf("returned entry aliases stored data: %s", again.ConfigJSON)
	}
}
