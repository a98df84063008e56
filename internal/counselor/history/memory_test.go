package history

import (
	"context"
	"testing"
	"time"

	"github.com/pathfinder-core/server/internal/counselor/model"
)

func turn(content string) model.Turn {
	return model.Turn{
		Role:      model.RoleStudent,
		Content:   content,
		Timestamp: time.Now().UTC(),
		State:     model.StateGatheringInfo,
	}
}

func TestMemoryAppendAndLoad(t *testing.T) {
	repo := NewMemoryRepository(10)
	ctx := context.Background()

	for _, c := range []string{"one", "two", "three"} {
		if err := repo.Append(ctx, "s1", turn(c)); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	turns, err := repo.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(turns) != 3 || turns[0].Content != "one" || turns[2].Content != "three" {
		t.Errorf("Load() = %v, want one..three in order", turns)
	}

	n, err := repo.Count(ctx, "s1")
	if err != nil || n != 3 {
		t.Errorf("Count() = %d, %v; want 3, nil", n, err)
	}
}

func TestMemoryTrimsOldestFirst(t *testing.T) {
	repo := NewMemoryRepository(3)
	ctx := context.Background()

	for _, c := range []string{"a", "b", "c", "d", "e"} {
		if err := repo.Append(ctx, "s1", turn(c)); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	turns, err := repo.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(turns) != 3 {
		t.Fatalf("len = %d, want 3 after trim", len(turns))
	}
	if turns[0].Content != "c" || turns[2].Content != "e" {
		t.Errorf("Load() = %v, want oldest turns evicted first", turns)
	}
}

func TestMemoryClearAndIsolation(t *testing.T) {
	repo := NewMemoryRepository(10)
	ctx := context.Background()

	_ = repo.Append(ctx, "s1", turn("one"))
	_ = repo.Append(ctx, "s2", turn("other"))

	if err := repo.Clear(ctx, "s1"); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	if n, _ := repo.Count(ctx, "s1"); n != 0 {
		t.Errorf("s1 count after clear = %d, want 0", n)
	}
	if n, _ := repo.Count(ctx, "s2"); n != 1 {
		t.Errorf("s2 count = %d, want 1 (unaffected by s1 clear)", n)
	}
}

func TestMemoryLoadReturnsCopy(t *testing.T) {
	repo := NewMemoryRepository(10)
	ctx := context.Background()
	_ = repo.Append(ctx, "s1", turn("one"))

	turns, _ := repo.Load(ctx, "s1")
	turns[0].Content = "mutated"

	again, _ := repo.Load(ctx, "s1")
	if again[0].Content != "one" {
		t.Error("Load() shares internal slice with callers")
	}
}

func TestFactorySelectsDriver(t *testing.T) {
	repo, err := New(model.HistoryConfig{Driver: "memory"}, 5, nil)
	if err != nil {
		t.Fatalf("New(memory) error: %v", err)
	}
	if _, ok := repo.(*MemoryRepository); !ok {
		t.Errorf("New(memory) = %T, want *MemoryRepository", repo)
	}

	if _, err := New(model.HistoryConfig{Driver: "redis"}, 5, nil); err == nil {
		t.Error("New(redis) without client returned nil error")
	}
	if _, err := New(model.HistoryConfig{Driver: "bolt"}, 5, nil); err == nil {
		t.Error("New(bolt) returned nil error for unknown driver")
	}
}
