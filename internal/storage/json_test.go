package storage

import (
	"reflect"
	"testing"
)

type labelEntry struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func TestLoadSaveRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := t.Context()
	in := []labelEntry{{Name: "#Garden", Color: "green"}}
	if err := Save(ctx, store, KeyLabels, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := Load(ctx, store, KeyLabels, []labelEntry(nil))
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("load = %v, want %v", got, in)
	}
}

func TestLoadFallsBackToDefault(t *testing.T) {
	store := NewMemoryStore()
	ctx := t.Context()
	def := []labelEntry{{Name: "default"}}

	if got := Load(ctx, store, KeyLabels, def); !reflect.DeepEqual(got, def) {
		t.Fatalf("missing key: got %v", got)
	}

	if err := store.Put(ctx, KeyLabels, "{not json"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if got := Load(ctx, store, KeyLabels, def); !reflect.DeepEqual(got, def) {
		t.Fatalf("malformed value: got %v", got)
	}
}

func TestMemoryStoreCountsWrites(t *testing.T) {
	store := NewMemoryStore()
	ctx := t.Context()
	_ = store.PutMany(ctx, map[string]string{"a": "1", "b": "2"})
	_ = store.Put(ctx, "c", "3")
	if store.Writes() != 2 {
		t.Fatalf("writes = %d, want 2", store.Writes())
	}
	keys, _ := store.Keys(ctx, "")
	if !reflect.DeepEqual(keys, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected keys %v", keys)
	}
}
