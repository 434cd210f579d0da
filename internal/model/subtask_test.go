package model

import "testing"

func TestSubtaskTreeOrderAndDepth(t *testing.T) {
	subs := []Subtask{
		{ID: "a", Title: "a"},
		{ID: "b", Title: "b"},
		{ID: "a1", ParentID: "a", Title: "a1"},
		{ID: "a1x", ParentID: "a1", Title: "a1x"},
		{ID: "orphan", ParentID: "missing", Title: "orphan"},
	}
	nodes := SubtaskTree(subs)
	want := []struct {
		id    string
		depth int
	}{{"a", 0}, {"a1", 1}, {"a1x", 2}, {"b", 0}, {"orphan", 0}}
	if len(nodes) != len(want) {
		t.Fatalf("expected %d nodes, got %d", len(want), len(nodes))
	}
	for i, w := range want {
		if nodes[i].ID != w.id || nodes[i].Depth != w.depth {
			t.Fatalf("node %d = %s@%d, want %s@%d", i, nodes[i].ID, nodes[i].Depth, w.id, w.depth)
		}
	}
}

func TestDescendants(t *testing.T) {
	subs := []Subtask{
		{ID: "a"},
		{ID: "a2", ParentID: "a1"},
		{ID: "a1", ParentID: "a"},
		{ID: "b"},
	}
	got := Descendants(subs, "a")
	if len(got) != 3 || !got["a"] || !got["a1"] || !got["a2"] || got["b"] {
		t.Fatalf("unexpected descendants: %v", got)
	}
}

func TestSubtaskProgress(t *testing.T) {
	done, total := SubtaskProgress([]Subtask{{Completed: true}, {}, {Completed: true}})
	if done != 2 || total != 3 {
		t.Fatalf("unexpected progress %d/%d", done, total)
	}
}
