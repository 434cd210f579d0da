package model

// Subtask is one checklist entry of a task. Subtasks live in a flat list on
// their parent task; ParentID optionally points at another subtask of the
// same task to express nesting.
type Subtask struct {
	ID        string `json:"id" yaml:"id"`
	ParentID  string `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// SubtaskNode is a subtask annotated with its depth in the tree walk.
type SubtaskNode struct {
	Subtask
	Depth int
}

// SubtaskTree walks subs depth first in list order. Entries whose parent
// does not resolve are treated as roots. Cycles are cut.
func SubtaskTree(subs []Subtask) []SubtaskNode {
	index := make(map[string]bool, len(subs))
	for _, s := range subs {
		index[s.ID] = true
	}
	children := make(map[string][]Subtask)
	var roots []Subtask
	for _, s := range subs {
		if s.ParentID == "" || s.ParentID == s.ID || !index[s.ParentID] {
			roots = append(roots, s)
			continue
		}
		children[s.ParentID] = append(children[s.ParentID], s)
	}

	out := make([]SubtaskNode, 0, len(subs))
	seen := make(map[string]bool, len(subs))
	var walk func(s Subtask, depth int)
	walk = func(s Subtask, depth int) {
		if seen[s.ID] {
			return
		}
		seen[s.ID] = true
		out = append(out, SubtaskNode{Subtask: s, Depth: depth})
		for _, c := range children[s.ID] {
			walk(c, depth+1)
		}
	}
	for _, r := range roots {
		walk(r, 0)
	}
	return out
}

// Descendants returns the ids of every subtask below id, id included.
func Descendants(subs []Subtask, id string) map[string]bool {
	out := map[string]bool{id: true}
	for changed := true; changed; {
		changed = false
		for _, s := range subs {
			if !out[s.ID] && out[s.ParentID] {
				out[s.ID] = true
				changed = true
			}
		}
	}
	return out
}

// SubtaskProgress counts completed and total subtasks.
func SubtaskProgress(subs []Subtask) (done, total int) {
	for _, s := range subs {
		if s.Completed {
			done++
		}
	}
	return done, len(subs)
}
