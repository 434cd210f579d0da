package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestEngineDeliversEachReminderOnceUnderConcurrentSchedule(t *testing.T) {
	engine := NewEngine(2048)
	engine.Start()
	defer engine.Stop()

	const tasks = 16
	const remindersPerTask = 100
	want := tasks * remindersPerTask

	base := time.Now()
	var wg sync.WaitGroup
	for task := range tasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range remindersPerTask {
				ev := ReminderEvent{
					ID:        fmt.Sprintf("task-%02d/%d", task, r),
					TaskID:    fmt.Sprintf("task-%02d", task),
					Title:     "water plants",
					Label:     "At time of task",
					TriggerAt: base.Add(time.Duration((task*7+r)%40+5) * time.Millisecond),
				}
				if err := engine.Schedule(ev); err != nil {
					t.Errorf("Schedule(%s): %v", ev.ID, err)
					return
				}
				_ = engine.Pending()
			}
		}()
	}
	wg.Wait()

	seen := make(map[string]int, want)
	timeout := time.After(5 * time.Second)
	for len(seen) < want {
		select {
		case ev := <-engine.C():
			seen[ev.ID]++
			if seen[ev.ID] > 1 {
				t.Fatalf("reminder %s delivered twice", ev.ID)
			}
		case <-timeout:
			t.Fatalf("delivered %d of %d reminders (dropped=%d)", len(seen), want, engine.Dropped())
		}
	}
	if engine.Dropped() != 0 {
		t.Fatalf("dropped = %d, want 0", engine.Dropped())
	}
	if got := engine.Fired(); got != uint64(want) {
		t.Fatalf("fired = %d, want %d", got, want)
	}
}

func TestEngineConcurrentReplaceConverges(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	later := time.Now().Add(time.Hour)
	plan := make([]ReminderEvent, 0, 50)
	for i := range 50 {
		plan = append(plan, ReminderEvent{
			ID:        fmt.Sprintf("task-%02d/at-time", i),
			TaskID:    fmt.Sprintf("task-%02d", i),
			TriggerAt: later.Add(time.Duration(50-i) * time.Minute),
		})
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 25 {
				if err := engine.Replace(plan); err != nil {
					t.Errorf("Replace: %v", err)
					return
				}
				_ = engine.Pending()
			}
		}()
	}
	wg.Wait()

	pending := engine.Pending()
	if len(pending) != len(plan) {
		t.Fatalf("pending = %d, want %d", len(pending), len(plan))
	}
	for i := 1; i < len(pending); i++ {
		if pending[i].TriggerAt.Before(pending[i-1].TriggerAt) {
			t.Fatalf("pending out of order at %d", i)
		}
	}
	if pending[0].TaskID != "task-49" {
		t.Fatalf("earliest pending = %s, want task-49", pending[0].TaskID)
	}
}
