package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrStopped            = errors.New("scheduler: engine stopped")
)

// ReminderEvent is one pending reminder for a task.
type ReminderEvent struct {
	ID        string
	TaskID    string
	Title     string
	Label     string
	TriggerAt time.Time
	DueAt     time.Time
}

type eventHeap []ReminderEvent

func (h eventHeap) Len() int           { return len(h) }
func (h eventHeap) Less(i, j int) bool { return h[i].TriggerAt.Before(h[j].TriggerAt) }
func (h eventHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(ReminderEvent))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	ev := old[n-1]
	*h = old[:n-1]
	return ev
}

// Engine emits reminder events on C when their trigger time passes. Events
// that cannot be delivered because the buffer is full are counted and
// dropped rather than blocking the timer loop.
type Engine struct {
	mu      sync.Mutex
	queue   eventHeap
	out     chan ReminderEvent
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped atomic.Uint64
	fired   atomic.Uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(eventHeap, 0),
		out:    make(chan ReminderEvent, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan ReminderEvent {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

// Stop halts the loop and closes C. It is safe to call more than once.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(ev ReminderEvent) error {
	if ev.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}
	heap.Push(&e.queue, ev)
	e.signalWakeup()
	return nil
}

// Replace swaps the whole pending set for evs. Events with a zero trigger
// time are skipped.
func (e *Engine) Replace(evs []ReminderEvent) error {
	next := make(eventHeap, 0, len(evs))
	for _, ev := range evs {
		if !ev.TriggerAt.IsZero() {
			next = append(next, ev)
		}
	}
	heap.Init(&next)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}
	e.queue = next
	e.signalWakeup()
	return nil
}

// Pending returns a snapshot of queued events in trigger order.
func (e *Engine) Pending() []ReminderEvent {
	e.mu.Lock()
	cp := make(eventHeap, len(e.queue))
	copy(cp, e.queue)
	e.mu.Unlock()

	out := make([]ReminderEvent, 0, len(cp))
	for cp.Len() > 0 {
		out = append(out, heap.Pop(&cp).(ReminderEvent))
	}
	return out
}

func (e *Engine) Dropped() uint64 {
	return e.dropped.Load()
}

func (e *Engine) Fired() uint64 {
	return e.fired.Load()
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, ok := e.peek()
		if !ok {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		timer = resetTimer(timer, max(time.Until(next.TriggerAt), 0))

		select {
		case <-timer.C:
			for _, ev := range e.popDue(time.Now()) {
				select {
				case e.out <- ev:
					e.fired.Add(1)
				default:
					e.dropped.Add(1)
				}
			}
		case <-e.wakeup:
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (ReminderEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return ReminderEvent{}, false
	}
	return e.queue[0], true
}

func (e *Engine) popDue(now time.Time) []ReminderEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []ReminderEvent
	for len(e.queue) > 0 && !e.queue[0].TriggerAt.After(now) {
		out = append(out, heap.Pop(&e.queue).(ReminderEvent))
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
