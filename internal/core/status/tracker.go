// Package status tracks the lifecycle of each remote post operation.
// Every operation kind has exactly one status that moves
// idle -> pending -> succeeded|failed and stays terminal until the next
// invocation puts it back to pending.
package status

import (
	"fmt"
	"sync"
)

// Status is the lifecycle flag for one operation kind
type Status int

const (
	Idle Status = iota
	Pending
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Terminal reports whether the status is succeeded or failed
func (s Status) Terminal() bool {
	return s == Succeeded || s == Failed
}

// Op identifies a tracked operation kind
type Op int

const (
	List Op = iota
	Create
	Patch
	Put
	Delete
)

// Ops lists every tracked operation kind in display order
var Ops = []Op{List, Create, Patch, Put, Delete}

func (o Op) String() string {
	switch o {
	case List:
		return "list"
	case Create:
		return "create"
	case Patch:
		return "patch"
	case Put:
		return "put"
	case Delete:
		return "delete"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// ParseOp converts an operation name back to an Op
func ParseOp(name string) (Op, error) {
	for _, op := range Ops {
		if op.String() == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown operation %q", name)
}

// Transition describes a single status change
type Transition struct {
	Op   Op
	From Status
	To   Status
}

// Tracker stores the current status of every operation kind.
// Begin on an op that is already pending simply overwrites it; there is no
// queuing and no guard against overlapping calls for the same op.
type Tracker struct {
	statuses  map[Op]Status
	observers map[int]func(Transition)
	// delivery serializes a status change and its notifications per op
	delivery map[Op]*sync.Mutex
	nextID   int
	mu       sync.Mutex
}

// NewTracker creates a tracker with every operation idle
func NewTracker() *Tracker {
	t := &Tracker{
		statuses:  make(map[Op]Status, len(Ops)),
		observers: make(map[int]func(Transition)),
		delivery:  make(map[Op]*sync.Mutex, len(Ops)),
	}
	for _, op := range Ops {
		t.statuses[op] = Idle
		t.delivery[op] = &sync.Mutex{}
	}
	return t
}

// Begin marks op as pending
func (t *Tracker) Begin(op Op) {
	t.set(op, Pending)
}

// Succeed marks op as succeeded
func (t *Tracker) Succeed(op Op) {
	t.set(op, Succeeded)
}

// Fail marks op as failed
func (t *Tracker) Fail(op Op) {
	t.set(op, Failed)
}

// Get returns the current status of op
func (t *Tracker) Get(op Op) Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statuses[op]
}

// Snapshot returns a copy of every status
func (t *Tracker) Snapshot() map[Op]Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := make(map[Op]Status, len(t.statuses))
	for op, s := range t.statuses {
		snap[op] = s
	}
	return snap
}

// Subscribe registers fn to receive every transition.
// Observers run on the goroutine that changed the status, after the tracker
// lock is released, so they may read the tracker freely. Transitions of one op
// are delivered in the order they happened, even when goroutines overlap on
// that op; an observer must not change the status of the op it is notified about.
func (t *Tracker) Subscribe(fn func(Transition)) (unsubscribe func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.observers[id] = fn
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.observers, id)
			t.mu.Unlock()
		})
	}
}

func (t *Tracker) set(op Op, to Status) {
	t.mu.Lock()
	d, ok := t.delivery[op]
	if !ok {
		d = &sync.Mutex{}
		t.delivery[op] = d
	}
	t.mu.Unlock()

	d.Lock()
	defer d.Unlock()

	t.mu.Lock()
	from := t.statuses[op]
	t.statuses[op] = to
	observers := t.snapshotObservers()
	t.mu.Unlock()

	tr := Transition{Op: op, From: from, To: to}
	for _, fn := range observers {
		fn(tr)
	}
}

// snapshotObservers must be called with the lock held
func (t *Tracker) snapshotObservers() []func(Transition) {
	if len(t.observers) == 0 {
		return nil
	}

	// Deliver in subscription order
	fns := make([]func(Transition), 0, len(t.observers))
	for id := 0; id < t.nextID; id++ {
		if fn, ok := t.observers[id]; ok {
			fns = append(fns, fn)
		}
	}
	return fns
}
