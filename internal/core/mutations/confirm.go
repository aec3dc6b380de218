package mutations

import (
	"context"
	"fmt"
	"sync"

	"Blogsync/internal/core/posts"
	"Blogsync/internal/core/status"
)

// Decision is the state of a delete confirmation
type Decision int

const (
	Undecided Decision = iota
	Cancelled
	Confirmed
)

func (d Decision) String() string {
	switch d {
	case Undecided:
		return "pending"
	case Cancelled:
		return "cancelled"
	case Confirmed:
		return "confirmed"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// Prompt is what a presentation layer shows the user before a delete
type Prompt struct {
	Title   string
	Message string
	Cancel  string
	Confirm string
}

func deletePrompt(post posts.Post) Prompt {
	return Prompt{
		Title:   "Confirm deletion",
		Message: fmt.Sprintf("Are you sure you want to delete %q?", post.Title),
		Cancel:  "Cancel",
		Confirm: "Delete",
	}
}

// Confirmer answers a prompt with true to proceed or false to cancel
type Confirmer interface {
	Confirm(ctx context.Context, prompt Prompt) (bool, error)
}

// ConfirmerFunc adapts a function to Confirmer
type ConfirmerFunc func(ctx context.Context, prompt Prompt) (bool, error)

// Confirm calls f
func (f ConfirmerFunc) Confirm(ctx context.Context, prompt Prompt) (bool, error) {
	return f(ctx, prompt)
}

// DeleteConfirmation is a pending request to delete one post.
// Exactly one of Cancel or Confirm takes effect; later calls return the
// settled outcome without side effects.
type DeleteConfirmation struct {
	coordinator *Coordinator
	post        posts.Post
	prompt      Prompt
	decision    Decision
	result      status.Status
	mu          sync.Mutex
}

// Post returns the post the confirmation targets
func (d *DeleteConfirmation) Post() posts.Post {
	return d.post
}

// Prompt returns the two-option prompt to show the user
func (d *DeleteConfirmation) Prompt() Prompt {
	return d.prompt
}

// Decision returns the current decision
func (d *DeleteConfirmation) Decision() Decision {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.decision
}

// Cancel settles the confirmation without contacting the store.
// Reports whether this call made the decision.
func (d *DeleteConfirmation) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.decision != Undecided {
		return false
	}
	d.decision = Cancelled
	d.coordinator.logger.Debug("[POSTS] delete cancelled", "id", d.post.ID)
	return true
}

// Confirm settles the confirmation and issues the delete exactly once.
// On a cancelled confirmation it returns the tracker's current delete status
// untouched.
func (d *DeleteConfirmation) Confirm(ctx context.Context) status.Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.decision {
	case Confirmed:
		return d.result
	case Cancelled:
		return d.coordinator.tracker.Get(status.Delete)
	}

	d.decision = Confirmed
	d.result = d.coordinator.deletePost(ctx, d.post.ID)
	return d.result
}

// Resolve asks confirmer and applies its answer.
// A confirmer error is treated as cancel.
func (d *DeleteConfirmation) Resolve(ctx context.Context, confirmer Confirmer) Decision {
	ok, err := confirmer.Confirm(ctx, d.prompt)
	if err != nil {
		d.coordinator.logger.Warn("[POSTS] delete confirmation failed, cancelling",
			"id", d.post.ID, "error", err)
		d.Cancel()
		return d.Decision()
	}

	if ok {
		d.Confirm(ctx)
	} else {
		d.Cancel()
	}
	return d.Decision()
}
