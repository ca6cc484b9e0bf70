package instadb

import (
	"context"

	"github.com/autom8ter/instadb/model"
)

// Tx accumulates an ordered sequence of steps for one atomic transaction.
// The first invalid step latches an error and Commit refuses to dispatch.
// Separate Commit calls are separate transactions - only a single commit is
// applied atomically.
type Tx struct {
	client *Client
	steps  []model.Step
	err    error
}

// Tx returns an empty transaction builder
func (c *Client) Tx() *Tx {
	return &Tx{client: c}
}

// Update appends an upsert of the given attributes on collection/id
func (t *Tx) Update(collection, id string, data map[string]any) *Tx {
	return t.append(model.Update(collection, id, data))
}

// Link appends a step linking collection/id to the target id(s)
func (t *Tx) Link(collection, id string, links map[string]any) *Tx {
	return t.append(model.Link(collection, id, links))
}

// Unlink appends a step removing the given links from collection/id
func (t *Tx) Unlink(collection, id string, links map[string]any) *Tx {
	return t.append(model.Unlink(collection, id, links))
}

// Delete appends a step removing collection/id
func (t *Tx) Delete(collection, id string) *Tx {
	return t.append(model.Delete(collection, id))
}

func (t *Tx) append(step model.Step, err error) *Tx {
	if t.err != nil {
		return t
	}
	if err != nil {
		t.err = err
		return t
	}
	t.steps = append(t.steps, step)
	return t
}

// Err returns the latched validation error (if any)
func (t *Tx) Err() error {
	return t.err
}

// Steps returns a copy of the accumulated steps in order
func (t *Tx) Steps() []model.Step {
	out := make([]model.Step, len(t.steps))
	copy(out, t.steps)
	return out
}

// Commit dispatches the accumulated steps as one atomic transaction
func (t *Tx) Commit(ctx context.Context) (*TxResult, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.client.Transact(ctx, t.steps...)
}

// Debug evaluates the accumulated steps as a dry-run without committing
func (t *Tx) Debug(ctx context.Context) (*Document, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.client.DebugTransact(ctx, t.steps...)
}
