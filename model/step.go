package model

import (
	"encoding/json"

	"github.com/autom8ter/instadb/errors"
	"github.com/samber/lo"
)

// Op is a mutation applied to an entity inside an atomic transaction
type Op string

const (
	// OpUpdate upserts attributes on an entity
	OpUpdate Op = "update"
	// OpLink establishes relationships from an entity to one or more targets
	OpLink Op = "link"
	// OpUnlink removes relationships from an entity
	OpUnlink Op = "unlink"
	// OpDelete removes an entity and, server-side, its relationships
	OpDelete Op = "delete"
)

// Step is a single mutation inside a transaction. Steps are constructed by the
// caller, consumed read-only by the dispatcher, and applied by the server in
// sequence as one atomic unit.
type Step struct {
	Op         Op             `json:"op"`
	Collection string         `json:"collection"`
	ID         string         `json:"id"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// Update returns a step that upserts the given attributes on collection/id
func Update(collection, id string, data map[string]any) (Step, error) {
	s := Step{Op: OpUpdate, Collection: collection, ID: id, Payload: data}
	return s, s.Validate()
}

// Link returns a step that links collection/id to the target id(s) under each
// link name. Values must be a single id or a list of ids.
func Link(collection, id string, links map[string]any) (Step, error) {
	s := Step{Op: OpLink, Collection: collection, ID: id, Payload: links}
	return s, s.Validate()
}

// Unlink returns a step that removes the given links from collection/id
func Unlink(collection, id string, links map[string]any) (Step, error) {
	s := Step{Op: OpUnlink, Collection: collection, ID: id, Payload: links}
	return s, s.Validate()
}

// Delete returns a step that removes collection/id
func Delete(collection, id string) (Step, error) {
	s := Step{Op: OpDelete, Collection: collection, ID: id}
	return s, s.Validate()
}

// Validate fails fast before any encoding or network activity
func (s Step) Validate() error {
	if s.Collection == "" {
		return errors.New(errors.Validation, "step: empty step.collection")
	}
	if s.ID == "" {
		return errors.New(errors.Validation, "step: empty step.id")
	}
	switch s.Op {
	case OpUpdate:
		if _, err := json.Marshal(s.Payload); err != nil {
			return errors.New(errors.Validation, "step: update data is not json serializable")
		}
	case OpLink, OpUnlink:
		if len(s.Payload) == 0 {
			return errors.New(errors.Validation, "step: empty %s.links", s.Op)
		}
		for name, value := range s.Payload {
			if !validLinkValue(value) {
				return errors.New(errors.Validation, "step: link %q must be an id or list of ids", name)
			}
		}
	case OpDelete:
	default:
		return errors.New(errors.Validation, "step: unsupported step.op: %s", s.Op)
	}
	return nil
}

// Encode returns the canonical wire form [op, collection, id, payload].
// Encoding is pure and deterministic; the delete payload is an empty mapping.
func (s Step) Encode() []any {
	payload := s.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	return []any{string(s.Op), s.Collection, s.ID, payload}
}

// EncodeSteps encodes an ordered step sequence, preserving order. Order is
// semantically meaningful: the server applies steps in sequence.
func EncodeSteps(steps []Step) [][]any {
	return lo.Map(steps, func(s Step, _ int) []any {
		return s.Encode()
	})
}

func validLinkValue(value any) bool {
	switch value := value.(type) {
	case string:
		return value != ""
	case []string:
		return len(value) > 0 && lo.EveryBy(value, func(id string) bool { return id != "" })
	case []any:
		return len(value) > 0 && lo.EveryBy(value, func(id any) bool {
			s, ok := id.(string)
			return ok && s != ""
		})
	default:
		return false
	}
}
