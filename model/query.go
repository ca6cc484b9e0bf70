package model

import (
	"encoding/json"

	"github.com/autom8ter/instadb/errors"
)

// Query is an InstaQL query expression: a recursively nested mapping of
// namespace -> {"$": {"where": ...}, <nested-namespace>: Query}. The client does
// not interpret its semantics - it only guarantees the expression is structurally
// serializable before dispatch.
type Query map[string]any

// Validate checks that the expression is a non-nil, json-serializable mapping
// whose top-level namespace values are themselves mappings
func (q Query) Validate() error {
	if q == nil {
		return errors.New(errors.Validation, "query: nil query expression")
	}
	for namespace, value := range q {
		if _, ok := value.(map[string]any); !ok {
			if _, ok := value.(Query); !ok {
				return errors.New(errors.Validation, "query: namespace %q must map to an object", namespace)
			}
		}
	}
	if _, err := json.Marshal(q); err != nil {
		return errors.New(errors.Validation, "query: expression is not json serializable")
	}
	return nil
}
