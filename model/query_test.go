package model_test

import (
	"testing"

	"github.com/autom8ter/instadb/errors"
	"github.com/autom8ter/instadb/model"
	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	t.Run("nested expression is valid", func(t *testing.T) {
		q := model.Query{
			"goals": map[string]any{
				"$":     map[string]any{"where": map[string]any{"title": "Get fit"}},
				"todos": map[string]any{},
			},
		}
		assert.NoError(t, q.Validate())
	})
	t.Run("nil query rejected", func(t *testing.T) {
		var q model.Query
		assert.Equal(t, errors.Validation, errors.Extract(q.Validate()).Kind)
	})
	t.Run("namespace must map to an object", func(t *testing.T) {
		q := model.Query{"goals": "nope"}
		assert.Equal(t, errors.Validation, errors.Extract(q.Validate()).Kind)
	})
	t.Run("non-serializable expression rejected", func(t *testing.T) {
		q := model.Query{"goals": map[string]any{"$": func() {}}}
		assert.Equal(t, errors.Validation, errors.Extract(q.Validate()).Kind)
	})
}
