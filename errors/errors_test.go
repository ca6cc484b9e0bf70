package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/autom8ter/instadb/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	t.Run("wrap nil error", func(t *testing.T) {
		var err error
		err = errors.Wrap(err, errors.NotFound, "")
		assert.Nil(t, err)
	})
	t.Run("wrap error", func(t *testing.T) {
		var err = fmt.Errorf("not found")
		err = errors.Wrap(err, errors.NotFound, "")
		assert.Equal(t, errors.NotFound, errors.Extract(err).Kind)
		assert.Equal(t, http.StatusNotFound, errors.Extract(err).Code)
	})
	t.Run("new error", func(t *testing.T) {
		err := errors.New(errors.Validation, "bad step")
		assert.Equal(t, errors.Validation, errors.Extract(err).Kind)
		assert.Equal(t, []string{"bad step"}, errors.Extract(err).Messages)
	})
	t.Run("extract foreign error", func(t *testing.T) {
		err := fmt.Errorf("boom")
		assert.Equal(t, errors.Unknown, errors.Extract(err).Kind)
	})
	t.Run("retryable kinds", func(t *testing.T) {
		assert.True(t, errors.Retryable(errors.New(errors.TransientServer, "down")))
		assert.True(t, errors.Retryable(errors.New(errors.RateLimit, "slow down")))
		assert.False(t, errors.Retryable(errors.New(errors.Validation, "bad")))
		assert.False(t, errors.Retryable(nil))
	})
}

func TestClassify(t *testing.T) {
	t.Run("status fallback", func(t *testing.T) {
		assert.Equal(t, errors.NotFound, errors.Classify(404, []byte(`{}`)).Kind)
		assert.Equal(t, errors.Authentication, errors.Classify(401, nil).Kind)
		assert.Equal(t, errors.PermissionDenied, errors.Classify(403, nil).Kind)
		assert.Equal(t, errors.RateLimit, errors.Classify(429, nil).Kind)
		assert.Equal(t, errors.Validation, errors.Classify(422, nil).Kind)
		assert.Equal(t, errors.Unknown, errors.Classify(302, nil).Kind)
	})
	t.Run("5xx is transient and retryable", func(t *testing.T) {
		e := errors.Classify(500, nil)
		assert.Equal(t, errors.TransientServer, e.Kind)
		assert.True(t, errors.Retryable(e))
		assert.Equal(t, errors.TransientServer, errors.Classify(503, nil).Kind)
	})
	t.Run("structured code wins over status", func(t *testing.T) {
		e := errors.Classify(403, []byte(`{"code":"PERMISSION_DENIED"}`))
		assert.Equal(t, errors.PermissionDenied, e.Kind)
		e = errors.Classify(400, []byte(`{"code":"PERMISSION_DENIED"}`))
		assert.Equal(t, errors.PermissionDenied, e.Kind)
		e = errors.Classify(400, []byte(`{"type":"RECORD_NOT_FOUND"}`))
		assert.Equal(t, errors.NotFound, e.Kind)
	})
	t.Run("unrecognized code falls back to status", func(t *testing.T) {
		e := errors.Classify(404, []byte(`{"code":"SOMETHING_ELSE"}`))
		assert.Equal(t, errors.NotFound, e.Kind)
	})
	t.Run("deterministic", func(t *testing.T) {
		body := []byte(`{"code":"RATE_LIMITED","message":"slow down"}`)
		a := errors.Classify(429, body)
		b := errors.Classify(429, body)
		assert.Equal(t, a.Kind, b.Kind)
		assert.Equal(t, a.Code, b.Code)
		assert.Equal(t, a.Messages, b.Messages)
	})
	t.Run("message and body preserved", func(t *testing.T) {
		e := errors.Classify(400, []byte(`{"code":"PARAM_MALFORMED","message":"bad where clause"}`))
		assert.Equal(t, errors.Validation, e.Kind)
		assert.Equal(t, []string{"bad where clause"}, e.Messages)
		assert.JSONEq(t, `{"code":"PARAM_MALFORMED","message":"bad where clause"}`, string(e.Body))
	})
}
