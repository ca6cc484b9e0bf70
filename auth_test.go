package instadb_test

import (
	"testing"

	"github.com/autom8ter/instadb"
	"github.com/autom8ter/instadb/errors"
	"github.com/stretchr/testify/assert"
)

func TestImpersonation(t *testing.T) {
	t.Run("exactly one mode", func(t *testing.T) {
		_, err := instadb.NewImpersonation("a@b.com", "tok", false)
		assert.Equal(t, errors.Validation, errors.Extract(err).Kind)
		_, err = instadb.NewImpersonation("", "", false)
		assert.Equal(t, errors.Validation, errors.Extract(err).Kind)
		_, err = instadb.NewImpersonation("a@b.com", "", true)
		assert.Equal(t, errors.Validation, errors.Extract(err).Kind)
	})
	t.Run("constructors", func(t *testing.T) {
		_, err := instadb.ImpersonateEmail("a@b.com")
		assert.NoError(t, err)
		_, err = instadb.ImpersonateToken("tok")
		assert.NoError(t, err)
		_, err = instadb.ImpersonateEmail("")
		assert.NotNil(t, err)
	})
}

func TestAuthContext(t *testing.T) {
	t.Run("requires app id and admin token", func(t *testing.T) {
		_, err := instadb.NewAuthContext("", "tok")
		assert.Equal(t, errors.Validation, errors.Extract(err).Kind)
		_, err = instadb.NewAuthContext("a", "")
		assert.Equal(t, errors.Validation, errors.Extract(err).Kind)
	})
	t.Run("admin headers", func(t *testing.T) {
		auth, err := instadb.NewAuthContext("a", "tok")
		assert.NoError(t, err)
		headers := auth.Headers()
		assert.Equal(t, "Bearer tok", headers[instadb.HeaderAuthorization])
		assert.Equal(t, "a", headers[instadb.HeaderAppID])
		assert.NotContains(t, headers, instadb.HeaderImpersonate)
	})
	t.Run("guest impersonation layers a header", func(t *testing.T) {
		auth, _ := instadb.NewAuthContext("a", "tok")
		derived := auth.WithImpersonation(instadb.ImpersonateGuest())
		headers := derived.Headers()
		assert.Equal(t, "Bearer tok", headers[instadb.HeaderAuthorization])
		assert.JSONEq(t, `{"guest":true}`, headers[instadb.HeaderImpersonate])
	})
	t.Run("base context unchanged after deriving", func(t *testing.T) {
		auth, _ := instadb.NewAuthContext("a", "tok")
		imp, _ := instadb.ImpersonateEmail("a@b.com")
		derived := auth.WithImpersonation(imp)
		assert.True(t, derived.Impersonated())
		assert.False(t, auth.Impersonated())
		assert.NotContains(t, auth.Headers(), instadb.HeaderImpersonate)
		assert.JSONEq(t, `{"email":"a@b.com"}`, derived.Headers()[instadb.HeaderImpersonate])
	})
	t.Run("token impersonation header", func(t *testing.T) {
		auth, _ := instadb.NewAuthContext("a", "tok")
		imp, _ := instadb.ImpersonateToken("user-tok")
		assert.JSONEq(t, `{"token":"user-tok"}`, auth.WithImpersonation(imp).Headers()[instadb.HeaderImpersonate])
	})
}
