package instadb_test

import (
	"testing"

	"github.com/autom8ter/instadb"
	"github.com/autom8ter/instadb/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDocument(t *testing.T) {
	t.Run("from bytes", func(t *testing.T) {
		doc, err := instadb.NewDocumentFromBytes([]byte(`{"todos":[{"title":"x","done":true}]}`))
		assert.NoError(t, err)
		assert.Equal(t, "x", doc.GetString("todos.0.title"))
		assert.True(t, doc.GetBool("todos.0.done"))
		assert.True(t, doc.Exists("todos"))
		assert.False(t, doc.Exists("goals"))
	})
	t.Run("invalid json rejected", func(t *testing.T) {
		_, err := instadb.NewDocumentFromBytes([]byte(`{`))
		assert.NotNil(t, err)
	})
	t.Run("arrays are not documents", func(t *testing.T) {
		_, err := instadb.NewDocumentFromBytes([]byte(`[1,2]`))
		assert.NotNil(t, err)
	})
	t.Run("from value", func(t *testing.T) {
		doc, err := instadb.NewDocumentFrom(testutil.NewTodo())
		assert.NoError(t, err)
		assert.NotEmpty(t, doc.GetString("title"))
	})
	t.Run("set get del", func(t *testing.T) {
		doc := instadb.NewDocument()
		assert.NoError(t, doc.Set("user.email", "a@b.com"))
		assert.Equal(t, "a@b.com", doc.GetString("user.email"))
		assert.NoError(t, doc.Del("user.email"))
		assert.False(t, doc.Exists("user.email"))
	})
	t.Run("clone is independent", func(t *testing.T) {
		doc := instadb.NewDocument()
		assert.NoError(t, doc.Set("a", 1))
		clone := doc.Clone()
		assert.NoError(t, clone.Set("a", 2))
		assert.Equal(t, float64(1), doc.GetFloat("a"))
		assert.Equal(t, float64(2), clone.GetFloat("a"))
	})
	t.Run("value map", func(t *testing.T) {
		doc, _ := instadb.NewDocumentFromBytes([]byte(`{"a":1,"b":"x"}`))
		value := doc.Value()
		assert.Equal(t, "x", value["b"])
	})
}
