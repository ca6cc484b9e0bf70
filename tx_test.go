package instadb_test

import (
	"context"
	"testing"

	"github.com/autom8ter/instadb/errors"
	"github.com/autom8ter/instadb/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTx(t *testing.T) {
	ctx := context.Background()
	t.Run("builder preserves step order", func(t *testing.T) {
		client, stub := testutil.NewClient(testutil.OK(`{"tx-id":"tx-1"}`))
		result, err := client.Tx().
			Update("todos", "todo-123", map[string]any{"title": "Go running"}).
			Link("goals", "goal-123", map[string]any{"todos": "todo-123"}).
			Delete("todos", "todo-999").
			Commit(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "tx-1", result.TxID)
		assert.JSONEq(t, `{"steps":[
			["update","todos","todo-123",{"title":"Go running"}],
			["link","goals","goal-123",{"todos":"todo-123"}],
			["delete","todos","todo-999",{}]
		]}`, string(stub.Requests()[0].Body))
	})
	t.Run("first invalid step latches and commit refuses", func(t *testing.T) {
		client, stub := testutil.NewClient()
		tx := client.Tx().
			Update("", "todo-123", nil).
			Delete("todos", "todo-999")
		assert.NotNil(t, tx.Err())
		_, err := tx.Commit(ctx)
		assert.Equal(t, errors.Validation, errors.Extract(err).Kind)
		assert.Equal(t, 0, stub.Calls())
		assert.Empty(t, tx.Steps())
	})
	t.Run("empty builder commit fails locally", func(t *testing.T) {
		client, stub := testutil.NewClient()
		_, err := client.Tx().Commit(ctx)
		assert.Equal(t, errors.Validation, errors.Extract(err).Kind)
		assert.Equal(t, 0, stub.Calls())
	})
	t.Run("steps returns a copy", func(t *testing.T) {
		client, _ := testutil.NewClient()
		tx := client.Tx().Delete("todos", "t1")
		steps := tx.Steps()
		steps[0].Collection = "mutated"
		assert.Equal(t, "todos", tx.Steps()[0].Collection)
	})
	t.Run("debug dispatches a dry-run", func(t *testing.T) {
		client, stub := testutil.NewClient(testutil.OK(`{"check-results":[]}`))
		_, err := client.Tx().Unlink("goals", "g1", map[string]any{"todos": []string{"a"}}).Debug(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "/admin/debug/transact", stub.Requests()[0].Path)
	})
	t.Run("unlink step encodes list targets", func(t *testing.T) {
		client, stub := testutil.NewClient(testutil.OK(`{"tx-id":"tx-9"}`))
		_, err := client.Tx().
			Unlink("goals", "goal-123", map[string]any{"todos": []string{"todo-1", "todo-2"}}).
			Commit(ctx)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"steps":[["unlink","goals","goal-123",{"todos":["todo-1","todo-2"]}]]}`, string(stub.Requests()[0].Body))
	})
}
