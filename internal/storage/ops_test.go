package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOps_Validate(t *testing.T) {
	t.Run("empty commit", func(t *testing.T) {
		var ops Ops
		assert.ErrorIs(t, ops.Validate(10), ErrEmptyCommit)
	})

	t.Run("too large", func(t *testing.T) {
		var ops Ops
		ops.Upsert("c", "a", map[string]int{"v": 1})
		ops.Upsert("c", "b", map[string]int{"v": 2})
		ops.Delete("c", "z")

		err := ops.Validate(2)
		assert.ErrorIs(t, err, ErrBatchTooLarge)
		assert.NoError(t, ops.Validate(3))
		assert.NoError(t, ops.Validate(0))
	})

	t.Run("marshal failure is reported", func(t *testing.T) {
		var ops Ops
		ops.Upsert("c", "bad", make(chan int))
		ops.Upsert("c", "good", "ok")

		err := ops.Validate(10)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrEmptyCommit))
		assert.Equal(t, 2, ops.Len())
		assert.Len(t, ops.Operations(), 1)
	})

	t.Run("keeps order and kinds", func(t *testing.T) {
		var ops Ops
		ops.Upsert("c", "a", 1)
		ops.Delete("c", "b")

		got := ops.Operations()
		require.Len(t, got, 2)
		assert.Equal(t, OpUpsert, got[0].Kind)
		assert.JSONEq(t, "1", string(got[0].Data))
		assert.Equal(t, OpDelete, got[1].Kind)
		assert.Equal(t, "b", got[1].Key)
	})
}

func TestDecodeAll(t *testing.T) {
	type item struct {
		Name string `json:"name"`
	}
	docs := []Document{
		{Key: "1", Data: []byte(`{"name":"one"}`)},
		{Key: "2", Data: []byte(`{"name":"two"}`)},
	}

	items, err := DecodeAll[item](docs)
	require.NoError(t, err)
	assert.Equal(t, []item{{Name: "one"}, {Name: "two"}}, items)

	_, err = DecodeAll[item]([]Document{{Key: "x", Data: []byte(`{`)}})
	assert.Error(t, err)
}
