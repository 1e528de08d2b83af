package mystore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type Record struct {
	UID   string
	Token string
}

var (
	record = Record{UID: "123", Token: "abc123"}
)

func TestStore(t *testing.T) {
	c := context.TODO()
	rs, cleanup, err := NewInMemoryStore[Record](c)
	assert.NoError(t, err)
	defer cleanup()

	t.Run("Get not found", func(t *testing.T) {
		_, found, err := rs.Get(c, record.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Put", func(t *testing.T) {
		err = rs.Put(c, record.UID, record)
		assert.NoError(t, err)
	})

	t.Run("Get found", func(t *testing.T) {
		r, found, err := rs.Get(c, record.UID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, Record{UID: "123", Token: "abc123"}, r)
	})

	t.Run("List", func(t *testing.T) {
		all, err := rs.List(c)
		assert.NoError(t, err)
		assert.Equal(t, all, []Record{record})
	})

	t.Run("Read-modify-write in transaction", func(t *testing.T) {
		err := rs.RunInTransaction(c, func(c context.Context) error {
			r, found, err := rs.Get(c, record.UID)
			assert.NoError(t, err)
			assert.True(t, found)

			r.Token = "def456"
			return rs.Put(c, record.UID, r)
		})
		assert.NoError(t, err)

		r, found, err := rs.Get(c, record.UID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "def456", r.Token)
	})

	t.Run("Failing transaction does not commit error as success", func(t *testing.T) {
		err := rs.RunInTransaction(c, func(c context.Context) error {
			return fmt.Errorf("boom")
		})
		assert.Error(t, err)
	})
}
