package mystore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type person struct {
	UID  string
	Name string
	Age  int
}

func TestStore(t *testing.T) {
	c := context.TODO()

	store, cleanup, err := New[person](c)
	assert.NoError(t, err)
	defer cleanup()

	t.Run("Get non existing", func(t *testing.T) {
		_, exists, err := store.Get(c, "not_there")
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Put and get", func(t *testing.T) {
		err := store.Put(c, "1", person{UID: "1", Name: "Jane", Age: 42})
		assert.NoError(t, err)

		p, exists, err := store.Get(c, "1")
		assert.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, "Jane", p.Name)
	})

	t.Run("Overwrite", func(t *testing.T) {
		err := store.Put(c, "1", person{UID: "1", Name: "Joe", Age: 43})
		assert.NoError(t, err)

		p, exists, err := store.Get(c, "1")
		assert.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, "Joe", p.Name)
	})

	t.Run("List", func(t *testing.T) {
		err := store.Put(c, "2", person{UID: "2", Name: "Mary", Age: 44})
		assert.NoError(t, err)

		persons, err := store.List(c)
		assert.NoError(t, err)
		assert.Len(t, persons, 2)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Put(c, "gone", person{UID: "gone", Name: "Bob", Age: 50})
		assert.NoError(t, err)

		err = store.Delete(c, "gone")
		assert.NoError(t, err)

		_, exists, err := store.Get(c, "gone")
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Transaction rolls back on error", func(t *testing.T) {
		err := store.RunInTransaction(c, func(c context.Context) error {
			err := store.Put(c, "3", person{UID: "3", Name: "Pete", Age: 45})
			assert.NoError(t, err)

			return fmt.Errorf("something failed")
		})
		assert.Error(t, err)
	})

	t.Run("Transaction commits", func(t *testing.T) {
		err := store.RunInTransaction(c, func(c context.Context) error {
			return store.Put(c, "4", person{UID: "4", Name: "Anne", Age: 46})
		})
		assert.NoError(t, err)

		p, exists, err := store.Get(c, "4")
		assert.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, "Anne", p.Name)
	})
}
