package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnionFind(t *testing.T) {
	t.Run("singletons", func(t *testing.T) {
		u := NewUnionFind(4)
		assert.Equal(t, 4, u.Len())
		for i := 0; i < 4; i++ {
			assert.Equal(t, i, u.Find(i))
			assert.Equal(t, 1, u.Size(i))
		}
		assert.False(t, u.Connected(0, 1))
	})

	t.Run("union by size", func(t *testing.T) {
		u := NewUnionFind(5)
		root := u.Union(0, 1)
		assert.Equal(t, 0, root, "ties keep the first root")

		root = u.Union(2, 0)
		assert.Equal(t, 0, root, "the larger tree absorbs the smaller one")
		assert.Equal(t, 3, u.Size(2))
		assert.True(t, u.Connected(1, 2))
		assert.False(t, u.Connected(1, 3))
	})

	t.Run("redundant union", func(t *testing.T) {
		u := NewUnionFind(3)
		u.Union(0, 1)
		assert.Equal(t, 1, u.Merges())

		root := u.Union(1, 0)
		assert.Equal(t, u.Find(0), root)
		assert.Equal(t, 1, u.Merges())
	})

	t.Run("members", func(t *testing.T) {
		u := NewUnionFind(6)
		u.Union(0, 1)
		u.Union(2, 3)
		u.Union(0, 2)

		members := u.Members(3)
		assert.Equal(t, u.Find(3), members[0], "root comes first")
		assert.ElementsMatch(t, []int{0, 1, 2, 3}, members)
		assert.Equal(t, []int{5}, u.Members(5))
	})
}
