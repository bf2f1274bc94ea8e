package repositories

import (
	"testing"

	"bramble/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerGroupRepository(db)

	t.Run("create and get by slug", func(t *testing.T) {
		group := &models.Group{Title: "Test group", Slug: "test-slug", Description: "Test description"}
		require.NoError(t, repo.Create(group))
		assert.Greater(t, group.ID, 0)

		got, err := repo.GetBySlug("test-slug")
		require.NoError(t, err)
		assert.Equal(t, group.ID, got.ID)
		assert.Equal(t, "Test group", got.Title)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		dup := &models.Group{Title: "Another", Slug: "test-slug"}
		assert.ErrorIs(t, repo.Create(dup), ErrDuplicate)
	})

	t.Run("unknown slug", func(t *testing.T) {
		_, err := repo.GetBySlug("nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		second := &models.Group{Title: "Second", Slug: "second"}
		require.NoError(t, repo.Create(second))

		groups, err := repo.List()
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Less(t, groups[0].ID, groups[1].ID)
	})
}
