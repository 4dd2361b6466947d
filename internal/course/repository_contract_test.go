package course_test

import (
	"context"
	"testing"

	"github.com/atabekdeveloper/mini-course-api/internal/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRepositoryContract exercises behavior every backend must share. reset
// must leave the backend empty; missingID must be well formed for the backend
// but not stored.
func runRepositoryContract(t *testing.T, repo course.Repository, reset func(t *testing.T), missingID string) {
	t.Helper()
	ctx := context.Background()

	t.Run("Create_ThenGetByID", func(t *testing.T) {
		reset(t)

		created, err := repo.Create(ctx, "  Go Basics  ")
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.False(t, created.ID.IsZero())
		assert.Equal(t, "  Go Basics  ", created.Title)

		found, err := repo.GetByID(ctx, created.ID.String())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "  Go Basics  ", found.Title)
	})

	t.Run("Create_AssignsUniqueIDs", func(t *testing.T) {
		reset(t)

		seen := make(map[string]bool)
		for i := 0; i < 20; i++ {
			c, err := repo.Create(ctx, "Same Title")
			require.NoError(t, err)
			assert.False(t, seen[c.ID.String()], "duplicate id %s", c.ID)
			seen[c.ID.String()] = true
		}
	})

	t.Run("List_Empty", func(t *testing.T) {
		reset(t)

		courses, err := repo.List(ctx, "")
		require.NoError(t, err)
		assert.NotNil(t, courses)
		assert.Empty(t, courses)
	})

	t.Run("List_FilterBySubstring", func(t *testing.T) {
		reset(t)

		for _, title := range []string{"JavaScript", "TypeScript", "Node.js"} {
			_, err := repo.Create(ctx, title)
			require.NoError(t, err)
		}

		all, err := repo.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)

		filtered, err := repo.List(ctx, "Script")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"JavaScript", "TypeScript"}, titles(filtered))

		caseSensitive, err := repo.List(ctx, "script")
		require.NoError(t, err)
		assert.Empty(t, caseSensitive)

		none, err := repo.List(ctx, "Rust")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("List_FilterIsLiteral", func(t *testing.T) {
		reset(t)

		for _, title := range []string{"Node.js", "Nodexjs", "C++ (intro)"} {
			_, err := repo.Create(ctx, title)
			require.NoError(t, err)
		}

		dotted, err := repo.List(ctx, "e.j")
		require.NoError(t, err)
		assert.Equal(t, []string{"Node.js"}, titles(dotted))

		plus, err := repo.List(ctx, "C++ (")
		require.NoError(t, err)
		assert.Equal(t, []string{"C++ (intro)"}, titles(plus))
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		reset(t)

		found, err := repo.GetByID(ctx, missingID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("MalformedIDs_BehaveAsNotFound", func(t *testing.T) {
		reset(t)

		for _, id := range []string{"", "not-an-id", "12abc", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
			found, err := repo.GetByID(ctx, id)
			require.NoError(t, err, id)
			assert.Nil(t, found, id)

			updated, err := repo.Update(ctx, id, "Whatever")
			require.NoError(t, err, id)
			assert.False(t, updated, id)

			deleted, err := repo.Delete(ctx, id)
			require.NoError(t, err, id)
			assert.False(t, deleted, id)
		}
	})

	t.Run("Update_ChangesTitle", func(t *testing.T) {
		reset(t)

		created, err := repo.Create(ctx, "Old Title")
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.ID.String(), "New Title")
		require.NoError(t, err)
		assert.True(t, updated)

		found, err := repo.GetByID(ctx, created.ID.String())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "New Title", found.Title)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("Update_NotFound", func(t *testing.T) {
		reset(t)

		updated, err := repo.Update(ctx, missingID, "New Title")
		require.NoError(t, err)
		assert.False(t, updated)

		courses, err := repo.List(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, courses)
	})

	t.Run("Delete_Twice", func(t *testing.T) {
		reset(t)

		created, err := repo.Create(ctx, "Short Lived")
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, created.ID.String())
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, created.ID.String())
		require.NoError(t, err)
		assert.False(t, deleted)

		found, err := repo.GetByID(ctx, created.ID.String())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("DeleteAll", func(t *testing.T) {
		reset(t)

		for _, title := range []string{"One Course", "Two Course"} {
			_, err := repo.Create(ctx, title)
			require.NoError(t, err)
		}

		require.NoError(t, repo.DeleteAll(ctx))

		courses, err := repo.List(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, courses)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, repo.Ping(ctx))
	})
}

func titles(courses []course.Course) []string {
	out := make([]string, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.Title)
	}
	return out
}
