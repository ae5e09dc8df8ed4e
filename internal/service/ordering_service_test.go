package service

import (
	"context"
	"testing"

	"practicetime_backend/internal/model"
	"practicetime_backend/internal/repository"
	"practicetime_backend/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderingFixture(t *testing.T) (context.Context, store.Store, *repository.SetRepository, *OrderingService) {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemoryStore()
	sets := repository.NewSetRepository(st)
	return ctx, st, sets, NewOrderingService(sets)
}

func TestNextOrder(t *testing.T) {
	t.Run("empty set starts at zero", func(t *testing.T) {
		ctx, _, _, ordering := newOrderingFixture(t)
		order, err := ordering.NextOrder(ctx, "Week1")
		require.NoError(t, err)
		assert.Equal(t, 0, order)
	})

	t.Run("appends after the maximum", func(t *testing.T) {
		ctx, _, sets, ordering := newOrderingFixture(t)
		require.NoError(t, sets.WriteEntry(ctx, "Week1", "a", model.StoredEntry{ID: "a", Order: 0}))
		require.NoError(t, sets.WriteEntry(ctx, "Week1", "b", model.StoredEntry{ID: "b", Order: 1}))

		order, err := ordering.NextOrder(ctx, "Week1")
		require.NoError(t, err)
		assert.Equal(t, 2, order)
	})

	t.Run("gaps are not filled", func(t *testing.T) {
		ctx, _, sets, ordering := newOrderingFixture(t)
		require.NoError(t, sets.WriteEntry(ctx, "Week1", "a", model.StoredEntry{ID: "a", Order: 0}))
		require.NoError(t, sets.WriteEntry(ctx, "Week1", "b", model.StoredEntry{ID: "b", Order: 7}))

		order, err := ordering.NextOrder(ctx, "Week1")
		require.NoError(t, err)
		assert.Equal(t, 8, order)
	})

	t.Run("legacy string entries carry no order", func(t *testing.T) {
		ctx, st, _, ordering := newOrderingFixture(t)
		require.NoError(t, st.Set(ctx, "attachedQuestionSets/Week1/k1", "q-legacy"))

		order, err := ordering.NextOrder(ctx, "Week1")
		require.NoError(t, err)
		assert.Equal(t, 0, order)
	})
}

func TestRemoveAndCompact(t *testing.T) {
	t.Run("survivors renumber to a dense range", func(t *testing.T) {
		ctx, _, sets, ordering := newOrderingFixture(t)
		require.NoError(t, sets.WriteEntry(ctx, "Week1", "a", model.StoredEntry{ID: "a", Order: 0, AddedAt: 10}))
		require.NoError(t, sets.WriteEntry(ctx, "Week1", "b", model.StoredEntry{ID: "b", Order: 1, AddedAt: 20}))
		require.NoError(t, sets.WriteEntry(ctx, "Week1", "c", model.StoredEntry{ID: "c", Order: 2, AddedAt: 30}))

		require.NoError(t, ordering.RemoveAndCompact(ctx, "Week1", "b"))

		entries, err := sets.EntriesByDisplayOrder(ctx, "Week1")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "a", entries[0].ID)
		assert.Equal(t, 0, entries[0].Order)
		assert.Equal(t, "c", entries[1].ID)
		assert.Equal(t, 1, entries[1].Order)
		assert.Equal(t, int64(30), entries[1].AddedAt, "addedAt survives renumbering")
	})

	t.Run("relative rank is preserved across gaps", func(t *testing.T) {
		ctx, _, sets, ordering := newOrderingFixture(t)
		require.NoError(t, sets.WriteEntry(ctx, "Week1", "a", model.StoredEntry{ID: "a", Order: 3}))
		require.NoError(t, sets.WriteEntry(ctx, "Week1", "b", model.StoredEntry{ID: "b", Order: 8}))
		require.NoError(t, sets.WriteEntry(ctx, "Week1", "c", model.StoredEntry{ID: "c", Order: 5}))

		require.NoError(t, ordering.RemoveAndCompact(ctx, "Week1", "c"))

		entries, err := sets.EntriesByDisplayOrder(ctx, "Week1")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "a", entries[0].ID)
		assert.Equal(t, 0, entries[0].Order)
		assert.Equal(t, "b", entries[1].ID)
		assert.Equal(t, 1, entries[1].Order)
	})

	t.Run("no ordered survivors means no rewrites", func(t *testing.T) {
		ctx, st, _, ordering := newOrderingFixture(t)
		require.NoError(t, st.Set(ctx, "attachedQuestionSets/Week1/k1", "q1"))
		require.NoError(t, st.Set(ctx, "attachedQuestionSets/Week1/k2", "q2"))

		require.NoError(t, ordering.RemoveAndCompact(ctx, "Week1", "k1"))

		// The surviving entry keeps its legacy string shape.
		var legacy string
		found, err := st.Get(ctx, "attachedQuestionSets/Week1/k2", &legacy)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "q2", legacy)
	})

	t.Run("legacy entries are skipped during compaction", func(t *testing.T) {
		ctx, st, sets, ordering := newOrderingFixture(t)
		require.NoError(t, st.Set(ctx, "attachedQuestionSets/Week1/k1", "q-legacy"))
		require.NoError(t, sets.WriteEntry(ctx, "Week1", "b", model.StoredEntry{ID: "b", Order: 4}))
		require.NoError(t, sets.WriteEntry(ctx, "Week1", "c", model.StoredEntry{ID: "c", Order: 6}))

		require.NoError(t, ordering.RemoveAndCompact(ctx, "Week1", "c"))

		var legacy string
		found, err := st.Get(ctx, "attachedQuestionSets/Week1/k1", &legacy)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "q-legacy", legacy, "legacy entry shape untouched")

		entries, err := sets.Entries(ctx, "Week1")
		require.NoError(t, err)
		for _, entry := range entries {
			if entry.ID == "b" {
				assert.Equal(t, 1, entry.Order, "object entry renumbered behind the legacy entry")
			}
		}
	})
}
