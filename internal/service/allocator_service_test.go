package service

import (
	"context"
	"sync"
	"testing"

	"practicetime_backend/internal/repository"
	"practicetime_backend/internal/util"
	"practicetime_backend/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAllocatorFixture(t *testing.T) (context.Context, *repository.LedgerRepository, *AllocatorService) {
	t.Helper()
	ctx := context.Background()
	ledger := repository.NewLedgerRepository(store.NewMemoryStore())
	return ctx, ledger, NewAllocatorService(ledger)
}

func TestBaseID(t *testing.T) {
	t.Run("derives grade, topic letter and subtopic number", func(t *testing.T) {
		base, err := BaseID("G1", "G1A", "1.2")
		require.NoError(t, err)
		assert.Equal(t, "G1A_2", base)
	})

	t.Run("multi character topic suffix", func(t *testing.T) {
		base, err := BaseID("G10", "G10B", "3.12")
		require.NoError(t, err)
		assert.Equal(t, "G10B_12", base)
	})

	t.Run("missing classification", func(t *testing.T) {
		_, err := BaseID("", "G1A", "1.2")
		assert.ErrorIs(t, err, util.ErrClassificationMissing)

		_, err = BaseID("G1", "", "1.2")
		assert.ErrorIs(t, err, util.ErrClassificationMissing)

		_, err = BaseID("G1", "G1A", "")
		assert.ErrorIs(t, err, util.ErrClassificationMissing)
	})

	t.Run("topic must carry the grade prefix", func(t *testing.T) {
		_, err := BaseID("G1", "G2A", "1.2")
		assert.ErrorIs(t, err, util.ErrClassificationMissing)
	})

	t.Run("subtopic must contain a dot", func(t *testing.T) {
		_, err := BaseID("G1", "G1A", "12")
		assert.ErrorIs(t, err, util.ErrClassificationMissing)
	})
}

func TestNextID(t *testing.T) {
	t.Run("starts at sequence one", func(t *testing.T) {
		ctx, _, allocator := newAllocatorFixture(t)
		id, err := allocator.NextID(ctx, "G1", "G1A", "1.2")
		require.NoError(t, err)
		assert.Equal(t, "G1A_2_1", id)
	})

	t.Run("skips taken sequence numbers", func(t *testing.T) {
		ctx, ledger, allocator := newAllocatorFixture(t)
		committed, err := ledger.Reserve(ctx, "G1A_2_1", "owner-a")
		require.NoError(t, err)
		require.True(t, committed)

		id, err := allocator.NextID(ctx, "G1", "G1A", "1.2")
		require.NoError(t, err)
		assert.Equal(t, "G1A_2_2", id)
	})
}

func TestReserve(t *testing.T) {
	ctx, _, allocator := newAllocatorFixture(t)

	require.NoError(t, allocator.Reserve(ctx, "G1A_2_1", "owner-a"))

	err := allocator.Reserve(ctx, "G1A_2_1", "owner-b")
	assert.ErrorIs(t, err, util.ErrAllocationRace)
}

func TestAllocate(t *testing.T) {
	t.Run("sequential allocations count up", func(t *testing.T) {
		ctx, _, allocator := newAllocatorFixture(t)

		for i, want := range []string{"G1A_2_1", "G1A_2_2", "G1A_2_3"} {
			id, err := allocator.Allocate(ctx, "G1", "G1A", "1.2", "owner")
			require.NoError(t, err, "allocation %d", i+1)
			assert.Equal(t, want, id)
		}
	})

	t.Run("concurrent allocations never collide", func(t *testing.T) {
		ctx, _, allocator := newAllocatorFixture(t)

		const workers = 4
		ids := make([]string, workers)
		errs := make([]error, workers)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				ids[i], errs[i] = allocator.Allocate(ctx, "G1", "G1A", "1.2", "owner")
			}(i)
		}
		wg.Wait()

		seen := make(map[string]bool)
		for i := 0; i < workers; i++ {
			require.NoError(t, errs[i])
			assert.False(t, seen[ids[i]], "id %s allocated twice", ids[i])
			seen[ids[i]] = true
		}
	})

	t.Run("independent classifications do not interfere", func(t *testing.T) {
		ctx, _, allocator := newAllocatorFixture(t)

		id, err := allocator.Allocate(ctx, "G1", "G1A", "1.2", "owner")
		require.NoError(t, err)
		assert.Equal(t, "G1A_2_1", id)

		id, err = allocator.Allocate(ctx, "G2", "G2C", "4.7", "owner")
		require.NoError(t, err)
		assert.Equal(t, "G2C_7_1", id)
	})
}
