package service

import (
	"context"
	"sort"

	"practicetime_backend/internal/model"
	"practicetime_backend/internal/repository"
)

// OrderingService assigns the order integers that rank entries inside a
// question set and renumbers them after removals. Order is advisory ranking,
// never a primary key: entries added through other paths may carry gaps or
// no order at all, and the engine tolerates both.
//
// Every operation here is read-compute-write without a store transaction.
// Two admins editing the same set concurrently can lose an update; this
// matches the behaviour the dashboard has always had and is accepted because
// concurrent admin contention is effectively zero.
type OrderingService struct {
	Sets *repository.SetRepository
}

func NewOrderingService(sets *repository.SetRepository) *OrderingService {
	return &OrderingService{Sets: sets}
}

// NextOrder computes the order for the next entry appended to the set: 0 for
// a set with no ordered entries, otherwise max(existing orders)+1. It always
// re-reads the full entry collection rather than keeping a counter, so
// imported entries with arbitrary orders are accounted for.
func (s *OrderingService) NextOrder(ctx context.Context, setName string) (int, error) {
	entries, err := s.Sets.Entries(ctx, setName)
	if err != nil {
		return 0, err
	}

	max := -1
	for _, entry := range entries {
		if entry.HasOrder && entry.Order > max {
			max = entry.Order
		}
	}
	return max + 1, nil
}

// RemoveAndCompact deletes the entry and, when any remaining entry carries an
// explicit order, renumbers the survivors to a dense 0..n-1 range preserving
// their relative rank. When no remaining entry has an order field the
// deletion is the only write.
//
// Compaction persists entries one at a time; a failure partway through
// leaves some orders updated and some not. Best effort, no rollback.
func (s *OrderingService) RemoveAndCompact(ctx context.Context, setName, entryKey string) error {
	if err := s.Sets.RemoveEntry(ctx, setName, entryKey); err != nil {
		return err
	}

	remaining, err := s.Sets.Entries(ctx, setName)
	if err != nil {
		return err
	}

	hasOrder := false
	for _, entry := range remaining {
		if entry.HasOrder {
			hasOrder = true
			break
		}
	}
	if !hasOrder {
		return nil
	}

	sort.SliceStable(remaining, func(i, j int) bool {
		return remaining[i].Order < remaining[j].Order
	})

	for index, entry := range remaining {
		// Legacy string entries keep their shape; only object entries
		// are renumbered, same as the original compaction pass.
		if entry.Legacy {
			continue
		}
		if entry.HasOrder && entry.Order == index {
			continue
		}
		updated := model.StoredEntry{ID: entry.ID, Order: index, AddedAt: entry.AddedAt}
		if err := s.Sets.WriteEntry(ctx, setName, entry.Key, updated); err != nil {
			return err
		}
	}
	return nil
}
