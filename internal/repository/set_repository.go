package repository

import (
	"context"
	"sort"

	"practicetime_backend/internal/model"
	"practicetime_backend/pkg/store"
)

const setsRoot = "attachedQuestionSets"

// SetRepository reads and writes question-set entries under
// attachedQuestionSets/{setName}/{entryKey}. Entries come back normalized:
// legacy bare-string records and full {id, order, addedAt} objects are both
// folded into model.SetEntry.
type SetRepository struct {
	Store store.Store
}

func NewSetRepository(st store.Store) *SetRepository {
	return &SetRepository{Store: st}
}

func setPath(setName string) string {
	return setsRoot + "/" + setName
}

func entryPath(setName, entryKey string) string {
	return setsRoot + "/" + setName + "/" + entryKey
}

// Entries returns every entry of the set in store iteration order. An empty
// slice means the set has no entries (or does not exist; sets only exist
// through their entries).
func (r *SetRepository) Entries(ctx context.Context, setName string) ([]model.SetEntry, error) {
	children, err := r.Store.Children(ctx, setPath(setName))
	if err != nil {
		return nil, err
	}

	entries := make([]model.SetEntry, 0, len(children))
	for key, raw := range children {
		entry, err := model.NormalizeEntry(key, raw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// EntriesByDisplayOrder sorts entries ascending by order. Entries without an
// explicit order rank at 0; ties keep an arbitrary but deterministic order
// by entry key, since the order field is advisory ranking only.
func (r *SetRepository) EntriesByDisplayOrder(ctx context.Context, setName string) ([]model.SetEntry, error) {
	entries, err := r.Entries(ctx, setName)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Order != entries[j].Order {
			return entries[i].Order < entries[j].Order
		}
		return entries[i].Key < entries[j].Key
	})
	return entries, nil
}

func (r *SetRepository) WriteEntry(ctx context.Context, setName, entryKey string, entry model.StoredEntry) error {
	return r.Store.Set(ctx, entryPath(setName, entryKey), entry)
}

func (r *SetRepository) RemoveEntry(ctx context.Context, setName, entryKey string) error {
	return r.Store.Remove(ctx, entryPath(setName, entryKey))
}

// ListSetNames returns the names of all sets together with their entry
// counts. Sets only exist through their entries, so the names are the
// branch segments under the root.
func (r *SetRepository) ListSetNames(ctx context.Context) (map[string]int, error) {
	names, err := r.Store.ChildSegments(ctx, setsRoot)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(names))
	for _, name := range names {
		entries, err := r.Store.Children(ctx, setPath(name))
		if err != nil {
			return nil, err
		}
		counts[name] = len(entries)
	}
	return counts, nil
}

func (r *SetRepository) Delete(ctx context.Context, setName string) error {
	return r.Store.Remove(ctx, setPath(setName))
}
