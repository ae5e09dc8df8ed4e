package repository

import (
	"context"
	"encoding/json"

	"practicetime_backend/pkg/store"
)

const ledgerRoot = "questionIDs"

// LedgerRepository is the questionIDs mapping from generated human-readable
// id to the opaque storage key of the owning question. Entries are write-once; they
// exist solely so the allocator can detect collisions and find the next free
// sequence number.
type LedgerRepository struct {
	Store store.Store
}

func NewLedgerRepository(st store.Store) *LedgerRepository {
	return &LedgerRepository{Store: st}
}

func ledgerPath(id string) string {
	return ledgerRoot + "/" + id
}

// Snapshot reads the whole ledger in one pass. The allocator probes this
// snapshot for free ids; it is an optimistic scan, not authoritative.
func (r *LedgerRepository) Snapshot(ctx context.Context) (map[string]string, error) {
	children, err := r.Store.Children(ctx, ledgerRoot)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]string, len(children))
	for id, raw := range children {
		var owner string
		if err := json.Unmarshal(raw, &owner); err != nil {
			return nil, err
		}
		ids[id] = owner
	}
	return ids, nil
}

// Reserve claims id for ownerKey with a compare-and-set transaction. It
// commits only when the ledger entry is currently absent; a false return
// means another caller took the id first.
func (r *LedgerRepository) Reserve(ctx context.Context, id, ownerKey string) (bool, error) {
	return r.Store.Transaction(ctx, ledgerPath(id), func(current json.RawMessage) (interface{}, bool) {
		if current != nil {
			return nil, false
		}
		return ownerKey, true
	})
}
