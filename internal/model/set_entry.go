package model

import "encoding/json"

// SetEntry is one record of a question set. On disk an entry is either a
// bare string (legacy data: just the question id) or a full object
// {id, order, addedAt}; NormalizeEntry folds both shapes into this struct at
// the read boundary. HasOrder distinguishes "order 0" from "no order field".
type SetEntry struct {
	Key      string `json:"-"`
	ID       string `json:"id"`
	Order    int    `json:"order"`
	HasOrder bool   `json:"-"`
	Legacy   bool   `json:"-"`
	AddedAt  int64  `json:"addedAt,omitempty"`
}

// rawEntry mirrors the stored object shape. Order is a pointer so a missing
// field survives the round trip.
type rawEntry struct {
	ID      string `json:"id"`
	Order   *int   `json:"order,omitempty"`
	AddedAt int64  `json:"addedAt,omitempty"`
}

// NormalizeEntry decodes a stored set entry of either shape. Legacy string
// entries carry no order; their id doubles as the payload and the entry key
// stays whatever the store assigned.
func NormalizeEntry(key string, raw json.RawMessage) (SetEntry, error) {
	var legacy string
	if err := json.Unmarshal(raw, &legacy); err == nil {
		return SetEntry{Key: key, ID: legacy, Legacy: true}, nil
	}

	var full rawEntry
	if err := json.Unmarshal(raw, &full); err != nil {
		return SetEntry{}, err
	}
	entry := SetEntry{Key: key, ID: full.ID, AddedAt: full.AddedAt}
	if entry.ID == "" {
		entry.ID = key
	}
	if full.Order != nil {
		entry.Order = *full.Order
		entry.HasOrder = true
	}
	return entry, nil
}

// StoredEntry is the object written for new entries.
type StoredEntry struct {
	ID      string `json:"id"`
	Order   int    `json:"order"`
	AddedAt int64  `json:"addedAt"`
}
