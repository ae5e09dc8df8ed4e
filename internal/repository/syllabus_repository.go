package repository

import (
	"context"
	"encoding/json"

	"practicetime_backend/internal/model"
	"practicetime_backend/pkg/store"
)

const syllabusRoot = "syllabus"

// SyllabusRepository stores taxonomy rows under syllabus/{id}.
type SyllabusRepository struct {
	Store store.Store
}

func NewSyllabusRepository(st store.Store) *SyllabusRepository {
	return &SyllabusRepository{Store: st}
}

func syllabusPath(id string) string {
	return syllabusRoot + "/" + id
}

func (r *SyllabusRepository) Create(ctx context.Context, entry *model.SyllabusEntry) (string, error) {
	id := model.GenerateKey()
	if err := r.Store.Set(ctx, syllabusPath(id), entry); err != nil {
		return "", err
	}
	entry.ID = id
	return id, nil
}

func (r *SyllabusRepository) Get(ctx context.Context, id string) (*model.SyllabusEntry, bool, error) {
	var entry model.SyllabusEntry
	found, err := r.Store.Get(ctx, syllabusPath(id), &entry)
	if err != nil || !found {
		return nil, found, err
	}
	entry.ID = id
	return &entry, true, nil
}

func (r *SyllabusRepository) Save(ctx context.Context, entry *model.SyllabusEntry) error {
	return r.Store.Set(ctx, syllabusPath(entry.ID), entry)
}

// All returns every taxonomy row.
func (r *SyllabusRepository) All(ctx context.Context) ([]model.SyllabusEntry, error) {
	children, err := r.Store.Children(ctx, syllabusRoot)
	if err != nil {
		return nil, err
	}

	entries := make([]model.SyllabusEntry, 0, len(children))
	for id, raw := range children {
		var entry model.SyllabusEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, err
		}
		entry.ID = id
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *SyllabusRepository) Delete(ctx context.Context, id string) error {
	return r.Store.Remove(ctx, syllabusPath(id))
}
