package repository

import (
	"context"
	"encoding/json"

	"practicetime_backend/internal/model"
	"practicetime_backend/pkg/store"
)

const questionsRoot = "questions"

// QuestionRepository stores question documents under questions/{key}.
type QuestionRepository struct {
	Store store.Store
}

func NewQuestionRepository(st store.Store) *QuestionRepository {
	return &QuestionRepository{Store: st}
}

func questionPath(key string) string {
	return questionsRoot + "/" + key
}

// Create persists the question under a freshly generated opaque key and
// returns it.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) (string, error) {
	key := model.GenerateKey()
	if err := r.Store.Set(ctx, questionPath(key), q); err != nil {
		return "", err
	}
	q.Key = key
	return key, nil
}

// Put persists the question under a caller-chosen key. Used when the key
// must exist before the write, e.g. to reserve a ledger entry against it.
func (r *QuestionRepository) Put(ctx context.Context, key string, q *model.Question) error {
	if err := r.Store.Set(ctx, questionPath(key), q); err != nil {
		return err
	}
	q.Key = key
	return nil
}

func (r *QuestionRepository) Get(ctx context.Context, key string) (*model.Question, bool, error) {
	var q model.Question
	found, err := r.Store.Get(ctx, questionPath(key), &q)
	if err != nil || !found {
		return nil, found, err
	}
	q.Key = key
	return &q, true, nil
}

// All returns every question document keyed by storage key.
func (r *QuestionRepository) All(ctx context.Context) ([]model.Question, error) {
	children, err := r.Store.Children(ctx, questionsRoot)
	if err != nil {
		return nil, err
	}

	questions := make([]model.Question, 0, len(children))
	for key, raw := range children {
		var q model.Question
		if err := json.Unmarshal(raw, &q); err != nil {
			return nil, err
		}
		q.Key = key
		questions = append(questions, q)
	}
	return questions, nil
}

// Delete removes the question document. The questionIDs ledger entry is
// deliberately left in place; see the allocator notes.
func (r *QuestionRepository) Delete(ctx context.Context, key string) error {
	return r.Store.Remove(ctx, questionPath(key))
}
