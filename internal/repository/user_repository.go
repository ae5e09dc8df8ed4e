package repository

import (
	"context"
	"encoding/json"

	"practicetime_backend/internal/model"
	"practicetime_backend/pkg/store"
)

const usersRoot = "users"

// UserRepository stores account documents under users/{id}. A user document
// carries its assigned-set copies and quiz results inline.
type UserRepository struct {
	Store store.Store
}

func NewUserRepository(st store.Store) *UserRepository {
	return &UserRepository{Store: st}
}

func userPath(id string) string {
	return usersRoot + "/" + id
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) (string, error) {
	id := model.GenerateKey()
	if err := r.Store.Set(ctx, userPath(id), user); err != nil {
		return "", err
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) Get(ctx context.Context, id string) (*model.User, bool, error) {
	var user model.User
	found, err := r.Store.Get(ctx, userPath(id), &user)
	if err != nil || !found {
		return nil, found, err
	}
	user.ID = id
	return &user, true, nil
}

func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	return r.Store.Set(ctx, userPath(user.ID), user)
}

// All returns every account document.
func (r *UserRepository) All(ctx context.Context) ([]model.User, error) {
	children, err := r.Store.Children(ctx, usersRoot)
	if err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(children))
	for id, raw := range children {
		var user model.User
		if err := json.Unmarshal(raw, &user); err != nil {
			return nil, err
		}
		user.ID = id
		users = append(users, user)
	}
	return users, nil
}

// FindByEmail scans all accounts for a matching email. The store has no
// secondary index, so this is a full scan, same as the admin UI always did.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, bool, error) {
	users, err := r.All(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], true, nil
		}
	}
	return nil, false, nil
}
