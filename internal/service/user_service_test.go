package service

import (
	"context"
	"testing"
	"time"

	"practicetime_backend/internal/model"
	"practicetime_backend/internal/repository"
	"practicetime_backend/internal/util"
	"practicetime_backend/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) (context.Context, *repository.UserRepository, *UserService) {
	t.Helper()
	users := repository.NewUserRepository(store.NewMemoryStore())
	return context.Background(), users, NewUserService(users)
}

func seedUser(t *testing.T, ctx context.Context, users *repository.UserRepository, email string) *model.User {
	t.Helper()
	user := &model.User{
		Email:        email,
		PasswordHash: "hashed",
		Role:         model.RoleUser,
		CreatedAt:    time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
	}
	_, err := users.Create(ctx, user)
	require.NoError(t, err)
	return user
}

func TestUserList(t *testing.T) {
	ctx, users, svc := newUserFixture(t)
	seedUser(t, ctx, users, "zoe@gmail.com")
	alice := seedUser(t, ctx, users, "alice@gmail.com")
	alice.AssignedSets = map[string]model.AssignedSet{"Week1": {QuestionIDs: []string{"q1"}}}
	require.NoError(t, users.Save(ctx, alice))

	summaries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "alice@gmail.com", summaries[0].Email, "sorted by email")
	assert.Equal(t, 1, summaries[0].AssignedSets)
	assert.Equal(t, "zoe@gmail.com", summaries[1].Email)
}

func TestUserGet(t *testing.T) {
	ctx, users, svc := newUserFixture(t)
	seeded := seedUser(t, ctx, users, "alice@gmail.com")

	user, err := svc.Get(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@gmail.com", user.Email)
	assert.Empty(t, user.PasswordHash, "credentials never leave the service")

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestGetQuizResult(t *testing.T) {
	ctx, users, svc := newUserFixture(t)
	seeded := seedUser(t, ctx, users, "alice@gmail.com")
	seeded.QuizResults = map[string]model.QuizResult{
		"quiz-1": {Score: 8, Total: 10},
	}
	require.NoError(t, users.Save(ctx, seeded))

	result, err := svc.GetQuizResult(ctx, seeded.ID, "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, 8, result.Score)

	_, err = svc.GetQuizResult(ctx, seeded.ID, "quiz-2")
	assert.ErrorIs(t, err, util.ErrQuizResultNotFound)

	_, err = svc.GetQuizResult(ctx, "missing", "quiz-1")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestDetachSet(t *testing.T) {
	ctx, users, svc := newUserFixture(t)
	seeded := seedUser(t, ctx, users, "alice@gmail.com")
	seeded.AssignedSets = map[string]model.AssignedSet{
		"Week1": {QuestionIDs: []string{"q1"}},
		"Week2": {QuestionIDs: []string{"q2"}},
	}
	require.NoError(t, users.Save(ctx, seeded))

	require.NoError(t, svc.DetachSet(ctx, seeded.ID, "Week1"))

	user, _, err := users.Get(ctx, seeded.ID)
	require.NoError(t, err)
	assert.NotContains(t, user.AssignedSets, "Week1")
	assert.Contains(t, user.AssignedSets, "Week2")

	err = svc.DetachSet(ctx, seeded.ID, "Week1")
	assert.ErrorIs(t, err, util.ErrAssignedSetNotFound)
}
