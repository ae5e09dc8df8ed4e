package service

import (
	"context"
	"sort"

	"practicetime_backend/internal/model"
	"practicetime_backend/internal/repository"
	"practicetime_backend/internal/util"
)

// UserService serves the account views of the dashboard: listing users,
// inspecting assigned sets and quiz results, and detaching an assigned copy.
type UserService struct {
	Users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{Users: users}
}

// UserSummary is the listing row; credentials never leave the service.
type UserSummary struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	CreatedAt    string `json:"createdAt"`
	AssignedSets int    `json:"assignedSets"`
	QuizResults  int    `json:"quizResults"`
}

func (s *UserService) List(ctx context.Context) ([]UserSummary, error) {
	users, err := s.Users.All(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, UserSummary{
			ID:           user.ID,
			Email:        user.Email,
			Role:         string(user.Role),
			CreatedAt:    user.CreatedAt.Format(util.TimeFormat),
			AssignedSets: len(user.AssignedSets),
			QuizResults:  len(user.QuizResults),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Email < summaries[j].Email
	})
	return summaries, nil
}

// Get returns the full account document with the password hash stripped.
func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	user, found, err := s.Users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, util.ErrUserNotFound
	}
	user.PasswordHash = ""
	return user, nil
}

// GetQuizResult returns a single quiz run of the user.
func (s *UserService) GetQuizResult(ctx context.Context, userID, quizID string) (*model.QuizResult, error) {
	user, found, err := s.Users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, util.ErrUserNotFound
	}
	result, ok := user.QuizResults[quizID]
	if !ok {
		return nil, util.ErrQuizResultNotFound
	}
	return &result, nil
}

// DetachSet removes the user's frozen copy of a set. The set itself, if it
// still exists, is untouched.
func (s *UserService) DetachSet(ctx context.Context, userID, setName string) error {
	user, found, err := s.Users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !found {
		return util.ErrUserNotFound
	}
	if _, ok := user.AssignedSets[setName]; !ok {
		return util.ErrAssignedSetNotFound
	}
	delete(user.AssignedSets, setName)
	return s.Users.Save(ctx, user)
}
