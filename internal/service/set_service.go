package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"practicetime_backend/internal/config"
	"practicetime_backend/internal/model"
	"practicetime_backend/internal/repository"
	"practicetime_backend/internal/util"
	"practicetime_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SetService orchestrates the question-set workflows: appending questions
// with a fresh order, removing them with compaction, and attaching a set's
// materialised question list to a user account.
type SetService struct {
	Sets         *repository.SetRepository
	Questions    *repository.QuestionRepository
	Users        *repository.UserRepository
	Ordering     *OrderingService
	Provisioning config.ProvisioningConfig
}

func NewSetService(
	sets *repository.SetRepository,
	questions *repository.QuestionRepository,
	users *repository.UserRepository,
	ordering *OrderingService,
	provisioning config.ProvisioningConfig,
) *SetService {
	return &SetService{
		Sets:         sets,
		Questions:    questions,
		Users:        users,
		Ordering:     ordering,
		Provisioning: provisioning,
	}
}

// SetSummary is one row of the set listing.
type SetSummary struct {
	Name      string `json:"name"`
	Questions int    `json:"questions"`
}

// AddQuestionToSet appends the question and returns its assigned order.
// Duplicate membership (in either entry shape) yields ErrQuestionAlreadyInSet
// without a write; it is informational, not fatal.
func (s *SetService) AddQuestionToSet(ctx context.Context, setName, questionID string) (int, error) {
	setName = strings.TrimSpace(setName)
	if setName == "" {
		return 0, util.ErrSetNameRequired
	}

	entries, err := s.Sets.Entries(ctx, setName)
	if err != nil {
		return 0, err
	}
	for _, entry := range entries {
		if entry.ID == questionID {
			return 0, util.ErrQuestionAlreadyInSet
		}
	}

	order, err := s.Ordering.NextOrder(ctx, setName)
	if err != nil {
		return 0, err
	}

	entry := model.StoredEntry{
		ID:      questionID,
		Order:   order,
		AddedAt: time.Now().UnixMilli(),
	}
	if err := s.Sets.WriteEntry(ctx, setName, questionID, entry); err != nil {
		return 0, err
	}

	logger.Log.Info("question added to set",
		zap.String("set", setName),
		zap.String("question", questionID),
		zap.Int("order", order),
	)
	return order, nil
}

// RemoveQuestionFromSet locates the entry whose value names the question,
// removes it and compacts the remaining orders.
func (s *SetService) RemoveQuestionFromSet(ctx context.Context, setName, questionID string) error {
	setName = strings.TrimSpace(setName)
	if setName == "" {
		return util.ErrSetNameRequired
	}

	entries, err := s.Sets.Entries(ctx, setName)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return util.ErrSetNotFound
	}

	entryKey := ""
	for _, entry := range entries {
		if entry.ID == questionID {
			entryKey = entry.Key
			break
		}
	}
	if entryKey == "" {
		return util.ErrQuestionNotFound
	}

	return s.Ordering.RemoveAndCompact(ctx, setName, entryKey)
}

// DeleteSet removes the set wholesale. Copies already attached to users are
// frozen snapshots and stay untouched.
func (s *SetService) DeleteSet(ctx context.Context, setName string) error {
	setName = strings.TrimSpace(setName)
	if setName == "" {
		return util.ErrSetNameRequired
	}
	return s.Sets.Delete(ctx, setName)
}

// ListSets returns all sets with entry counts, newest names first.
func (s *SetService) ListSets(ctx context.Context) ([]SetSummary, error) {
	counts, err := s.Sets.ListSetNames(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]SetSummary, 0, len(counts))
	for name, count := range counts {
		summaries = append(summaries, SetSummary{Name: name, Questions: count})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name > summaries[j].Name
	})
	return summaries, nil
}

// GetSetQuestions resolves the set's entries to question documents in
// display order. Dangling references (the question was deleted after being
// added) are skipped: sets hold weak references only.
func (s *SetService) GetSetQuestions(ctx context.Context, setName string) ([]model.Question, error) {
	setName = strings.TrimSpace(setName)
	if setName == "" {
		return nil, util.ErrSetNameRequired
	}

	entries, err := s.Sets.EntriesByDisplayOrder(ctx, setName)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, util.ErrSetNotFound
	}

	questions := make([]model.Question, 0, len(entries))
	for _, entry := range entries {
		q, found, err := s.Questions.Get(ctx, entry.ID)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		questions = append(questions, *q)
	}
	return questions, nil
}

// NormalizeEmail resolves a bare username to an address on the default
// domain; anything already containing "@" passes through.
func (s *SetService) NormalizeEmail(usernameOrEmail string) string {
	if strings.Contains(usernameOrEmail, "@") {
		return usernameOrEmail
	}
	return usernameOrEmail + "@" + s.Provisioning.DefaultEmailDomain
}

// AttachSetToUser writes the set's current question-id list, in display
// order, under the user's assignedSets. The list is a value copy frozen at
// attachment time. Unknown emails get a lazily provisioned account with the
// configured default credential and role.
func (s *SetService) AttachSetToUser(ctx context.Context, setName, usernameOrEmail string) (*model.User, error) {
	setName = strings.TrimSpace(setName)
	if setName == "" {
		return nil, util.ErrSetNameRequired
	}
	usernameOrEmail = strings.TrimSpace(usernameOrEmail)
	if usernameOrEmail == "" {
		return nil, util.ErrEmailRequired
	}

	entries, err := s.Sets.EntriesByDisplayOrder(ctx, setName)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, util.ErrSetNotFound
	}
	questionIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		questionIDs = append(questionIDs, entry.ID)
	}

	email := s.NormalizeEmail(usernameOrEmail)
	user, found, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !found {
		user, err = s.provisionUser(ctx, email)
		if err != nil {
			return nil, err
		}
	}

	if user.AssignedSets == nil {
		user.AssignedSets = make(map[string]model.AssignedSet)
	}
	user.AssignedSets[setName] = model.AssignedSet{
		QuestionIDs: questionIDs,
		AttachedAt:  time.Now().UTC(),
	}
	if err := s.Users.Save(ctx, user); err != nil {
		return nil, err
	}

	logger.Log.Info("set attached to user",
		zap.String("set", setName),
		zap.String("email", email),
		zap.Int("questions", len(questionIDs)),
	)
	return user, nil
}

func (s *SetService) provisionUser(ctx context.Context, email string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(s.Provisioning.DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.UserRole(s.Provisioning.DefaultRole),
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Log.Info("provisioned new user for set attachment", zap.String("email", email))
	return user, nil
}
