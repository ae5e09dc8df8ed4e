package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"practicetime_backend/internal/model"
	"practicetime_backend/internal/repository"
	"practicetime_backend/pkg/logger"

	"go.uber.org/zap"
)

var timeNow = time.Now

// QuestionService owns the content-management side: creating questions (with
// id allocation for classified types), listing with filters, deletion and
// bulk import.
type QuestionService struct {
	Questions *repository.QuestionRepository
	Allocator *AllocatorService
}

func NewQuestionService(questions *repository.QuestionRepository, allocator *AllocatorService) *QuestionService {
	return &QuestionService{Questions: questions, Allocator: allocator}
}

// CreateQuestionInput carries the fields of a new question. Options and the
// correct answer only apply to MCQ; grade/topic/subtopic/difficulty do not
// apply to trivia.
type CreateQuestionInput struct {
	Question        string
	QuestionImage   string
	Type            model.QuestionType
	Grade           string
	Topic           string
	TopicList       string
	DifficultyLevel model.DifficultyLevel
	Options         []model.AnswerPart
	CorrectAnswer   *model.AnswerPart
	Now             func() (int64, string)
}

// ValidationError collects the caller-input problems of a request so they
// can all be surfaced at once, the way the bulk importer always reported
// spreadsheet rows.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Create validates, allocates a question id for non-trivia types, and
// persists the document. The ledger reservation happens before the document
// write so a crash in between orphans a ledger entry rather than leaving an
// unregistered id in use.
func (s *QuestionService) Create(ctx context.Context, in CreateQuestionInput) (*model.Question, error) {
	var problems []string
	if in.Question == "" && in.QuestionImage == "" {
		problems = append(problems, "question text or image is required")
	}
	if in.Type != model.Trivia {
		if in.Grade == "" || in.Topic == "" || in.TopicList == "" || in.DifficultyLevel == "" {
			problems = append(problems, "grade, topic, subtopic and difficulty are required")
		}
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	key := model.GenerateKey()

	questionID := ""
	if in.Type != model.Trivia {
		id, err := s.Allocator.Allocate(ctx, in.Grade, in.Topic, in.TopicList, key)
		if err != nil {
			return nil, err
		}
		questionID = id
	}

	now := in.Now
	if now == nil {
		now = func() (int64, string) { return model.NewQuestionTimestamp(timeNow()) }
	}
	timestamp, date := now()

	q := &model.Question{
		Key:           key,
		Question:      in.Question,
		QuestionImage: in.QuestionImage,
		Type:          in.Type,
		Timestamp:     timestamp,
		Date:          date,
	}
	if in.Type != model.Trivia {
		q.QuestionID = questionID
		q.Grade = in.Grade
		q.Topic = in.Topic
		q.TopicList = in.TopicList
		q.DifficultyLevel = in.DifficultyLevel
		q.Options = in.Options
		q.CorrectAnswer = in.CorrectAnswer
	}

	if err := s.Questions.Put(ctx, key, q); err != nil {
		return nil, err
	}

	logger.Log.Info("question created",
		zap.String("key", key),
		zap.String("questionID", questionID),
		zap.String("type", string(q.Type)),
	)
	return q, nil
}

// QuestionFilter narrows List results. Empty or "all" matches everything,
// mirroring the dashboard filter semantics.
type QuestionFilter struct {
	Grade           string
	Topic           string
	TopicList       string
	DifficultyLevel string
	Type            string
}

func (f QuestionFilter) matches(q model.Question) bool {
	match := func(want, got string) bool {
		return want == "" || want == "all" || want == got
	}
	return match(f.Grade, q.Grade) &&
		match(f.Topic, q.Topic) &&
		match(f.TopicList, q.TopicList) &&
		match(f.DifficultyLevel, string(q.DifficultyLevel)) &&
		match(f.Type, string(q.Type))
}

// List returns the filtered page, newest first, plus the total number of
// matches.
func (s *QuestionService) List(ctx context.Context, filter QuestionFilter, page, limit int) ([]model.Question, int64, error) {
	all, err := s.Questions.All(ctx)
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Timestamp > all[j].Timestamp
	})

	filtered := make([]model.Question, 0, len(all))
	for _, q := range all {
		if filter.matches(q) {
			filtered = append(filtered, q)
		}
	}

	total := int64(len(filtered))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	start := (page - 1) * limit
	if start >= len(filtered) {
		return []model.Question{}, total, nil
	}
	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], total, nil
}

// Delete removes the question document. Sets keep weak references, so
// membership entries elsewhere simply dangle; the questionIDs ledger entry
// also stays, permanently retiring that id.
func (s *QuestionService) Delete(ctx context.Context, key string) error {
	return s.Questions.Delete(ctx, key)
}

// BulkImportRow is one row of a bulk upload, already parsed out of the
// spreadsheet client-side.
type BulkImportRow struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Grade         string   `json:"grade"`
	Topic         string   `json:"topic"`
	Difficulty    string   `json:"difficulty"`
	Type          string   `json:"type"`
}

// BulkImport validates every row before writing anything; all problems are
// reported at once with their spreadsheet line numbers (data starts at line
// 2, under the header). Only a fully clean batch is persisted.
func (s *QuestionService) BulkImport(ctx context.Context, rows []BulkImportRow) (int, error) {
	if len(rows) == 0 {
		return 0, &ValidationError{Problems: []string{"no rows to import"}}
	}

	var problems []string
	for i, row := range rows {
		line := i + 2
		if row.Question == "" {
			problems = append(problems, fmt.Sprintf("row %d: question is required", line))
		}
		if len(row.Options) < 2 {
			problems = append(problems, fmt.Sprintf("row %d: options must have at least 2 items", line))
		}
		if row.CorrectAnswer == "" {
			problems = append(problems, fmt.Sprintf("row %d: correct answer is required", line))
		} else if len(row.Options) >= 2 && !containsFold(row.Options, row.CorrectAnswer) {
			problems = append(problems, fmt.Sprintf("row %d: correct answer must be one of the options", line))
		}
	}
	if len(problems) > 0 {
		return 0, &ValidationError{Problems: problems}
	}

	imported := 0
	for _, row := range rows {
		qType := model.QuestionType(row.Type)
		if qType == "" {
			qType = model.MCQ
		}

		options := make([]model.AnswerPart, 0, len(row.Options))
		for _, opt := range row.Options {
			options = append(options, model.AnswerPart{Text: opt})
		}

		timestamp, date := model.NewQuestionTimestamp(timeNow())
		q := &model.Question{
			Question:        row.Question,
			Type:            qType,
			Grade:           row.Grade,
			Topic:           row.Topic,
			DifficultyLevel: model.DifficultyLevel(row.Difficulty),
			Options:         options,
			CorrectAnswer:   &model.AnswerPart{Text: row.CorrectAnswer},
			Timestamp:       timestamp,
			Date:            date,
		}
		if _, err := s.Questions.Create(ctx, q); err != nil {
			return imported, fmt.Errorf("import stopped after %d rows: %w", imported, err)
		}
		imported++
	}

	logger.Log.Info("bulk import complete", zap.Int("rows", imported))
	return imported, nil
}

// IsValidationError reports whether err is caller input rejection.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func containsFold(haystack []string, needle string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	for _, item := range haystack {
		if strings.ToLower(strings.TrimSpace(item)) == needle {
			return true
		}
	}
	return false
}
