package service

import (
	"context"
	"testing"

	"practicetime_backend/internal/model"
	"practicetime_backend/internal/repository"
	"practicetime_backend/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type questionFixture struct {
	ctx     context.Context
	store   store.Store
	repo    *repository.QuestionRepository
	service *QuestionService
}

func newQuestionFixture(t *testing.T) *questionFixture {
	t.Helper()
	st := store.NewMemoryStore()
	repo := repository.NewQuestionRepository(st)
	allocator := NewAllocatorService(repository.NewLedgerRepository(st))
	return &questionFixture{
		ctx:     context.Background(),
		store:   st,
		repo:    repo,
		service: NewQuestionService(repo, allocator),
	}
}

func mcqInput(text string) CreateQuestionInput {
	return CreateQuestionInput{
		Question:        text,
		Type:            model.MCQ,
		Grade:           "G1",
		Topic:           "G1A",
		TopicList:       "1.2",
		DifficultyLevel: model.DifficultyL1,
		Options:         []model.AnswerPart{{Text: "3"}, {Text: "4"}},
		CorrectAnswer:   &model.AnswerPart{Text: "4"},
	}
}

func TestCreateQuestion(t *testing.T) {
	t.Run("mcq gets an allocated id", func(t *testing.T) {
		f := newQuestionFixture(t)

		q, err := f.service.Create(f.ctx, mcqInput("2+2?"))
		require.NoError(t, err)
		assert.Equal(t, "G1A_2_1", q.QuestionID)
		assert.NotEmpty(t, q.Key)
		assert.NotZero(t, q.Timestamp)

		q2, err := f.service.Create(f.ctx, mcqInput("3+3?"))
		require.NoError(t, err)
		assert.Equal(t, "G1A_2_2", q2.QuestionID)
	})

	t.Run("trivia skips allocation and classification", func(t *testing.T) {
		f := newQuestionFixture(t)

		q, err := f.service.Create(f.ctx, CreateQuestionInput{
			Question: "Capital of France?",
			Type:     model.Trivia,
		})
		require.NoError(t, err)
		assert.Empty(t, q.QuestionID)
		assert.Empty(t, q.Grade)
		assert.Empty(t, q.Options)
	})

	t.Run("missing text and image", func(t *testing.T) {
		f := newQuestionFixture(t)
		_, err := f.service.Create(f.ctx, CreateQuestionInput{Type: model.Trivia})
		assert.True(t, IsValidationError(err))
	})

	t.Run("non trivia requires classification", func(t *testing.T) {
		f := newQuestionFixture(t)
		_, err := f.service.Create(f.ctx, CreateQuestionInput{
			Question: "2+2?",
			Type:     model.MCQ,
		})
		assert.True(t, IsValidationError(err))
	})

	t.Run("image only question is valid", func(t *testing.T) {
		f := newQuestionFixture(t)
		_, err := f.service.Create(f.ctx, CreateQuestionInput{
			QuestionImage: "/uploads/abc.png",
			Type:          model.Trivia,
		})
		assert.NoError(t, err)
	})
}

func TestListQuestions(t *testing.T) {
	f := newQuestionFixture(t)

	at := func(ts int64) func() (int64, string) {
		return func() (int64, string) { return ts, "2026-01-01" }
	}

	older := mcqInput("older")
	older.Now = at(1000)
	_, err := f.service.Create(f.ctx, older)
	require.NoError(t, err)

	newer := mcqInput("newer")
	newer.Now = at(2000)
	_, err = f.service.Create(f.ctx, newer)
	require.NoError(t, err)

	trivia := CreateQuestionInput{Question: "trivia", Type: model.Trivia, Now: at(1500)}
	_, err = f.service.Create(f.ctx, trivia)
	require.NoError(t, err)

	t.Run("newest first", func(t *testing.T) {
		list, total, err := f.service.List(f.ctx, QuestionFilter{}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, list, 3)
		assert.Equal(t, "newer", list[0].Question)
		assert.Equal(t, "trivia", list[1].Question)
		assert.Equal(t, "older", list[2].Question)
	})

	t.Run("type filter", func(t *testing.T) {
		list, total, err := f.service.List(f.ctx, QuestionFilter{Type: string(model.Trivia)}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Equal(t, "trivia", list[0].Question)
	})

	t.Run("all acts as a wildcard", func(t *testing.T) {
		_, total, err := f.service.List(f.ctx, QuestionFilter{Grade: "all"}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})

	t.Run("pagination", func(t *testing.T) {
		list, total, err := f.service.List(f.ctx, QuestionFilter{}, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, list, 1)
		assert.Equal(t, "older", list[0].Question)
	})

	t.Run("page beyond the end is empty", func(t *testing.T) {
		list, total, err := f.service.List(f.ctx, QuestionFilter{}, 9, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Empty(t, list)
	})
}

func TestDeleteQuestionKeepsLedgerEntry(t *testing.T) {
	f := newQuestionFixture(t)

	q, err := f.service.Create(f.ctx, mcqInput("2+2?"))
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(f.ctx, q.Key))

	_, found, err := f.repo.Get(f.ctx, q.Key)
	require.NoError(t, err)
	assert.False(t, found)

	// The id stays registered, permanently retired.
	var owner string
	found, err = f.store.Get(f.ctx, "questionIDs/"+q.QuestionID, &owner)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, q.Key, owner)
}

func TestBulkImport(t *testing.T) {
	validRow := func(text string) BulkImportRow {
		return BulkImportRow{
			Question:      text,
			Options:       []string{"3", "4"},
			CorrectAnswer: "4",
			Grade:         "G1",
			Topic:         "G1A",
			Difficulty:    "L1",
			Type:          "MCQ",
		}
	}

	t.Run("clean batch imports every row", func(t *testing.T) {
		f := newQuestionFixture(t)
		imported, err := f.service.BulkImport(f.ctx, []BulkImportRow{validRow("a"), validRow("b")})
		require.NoError(t, err)
		assert.Equal(t, 2, imported)

		all, err := f.repo.All(f.ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("empty batch", func(t *testing.T) {
		f := newQuestionFixture(t)
		_, err := f.service.BulkImport(f.ctx, nil)
		assert.True(t, IsValidationError(err))
	})

	t.Run("problems are reported with spreadsheet line numbers", func(t *testing.T) {
		f := newQuestionFixture(t)
		bad := validRow("b")
		bad.Options = []string{"only-one"}
		bad.CorrectAnswer = ""

		worse := validRow("c")
		worse.CorrectAnswer = "5"

		_, err := f.service.BulkImport(f.ctx, []BulkImportRow{validRow("a"), bad, worse})
		require.True(t, IsValidationError(err))
		assert.Contains(t, err.Error(), "row 3: options must have at least 2 items")
		assert.Contains(t, err.Error(), "row 3: correct answer is required")
		assert.Contains(t, err.Error(), "row 4: correct answer must be one of the options")

		all, err := f.repo.All(f.ctx)
		require.NoError(t, err)
		assert.Empty(t, all, "nothing written when any row is invalid")
	})

	t.Run("correct answer matching ignores case and whitespace", func(t *testing.T) {
		f := newQuestionFixture(t)
		row := BulkImportRow{
			Question:      "color?",
			Options:       []string{"Red", "Blue "},
			CorrectAnswer: " blue",
		}
		imported, err := f.service.BulkImport(f.ctx, []BulkImportRow{row})
		require.NoError(t, err)
		assert.Equal(t, 1, imported)
	})
}
