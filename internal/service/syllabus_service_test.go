package service

import (
	"context"
	"testing"

	"practicetime_backend/internal/repository"
	"practicetime_backend/internal/util"
	"practicetime_backend/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSyllabusFixture(t *testing.T) (context.Context, *SyllabusService) {
	t.Helper()
	repo := repository.NewSyllabusRepository(store.NewMemoryStore())
	return context.Background(), NewSyllabusService(repo)
}

func syllabusRow(grade, topic, topicCode string) SyllabusInput {
	return SyllabusInput{Grade: grade, Topic: topic, TopicCode: topicCode}
}

func TestSyllabusCreate(t *testing.T) {
	t.Run("full row", func(t *testing.T) {
		ctx, svc := newSyllabusFixture(t)
		in := syllabusRow("G1", "Number System", "G1N")
		in.Subtopic = "Addition"
		in.SubtopicCode = "G1N.1"

		entry, err := svc.Create(ctx, in)
		require.NoError(t, err)
		assert.NotEmpty(t, entry.ID)
		assert.Equal(t, "G1N.1", entry.SubtopicCode)
	})

	t.Run("topic and code are mandatory", func(t *testing.T) {
		ctx, svc := newSyllabusFixture(t)
		_, err := svc.Create(ctx, SyllabusInput{Grade: "G1", Topic: "Number System"})
		assert.True(t, IsValidationError(err))
	})

	t.Run("subtopic without its code", func(t *testing.T) {
		ctx, svc := newSyllabusFixture(t)
		in := syllabusRow("G1", "Number System", "G1N")
		in.Subtopic = "Addition"

		_, err := svc.Create(ctx, in)
		assert.True(t, IsValidationError(err))
	})

	t.Run("bare topic row without subtopic is valid", func(t *testing.T) {
		ctx, svc := newSyllabusFixture(t)
		_, err := svc.Create(ctx, syllabusRow("G1", "Number System", "G1N"))
		assert.NoError(t, err)
	})
}

func TestSyllabusUpdate(t *testing.T) {
	ctx, svc := newSyllabusFixture(t)
	entry, err := svc.Create(ctx, syllabusRow("G1", "Number System", "G1N"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, entry.ID, syllabusRow("G1", "Number Sense", "G1N"))
	require.NoError(t, err)
	assert.Equal(t, "Number Sense", updated.Topic)

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Number Sense", entries[0].Topic)

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Update(ctx, "missing", syllabusRow("G1", "X", "G1X"))
		assert.ErrorIs(t, err, util.ErrSyllabusNotFound)
	})
}

func TestSyllabusDelete(t *testing.T) {
	ctx, svc := newSyllabusFixture(t)
	entry, err := svc.Create(ctx, syllabusRow("G1", "Number System", "G1N"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, entry.ID))

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	err = svc.Delete(ctx, entry.ID)
	assert.ErrorIs(t, err, util.ErrSyllabusNotFound)
}

func TestSyllabusList(t *testing.T) {
	ctx, svc := newSyllabusFixture(t)
	_, err := svc.Create(ctx, syllabusRow("G2", "Algebra", "G2A"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, syllabusRow("G1", "Shapes", "G1S"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, syllabusRow("G1", "Number System", "G1N"))
	require.NoError(t, err)

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Number System", entries[0].Topic)
	assert.Equal(t, "Shapes", entries[1].Topic)
	assert.Equal(t, "G2", entries[2].Grade)
}

func TestSyllabusSearch(t *testing.T) {
	ctx, svc := newSyllabusFixture(t)

	addition := syllabusRow("G1", "Number System", "G1N")
	addition.Subtopic = "Addition"
	addition.SubtopicCode = "G1N.1"
	_, err := svc.Create(ctx, addition)
	require.NoError(t, err)

	subtraction := syllabusRow("G1", "Number System", "G1N")
	subtraction.Subtopic = "Subtraction"
	subtraction.SubtopicCode = "G1N.2"
	_, err = svc.Create(ctx, subtraction)
	require.NoError(t, err)

	_, err = svc.Create(ctx, syllabusRow("G2", "Number System", "G2N"))
	require.NoError(t, err)

	t.Run("topic match is case insensitive", func(t *testing.T) {
		matches, err := svc.Search(ctx, "G1", "number system", "")
		require.NoError(t, err)
		assert.Len(t, matches, 2)
	})

	t.Run("grade match is exact", func(t *testing.T) {
		matches, err := svc.Search(ctx, "G2", "Number System", "")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "G2N", matches[0].TopicCode)
	})

	t.Run("subtopic narrows the match", func(t *testing.T) {
		matches, err := svc.Search(ctx, "G1", "Number System", "addition")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "G1N.1", matches[0].SubtopicCode)
	})

	t.Run("topic is required", func(t *testing.T) {
		_, err := svc.Search(ctx, "G1", "", "")
		assert.True(t, IsValidationError(err))
	})
}
