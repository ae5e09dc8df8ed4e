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

func TestQuestionStats(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewQuestionRepository(store.NewMemoryStore())

	seed := []model.Question{
		{Question: "a", Type: model.MCQ, Grade: "G1", Topic: "G1A", TopicList: "1.2", DifficultyLevel: model.DifficultyL1},
		{Question: "b", Type: model.MCQ, Grade: "G1", Topic: "G1A", TopicList: "1.2", DifficultyLevel: model.DifficultyL2},
		{Question: "c", Type: model.FillInTheBlanks, Grade: "G2", Topic: "G2B", TopicList: "3.1", DifficultyLevel: model.DifficultyL1},
		{Question: "d", Type: model.Trivia},
	}
	for i := range seed {
		_, err := repo.Create(ctx, &seed[i])
		require.NoError(t, err)
	}

	stats, err := NewStatsService(repo).QuestionStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, map[string]int{"G1": 2, "G2": 1}, stats.Grades)
	assert.Equal(t, map[string]int{"L1": 2, "L2": 1}, stats.Difficulties)
	assert.Equal(t, 1, stats.Types[string(model.Trivia)])

	require.Len(t, stats.Topics, 2)
	assert.Equal(t, TopicCount{Grade: "G1", Topic: "G1A", Subtopic: "1.2", Count: 2}, stats.Topics[0])
	assert.Equal(t, TopicCount{Grade: "G2", Topic: "G2B", Subtopic: "3.1", Count: 1}, stats.Topics[1])
}
