package service

import (
	"context"
	"sort"

	"practicetime_backend/internal/repository"
)

// StatsService aggregates question counts for the admin overview page.
type StatsService struct {
	Questions *repository.QuestionRepository
}

func NewStatsService(questions *repository.QuestionRepository) *StatsService {
	return &StatsService{Questions: questions}
}

// TopicCount is the per grade+topic+subtopic bucket.
type TopicCount struct {
	Grade    string `json:"grade"`
	Topic    string `json:"topic"`
	Subtopic string `json:"subtopic"`
	Count    int    `json:"count"`
}

type QuestionStats struct {
	Total        int            `json:"total"`
	Grades       map[string]int `json:"grades"`
	Difficulties map[string]int `json:"difficulties"`
	Types        map[string]int `json:"types"`
	Topics       []TopicCount   `json:"topics"`
}

func (s *StatsService) QuestionStats(ctx context.Context) (*QuestionStats, error) {
	questions, err := s.Questions.All(ctx)
	if err != nil {
		return nil, err
	}

	stats := &QuestionStats{
		Total:        len(questions),
		Grades:       make(map[string]int),
		Difficulties: make(map[string]int),
		Types:        make(map[string]int),
	}

	type topicKey struct{ grade, topic, subtopic string }
	topicCounts := make(map[topicKey]int)

	for _, q := range questions {
		if q.Grade != "" {
			stats.Grades[q.Grade]++
		}
		if q.DifficultyLevel != "" {
			stats.Difficulties[string(q.DifficultyLevel)]++
		}
		stats.Types[string(q.Type)]++
		if q.Grade != "" && q.Topic != "" {
			topicCounts[topicKey{q.Grade, q.Topic, q.TopicList}]++
		}
	}

	for key, count := range topicCounts {
		stats.Topics = append(stats.Topics, TopicCount{
			Grade:    key.grade,
			Topic:    key.topic,
			Subtopic: key.subtopic,
			Count:    count,
		})
	}
	sort.Slice(stats.Topics, func(i, j int) bool {
		a, b := stats.Topics[i], stats.Topics[j]
		if a.Grade != b.Grade {
			return a.Grade < b.Grade
		}
		if a.Topic != b.Topic {
			return a.Topic < b.Topic
		}
		return a.Subtopic < b.Subtopic
	})

	return stats, nil
}
