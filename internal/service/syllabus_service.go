package service

import (
	"context"
	"sort"
	"strings"

	"practicetime_backend/internal/model"
	"practicetime_backend/internal/repository"
	"practicetime_backend/internal/util"
	"practicetime_backend/pkg/logger"

	"go.uber.org/zap"
)

// SyllabusService manages the grade/topic/subtopic taxonomy. The topic and
// subtopic codes recorded here are what question authors pick from, and what
// the id allocator turns into question ids; the service itself does not
// enforce that questions reference existing rows.
type SyllabusService struct {
	Syllabus *repository.SyllabusRepository
}

func NewSyllabusService(syllabus *repository.SyllabusRepository) *SyllabusService {
	return &SyllabusService{Syllabus: syllabus}
}

// SyllabusInput carries the fields of a taxonomy row.
type SyllabusInput struct {
	Grade        string `json:"grade"`
	Topic        string `json:"topic"`
	TopicCode    string `json:"topicCode"`
	Subtopic     string `json:"subtopic"`
	SubtopicCode string `json:"subtopicCode"`
}

func (in SyllabusInput) validate() error {
	var problems []string
	if in.Grade == "" {
		problems = append(problems, "grade is required")
	}
	if in.Topic == "" || in.TopicCode == "" {
		problems = append(problems, "topic and topic code are required")
	}
	if in.Subtopic != "" && in.SubtopicCode == "" {
		problems = append(problems, "subtopic code is required when a subtopic is given")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func (s *SyllabusService) Create(ctx context.Context, in SyllabusInput) (*model.SyllabusEntry, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	entry := &model.SyllabusEntry{
		Grade:        in.Grade,
		Topic:        in.Topic,
		TopicCode:    in.TopicCode,
		Subtopic:     in.Subtopic,
		SubtopicCode: in.SubtopicCode,
	}
	if _, err := s.Syllabus.Create(ctx, entry); err != nil {
		return nil, err
	}

	logger.Log.Info("syllabus entry created",
		zap.String("grade", entry.Grade),
		zap.String("topicCode", entry.TopicCode),
	)
	return entry, nil
}

// Update replaces an existing row wholesale; partial updates are not a thing
// the taxonomy editor does.
func (s *SyllabusService) Update(ctx context.Context, id string, in SyllabusInput) (*model.SyllabusEntry, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	_, found, err := s.Syllabus.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, util.ErrSyllabusNotFound
	}

	entry := &model.SyllabusEntry{
		ID:           id,
		Grade:        in.Grade,
		Topic:        in.Topic,
		TopicCode:    in.TopicCode,
		Subtopic:     in.Subtopic,
		SubtopicCode: in.SubtopicCode,
	}
	if err := s.Syllabus.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *SyllabusService) Delete(ctx context.Context, id string) error {
	_, found, err := s.Syllabus.Get(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return util.ErrSyllabusNotFound
	}
	return s.Syllabus.Delete(ctx, id)
}

// List returns all rows sorted by grade, topic, subtopic.
func (s *SyllabusService) List(ctx context.Context) ([]model.SyllabusEntry, error) {
	entries, err := s.Syllabus.All(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Grade != b.Grade {
			return a.Grade < b.Grade
		}
		if a.Topic != b.Topic {
			return a.Topic < b.Topic
		}
		return a.Subtopic < b.Subtopic
	})
	return entries, nil
}

// Search filters by exact grade plus case-insensitive topic, optionally
// narrowed by a case-insensitive subtopic. Topic is mandatory.
func (s *SyllabusService) Search(ctx context.Context, grade, topic, subtopic string) ([]model.SyllabusEntry, error) {
	if topic == "" {
		return nil, &ValidationError{Problems: []string{"topic is required to search"}}
	}

	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]model.SyllabusEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Grade != grade {
			continue
		}
		if !strings.EqualFold(entry.Topic, topic) {
			continue
		}
		if subtopic != "" && !strings.EqualFold(entry.Subtopic, subtopic) {
			continue
		}
		matches = append(matches, entry)
	}
	return matches, nil
}
