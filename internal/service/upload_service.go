package service

import (
	"encoding/json"

	"practicetime_backend/internal/model"
	"practicetime_backend/internal/repository"
)

// UploadService is the thin parallel backend behind /upload-question: it
// appends flat question records to the relational table and knows nothing
// about sets, ordering or id allocation.
type UploadService struct {
	Uploads *repository.UploadedQuestionRepository
}

func NewUploadService(uploads *repository.UploadedQuestionRepository) *UploadService {
	return &UploadService{Uploads: uploads}
}

type UploadQuestionInput struct {
	QuestionType    string   `json:"questionType"`
	Question        string   `json:"question"`
	Grade           string   `json:"grade"`
	Topic           string   `json:"topic"`
	DifficultyLevel string   `json:"difficultyLevel"`
	McqAnswer       string   `json:"mcqAnswer"`
	Options         []string `json:"options"`
}

func (s *UploadService) Upload(in UploadQuestionInput) error {
	options, err := json.Marshal(in.Options)
	if err != nil {
		return err
	}

	row := &model.UploadedQuestion{
		QuestionType:    in.QuestionType,
		Question:        in.Question,
		Grade:           in.Grade,
		Topic:           in.Topic,
		DifficultyLevel: in.DifficultyLevel,
		McqAnswer:       in.McqAnswer,
		Options:         string(options),
	}
	return s.Uploads.Create(row)
}
