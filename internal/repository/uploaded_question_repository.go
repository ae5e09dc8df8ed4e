package repository

import (
	"practicetime_backend/internal/model"

	"gorm.io/gorm"
)

// UploadedQuestionRepository backs the auxiliary /upload-question endpoint
// with its flat relational table.
type UploadedQuestionRepository struct {
	DB *gorm.DB
}

func NewUploadedQuestionRepository(db *gorm.DB) *UploadedQuestionRepository {
	return &UploadedQuestionRepository{DB: db}
}

func (r *UploadedQuestionRepository) Create(q *model.UploadedQuestion) error {
	return r.DB.Create(q).Error
}
