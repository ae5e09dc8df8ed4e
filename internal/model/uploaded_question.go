package model

// UploadedQuestion is the relational row behind the auxiliary
// /upload-question endpoint. Options are kept as a JSON string, matching the
// flat table the endpoint has always written to.
type UploadedQuestion struct {
	BaseModel
	QuestionType    string `gorm:"size:50;not null" json:"questionType"`
	Question        string `gorm:"type:text;not null" json:"question"`
	Grade           string `gorm:"size:20" json:"grade"`
	Topic           string `gorm:"size:100" json:"topic"`
	DifficultyLevel string `gorm:"size:10" json:"difficultyLevel"`
	McqAnswer       string `gorm:"type:text" json:"mcqAnswer"`
	Options         string `gorm:"type:json" json:"options"`
}

func (UploadedQuestion) TableName() string {
	return "questions"
}
