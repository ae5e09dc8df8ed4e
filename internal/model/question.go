package model

import "time"

type QuestionType string

const (
	MCQ             QuestionType = "MCQ"
	FillInTheBlanks QuestionType = "FILL_IN_THE_BLANKS"
	Trivia          QuestionType = "TRIVIA"
)

type DifficultyLevel string

const (
	DifficultyL1 DifficultyLevel = "L1"
	DifficultyL2 DifficultyLevel = "L2"
	DifficultyL3 DifficultyLevel = "L3"
	DifficultyBr DifficultyLevel = "Br"
)

// AnswerPart is an option or a correct answer: text plus an optional image
// URL.
type AnswerPart struct {
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
}

// Question is the content document stored under questions/{key}. Key is the
// opaque storage key; QuestionID is the human-readable allocator-issued id
// (empty for trivia questions, which skip allocation).
type Question struct {
	Key             string          `json:"-"`
	QuestionID      string          `json:"questionID,omitempty"`
	Question        string          `json:"question"`
	QuestionImage   string          `json:"questionImage,omitempty"`
	Type            QuestionType    `json:"type"`
	Grade           string          `json:"grade,omitempty"`
	Topic           string          `json:"topic,omitempty"`
	TopicList       string          `json:"topicList,omitempty"`
	DifficultyLevel DifficultyLevel `json:"difficultyLevel,omitempty"`
	Options         []AnswerPart    `json:"options,omitempty"`
	CorrectAnswer   *AnswerPart     `json:"correctAnswer,omitempty"`
	Timestamp       int64           `json:"timestamp"`
	Date            string          `json:"date"`
}

// NewQuestionTimestamp pins creation metadata the way the content workflow
// records it: epoch millis plus a yyyy-mm-dd date string.
func NewQuestionTimestamp(now time.Time) (int64, string) {
	return now.UnixMilli(), now.UTC().Format("2006-01-02")
}
