package model

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// AssignedSet is the frozen copy written when a question set is attached to
// a user: the set's question ids in display order at attachment time. Later
// edits to the set do not propagate here.
type AssignedSet struct {
	QuestionIDs []string  `json:"questionIds"`
	AttachedAt  time.Time `json:"attachedAt"`
}

// QuizResponse is one answer inside a completed quiz run.
type QuizResponse struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
	Correct    bool   `json:"correct"`
}

// QuizResult records one quiz run taken by a user. Written by the quiz
// client, read-only here.
type QuizResult struct {
	CompletedAt time.Time      `json:"completedAt"`
	Score       int            `json:"score"`
	Total       int            `json:"total"`
	Responses   []QuizResponse `json:"responses,omitempty"`
}

// User is the account document stored under users/{id}. Accounts are created
// lazily when a set is first attached to an unknown email and are never
// deleted automatically.
type User struct {
	ID           string                 `json:"-"`
	Email        string                 `json:"email"`
	PasswordHash string                 `json:"passwordHash,omitempty"`
	Role         UserRole               `json:"role"`
	CreatedAt    time.Time              `json:"createdAt"`
	AssignedSets map[string]AssignedSet `json:"assignedSets,omitempty"`
	QuizResults  map[string]QuizResult  `json:"quizResults,omitempty"`
}
