package util

import "errors"

var (
	// Validation
	ErrSetNameRequired = errors.New("set name is required")
	ErrEmailRequired   = errors.New("username or email is required")

	// Duplicate membership is non-fatal, surfaced as a warning
	ErrQuestionAlreadyInSet = errors.New("question is already in this set")

	// Not found
	ErrSetNotFound           = errors.New("question set not found")
	ErrQuestionNotFound      = errors.New("question not found in set")
	ErrUserNotFound          = errors.New("user not found")
	ErrAssignedSetNotFound   = errors.New("assigned set not found for user")
	ErrQuizResultNotFound    = errors.New("quiz result not found")
	ErrSyllabusNotFound      = errors.New("syllabus entry not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrClassificationMissing = errors.New("grade, topic and subtopic are required")

	// Allocation: the reserve transaction lost the race for a candidate id
	ErrAllocationRace = errors.New("question id already reserved")
)
