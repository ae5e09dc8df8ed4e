package model

// SyllabusEntry is one row of the grade/topic/subtopic taxonomy stored under
// syllabus/{id}. The topic and subtopic codes are the classification inputs
// the question id allocator derives its ids from (e.g. topicCode "G1A",
// subtopicCode "G1A.2"). Subtopic and its code are optional; a bare topic row
// is valid.
type SyllabusEntry struct {
	ID           string `json:"-"`
	Grade        string `json:"grade"`
	Topic        string `json:"topic"`
	TopicCode    string `json:"topicCode"`
	Subtopic     string `json:"subtopic,omitempty"`
	SubtopicCode string `json:"subtopicCode,omitempty"`
}
