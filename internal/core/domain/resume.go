package domain

import "time"

// Resume is a stored plain-text resume. Text extraction from uploaded files
// happens outside this core; only extracted text arrives here.
type Resume struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Filename   string    `json:"filename"`
	Text       string    `json:"text"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Application records a candidate's scored answer submission for a job
type Application struct {
	ID          string                      `json:"id"`
	UserID      string                      `json:"user_id"`
	JobID       string                      `json:"job_id"`
	JobTitle    string                      `json:"job_title,omitempty"`
	Answers     map[string]AnswerValidation `json:"answers"`
	Score       float64                     `json:"score"`
	Status      ApplicationStatus           `json:"status"`
	SubmittedAt time.Time                   `json:"submitted_at"`
}

// ApplicationStatus is the pass/fail outcome of answer scoring
type ApplicationStatus string

const (
	ApplicationPassed ApplicationStatus = "passed"
	ApplicationFailed ApplicationStatus = "failed"
)

// AnswerValidation is the per-answer LLM judgment. Score defaults to 70 when
// the model output cannot be parsed.
type AnswerValidation struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Score       int    `json:"score"`
	Originality string `json:"originality,omitempty"`
	Feedback    string `json:"feedback,omitempty"`
}

// AnswerSubmission is a candidate's answers to a job's interview questions.
// Answers are keyed by 1-based question index ("1", "2", ...).
type AnswerSubmission struct {
	UserID    string            `json:"user_id"`
	JobID     string            `json:"job_id"`
	Questions []string          `json:"questions"`
	Answers   map[string]string `json:"answers"`
}
