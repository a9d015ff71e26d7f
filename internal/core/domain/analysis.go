package domain

import "time"

type ResultStatus string

const (
	ResultSuccess ResultStatus = "success"
	ResultError   ResultStatus = "error"
)

// Match is the deterministic outcome of comparing one resume text against a
// job description.
type Match struct {
	Score         float64  `json:"score"`
	KeyStrengths  []string `json:"key_strengths"`
	MissingSkills []string `json:"missing_skills"`
	Feedback      string   `json:"feedback"`
}

// AnalysisResult is one per-resume entry in an analysis batch. Exactly one of
// the success fields (MatchScore and friends) or Message is populated,
// depending on Status.
type AnalysisResult struct {
	Resume        string       `json:"resume"`
	Status        ResultStatus `json:"status"`
	MatchScore    *float64     `json:"match_score,omitempty"`
	KeyStrengths  []string     `json:"key_strengths,omitempty"`
	MissingSkills []string     `json:"missing_skills,omitempty"`
	Feedback      string       `json:"feedback,omitempty"`
	Message       string       `json:"message,omitempty"`
}

func SuccessResult(name string, match Match) AnalysisResult {
	score := match.Score
	return AnalysisResult{
		Resume:        name,
		Status:        ResultSuccess,
		MatchScore:    &score,
		KeyStrengths:  match.KeyStrengths,
		MissingSkills: match.MissingSkills,
		Feedback:      match.Feedback,
	}
}

func ErrorResult(name, message string) AnalysisResult {
	return AnalysisResult{
		Resume:  name,
		Status:  ResultError,
		Message: message,
	}
}

// Export is a rendered report ready to be served as a file download.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Report is a persisted analysis batch. Result ordering matches the order of
// the resumes in the originating request.
type Report struct {
	ID             string           `json:"report_id"`
	JobDescription string           `json:"job_description"`
	Requested      int              `json:"requested"`
	Analyzed       int              `json:"analyzed"`
	Results        []AnalysisResult `json:"results"`
	CreatedAt      time.Time        `json:"created_at"`
}
