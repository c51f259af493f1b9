package models

// FeedbackReport is the structured evaluation derived from a completed
// session's main-turn transcript. It is returned to the caller (and cached),
// never persisted as core state.
type FeedbackReport struct {
	OverallScore          float64  `json:"overall_score"`
	Strengths             []string `json:"strengths"`
	Weaknesses            []string `json:"weaknesses"`
	CommunicationFeedback string   `json:"communication_feedback"`
	TechnicalFeedback     string   `json:"technical_feedback"`
	Suggestions           []string `json:"suggestions"`
}
