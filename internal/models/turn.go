package models

import "time"

// InterviewTurn is one question in a session: either a main question or the
// single follow-up elaborating one. Follow-ups link to their main turn via
// ParentTurnID; the unique index makes "at most one follow-up per main turn"
// a database invariant rather than a timestamp heuristic.
//
// A turn is mutated exactly once, when its answer is recorded. Turns within a
// session are totally ordered by CreatedAt.
type InterviewTurn struct {
	ID        string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SessionID string `gorm:"column:session_id;type:uuid;index" json:"session_id"`

	Question string  `gorm:"column:question;type:text" json:"question"`
	Answer   *string `gorm:"column:answer;type:text" json:"answer,omitempty"`

	IsFollowUp   bool    `gorm:"column:is_follow_up;default:false" json:"is_follow_up"`
	ParentTurnID *string `gorm:"column:parent_turn_id;type:uuid;uniqueIndex" json:"parent_turn_id,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;index" json:"created_at"`
}

func (InterviewTurn) TableName() string { return "interview_turns" }

// Answered reports whether this turn's single mutation has happened.
func (t *InterviewTurn) Answered() bool { return t.Answer != nil }
