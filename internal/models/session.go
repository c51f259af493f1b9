package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Interview types form a closed set. Anything unrecognized falls back to
// aptitude-style framing at prompt-build time, so unknown values are stored
// as given (lowercased) rather than rejected.
const (
	InterviewTypeTechnical = "technical"
	InterviewTypeHR        = "hr"
	InterviewTypeAptitude  = "aptitude"
)

// NormalizeInterviewType lowercases the tag; matching is case-insensitive
// everywhere downstream.
func NormalizeInterviewType(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

type InterviewSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID string             `bson:"session_id" json:"session_id"` // uuid v4
	UserID    string             `bson:"user_id" json:"user_id"`
	ResumeID  string             `bson:"resume_id" json:"resume_id"`

	InterviewType string `bson:"interview_type" json:"interview_type"` // technical|hr|aptitude
	Status        string `bson:"status" json:"status"`                 // active|completed

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
