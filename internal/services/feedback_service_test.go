package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prepwise/prepwise-backend/internal/models"
	"github.com/prepwise/prepwise-backend/internal/utils"
)

const validFeedbackJSON = `{
  "overall_score": 7.5,
  "strengths": ["clear explanations", "solid Go knowledge"],
  "weaknesses": ["rushed system design answers"],
  "communication_feedback": "Communicates clearly under pressure.",
  "technical_feedback": "Strong on concurrency, weaker on storage.",
  "suggestions": ["practice system design"]
}`

func seedAnsweredMains(t *testing.T, turns *fakeTurns, n int) {
	t.Helper()
	base := time.Now().UTC()
	for i := 0; i < n; i++ {
		answer := fmt.Sprintf("answer %d", i+1)
		err := turns.Insert(context.Background(), &models.InterviewTurn{
			ID:        fmt.Sprintf("main-%d", i+1),
			SessionID: "sess-1",
			Question:  fmt.Sprintf("question %d", i+1),
			Answer:    &answer,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("seed turn %d: %v", i+1, err)
		}
	}
}

func newFeedbackFixture(gen *fakeLLM) (FeedbackService, *fakeTurns) {
	turns := &fakeTurns{}
	svc := NewFeedbackService(&fakeSessions{session: testSession()}, turns, gen, nil)
	return svc, turns
}

func TestFeedbackIncomplete(t *testing.T) {
	gen := &fakeLLM{fixed: validFeedbackJSON}
	svc, turns := newFeedbackFixture(gen)
	seedAnsweredMains(t, turns, 3)

	_, err := svc.Generate(context.Background(), "user-1", "sess-1")
	if !errors.Is(err, utils.ErrInterviewIncomplete) {
		t.Fatalf("expected ErrInterviewIncomplete, got %v", err)
	}
	if gen.calls != 0 {
		t.Error("incomplete interview must not reach the model")
	}
}

func TestFeedbackUnansweredMainBlocks(t *testing.T) {
	gen := &fakeLLM{fixed: validFeedbackJSON}
	svc, turns := newFeedbackFixture(gen)
	seedAnsweredMains(t, turns, 4)
	// fifth main exists but was never answered
	_ = turns.Insert(context.Background(), &models.InterviewTurn{
		ID: "main-5", SessionID: "sess-1", Question: "question 5",
		CreatedAt: time.Now().UTC().Add(time.Minute),
	})

	_, err := svc.Generate(context.Background(), "user-1", "sess-1")
	if !errors.Is(err, utils.ErrInterviewIncomplete) {
		t.Fatalf("expected ErrInterviewIncomplete, got %v", err)
	}
}

func TestFeedbackHappyPath(t *testing.T) {
	gen := &fakeLLM{fixed: validFeedbackJSON}
	svc, turns := newFeedbackFixture(gen)
	seedAnsweredMains(t, turns, 5)

	report, err := svc.Generate(context.Background(), "user-1", "sess-1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if report.OverallScore != 7.5 {
		t.Errorf("overall_score = %v, want 7.5", report.OverallScore)
	}
	if len(report.Strengths) != 2 || len(report.Weaknesses) != 1 || len(report.Suggestions) != 1 {
		t.Errorf("list fields decoded wrong: %+v", report)
	}
	if report.CommunicationFeedback == "" || report.TechnicalFeedback == "" {
		t.Errorf("text fields empty: %+v", report)
	}
}

func TestFeedbackExtractsJSONFromProse(t *testing.T) {
	gen := &fakeLLM{fixed: "Sure! Here is your evaluation:\n" + validFeedbackJSON + "\nGood luck!"}
	svc, turns := newFeedbackFixture(gen)
	seedAnsweredMains(t, turns, 5)

	report, err := svc.Generate(context.Background(), "user-1", "sess-1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if report.OverallScore != 7.5 {
		t.Errorf("overall_score = %v, want 7.5", report.OverallScore)
	}
}

func TestFeedbackMalformed(t *testing.T) {
	cases := []struct {
		name   string
		output string
	}{
		{"prose only", "The candidate did fine overall, no JSON for you."},
		{"missing required field", `{"overall_score": 5, "strengths": []}`},
		{"wrong type", `{"overall_score": "five", "strengths": [], "weaknesses": [], "communication_feedback": "", "technical_feedback": "", "suggestions": []}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &fakeLLM{fixed: tc.output}
			svc, turns := newFeedbackFixture(gen)
			seedAnsweredMains(t, turns, 5)

			_, err := svc.Generate(context.Background(), "user-1", "sess-1")
			if !errors.Is(err, utils.ErrMalformedFeedback) {
				t.Fatalf("expected ErrMalformedFeedback, got %v", err)
			}
		})
	}
}

func TestFeedbackGenerationFailed(t *testing.T) {
	gen := &fakeLLM{broken: true}
	svc, turns := newFeedbackFixture(gen)
	seedAnsweredMains(t, turns, 5)

	_, err := svc.Generate(context.Background(), "user-1", "sess-1")
	if !errors.Is(err, utils.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestParseFeedbackGreedyObjectExtraction(t *testing.T) {
	raw := "prefix {\"overall_score\": 3, \"strengths\": [], \"weaknesses\": [], \"communication_feedback\": \"c\", \"technical_feedback\": \"t\", \"suggestions\": []} suffix"
	report, err := parseFeedback(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if report.OverallScore != 3 {
		t.Errorf("overall_score = %v, want 3", report.OverallScore)
	}
}
