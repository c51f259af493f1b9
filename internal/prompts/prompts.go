// Package prompts builds the instruction strings sent to the LLM provider.
// All builders are pure string templating: deterministic, no I/O.
package prompts

import (
	"fmt"
	"strings"

	"github.com/prepwise/prepwise-backend/internal/models"
)

// QA is one main-question/answer pair from a completed interview.
type QA struct {
	Question string
	Answer   string
}

type persona struct {
	role          string
	questionFocus string
	followUpFocus string
}

// Closed mapping keyed by interview type; anything unrecognized gets the
// aptitude framing.
var personas = map[string]persona{
	models.InterviewTypeTechnical: {
		role:          "a technical interviewer",
		questionFocus: "Ask about technical skills, programming languages, frameworks, system design, coding problems, or technical projects mentioned in the resume.",
		followUpFocus: "Ask a follow-up that digs deeper into technical details, implementation, trade-offs, or clarifications.",
	},
	models.InterviewTypeHR: {
		role:          "an HR interviewer",
		questionFocus: "Ask about soft skills, experience, work style, teamwork, challenges overcome, or career goals. Make it conversational and natural.",
		followUpFocus: "Ask a thoughtful follow-up that explores their answer deeper, like 'How did that make you feel?' or 'What did you learn from that?'",
	},
	models.InterviewTypeAptitude: {
		role:          "an aptitude test interviewer",
		questionFocus: "Ask a logical reasoning, problem-solving, or analytical question. You can reference the resume but keep the question general and focused on reasoning skills.",
		followUpFocus: "Ask a follow-up that extends the reasoning, like 'What if...?' or asks them to explain their approach.",
	},
}

func personaFor(interviewType string) persona {
	if p, ok := personas[models.NormalizeInterviewType(interviewType)]; ok {
		return p
	}
	return personas[models.InterviewTypeAptitude]
}

// MainQuestion builds the prompt for one main interview question from the
// retrieved resume chunks, ordered most relevant first.
func MainQuestion(interviewType string, chunks []string) string {
	p := personaFor(interviewType)

	var context strings.Builder
	for i, c := range chunks {
		if i > 0 {
			context.WriteString("\n\n")
		}
		context.WriteString("- ")
		context.WriteString(c)
	}

	return strings.TrimSpace(fmt.Sprintf(`You are %s.

Resume Context:
%s

%s

Rules:
- Ask only ONE natural interview question
- Do NOT mention 'Here is a question from resume'
- Do NOT give answers
- Be conversational and direct
- Ask naturally like you're speaking to the candidate
- Do NOT say 'Based on your resume' - just ask the question naturally`,
		p.role, context.String(), p.questionFocus))
}

// FollowUp builds the prompt for the single follow-up to a main question,
// anchored on the candidate's stated answer.
func FollowUp(interviewType, mainQuestion, candidateAnswer string) string {
	p := personaFor(interviewType)

	return strings.TrimSpace(fmt.Sprintf(`You are %s.

Main Question:
%s

Candidate Answer:
%s

%s

Rules:
- Ask only ONE follow-up question
- Make it natural and conversational
- Don't repeat the question
- Keep it concise
- Be a real interviewer`,
		p.role, mainQuestion, candidateAnswer, p.followUpFocus))
}

// Feedback builds the evaluation prompt over the main-turn transcript and
// instructs the model to answer with nothing but the feedback JSON object.
func Feedback(interviewType string, pairs []QA) string {
	var transcript strings.Builder
	for i, qa := range pairs {
		fmt.Fprintf(&transcript, "\nQuestion %d:\n%s\n\nAnswer:\n%s\n", i+1, qa.Question, qa.Answer)
	}

	return strings.TrimSpace(fmt.Sprintf(`You are an expert interview evaluator.

Interview type: %s

Below is a full interview transcript.
%s
Evaluate the candidate and return feedback STRICTLY in JSON with this format:

{
  "overall_score": number (0-10),
  "strengths": [list of strings],
  "weaknesses": [list of strings],
  "communication_feedback": string,
  "technical_feedback": string,
  "suggestions": [list of strings]
}

Rules:
- Be honest but constructive
- Do NOT include explanations outside JSON
- Do NOT add extra fields`,
		interviewType, transcript.String()))
}
