package services

import (
	"fmt"
	"strings"

	"prepview/interview-engine/internal/engine"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnswerScoringPrompt creates the prompt that scores one interview
// answer on a 0-100 scale.
func (pb *PromptBuilder) BuildAnswerScoringPrompt(role string, question engine.Question, response string) string {
	return fmt.Sprintf(`You are an experienced interviewer evaluating a candidate's answer in a mock interview for a %s position.

QUESTION (%s, %s difficulty):
%s

CANDIDATE'S ANSWER:
%s

Score the answer from 0 to 100, where 80+ means a strong answer, 60-79 an adequate answer, and below 60 a weak answer. Judge relevance, structure (e.g. STAR for behavioral questions), specificity and depth.

Return your response in the following JSON format:
{
  "score": <0-100 integer>,
  "feedback": "<2-3 sentences: what worked and what to improve>"
}

Be objective. Reference specifics from the answer to justify the score.`,
		role, question.Category, question.Difficulty, question.Prompt, response)
}

// BuildSessionSummaryPrompt creates the prompt that turns the scored
// answers into strengths and improvement statements for the report.
func (pb *PromptBuilder) BuildSessionSummaryPrompt(role string, scored []ScoredAnswer) string {
	var sb strings.Builder
	for i, s := range scored {
		fmt.Fprintf(&sb, "%d. [%s, score %d] Q: %s\n   Feedback: %s\n", i+1, s.Category, s.Score, s.Question, s.Feedback)
	}

	return fmt.Sprintf(`You are an experienced hiring coach summarizing a candidate's mock interview for a %s position.

SCORED ANSWERS:
%s

Based on the per-answer feedback above, produce an overall summary.

Return your response in the following JSON format:
{
  "strengths": ["<3-4 concise strength statements>"],
  "improvements": ["<2-3 concise, actionable improvement statements>"]
}

Each statement must be one sentence the candidate can act on. Do not repeat the per-answer feedback verbatim.`,
		role, sb.String())
}

// BuildRetrievalQuery creates the query text embedded for semantic
// question selection.
func (pb *PromptBuilder) BuildRetrievalQuery(role, resumeText string) string {
	if strings.TrimSpace(resumeText) == "" {
		return fmt.Sprintf("Interview questions for a %s position", role)
	}
	return fmt.Sprintf("Interview questions for a %s position, candidate background:\n%s", role, resumeText)
}

// ScoredAnswer is the condensed view of one scored result handed to the
// summary prompt.
type ScoredAnswer struct {
	Question string
	Category string
	Score    int
	Feedback string
}
