package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"strivehub/models"
)

// A submission passes when the evaluator scores it at or above this bar.
const challengePassScore = 50

// EvaluateChallengeSubmission reviews submitted code against the challenge
// prompt and returns a structured verdict. Uses Gemini when configured,
// otherwise a deterministic mock so the platform works without an API key.
func EvaluateChallengeSubmission(ctx context.Context, challenge models.Challenge, code string) (models.ChallengeEvaluation, error) {
	if geminiClient == nil {
		return mockChallengeEvaluation(code), nil
	}

	prompt := fmt.Sprintf(
		`Act as a senior code reviewer. Evaluate the candidate's solution to the coding challenge below.

Challenge: "%s"
Language: %s
Task:
%s

Candidate's solution:
%s

Score the solution from 0 to 100 considering correctness, completeness, and code quality.
The solution passes when the score is %d or higher.

Required Output Format (JSON):
{
  "passed": true or false,
  "score": X,
  "feedback": "short review explaining the verdict"
}

Provide ONLY the JSON output without additional text or markdown formatting.`,
		challenge.Title, challenge.Language, challenge.Prompt, code, challengePassScore,
	)

	response, err := generateDefaultModelText(ctx, prompt)
	if err != nil {
		return models.ChallengeEvaluation{}, fmt.Errorf("failed to evaluate submission: %w", err)
	}

	var evaluation models.ChallengeEvaluation
	if err := json.Unmarshal([]byte(response), &evaluation); err != nil {
		return models.ChallengeEvaluation{}, fmt.Errorf("invalid evaluation format: %w", err)
	}
	if evaluation.Score < 0 {
		evaluation.Score = 0
	}
	if evaluation.Score > 100 {
		evaluation.Score = 100
	}
	return evaluation, nil
}

// mockChallengeEvaluation grades by rough substance heuristics: empty or
// trivial submissions fail, anything with a plausible amount of code passes.
func mockChallengeEvaluation(code string) models.ChallengeEvaluation {
	trimmed := strings.TrimSpace(code)
	if len(trimmed) < 20 {
		return models.ChallengeEvaluation{
			Passed:   false,
			Score:    10,
			Feedback: "The submission is too short to solve the task. Try implementing the required logic.",
		}
	}

	score := 60
	if len(trimmed) > 200 {
		score = 75
	}
	return models.ChallengeEvaluation{
		Passed:   true,
		Score:    score,
		Feedback: "Mock review: the solution looks substantial enough to pass. Configure an AI API key for a real review.",
	}
}
