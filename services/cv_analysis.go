package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"strivehub/models"
)

// AnalyzeCV runs the AI review of an uploaded CV text and returns a structured
// analysis. Falls back to a deterministic mock when no API key is configured.
func AnalyzeCV(ctx context.Context, text string) (models.CVAnalysis, error) {
	if geminiClient == nil {
		return mockCVAnalysis(text), nil
	}

	prompt := fmt.Sprintf(
		`Act as a professional career coach reviewing a CV. Analyze the CV text below and provide structured feedback.

CV text:
%s

Required Output Format (JSON):
{
  "overallScore": X,
  "strengths": ["..."],
  "improvements": ["..."],
  "feedback": "a short paragraph summarizing the review"
}

overallScore is an integer from 0 to 100. Provide ONLY the JSON output without additional text or markdown formatting.`,
		text,
	)

	response, err := generateDefaultModelText(ctx, prompt)
	if err != nil {
		return models.CVAnalysis{}, fmt.Errorf("failed to analyze cv: %w", err)
	}

	var analysis models.CVAnalysis
	if err := json.Unmarshal([]byte(response), &analysis); err != nil {
		return models.CVAnalysis{}, fmt.Errorf("invalid analysis format: %w", err)
	}
	if analysis.OverallScore < 0 {
		analysis.OverallScore = 0
	}
	if analysis.OverallScore > 100 {
		analysis.OverallScore = 100
	}
	return analysis, nil
}

func mockCVAnalysis(text string) models.CVAnalysis {
	words := len(strings.Fields(text))
	score := 50
	if words > 150 {
		score = 65
	}
	if words > 400 {
		score = 75
	}
	return models.CVAnalysis{
		OverallScore: score,
		Strengths:    []string{"Clear structure", "Relevant experience listed"},
		Improvements: []string{"Quantify achievements with numbers", "Tailor the summary to the target role"},
		Feedback:     "Mock review: configure an AI API key for detailed, personalized feedback.",
	}
}

// CVReviewXP computes the XP awarded for a completed review: a tenth of the
// overall score, with a floor of 10.
func CVReviewXP(overallScore int) int {
	xp := overallScore / 10
	if xp < 10 {
		xp = 10
	}
	return xp
}
