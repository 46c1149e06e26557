package services

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"strivehub/models"
)

func TestRecommendJobsScoring(t *testing.T) {
	jobs := []models.Job{
		{
			ID:          primitive.NewObjectID(),
			Title:       "Backend Engineer",
			CompanyName: "Acme",
			Skills: []models.JobSkill{
				{Name: "Go", Mandatory: true},
				{Name: "MongoDB"},
				{Name: "Docker"},
				{Name: "Kubernetes"},
			},
		},
		{
			ID:          primitive.NewObjectID(),
			Title:       "Frontend Engineer",
			CompanyName: "Acme",
			Skills: []models.JobSkill{
				{Name: "React", Mandatory: true},
				{Name: "TypeScript"},
			},
		},
	}

	recs := RecommendJobs([]string{"go", "mongodb", "docker"}, jobs)
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}

	// Backend matches 3/4 and has its mandatory skill; it ranks first.
	if recs[0].Title != "Backend Engineer" {
		t.Errorf("expected Backend Engineer first, got %s", recs[0].Title)
	}
	if recs[0].MatchScore != 75 {
		t.Errorf("expected match score 75, got %d", recs[0].MatchScore)
	}
	if recs[0].MandatoryMissing {
		t.Error("backend role should not be flagged mandatory-missing")
	}
	if len(recs[0].MissingSkills) != 1 || recs[0].MissingSkills[0].Name != "Kubernetes" {
		t.Errorf("unexpected missing skills: %+v", recs[0].MissingSkills)
	}

	// Frontend misses its mandatory skill entirely.
	if !recs[1].MandatoryMissing {
		t.Error("frontend role should be flagged mandatory-missing")
	}
	if recs[1].MatchScore != 0 {
		t.Errorf("expected frontend score 0, got %d", recs[1].MatchScore)
	}
}

func TestRecommendJobsCaseInsensitive(t *testing.T) {
	jobs := []models.Job{
		{
			ID:     primitive.NewObjectID(),
			Title:  "Data Engineer",
			Skills: []models.JobSkill{{Name: "Python"}, {Name: "SQL"}},
		},
	}

	recs := RecommendJobs([]string{"PYTHON", "sql "}, jobs)
	if len(recs) != 1 || recs[0].MatchScore != 100 {
		t.Fatalf("expected full case-insensitive match, got %+v", recs)
	}
}

func TestRecommendJobsMandatoryMissingSortsLast(t *testing.T) {
	jobs := []models.Job{
		{
			ID:     primitive.NewObjectID(),
			Title:  "A",
			Skills: []models.JobSkill{{Name: "Go", Mandatory: true}, {Name: "Rust"}},
		},
		{
			ID:     primitive.NewObjectID(),
			Title:  "B",
			Skills: []models.JobSkill{{Name: "Rust", Mandatory: true}, {Name: "Go"}, {Name: "C"}},
		},
	}

	// User has Go only: job A scores 50 with mandatory met, job B scores 33
	// missing its mandatory skill.
	recs := RecommendJobs([]string{"Go"}, jobs)
	if recs[0].Title != "A" {
		t.Errorf("expected complete-mandatory job first, got %s", recs[0].Title)
	}
}

func TestMockChallengeEvaluation(t *testing.T) {
	eval := mockChallengeEvaluation("  ")
	if eval.Passed {
		t.Error("empty submission must fail")
	}

	eval = mockChallengeEvaluation("func solve(input []int) int {\n\ttotal := 0\n\tfor _, v := range input {\n\t\ttotal += v\n\t}\n\treturn total\n}")
	if !eval.Passed {
		t.Error("substantial submission should pass the mock evaluator")
	}
	if eval.Score < challengePassScore {
		t.Errorf("passing mock score %d below pass bar %d", eval.Score, challengePassScore)
	}
}

func TestCVReviewXPFloor(t *testing.T) {
	cases := []struct {
		score int
		want  int
	}{
		{95, 10}, // floor(9.5) = 9, raised to the floor of 10
		{100, 10},
		{0, 10},
	}
	for _, c := range cases {
		if got := CVReviewXP(c.score); got != c.want {
			t.Errorf("CVReviewXP(%d) = %d, want %d", c.score, got, c.want)
		}
	}
}
