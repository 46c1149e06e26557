package services

import (
	"math"
	"sort"
	"strings"

	"strivehub/models"
)

// RecommendJobs ranks jobs by overlap with the user's skills. Match score is
// the percent of required skills the user has; jobs missing a mandatory skill
// are flagged and sorted behind complete matches.
func RecommendJobs(userSkills []string, jobs []models.Job) []models.JobRecommendation {
	have := make(map[string]bool, len(userSkills))
	for _, s := range userSkills {
		have[normalizeSkill(s)] = true
	}

	recommendations := make([]models.JobRecommendation, 0, len(jobs))
	for _, job := range jobs {
		if len(job.Skills) == 0 {
			continue
		}

		matched := 0
		missing := []models.JobSkill{}
		mandatoryMissing := false
		for _, skill := range job.Skills {
			if have[normalizeSkill(skill.Name)] {
				matched++
				continue
			}
			missing = append(missing, skill)
			if skill.Mandatory {
				mandatoryMissing = true
			}
		}

		score := int(math.Round(float64(matched) / float64(len(job.Skills)) * 100))
		recommendations = append(recommendations, models.JobRecommendation{
			JobID:            job.ID,
			Title:            job.Title,
			CompanyName:      job.CompanyName,
			Location:         job.Location,
			MatchScore:       score,
			MandatoryMissing: mandatoryMissing,
			MissingSkills:    missing,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].MandatoryMissing != recommendations[j].MandatoryMissing {
			return !recommendations[i].MandatoryMissing
		}
		return recommendations[i].MatchScore > recommendations[j].MatchScore
	})
	return recommendations
}

func normalizeSkill(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
