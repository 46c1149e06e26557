package progression

// Source identifies what kind of action earned XP. The set is closed: awards
// with an unrecognized source are rejected before any write.
type Source string

const (
	SourceQuizComplete      Source = "quiz_complete"
	SourceChallengeComplete Source = "challenge_complete"
	SourceCVReview          Source = "cv_review"
	SourceStreakAchieved    Source = "streak_achieved"
	SourceCommunityPost     Source = "community_post"
	SourceSkillAdded        Source = "skill_added"
)

var validSources = map[Source]bool{
	SourceQuizComplete:      true,
	SourceChallengeComplete: true,
	SourceCVReview:          true,
	SourceStreakAchieved:    true,
	SourceCommunityPost:     true,
	SourceSkillAdded:        true,
}

// Valid reports whether s is a recognized XP source.
func (s Source) Valid() bool {
	return validSources[s]
}
