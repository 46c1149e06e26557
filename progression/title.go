package progression

// titleThreshold maps a minimum XP total to a rank label. Checked from highest
// to lowest, first match wins.
type titleThreshold struct {
	MinXP int
	Label string
}

var titleThresholds = []titleThreshold{
	{10000, "Expert"},
	{5000, "Advanced"},
	{2000, "Intermediate"},
	{500, "Skill Explorer"},
	{100, "Beginner+"},
	{0, "Beginner"},
}

// TitleForXP maps a cumulative XP total to its rank label. Total function over
// all non-negative integers; negative inputs fall through to the base rank.
func TitleForXP(xpTotal int) string {
	for _, t := range titleThresholds {
		if xpTotal >= t.MinXP {
			return t.Label
		}
	}
	return titleThresholds[len(titleThresholds)-1].Label
}
