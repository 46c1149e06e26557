package progression

import "testing"

func TestTitleForXP(t *testing.T) {
	cases := []struct {
		xp   int
		want string
	}{
		{0, "Beginner"},
		{99, "Beginner"},
		{100, "Beginner+"},
		{499, "Beginner+"},
		{500, "Skill Explorer"},
		{1999, "Skill Explorer"},
		{2000, "Intermediate"},
		{4999, "Intermediate"},
		{5000, "Advanced"},
		{9999, "Advanced"},
		{10000, "Expert"},
		{250000, "Expert"},
	}

	for _, c := range cases {
		got := TitleForXP(c.xp)
		if got != c.want {
			t.Errorf("TitleForXP(%d) = %q, want %q", c.xp, got, c.want)
		}
	}
}

func TestTitleForXPNegativeFallsBack(t *testing.T) {
	if got := TitleForXP(-5); got != "Beginner" {
		t.Errorf("TitleForXP(-5) = %q, want Beginner", got)
	}
}
