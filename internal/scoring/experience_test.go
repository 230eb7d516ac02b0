package scoring_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
	"github.com/fairyhunter13/ats-resume-scorer/internal/scoring"
)

// fixedNow pins open-ended periods for deterministic assertions.
func fixedNow() time.Time {
	return time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
}

func TestPeriods_MonthNameDates(t *testing.T) {
	t.Parallel()
	p := scoring.NewExperienceParser(fixedNow)

	periods := p.Periods("Software Engineer, Acme Corp, Aug 2015 - Jan 2018")
	require.Len(t, periods, 1)
	assert.Equal(t, time.Date(2015, time.August, 1, 0, 0, 0, 0, time.UTC), periods[0].Start)
	assert.Equal(t, time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC), periods[0].End)

	// Full month names and the "Sept" spelling resolve by prefix.
	periods = p.Periods("January 2020 to September 2021, then Sept 2021 to December 2021")
	require.Len(t, periods, 2)
	assert.Equal(t, time.September, periods[0].End.Month())
}

func TestPeriods_SlashDates(t *testing.T) {
	t.Parallel()
	p := scoring.NewExperienceParser(fixedNow)

	periods := p.Periods("Backend Developer 05/2015 - 03/2018")
	require.Len(t, periods, 1)
	assert.Equal(t, time.Date(2015, time.May, 1, 0, 0, 0, 0, time.UTC), periods[0].Start)
	assert.Equal(t, time.Date(2018, time.March, 1, 0, 0, 0, 0, time.UTC), periods[0].End)

	// Out-of-range months are skipped, not errors.
	assert.Empty(t, p.Periods("13/2015"))
	assert.Empty(t, p.Periods("00/2019"))
}

func TestPeriods_OpenEndedClosesAtNow(t *testing.T) {
	t.Parallel()
	p := scoring.NewExperienceParser(fixedNow)

	periods := p.Periods("Senior Engineer, Aug 2015 - Present")
	require.Len(t, periods, 1)
	assert.Equal(t, fixedNow(), periods[0].End)
	assert.InDelta(t, 10.0, scoring.TotalYears(periods), 0.05)
}

func TestPeriods_ReversedPairDiscarded(t *testing.T) {
	t.Parallel()
	p := scoring.NewExperienceParser(fixedNow)
	assert.Empty(t, p.Periods("Dec 2022 - Jan 2020"))
}

func TestPeriods_BareYearIsNotADate(t *testing.T) {
	t.Parallel()
	p := scoring.NewExperienceParser(fixedNow)
	assert.Empty(t, p.Periods("Graduated from FooCorp University in 2015"))
}

func TestTotalYears_SumsPeriods(t *testing.T) {
	t.Parallel()
	p := scoring.NewExperienceParser(fixedNow)

	total := p.TotalYears("Jan 2020 - Jan 2021 at Acme. Mar 2021 - Mar 2022 at Beta.")
	assert.InDelta(t, 2.0, total, 0.001)

	assert.Zero(t, p.TotalYears("no dates here"))
}

func TestDetectNumericExperience(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		in    string
		want  int
		found bool
	}{
		{"plus years", "5+ years required", 5, true},
		{"plain yrs", "minimum 3 yrs in backend", 3, true},
		{"yoe shorthand", "10 YOE preferred", 10, true},
		{"glued", "5years of Go", 5, true},
		{"no unit", "built 3 apps in 2019", 0, false},
		{"empty", "", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := scoring.DetectNumericExperience(scoring.Normalize(tc.in))
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractSkillExperience(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want map[string]int
	}{
		{
			"connectors and plus",
			"5 years of experience in python and 2+ yrs with docker",
			map[string]int{"python": 5, "docker": 2},
		},
		{
			"direct skill after unit",
			"4 years python, 3 years sql",
			map[string]int{"python": 4, "sql": 3},
		},
		{
			"generic words are not skills",
			"5+ years required for this role",
			map[string]int{},
		},
		{
			"dangling of",
			"2 years of php",
			map[string]int{},
		},
		{
			"last occurrence wins",
			"4 years python early on, now 6 years python",
			map[string]int{"python": 6},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, scoring.ExtractSkillExperience(scoring.Normalize(tc.in)))
		})
	}
}

func TestHasInternshipKeywords(t *testing.T) {
	t.Parallel()
	assert.True(t, scoring.HasInternshipKeywords("Internship at Acme"))
	assert.True(t, scoring.HasInternshipKeywords("worked as a trainee"))
	// Substring match: "internal" contains "intern".
	assert.True(t, scoring.HasInternshipKeywords("built internal tools"))
	assert.False(t, scoring.HasInternshipKeywords("senior engineer"))
}

func TestClassifyExperienceLevel(t *testing.T) {
	t.Parallel()
	p := scoring.NewExperienceParser(fixedNow)

	tests := []struct {
		name string
		in   string
		want domain.ExperienceLevel
	}{
		{"no dates no internship", "recent graduate", domain.LevelFresher},
		{"internship under a year", "Intern, Acme, Jan 2025 - Jun 2025", domain.LevelInternships},
		{"entry at two years", "Jan 2020 - Jan 2022", domain.LevelEntry},
		{"gap between entry and mid", "Jan 2020 - Jul 2022", domain.LevelUnknown},
		{"mid at three years", "Jan 2020 - Jan 2023", domain.LevelMid},
		{"senior at seven years", "Jan 2015 - Jan 2022", domain.LevelSenior},
		{"experienced at ten years", "Aug 2015 - Present", domain.LevelExperienced},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, p.ClassifyExperienceLevel(tc.in))
		})
	}
}
