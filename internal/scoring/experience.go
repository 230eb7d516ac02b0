package scoring

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
)

// months resolves the first three letters of a month name, including the
// common "sept" spelling via its prefix.
var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// experienceUnits are the recognized year shorthands after a number.
var experienceUnits = map[string]struct{}{
	"year": {}, "years": {}, "yr": {}, "yrs": {}, "yoe": {},
}

// genericWords never count as the skill token in "N years ... <skill>"
// phrases; they are connectives or JD boilerplate, not skills.
var genericWords = map[string]struct{}{
	"role": {}, "job": {}, "position": {}, "for": {}, "this": {}, "the": {},
	"in": {}, "with": {}, "of": {}, "experience": {}, "required": {},
	"minimum": {},
}

var internshipTerms = [...]string{"internship", "intern", "interned", "trainee", "apprentice"}

// ExperienceParser extracts employment periods and year statements from raw
// resume/JD text. Now is injectable so open-ended periods ("Aug 2015 -
// Present") are testable against a fixed clock.
type ExperienceParser struct {
	Now func() time.Time
}

// NewExperienceParser returns a parser using the given clock, or the wall
// clock when nil.
func NewExperienceParser(now func() time.Time) *ExperienceParser {
	if now == nil {
		now = time.Now
	}
	return &ExperienceParser{Now: now}
}

// Periods scans for month-granularity dates in "Aug 2015" or "05/2015" form,
// in text order, and pairs consecutive dates into (start, end) periods. An
// unpaired trailing date is closed with the current date. Pairs with
// start > end are discarded. Unparseable dates are silently skipped.
func (p *ExperienceParser) Periods(text string) []domain.ExperiencePeriod {
	toks := tokenize(text)
	var dates []time.Time
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		// <Month-name> <4-digit year>: a 3-9 letter word, whitespace, year.
		if t.kind == tokWord && len(t.text) >= 3 && len(t.text) <= 9 &&
			wsGap(t.gap) && i+1 < len(toks) &&
			toks[i+1].kind == tokNumber && len(toks[i+1].text) == 4 {
			if m, ok := months[strings.ToLower(t.text)[:3]]; ok {
				year, _ := strconv.Atoi(toks[i+1].text)
				dates = append(dates, time.Date(year, m, 1, 0, 0, 0, 0, time.UTC))
			}
			// The year token is consumed either way, mirroring a greedy
			// left-to-right scan.
			i++
			continue
		}
		// <1-2 digit month>/<4-digit year>
		if t.kind == tokNumber && len(t.text) <= 2 && t.gap == "/" &&
			i+1 < len(toks) && toks[i+1].kind == tokNumber && len(toks[i+1].text) == 4 {
			m, _ := strconv.Atoi(t.text)
			year, _ := strconv.Atoi(toks[i+1].text)
			if m >= 1 && m <= 12 {
				dates = append(dates, time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC))
			}
			i++
		}
	}

	var periods []domain.ExperiencePeriod
	for i := 0; i < len(dates); i += 2 {
		start := dates[i]
		end := p.Now().UTC()
		if i+1 < len(dates) {
			end = dates[i+1]
		}
		if start.After(end) {
			continue
		}
		periods = append(periods, domain.ExperiencePeriod{Start: start, End: end})
	}
	return periods
}

// TotalYears sums all period spans in fractional years, rounded to one
// decimal. Overlapping periods are summed, not merged; the total is an
// approximation by design.
func TotalYears(periods []domain.ExperiencePeriod) float64 {
	var total float64
	for _, p := range periods {
		if y := p.Years(); y > 0 {
			total += y
		}
	}
	return math.Round(total*10) / 10
}

// TotalYears is a convenience over Periods for whole-text totals.
func (p *ExperienceParser) TotalYears(text string) float64 {
	return TotalYears(p.Periods(text))
}

// DetectNumericExperience finds the first explicit "N years" / "N+ yrs" /
// "N yoe" statement and returns its integer value.
func DetectNumericExperience(text string) (int, bool) {
	toks := tokenize(text)
	for i, t := range toks {
		if n, ok := splitNumUnit(t.text); ok {
			return n, true
		}
		if t.kind != tokNumber || i+1 >= len(toks) {
			continue
		}
		if !plusGap(t.gap) {
			continue
		}
		if _, ok := experienceUnits[strings.ToLower(toks[i+1].text)]; ok {
			n, err := strconv.Atoi(t.text)
			if err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// ExtractSkillExperience builds a skill -> required/claimed years map from
// phrases shaped like "<N>(+) years (of experience) (in|with|for) <skill>".
// Generic connective words are not skills; if a skill repeats, the last
// occurrence wins.
func ExtractSkillExperience(text string) map[string]int {
	toks := tokenize(text)
	out := make(map[string]int)
	for i := 0; i < len(toks); i++ {
		years, j, ok := matchYearsUnit(toks, i)
		if !ok {
			continue
		}
		// j indexes the unit token; everything after must be separated by
		// plain whitespace.
		k := j + 1
		if k >= len(toks) || !wsGap(toks[j].gap) {
			continue
		}
		// optional "of experience"
		if strings.EqualFold(toks[k].text, "of") &&
			k+1 < len(toks) && wsGap(toks[k].gap) &&
			strings.EqualFold(toks[k+1].text, "experience") {
			if k+2 >= len(toks) || !wsGap(toks[k+1].gap) {
				continue
			}
			k += 2
		}
		// optional connector
		switch strings.ToLower(toks[k].text) {
		case "in", "with", "for":
			if k+1 >= len(toks) || !wsGap(toks[k].gap) {
				continue
			}
			k++
		}
		skill := strings.ToLower(toks[k].text)
		if _, generic := genericWords[skill]; generic {
			i = k
			continue
		}
		out[skill] = years
		i = k
	}
	return out
}

// matchYearsUnit matches "<N>(+) <unit>" starting at toks[i], handling the
// glued "5years" form, and returns the year count and the unit token index.
func matchYearsUnit(toks []token, i int) (years, unitIdx int, ok bool) {
	if n, glued := splitNumUnit(toks[i].text); glued {
		return n, i, true
	}
	if toks[i].kind != tokNumber || i+1 >= len(toks) || !plusGap(toks[i].gap) {
		return 0, 0, false
	}
	if _, unit := experienceUnits[strings.ToLower(toks[i+1].text)]; !unit {
		return 0, 0, false
	}
	n, err := strconv.Atoi(toks[i].text)
	if err != nil {
		return 0, 0, false
	}
	return n, i + 1, true
}

// splitNumUnit recognizes a single token glued from digits and a unit, like
// "5years" or "10yoe".
func splitNumUnit(tok string) (int, bool) {
	tok = strings.ToLower(tok)
	d := 0
	for d < len(tok) && tok[d] >= '0' && tok[d] <= '9' {
		d++
	}
	if d == 0 || d == len(tok) {
		return 0, false
	}
	if _, ok := experienceUnits[tok[d:]]; !ok {
		return 0, false
	}
	n, err := strconv.Atoi(tok[:d])
	if err != nil {
		return 0, false
	}
	return n, true
}

// HasInternshipKeywords reports whether the text mentions internship or
// trainee terms anywhere (substring match, case-insensitive).
func HasInternshipKeywords(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range internshipTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// ClassifyExperienceLevel buckets a resume by its period-derived total
// years and internship flag. First matching rule wins; totals in the gaps
// (2,3) and (5,6) intentionally classify as Unknown rather than being
// silently reassigned.
func (p *ExperienceParser) ClassifyExperienceLevel(text string) domain.ExperienceLevel {
	total := p.TotalYears(text)
	internship := HasInternshipKeywords(text)
	switch {
	case internship && total < 1:
		return domain.LevelInternships
	case total < 1:
		return domain.LevelFresher
	case total >= 1 && total <= 2:
		return domain.LevelEntry
	case total >= 3 && total <= 5:
		return domain.LevelMid
	case total >= 6 && total < 10:
		return domain.LevelSenior
	case total >= 10:
		return domain.LevelExperienced
	default:
		return domain.LevelUnknown
	}
}
