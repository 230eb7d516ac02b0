package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/fairyhunter13/ats-resume-scorer/internal/catalog"
	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
)

// Options tune a single scoring call. Zero values are replaced by defaults,
// so Options{} behaves like DefaultOptions().
type Options struct {
	// SimWeight and KeyWeight blend semantic similarity with keyword
	// overlap; they should sum to 1 to keep scores in [0,100].
	SimWeight float64
	KeyWeight float64
	// TopMissing caps the reported missing-skills list.
	TopMissing int
	// Strictness multiplies similarity when keyword overlap is zero,
	// suppressing generic-boilerplate false positives. Nil selects the
	// default; an explicit zero erases similarity entirely.
	Strictness *float64
}

// DefaultOptions returns the standard scoring parameters.
func DefaultOptions() Options {
	s := 0.5
	return Options{SimWeight: 0.5, KeyWeight: 0.5, TopMissing: 15, Strictness: &s}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.SimWeight == 0 && o.KeyWeight == 0 {
		o.SimWeight, o.KeyWeight = d.SimWeight, d.KeyWeight
	}
	if o.TopMissing == 0 {
		o.TopMissing = d.TopMissing
	}
	if o.Strictness == nil {
		o.Strictness = d.Strictness
	}
	return o
}

// Engine scores resumes against job descriptions. It is stateless apart
// from the injected immutable catalog and similarity provider, so a single
// Engine is safe for concurrent use.
type Engine struct {
	Catalog *catalog.Catalog
	Sim     domain.SimilarityProvider
	Parser  *ExperienceParser
}

// NewEngine builds an Engine over the given catalog and similarity provider.
func NewEngine(c *catalog.Catalog, sim domain.SimilarityProvider) *Engine {
	return &Engine{Catalog: c, Sim: sim, Parser: NewExperienceParser(time.Now)}
}

// Score runs the full pipeline for one (resume, JD) pair:
//
//  1. normalize both texts,
//  2. extract skill sets,
//  3. compute semantic similarity (strictness-penalized when keyword
//     overlap is zero),
//  4. blend similarity and overlap,
//  5. detect experience gaps (flat 40% penalty when any exist),
//  6. render tips.
//
// Malformed or empty input never fails: it degrades to a low, well-formed
// result. A similarity provider error degrades to similarity 0 and is logged.
func (e *Engine) Score(ctx context.Context, resumeText, jdText string, opts Options) domain.ScoreResult {
	opts = opts.withDefaults()

	resumeClean := Normalize(resumeText)
	jdClean := Normalize(jdText)

	jdSkills := ExtractSkills(e.Catalog, jdClean)
	resumeSkills := ExtractSkills(e.Catalog, resumeClean)

	sim := 0.0
	if e.Sim != nil {
		v, err := e.Sim.Similarity(ctx, resumeClean, jdClean)
		if err != nil {
			slog.Warn("similarity provider failed, scoring on keywords only", slog.Any("error", err))
		} else {
			sim = clamp01(v)
		}
	}

	overlap := 0.0
	matchedSet := intersect(resumeSkills, jdSkills)
	if len(jdSkills) > 0 {
		overlap = float64(len(matchedSet)) / float64(len(jdSkills))
	}
	strict := overlap == 0
	if strict {
		sim *= clamp01(*opts.Strictness)
	}

	raw := opts.SimWeight*sim + opts.KeyWeight*overlap

	missing := sortedSkills(subtract(jdSkills, resumeSkills))
	if len(missing) > opts.TopMissing {
		missing = missing[:opts.TopMissing]
	}
	matched := sortedSkills(matchedSet)

	// Experience parsing runs over the raw texts: normalization rewrites
	// "YOE" into prose and would distort the year statements being matched.
	gaps, overqualified := e.experienceGap(resumeText, jdText)
	if len(gaps) > 0 {
		raw *= 0.6
	}

	score := int(math.Round(raw * 100))

	return domain.ScoreResult{
		Score:             score,
		Similarity:        round2(sim),
		KeywordOverlap:    round2(overlap),
		StrictnessApplied: strict,
		MatchedSkills:     matched,
		MissingSkills:     missing,
		JDSkills:          sortedSkills(jdSkills),
		ExperienceGap:     gaps,
		Overqualified:     overqualified,
		Tips:              Recommend(missing, sim, overlap, score, defaultMaxTipSkills),
	}
}

// experienceGap compares JD year requirements against the resume. Per-skill
// requirements are canonical; when the JD states none, the whole-document
// numeric requirement is compared against the resume's total computed years.
func (e *Engine) experienceGap(resumeText, jdText string) (gaps, overqualified []string) {
	jdExp := ExtractSkillExperience(jdText)
	resumeExp := ExtractSkillExperience(resumeText)

	if len(jdExp) > 0 {
		skills := make([]string, 0, len(jdExp))
		for s := range jdExp {
			skills = append(skills, s)
		}
		sort.Strings(skills)
		for _, skill := range skills {
			required := jdExp[skill]
			candidate := resumeExp[skill]
			if candidate < required {
				gaps = append(gaps, fmt.Sprintf("JD requires %d+ years in %s, but resume shows %d.", required, skill, candidate))
			} else if candidate > required+5 {
				overqualified = append(overqualified, fmt.Sprintf("Resume shows %d years in %s: overqualified for JD requiring %d+.", candidate, skill, required))
			}
		}
		return gaps, overqualified
	}

	required, ok := DetectNumericExperience(jdText)
	if !ok || required <= 0 {
		return nil, nil
	}
	total := e.Parser.TotalYears(resumeText)
	if total == 0 {
		// No date periods on the resume; fall back to its own numeric claim.
		if n, found := DetectNumericExperience(resumeText); found {
			total = float64(n)
		}
	}
	if total < float64(required) {
		gaps = append(gaps, fmt.Sprintf("JD requires %d+ years overall; resume shows %.1f.", required, total))
	} else if total > float64(required)+5 {
		overqualified = append(overqualified, fmt.Sprintf("Resume has %.1f years; JD only requires %d+.", total, required))
	}
	return gaps, overqualified
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
