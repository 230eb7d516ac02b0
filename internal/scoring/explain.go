package scoring

import (
	"fmt"
	"strings"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
)

// defaultMaxTipSkills caps how many missing skills a recommendation names.
const defaultMaxTipSkills = 6

// Explain renders a human-readable, multi-paragraph explanation of a score.
// Exactly one tier applies: unusable JD, zero skill match, partial match
// (overlap < 0.6), or high match (overlap >= 0.6).
func Explain(res domain.ScoreResult) string {
	if len(res.JDSkills) == 0 {
		return "No recognizable skills were extracted from the job description. Please ensure the JD is properly formatted."
	}

	var paras []string
	switch {
	case len(res.MatchedSkills) == 0:
		paras = append(paras,
			"None of the required skills in the job description were found in your resume. This triggers a strict mismatch penalty, and the score reflects a low compatibility.")
		paras = append(paras, fmt.Sprintf("Missing key skills: %s.", strings.Join(res.MissingSkills, ", ")))
		if res.Similarity > 0.25 {
			paras = append(paras, fmt.Sprintf("Some general experience overlaps were detected (semantic similarity: %.2f), but core skills did not match.", res.Similarity))
		}
	case res.KeywordOverlap < 0.6:
		paras = append(paras, fmt.Sprintf("Some required skills matched: %s.", strings.Join(res.MatchedSkills, ", ")))
		paras = append(paras, fmt.Sprintf("However, these keywords are still missing: %s.", strings.Join(res.MissingSkills, ", ")))
		paras = append(paras, fmt.Sprintf("Semantic similarity is moderate (%.2f), indicating partial relevance, but not all skills are covered.", res.Similarity))
	default:
		paras = append(paras, fmt.Sprintf("Most required skills matched: %s.", strings.Join(res.MatchedSkills, ", ")))
		switch {
		case len(res.ExperienceGap) > 0:
			paras = append(paras, fmt.Sprintf("Experience gap detected: %s", strings.Join(res.ExperienceGap, "; ")))
			paras = append(paras, "Score is low due to the experience gap with required years.")
		case res.Score < 60:
			paras = append(paras, "Your resume matches key skills, but your overall ATS score is moderate due to other factors.")
		default:
			paras = append(paras, "Your resume is a close fit to the job description's requirements! ATS score is high due to both strong skill coverage and semantic relevance.")
		}
	}
	return strings.Join(paras, "\n\n")
}

// Recommend builds a one-paragraph coaching tip from the score band, the
// missing skills, and similarity signals. Score is on the 0-100 integer
// scale at every call site. A resume with no missing skills and a score of
// at least 80 short-circuits to a single celebratory sentence.
func Recommend(missingSkills []string, similarity, overlap float64, score, maxDisplay int) string {
	if len(missingSkills) == 0 && score >= 80 {
		return "Excellent match! Your resume already covers the core skills and aligns well with the job requirements."
	}
	if maxDisplay <= 0 {
		maxDisplay = defaultMaxTipSkills
	}

	var parts []string
	switch {
	case score < 30:
		parts = append(parts, "This role appears to be a poor match.")
	case score < 60:
		parts = append(parts, "This role is a partial match for your resume.")
	case score < 80:
		parts = append(parts, "Good match detected.")
	default:
		parts = append(parts, "Excellent match!")
	}

	if len(missingSkills) > 0 {
		display := missingSkills
		suffix := ""
		if len(display) > maxDisplay {
			display = display[:maxDisplay]
			suffix = ", and more"
		}
		parts = append(parts, fmt.Sprintf("Consider adding or emphasizing %s%s to better align with the job requirements.", strings.Join(display, ", "), suffix))
	}

	if similarity < 0.4 && overlap > 0 {
		parts = append(parts, "Your resume includes some relevant terms, but rephrasing your experience to match the JD's language could help.")
	} else if similarity < 0.25 {
		parts = append(parts, "Content similarity with the JD is low; tailoring your project and experience descriptions could improve your match rate.")
	}

	return strings.Join(parts, " ")
}
