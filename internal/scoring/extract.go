package scoring

import (
	"sort"
	"strings"

	"github.com/fairyhunter13/ats-resume-scorer/internal/catalog"
)

// ResolveAliases rewrites every whole-word alias occurrence to its canonical
// skill name. Canonicals are processed in catalog registration order and
// aliases in their listed order, so colliding aliases resolve to the first
// registered canonical on every run.
func ResolveAliases(c *catalog.Catalog, text string) string {
	text = strings.ToLower(text)
	for _, canonical := range c.AliasedSkills() {
		for _, alias := range c.Aliases(canonical) {
			text = replaceWholeWord(text, alias, canonical)
		}
	}
	return text
}

// ExtractSkills returns the set of canonical catalog skills present in the
// text. Aliases are resolved first; noise words never match. A skill
// containing a non-word rune (c++, c#, node.js) matches as a bounded
// substring, everything else requires strict word boundaries; both reduce to
// the same non-word-neighbor check.
func ExtractSkills(c *catalog.Catalog, text string) map[string]struct{} {
	resolved := ResolveAliases(c, text)
	found := make(map[string]struct{})
	for _, skill := range c.Skills() {
		if catalog.IsNoise(skill) {
			continue
		}
		if containsBounded(resolved, skill) {
			found[skill] = struct{}{}
		}
	}
	return found
}

// sortedSkills converts a skill set to a sorted slice, never nil.
func sortedSkills(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// intersect returns elements of a also present in b.
func intersect(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for s := range a {
		if _, ok := b[s]; ok {
			out[s] = struct{}{}
		}
	}
	return out
}

// subtract returns elements of a not present in b.
func subtract(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for s := range a {
		if _, ok := b[s]; !ok {
			out[s] = struct{}{}
		}
	}
	return out
}
