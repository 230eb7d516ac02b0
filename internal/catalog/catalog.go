// Package catalog loads and holds the canonical skill list and alias
// mappings used by skill extraction.
//
// A Catalog is immutable once constructed and safe for unsynchronized
// concurrent reads. Canonical skills keep their first-registration order so
// alias resolution stays deterministic when aliases collide across
// canonicals (first registered wins).
package catalog

import "strings"

// AliasEntry maps one canonical skill to its ordered alias list.
type AliasEntry struct {
	Canonical string
	Aliases   []string
}

// Catalog is the process-wide skill reference, constructed once and injected
// into the scoring engine.
type Catalog struct {
	skills    map[string]struct{}
	canonical []string // insertion order, for deterministic iteration
	aliases   map[string][]string
	aliased   []string // canonicals that carry aliases, insertion order
}

// New builds a Catalog from a skill list and alias entries. Inputs are
// lowercased, trimmed, and deduplicated; empty strings are dropped.
func New(skills []string, aliases []AliasEntry) *Catalog {
	c := &Catalog{
		skills:  make(map[string]struct{}, len(skills)),
		aliases: make(map[string][]string, len(aliases)),
	}
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := c.skills[s]; ok {
			continue
		}
		c.skills[s] = struct{}{}
		c.canonical = append(c.canonical, s)
	}
	for _, e := range aliases {
		can := strings.ToLower(strings.TrimSpace(e.Canonical))
		if can == "" {
			continue
		}
		if _, ok := c.aliases[can]; ok {
			continue
		}
		var as []string
		seen := make(map[string]struct{}, len(e.Aliases))
		for _, a := range e.Aliases {
			a = strings.ToLower(strings.TrimSpace(a))
			if a == "" {
				continue
			}
			if _, dup := seen[a]; dup {
				continue
			}
			seen[a] = struct{}{}
			as = append(as, a)
		}
		if len(as) == 0 {
			continue
		}
		c.aliases[can] = as
		c.aliased = append(c.aliased, can)
	}
	return c
}

// Empty returns a catalog with no skills and no aliases. Scoring against it
// degrades to similarity-only results instead of failing.
func Empty() *Catalog { return New(nil, nil) }

// Has reports whether the canonical skill is registered.
func (c *Catalog) Has(skill string) bool {
	_, ok := c.skills[strings.ToLower(skill)]
	return ok
}

// Skills returns the canonical skills in registration order. Callers must not
// mutate the returned slice.
func (c *Catalog) Skills() []string { return c.canonical }

// AliasedSkills returns, in registration order, the canonicals that have aliases.
func (c *Catalog) AliasedSkills() []string { return c.aliased }

// Aliases returns the ordered alias list for a canonical skill, or nil.
func (c *Catalog) Aliases(canonical string) []string {
	return c.aliases[strings.ToLower(canonical)]
}

// Len reports the number of canonical skills.
func (c *Catalog) Len() int { return len(c.canonical) }
