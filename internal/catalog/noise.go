package catalog

// noiseWords are stopword-like tokens excluded from skill matching even when
// the catalog source lists them. English stopwords plus recruiting
// boilerplate that showed up as false-positive "skills" in real JDs.
var noiseWords = map[string]struct{}{}

func init() {
	for _, w := range [...]string{
		// common English stopwords
		"a", "about", "above", "after", "again", "all", "also", "am", "an",
		"and", "any", "are", "as", "at", "be", "because", "been", "before",
		"being", "below", "between", "both", "but", "by", "can", "could",
		"did", "do", "does", "doing", "down", "during", "each", "few", "for",
		"from", "further", "had", "has", "have", "having", "he", "her",
		"here", "hers", "him", "his", "how", "i", "if", "in", "into", "is",
		"it", "its", "just", "me", "more", "most", "my", "no", "nor", "not",
		"now", "of", "off", "on", "once", "only", "or", "other", "our",
		"out", "over", "own", "same", "she", "should", "so", "some", "such",
		"than", "that", "the", "their", "them", "then", "there", "these",
		"they", "this", "those", "through", "to", "too", "under", "until",
		"up", "very", "was", "we", "were", "what", "when", "where", "which",
		"while", "who", "whom", "why", "will", "with", "would", "you",
		"your", "yours",
		// recruiting boilerplate
		"company", "job", "position", "description", "experience", "requirement",
		"responsibility", "preferred", "role", "technology", "engineer",
		"developer", "skills", "ideal", "strong", "familiarity", "excellent",
		"good", "basic", "new", "team", "members", "entry", "level", "peers",
		"planning", "issues", "applications", "storage", "usage", "features",
		"passionate", "fresh", "innovations", "debug", "discussions",
	} {
		noiseWords[w] = struct{}{}
	}
}

// IsNoise reports whether a token is excluded from skill matching.
func IsNoise(word string) bool {
	_, ok := noiseWords[word]
	return ok
}
