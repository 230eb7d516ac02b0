package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Load reads both catalog sources and assembles a Catalog. Load failures are
// logged and degrade to empty data; the process keeps serving with whatever
// subset loaded (possibly nothing).
func Load(skillsPath, aliasesPath string) *Catalog {
	skills, err := LoadSkills(skillsPath)
	if err != nil {
		slog.Warn("skill catalog unavailable, degrading to empty set",
			slog.String("path", skillsPath), slog.Any("error", err))
	}
	aliases, err := LoadAliases(aliasesPath)
	if err != nil {
		slog.Warn("skill aliases unavailable, degrading to empty map",
			slog.String("path", aliasesPath), slog.Any("error", err))
	}
	return New(skills, aliases)
}

// LoadSkills reads a CSV with a "skill" column and returns the column values.
// Order follows the file so catalog iteration stays reproducible.
func LoadSkills(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("op=catalog.load_skills: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("op=catalog.load_skills: read header: %w", err)
	}
	col := columnIndex(header, "skill")
	if col < 0 {
		return nil, fmt.Errorf("op=catalog.load_skills: no skill column in %q", header)
	}
	var skills []string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip unparseable rows; a partial catalog beats none.
			continue
		}
		if col >= len(rec) {
			continue
		}
		skills = append(skills, rec[col])
	}
	return skills, nil
}

// LoadAliases reads the canonical/aliases CSV. The aliases column is
// pipe-separated. Parsing falls back through three strategies before giving
// up: comma-delimited with header, semicolon-delimited with header, and a
// headerless single-column split on the first comma.
func LoadAliases(path string) ([]AliasEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("op=catalog.load_aliases: %w", err)
	}
	if entries, ok := parseAliasCSV(string(data), ','); ok {
		return entries, nil
	}
	if entries, ok := parseAliasCSV(string(data), ';'); ok {
		return entries, nil
	}
	if entries, ok := parseAliasHeaderless(string(data)); ok {
		return entries, nil
	}
	return nil, fmt.Errorf("op=catalog.load_aliases: no parse strategy matched %s", path)
}

func parseAliasCSV(data string, delim rune) ([]AliasEntry, bool) {
	r := csv.NewReader(strings.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	header, err := r.Read()
	if err != nil {
		return nil, false
	}
	canCol := columnIndex(header, "canonical")
	aliCol := columnIndex(header, "aliases")
	if canCol < 0 || aliCol < 0 {
		return nil, false
	}
	var entries []AliasEntry
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if canCol >= len(rec) || aliCol >= len(rec) {
			continue
		}
		if e, ok := aliasEntry(rec[canCol], rec[aliCol]); ok {
			entries = append(entries, e)
		}
	}
	return entries, true
}

// parseAliasHeaderless handles files where each line is "canonical,alias|alias".
func parseAliasHeaderless(data string) ([]AliasEntry, bool) {
	var entries []AliasEntry
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		can, rest, found := strings.Cut(line, ",")
		if !found {
			continue
		}
		if e, ok := aliasEntry(can, rest); ok {
			entries = append(entries, e)
		}
	}
	return entries, len(entries) > 0
}

func aliasEntry(canonical, aliases string) (AliasEntry, bool) {
	canonical = strings.ToLower(strings.TrimSpace(canonical))
	if canonical == "" || canonical == "canonical" {
		return AliasEntry{}, false
	}
	var list []string
	for _, a := range strings.Split(aliases, "|") {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			list = append(list, a)
		}
	}
	if len(list) == 0 {
		return AliasEntry{}, false
	}
	return AliasEntry{Canonical: canonical, Aliases: list}, true
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}
