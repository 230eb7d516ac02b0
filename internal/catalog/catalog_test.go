package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ats-resume-scorer/internal/catalog"
)

func TestNew_DedupAndNormalize(t *testing.T) {
	t.Parallel()
	c := catalog.New(
		[]string{" Python ", "python", "SQL", "", "Go"},
		[]catalog.AliasEntry{
			{Canonical: "Python", Aliases: []string{"Py", "py", " "}},
			{Canonical: "", Aliases: []string{"ignored"}},
			{Canonical: "sql", Aliases: nil},
		},
	)

	assert.Equal(t, []string{"python", "sql", "go"}, c.Skills())
	assert.Equal(t, 3, c.Len())
	assert.True(t, c.Has("PYTHON"))
	assert.False(t, c.Has("rust"))
	assert.Equal(t, []string{"python"}, c.AliasedSkills())
	assert.Equal(t, []string{"py"}, c.Aliases("python"))
	assert.Nil(t, c.Aliases("sql"))
}

func TestNew_FirstAliasEntryWins(t *testing.T) {
	t.Parallel()
	c := catalog.New(
		[]string{"python"},
		[]catalog.AliasEntry{
			{Canonical: "python", Aliases: []string{"py"}},
			{Canonical: "python", Aliases: []string{"snake"}},
		},
	)
	assert.Equal(t, []string{"py"}, c.Aliases("python"))
}

func TestEmpty(t *testing.T) {
	t.Parallel()
	c := catalog.Empty()
	assert.Zero(t, c.Len())
	assert.Empty(t, c.Skills())
	assert.Empty(t, c.AliasedSkills())
}

func TestIsNoise(t *testing.T) {
	t.Parallel()
	assert.True(t, catalog.IsNoise("team"))
	assert.True(t, catalog.IsNoise("experience"))
	assert.False(t, catalog.IsNoise("python"))
	// Lookup is exact lowercase; callers normalize first.
	assert.False(t, catalog.IsNoise("Team"))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSkills(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "skills.csv", "id,skill\n1,Python\n2,SQL\nbroken row without skill\n3,Go\n")
	skills, err := catalog.LoadSkills(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "SQL", "Go"}, skills)
}

func TestLoadSkills_Errors(t *testing.T) {
	t.Parallel()
	_, err := catalog.LoadSkills(t.TempDir() + "/missing.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op=catalog.load_skills")

	path := writeFile(t, "noskill.csv", "id,name\n1,Python\n")
	_, err = catalog.LoadSkills(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no skill column")
}

func TestLoadAliases_CommaDelimited(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "aliases.csv", "canonical,aliases\njavascript,js|ecmascript\nkubernetes,k8s\n")
	entries, err := catalog.LoadAliases(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, catalog.AliasEntry{Canonical: "javascript", Aliases: []string{"js", "ecmascript"}}, entries[0])
	assert.Equal(t, catalog.AliasEntry{Canonical: "kubernetes", Aliases: []string{"k8s"}}, entries[1])
}

func TestLoadAliases_SemicolonFallback(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "aliases.csv", "canonical;aliases\npostgresql;postgres|pg\n")
	entries, err := catalog.LoadAliases(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "postgresql", entries[0].Canonical)
	assert.Equal(t, []string{"postgres", "pg"}, entries[0].Aliases)
}

func TestLoadAliases_HeaderlessFallback(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "aliases.txt", "javascript,js|ecmascript\n\nkubernetes,k8s\n")
	entries, err := catalog.LoadAliases(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "kubernetes", entries[1].Canonical)
}

func TestLoadAliases_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := catalog.LoadAliases(t.TempDir() + "/missing.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op=catalog.load_aliases")
}

func TestLoad_DegradesToEmpty(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	c := catalog.Load(dir+"/nope.csv", dir+"/nope2.csv")
	require.NotNil(t, c)
	assert.Zero(t, c.Len())
}

func TestLoad_FullRoundTrip(t *testing.T) {
	t.Parallel()
	skills := writeFile(t, "skills.csv", "skill\npython\njavascript\n")
	aliases := writeFile(t, "aliases.csv", "canonical,aliases\njavascript,js\n")
	c := catalog.Load(skills, aliases)
	assert.Equal(t, []string{"python", "javascript"}, c.Skills())
	assert.Equal(t, []string{"js"}, c.Aliases("javascript"))
}
