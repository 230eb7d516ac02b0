package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestScoreCLIJSON(t *testing.T) {
	resume := writeTemp(t, "resume.txt", "go and python developer")
	jd := writeTemp(t, "jd.txt", "looking for go and python")
	skills := writeTemp(t, "skills.csv", "id,skill\n1,Go\n2,Python\n")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--resume", resume, "--jd", jd, "--skills", skills, "--aliases", "", "--json"})
	require.NoError(t, cmd.Execute())

	var res domain.ScoreResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, 1.0, res.KeywordOverlap)
	assert.ElementsMatch(t, []string{"go", "python"}, res.MatchedSkills)
	assert.Greater(t, res.Score, 50)
}

func TestScoreCLIHumanOutput(t *testing.T) {
	resume := writeTemp(t, "resume.txt", "go developer")
	jd := writeTemp(t, "jd.txt", "go")
	skills := writeTemp(t, "skills.csv", "id,skill\n1,Go\n")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--resume", resume, "--jd", jd, "--skills", skills, "--aliases", ""})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Score:")
	assert.Contains(t, out.String(), "Matched: [go]")
}

func TestScoreCLIMissingResume(t *testing.T) {
	jd := writeTemp(t, "jd.txt", "go")
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--resume", filepath.Join(t.TempDir(), "nope.txt"), "--jd", jd})
	assert.Error(t, cmd.Execute())
}
