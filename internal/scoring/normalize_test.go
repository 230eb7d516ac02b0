package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/ats-resume-scorer/internal/scoring"
)

func TestNormalize_Basics(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercase and trim", "  Senior Go Developer  ", "senior go developer"},
		{"accents transliterated", "Résumé für Zoë", "resume fur zoe"},
		{"punctuation to space", "skills: go, sql; docker/compose", "skills go sql docker compose"},
		{"plus survives", "C++ and 10+ years", "c++ and 10+ years"},
		{"yoe expanded", "10+ YOE in Go", "10+ years of experience in go"},
		{"dotted yoe expanded", "5 Y.O.E required", "5 years of experience required"},
		{"yoe not expanded inside words", "employees enjoyed it", "employees enjoyed it"},
		{"whitespace collapsed", "go \n\t sql", "go sql"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, scoring.Normalize(tc.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()
	samples := []string{
		"",
		"Résumé: C++ developer, 10+ YOE!",
		"Sr. Engineer (Backend) - Go/Python",
		"plain text already normalized",
		"5 Y.O.E with PostgreSQL & Redis",
	}
	for _, s := range samples {
		once := scoring.Normalize(s)
		assert.Equal(t, once, scoring.Normalize(once), "normalize must be idempotent for %q", s)
	}
}
