// Package domain holds the entities, ports, and error taxonomy shared by the
// scoring core and its adapters. It has no dependencies outside the standard
// library so the scoring logic stays testable in isolation.
package domain

import (
	"context"
	"errors"
	"time"
)

// Context is an alias to context.Context for brevity in port signatures.
type Context = context.Context

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrRateLimited     = errors.New("rate limited")
	ErrUpstreamTimeout = errors.New("upstream timeout")
	ErrInternal        = errors.New("internal error")
)

// ExperienceLevel classifies a resume by total demonstrated years.
type ExperienceLevel string

// Experience levels, derived from period extraction and internship keywords.
// The thresholds deliberately leave gaps (2<years<3 and 5<years<6) that map
// to LevelUnknown; see DESIGN.md before "fixing" them.
const (
	LevelInternships ExperienceLevel = "Internships"
	LevelFresher     ExperienceLevel = "Fresher"
	LevelEntry       ExperienceLevel = "Entry level"
	LevelMid         ExperienceLevel = "Mid level"
	LevelSenior      ExperienceLevel = "Senior level"
	LevelExperienced ExperienceLevel = "Experienced"
	LevelUnknown     ExperienceLevel = "Unknown"
)

// ExperiencePeriod is a month-granularity employment span.
// Invariant: Start <= End; violating pairs are discarded by the parser.
type ExperiencePeriod struct {
	Start time.Time
	End   time.Time
}

// Years returns the span length in fractional years.
func (p ExperiencePeriod) Years() float64 { return p.End.Sub(p.Start).Hours() / 24 / 365 }

// ScoreResult is the structured outcome of scoring one resume against one
// job description. It is produced fresh per call and never mutated afterwards.
type ScoreResult struct {
	Score             int      `json:"score"`
	Similarity        float64  `json:"similarity"`
	KeywordOverlap    float64  `json:"keyword_overlap"`
	StrictnessApplied bool     `json:"strictness_applied"`
	MatchedSkills     []string `json:"matched_skills"`
	MissingSkills     []string `json:"missing_skills"`
	JDSkills          []string `json:"jd_skills"`
	ExperienceGap     []string `json:"experience_gap"`
	Overqualified     []string `json:"overqualified"`
	Tips              string   `json:"tips"`
}

// ResumeScore is the persisted record of a scored resume, one row per
// analyze-and-save request.
type ResumeScore struct {
	ID              string
	CandidateEmail  string
	Score           int
	Similarity      float64
	KeywordOverlap  float64
	Strictness      bool
	MatchedSkills   []string
	MissingSkills   []string
	ExperienceLevel ExperienceLevel
	Overqualified   []string
	CreatedAt       time.Time
}

// SimilarityProvider computes semantic similarity between two texts.
// Implementations must return a value in [0,1]; the engine clamps regardless.
type SimilarityProvider interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// EmbeddingClient produces embedding vectors for texts. Deterministic in stub mode.
type EmbeddingClient interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// ResumeRepository persists scored resumes (port).
type ResumeRepository interface {
	Create(ctx context.Context, r ResumeScore) (string, error)
	Get(ctx context.Context, id string) (ResumeScore, error)
	ListByEmail(ctx context.Context, email string) ([]ResumeScore, error)
}
