// Package postgres provides PostgreSQL database adapters.
//
// It implements the resume score repository port with connection pooling
// and per-operation tracing.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
)

// ResumeRepo persists and loads scored resumes using a minimal pgx pool.
type ResumeRepo struct{ Pool PgxPool }

// PgxPool is a minimal subset of pgxpool used by the repos for easy testing.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// NewResumeRepo constructs a ResumeRepo with the given pool.
func NewResumeRepo(p PgxPool) *ResumeRepo { return &ResumeRepo{Pool: p} }

// Create stores a scored resume and returns its id (generates one if empty).
func (r *ResumeRepo) Create(ctx domain.Context, rs domain.ResumeScore) (string, error) {
	tracer := otel.Tracer("repo.resumes")
	ctx, span := tracer.Start(ctx, "resumes.Create")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "resume_scores"),
	)
	id := rs.ID
	if id == "" {
		id = uuid.New().String()
	}
	createdAt := rs.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	q := `INSERT INTO resume_scores (id, candidate_email, score, similarity, keyword_overlap, strictness, matched_skills, missing_skills, experience_level, overqualified, created_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := r.Pool.Exec(ctx, q, id, rs.CandidateEmail, rs.Score, rs.Similarity, rs.KeywordOverlap, rs.Strictness, rs.MatchedSkills, rs.MissingSkills, string(rs.ExperienceLevel), rs.Overqualified, createdAt)
	if err != nil {
		return "", fmt.Errorf("op=resume.create: %w", err)
	}
	return id, nil
}

// Get loads a scored resume by id, or domain.ErrNotFound.
func (r *ResumeRepo) Get(ctx domain.Context, id string) (domain.ResumeScore, error) {
	tracer := otel.Tracer("repo.resumes")
	ctx, span := tracer.Start(ctx, "resumes.Get")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "resume_scores"),
	)
	q := `SELECT id, candidate_email, score, similarity, keyword_overlap, strictness, matched_skills, missing_skills, experience_level, overqualified, created_at FROM resume_scores WHERE id=$1`
	row := r.Pool.QueryRow(ctx, q, id)
	rs, err := scanResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ResumeScore{}, fmt.Errorf("op=resume.get: %w: %s", domain.ErrNotFound, id)
		}
		return domain.ResumeScore{}, fmt.Errorf("op=resume.get: %w", err)
	}
	return rs, nil
}

// ListByEmail loads all scored resumes for a candidate, newest first.
func (r *ResumeRepo) ListByEmail(ctx domain.Context, email string) ([]domain.ResumeScore, error) {
	tracer := otel.Tracer("repo.resumes")
	ctx, span := tracer.Start(ctx, "resumes.ListByEmail")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "resume_scores"),
	)
	q := `SELECT id, candidate_email, score, similarity, keyword_overlap, strictness, matched_skills, missing_skills, experience_level, overqualified, created_at FROM resume_scores WHERE candidate_email=$1 ORDER BY created_at DESC`
	rows, err := r.Pool.Query(ctx, q, email)
	if err != nil {
		return nil, fmt.Errorf("op=resume.list: %w", err)
	}
	defer rows.Close()
	var out []domain.ResumeScore
	for rows.Next() {
		rs, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("op=resume.list: %w", err)
		}
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=resume.list: %w", err)
	}
	return out, nil
}

func scanResume(row pgx.Row) (domain.ResumeScore, error) {
	var rs domain.ResumeScore
	var level string
	if err := row.Scan(&rs.ID, &rs.CandidateEmail, &rs.Score, &rs.Similarity, &rs.KeywordOverlap, &rs.Strictness, &rs.MatchedSkills, &rs.MissingSkills, &level, &rs.Overqualified, &rs.CreatedAt); err != nil {
		return domain.ResumeScore{}, err
	}
	rs.ExperienceLevel = domain.ExperienceLevel(level)
	return rs, nil
}
