package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/ats-resume-scorer/internal/config"
	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
	"github.com/fairyhunter13/ats-resume-scorer/internal/observability"
	"github.com/fairyhunter13/ats-resume-scorer/internal/scoring"
)

// Server aggregates handlers dependencies.
type Server struct {
	Cfg        config.Config
	Engine     *scoring.Engine
	Parser     *scoring.ExperienceParser
	Opts       scoring.Options
	Repo       domain.ResumeRepository
	DBCheck    func(ctx context.Context) error
	RedisCheck func(ctx context.Context) error
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, engine *scoring.Engine, repo domain.ResumeRepository, dbCheck, redisCheck func(context.Context) error) *Server {
	return &Server{
		Cfg:    cfg,
		Engine: engine,
		Parser: scoring.NewExperienceParser(nil),
		Opts: scoring.Options{
			SimWeight:  cfg.ScoreSimWeight,
			KeyWeight:  cfg.ScoreKeyWeight,
			TopMissing: cfg.ScoreTopMissing,
			Strictness: &cfg.ScoreStrictness,
		},
		Repo:       repo,
		DBCheck:    dbCheck,
		RedisCheck: redisCheck,
	}
}

type analyzeRequest struct {
	ResumeText     string `json:"resume_text" validate:"required,max=100000"`
	JDText         string `json:"jd_text" validate:"required,max=100000"`
	CandidateEmail string `json:"candidate_email" validate:"omitempty,email"`
	Save           bool   `json:"save"`
}

type analyzeResponse struct {
	ID                 string             `json:"id,omitempty"`
	Result             domain.ScoreResult `json:"result"`
	Explanation        string             `json:"explanation"`
	ExperienceLevel    string             `json:"experience_level"`
	FormattingWarnings []string           `json:"formatting_warnings,omitempty"`
}

// AnalyzeHandler scores a resume against a job description and optionally
// persists the outcome.
func (s *Server) AnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !acceptsJSON(w, r) {
			return
		}
		// Cap body size to prevent abuse
		r.Body = http.MaxBytesReader(w, r.Body, s.Cfg.MaxBodyKB<<10)
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
			return
		}
		if err := getValidator().Struct(req); err != nil {
			verrs := map[string]string{}
			if ve, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range ve {
					verrs[strings.ToLower(fe.Field())] = fe.Tag()
				}
			}
			writeError(w, r, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument), verrs)
			return
		}
		if req.Save && req.CandidateEmail == "" {
			writeError(w, r, fmt.Errorf("%w: candidate_email required to save", domain.ErrInvalidArgument), map[string]string{"field": "candidate_email"})
			return
		}

		ctx := r.Context()
		res := s.Engine.Score(ctx, req.ResumeText, req.JDText, s.Opts)
		observability.ObserveScore(res.Score, res.Similarity)

		resp := analyzeResponse{
			Result:             res,
			Explanation:        scoring.Explain(res),
			ExperienceLevel:    string(s.Parser.ClassifyExperienceLevel(req.ResumeText)),
			FormattingWarnings: scoring.FormattingWarnings(req.ResumeText),
		}
		if req.Save {
			id, err := s.Repo.Create(ctx, domain.ResumeScore{
				CandidateEmail:  req.CandidateEmail,
				Score:           res.Score,
				Similarity:      res.Similarity,
				KeywordOverlap:  res.KeywordOverlap,
				Strictness:      res.StrictnessApplied,
				MatchedSkills:   res.MatchedSkills,
				MissingSkills:   res.MissingSkills,
				ExperienceLevel: domain.ExperienceLevel(resp.ExperienceLevel),
				Overqualified:   res.Overqualified,
			})
			if err != nil {
				writeError(w, r, fmt.Errorf("save score: %w", err), nil)
				return
			}
			resp.ID = id
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// ResumeHandler returns a stored resume score by id.
func (s *Server) ResumeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !acceptsJSON(w, r) {
			return
		}
		id := chi.URLParam(r, "id")
		if vr := ValidateResumeID(id); !vr.Valid {
			writeError(w, r, fmt.Errorf("%w: invalid id", domain.ErrInvalidArgument), vr.Errors)
			return
		}
		rs, err := s.Repo.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, rs)
	}
}

// ResumeListHandler returns all stored scores for a candidate email, newest first.
func (s *Server) ResumeListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !acceptsJSON(w, r) {
			return
		}
		email := SanitizeString(r.URL.Query().Get("email"))
		if err := getValidator().Var(email, "required,email"); err != nil {
			writeError(w, r, fmt.Errorf("%w: valid email query parameter required", domain.ErrInvalidArgument), map[string]string{"field": "email"})
			return
		}
		out, err := s.Repo.ListByEmail(r.Context(), email)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		if out == nil {
			out = []domain.ResumeScore{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": out})
	}
}

// ReadyzHandler returns a readiness handler that probes the DB and Redis.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]check, 0, 2)
		if s.DBCheck != nil {
			if err := s.DBCheck(ctx); err != nil {
				checks = append(checks, check{Name: "db", OK: false, Details: err.Error()})
			} else {
				checks = append(checks, check{Name: "db", OK: true})
			}
		}
		if s.RedisCheck != nil {
			if err := s.RedisCheck(ctx); err != nil {
				checks = append(checks, check{Name: "redis", OK: false, Details: err.Error()})
			} else {
				checks = append(checks, check{Name: "redis", OK: true})
			}
		}
		ok := true
		for _, c := range checks {
			if !c.OK {
				ok = false
				break
			}
		}
		st := http.StatusOK
		if !ok {
			st = http.StatusServiceUnavailable
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}

// acceptsJSON rejects requests whose Accept header excludes JSON. Only JSON
// responses are supported.
func acceptsJSON(w http.ResponseWriter, r *http.Request) bool {
	a := r.Header.Get("Accept")
	if a == "" || a == "*/*" || strings.Contains(a, "application/json") {
		return true
	}
	writeJSON(w, http.StatusNotAcceptable, errorEnvelope{Error: apiError{Code: "INVALID_ARGUMENT", Message: "not acceptable", Details: map[string]any{"accept": a}}})
	return false
}
