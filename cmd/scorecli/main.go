// Command scorecli scores a resume file against a job description file
// offline, using the lexical similarity provider. It needs no network,
// database, or API key, which makes it useful for quick local checks and
// CI smoke tests.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/ats-resume-scorer/internal/adapter/embedding"
	"github.com/fairyhunter13/ats-resume-scorer/internal/catalog"
	"github.com/fairyhunter13/ats-resume-scorer/internal/scoring"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		resumePath  string
		jdPath      string
		skillsPath  string
		aliasesPath string
		strictness  float64
		topMissing  int
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:   "scorecli",
		Short: "Score a resume against a job description",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resume, err := os.ReadFile(resumePath)
			if err != nil {
				return fmt.Errorf("read resume: %w", err)
			}
			jd, err := os.ReadFile(jdPath)
			if err != nil {
				return fmt.Errorf("read job description: %w", err)
			}

			cat := catalog.Load(skillsPath, aliasesPath)
			sim := embedding.NewProvider(embedding.NewLexicalClient())
			engine := scoring.NewEngine(cat, sim)

			opts := scoring.DefaultOptions()
			opts.Strictness = &strictness
			opts.TopMissing = topMissing
			res := engine.Score(context.Background(), string(resume), string(jd), opts)

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			fmt.Fprintf(out, "Score: %d/100\n", res.Score)
			fmt.Fprintf(out, "Similarity: %.2f  Keyword overlap: %.2f\n", res.Similarity, res.KeywordOverlap)
			fmt.Fprintf(out, "Matched: %v\n", res.MatchedSkills)
			fmt.Fprintf(out, "Missing: %v\n", res.MissingSkills)
			fmt.Fprintln(out)
			fmt.Fprintln(out, scoring.Explain(res))
			return nil
		},
	}

	cmd.Flags().StringVar(&resumePath, "resume", "", "path to the resume text file")
	cmd.Flags().StringVar(&jdPath, "jd", "", "path to the job description text file")
	cmd.Flags().StringVar(&skillsPath, "skills", "data/skills.csv", "path to the skills CSV")
	cmd.Flags().StringVar(&aliasesPath, "aliases", "data/skill_aliases.csv", "path to the skill aliases CSV")
	cmd.Flags().Float64Var(&strictness, "strictness", 0.5, "similarity multiplier applied when keyword overlap is zero")
	cmd.Flags().IntVar(&topMissing, "top-missing", 15, "cap on the reported missing skills list")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the full result as JSON")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("jd")

	return cmd
}
