package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ori-labs/aura-api/internal/matching"
)

var (
	matchSkills       string
	matchRequirements string
)

// matchCmd scores one skill set against one requirement list without a
// database or AI engine. Useful for sanity-checking the local scorer.
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a skill set against job requirements locally",
	Long:  `Run the local heuristic scorer and gap classifier for one skills/requirements pair and print the result as JSON.`,
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchSkills, "skills", "", "Comma-separated candidate skills")
	matchCmd.Flags().StringVar(&matchRequirements, "requirements", "", "Comma-separated job requirements")
	rootCmd.AddCommand(matchCmd)
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func runMatch(_ *cobra.Command, _ []string) error {
	skills := splitList(matchSkills)
	requirements := splitList(matchRequirements)

	result := struct {
		Score     int                 `json:"score"`
		SkillsGap *matching.SkillsGap `json:"skillsGap"`
	}{
		Score:     matching.Score(skills, requirements),
		SkillsGap: matching.Gap(skills, requirements),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
