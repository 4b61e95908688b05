// Package matching implements the local skill-matching heuristic used to
// score jobs against a candidate's declared skills. Everything in this
// package is pure and synchronous: no I/O, no clock, no randomness. The
// orchestration layer (internal/match) composes these functions with the
// external collaborators.
package matching

import (
	"math"
	"strings"
)

// Normalize lowercases a skill token and trims surrounding whitespace.
// It is the only transformation applied before comparison: no stemming,
// no punctuation stripping, no Unicode folding. Both candidate skills
// and job requirements must pass through here before any containment
// check, otherwise matched/missing classification diverges.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsSatisfied reports whether a single job requirement counts as covered
// by any of the candidate's skills. A requirement is satisfied when,
// after normalization, either string contains the other.
//
// The bidirectional containment is deliberately permissive: the skill
// "Java" satisfies the requirement "JavaScript" because "java" is a
// substring of "javascript", and a skill that normalizes to the empty
// string satisfies every requirement, since the empty string is a
// substring of anything. Both over-matches are accepted imprecisions
// of the heuristic, not bugs to fix here.
func IsSatisfied(requirement string, candidateSkills []string) bool {
	if len(candidateSkills) == 0 {
		return false
	}

	req := Normalize(requirement)
	for _, skill := range candidateSkills {
		s := Normalize(skill)
		if strings.Contains(s, req) || strings.Contains(req, s) {
			return true
		}
	}
	return false
}

// Score aggregates IsSatisfied across all requirements into a single
// integer in [0,100]: the rounded percentage of requirements covered.
//
// An empty requirement set scores 0 (division-by-zero guard, not a
// perfect match), and an empty skill set scores 0 because nothing can
// be satisfied. Neither case is an error.
func Score(candidateSkills, requirements []string) int {
	if len(requirements) == 0 {
		return 0
	}

	matched := 0
	for _, req := range requirements {
		if IsSatisfied(req, candidateSkills) {
			matched++
		}
	}

	return int(math.Round(float64(matched) / float64(len(requirements)) * 100))
}
