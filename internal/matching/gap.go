package matching

// SkillStatus classifies one job requirement against a candidate.
type SkillStatus string

const (
	// StatusMatched means at least one candidate skill covers the requirement.
	StatusMatched SkillStatus = "matched"
	// StatusMissing means no candidate skill covers the requirement.
	StatusMissing SkillStatus = "missing"
)

// SkillClassification pairs a job requirement with its matched/missing
// status, in a shape the dashboard renders directly.
type SkillClassification struct {
	Name   string      `json:"name"`
	Status SkillStatus `json:"status"`
}

// SkillsGap describes which of a job's requirements a candidate does not
// cover. The input sets are echoed back so the result is self-contained.
type SkillsGap struct {
	UserSkills     []string `json:"userSkills"`
	RequiredSkills []string `json:"requiredSkills"`
	MissingSkills  []string `json:"missingSkills"`
}

// Classify produces one SkillClassification per requirement, preserving
// requirement order.
func Classify(candidateSkills, requirements []string) []SkillClassification {
	out := make([]SkillClassification, 0, len(requirements))
	for _, req := range requirements {
		status := StatusMissing
		if IsSatisfied(req, candidateSkills) {
			status = StatusMatched
		}
		out = append(out, SkillClassification{Name: req, Status: status})
	}
	return out
}

// Gap computes the skills-gap summary for one (candidate, job) pair.
//
// When the requirement set is empty, Gap returns nil ("no result", not
// a zero gap). Callers must treat nil as "skip gap display" rather than
// "nothing missing"; the two are observably different and downstream
// consumers rely on the distinction.
func Gap(candidateSkills, requirements []string) *SkillsGap {
	if len(requirements) == 0 {
		return nil
	}

	missing := make([]string, 0)
	for _, req := range requirements {
		if !IsSatisfied(req, candidateSkills) {
			missing = append(missing, req)
		}
	}

	return &SkillsGap{
		UserSkills:     candidateSkills,
		RequiredSkills: requirements,
		MissingSkills:  missing,
	}
}
