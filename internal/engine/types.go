package engine

// UserProfile is the candidate profile sent to the matching engine.
type UserProfile struct {
	UserID            string   `json:"user_id"`
	Skills            []string `json:"skills"`
	Roles             []string `json:"roles,omitempty"`
	ExperienceLevel   string   `json:"experience_level,omitempty"`
	YearsOfExperience int      `json:"years_of_experience,omitempty"`
	WorkStyle         string   `json:"work_style,omitempty"`
	Industries        []string `json:"industries,omitempty"`
	Location          string   `json:"location,omitempty"`
	SalaryMin         int      `json:"salary_min,omitempty"`
	SalaryMax         int      `json:"salary_max,omitempty"`
	Goal              string   `json:"goal,omitempty"`
}

// Job is one posting in a match request.
type Job struct {
	JobID        string   `json:"job_id"`
	Title        string   `json:"title"`
	Company      string   `json:"company,omitempty"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Location     string   `json:"location,omitempty"`
	WorkType     string   `json:"work_type,omitempty"`
	SalaryMin    int      `json:"salary_min,omitempty"`
	SalaryMax    int      `json:"salary_max,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	PostedDate   string   `json:"posted_date,omitempty"`
}

// MatchRequest is the batch scoring request: one profile against a
// bounded pool of jobs.
type MatchRequest struct {
	Profile UserProfile `json:"profile"`
	Jobs    []Job       `json:"jobs"`
	Limit   int         `json:"limit,omitempty"`
}

// MatchResult is one scored job returned by the engine. MatchScore is
// authoritative on the AI path; the component scores and reasoning are
// explanation only.
type MatchResult struct {
	JobID           string   `json:"job_id"`
	MatchScore      int      `json:"match_score"`
	SemanticScore   float64  `json:"semantic_score,omitempty"`
	SkillMatchScore float64  `json:"skill_match_score,omitempty"`
	ExperienceScore float64  `json:"experience_score,omitempty"`
	LocationScore   float64  `json:"location_score,omitempty"`
	Reasoning       string   `json:"reasoning,omitempty"`
	KeyMatches      []string `json:"key_matches,omitempty"`
	MissingSkills   []string `json:"missing_skills,omitempty"`
}

// SkillGapRequest asks the engine which required skills a user lacks.
type SkillGapRequest struct {
	UserSkills     []string `json:"user_skills"`
	RequiredSkills []string `json:"required_skills"`
}

// SkillGapResponse is the engine's skill-gap answer.
type SkillGapResponse struct {
	UserSkills     []string `json:"user_skills"`
	RequiredSkills []string `json:"required_skills"`
	MissingSkills  []string `json:"missing_skills"`
}

// SkillGapEntry is one gap in a full skill analysis.
type SkillGapEntry struct {
	Skill                 string   `json:"skill"`
	Importance            string   `json:"importance"`
	CurrentLevel          int      `json:"current_level,omitempty"`
	TargetLevel           int      `json:"target_level"`
	LearningResources     []string `json:"learning_resources"`
	EstimatedLearningTime string   `json:"estimated_learning_time,omitempty"`
}

// SkillAnalysisResult is the engine's full readiness analysis for a
// profile against a set of target jobs.
type SkillAnalysisResult struct {
	UserID           string          `json:"user_id"`
	TargetRole       string          `json:"target_role,omitempty"`
	CurrentSkills    []string        `json:"current_skills"`
	SkillGaps        []SkillGapEntry `json:"skill_gaps"`
	Strengths        []string        `json:"strengths"`
	Recommendations  []string        `json:"recommendations"`
	OverallReadiness float64         `json:"overall_readiness"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type roleRecommendationResponse struct {
	SuggestedRoles []string `json:"suggested_roles"`
}

type errorResponse struct {
	Error string `json:"error"`
}
