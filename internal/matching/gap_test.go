package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_PreservesRequirementOrder(t *testing.T) {
	result := Classify([]string{"React"}, []string{"React", "TypeScript"})

	require.Len(t, result, 2)
	assert.Equal(t, SkillClassification{Name: "React", Status: StatusMatched}, result[0])
	assert.Equal(t, SkillClassification{Name: "TypeScript", Status: StatusMissing}, result[1])
}

func TestClassify_EmptyRequirements(t *testing.T) {
	result := Classify([]string{"React"}, nil)
	assert.Empty(t, result)
}

func TestClassify_KeepsOriginalCasing(t *testing.T) {
	result := Classify([]string{"react"}, []string{"  React  "})

	require.Len(t, result, 1)
	// Display name is the requirement as declared, not the normalized
	// form used for comparison.
	assert.Equal(t, "  React  ", result[0].Name)
	assert.Equal(t, StatusMatched, result[0].Status)
}

// Score and Classify must agree: the score is exactly the rounded
// percentage of classifications with status matched.
func TestClassify_ConsistentWithScore(t *testing.T) {
	cases := [][2][]string{
		{{"React"}, {"React", "TypeScript"}},
		{{"Go", "SQL"}, {"PostgreSQL", "Go", "Kubernetes"}},
		{nil, {"React"}},
		{{"Java"}, {"JavaScript"}},
		{{"a", "b"}, {"a", "b", "c", "d", "e"}},
	}

	for _, c := range cases {
		skills, reqs := c[0], c[1]
		matched := 0
		for _, sc := range Classify(skills, reqs) {
			if sc.Status == StatusMatched {
				matched++
			}
		}
		expected := int(float64(matched)/float64(len(reqs))*100 + 0.5)
		assert.Equal(t, expected, Score(skills, reqs), "skills=%v reqs=%v", skills, reqs)
	}
}

func TestGap(t *testing.T) {
	result := Gap([]string{"React"}, []string{"React", "TypeScript"})

	require.NotNil(t, result)
	assert.Equal(t, []string{"React"}, result.UserSkills)
	assert.Equal(t, []string{"React", "TypeScript"}, result.RequiredSkills)
	assert.Equal(t, []string{"TypeScript"}, result.MissingSkills)
}

// No requirements means no result, not a zero gap. A nil return and an
// empty MissingSkills list mean different things to callers.
func TestGap_NilWhenNoRequirements(t *testing.T) {
	assert.Nil(t, Gap([]string{"React"}, nil))
	assert.Nil(t, Gap([]string{"React"}, []string{}))
	assert.Nil(t, Gap(nil, nil))
}

func TestGap_FullCoverage(t *testing.T) {
	result := Gap([]string{"React", "TypeScript"}, []string{"react", "typescript"})

	require.NotNil(t, result)
	assert.Empty(t, result.MissingSkills)
	assert.NotNil(t, result.MissingSkills, "empty, not absent")
}

func TestGap_NothingCovered(t *testing.T) {
	result := Gap(nil, []string{"Go", "Rust"})

	require.NotNil(t, result)
	assert.Equal(t, []string{"Go", "Rust"}, result.MissingSkills)
}
