package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"plain strings", `["Go", "SQL"]`, []string{"Go", "SQL"}},
		{"name and level objects", `[{"name": "Go", "level": "expert"}, {"name": "Docker"}]`, []string{"Go", "Docker"}},
		{"mixed shapes", `["Python", {"name": "Kubernetes", "level": "beginner"}]`, []string{"Python", "Kubernetes"}},
		{"nulls skipped", `["Go", null]`, []string{"Go"}},
		{"empty array", `[]`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list SkillList
			require.NoError(t, json.Unmarshal([]byte(tt.input), &list))
			assert.Equal(t, tt.expected, list.Names())
		})
	}
}

func TestSkillList_UnmarshalJSON_KeepsLevel(t *testing.T) {
	var c CandidateSignal
	err := json.Unmarshal([]byte(`{"skills": [{"name": "Go", "level": "expert"}]}`), &c)
	require.NoError(t, err)
	require.Len(t, c.Skills, 1)
	assert.Equal(t, "expert", c.Skills[0].Level)
}

func TestSkillList_UnmarshalJSON_Invalid(t *testing.T) {
	var list SkillList
	err := json.Unmarshal([]byte(`{"name": "Go"}`), &list)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "skills must be an array")

	err = json.Unmarshal([]byte(`[42]`), &list)
	assert.Error(t, err)
}

func TestCandidateSignal_HasProfile(t *testing.T) {
	var nilCandidate *CandidateSignal
	assert.False(t, nilCandidate.HasProfile())
	assert.False(t, (&CandidateSignal{}).HasProfile())
	assert.True(t, (&CandidateSignal{Skills: SkillsFromNames("go")}).HasProfile())
	assert.True(t, (&CandidateSignal{City: "Berlin"}).HasProfile())
	assert.True(t, (&CandidateSignal{ExpectedSalaryMin: Float(1000)}).HasProfile())
}

func TestCandidateSignal_Validate(t *testing.T) {
	valid := &CandidateSignal{ExperienceYears: 3, Education: []EducationEntry{{Degree: "BSc", Year: Int(2015)}}}
	assert.NoError(t, valid.Validate())

	negative := &CandidateSignal{ExperienceYears: -1}
	assert.Error(t, negative.Validate())

	badYear := &CandidateSignal{Education: []EducationEntry{{Degree: "BSc", Year: Int(1200)}}}
	assert.Error(t, badYear.Validate())

	inverted := &CandidateSignal{ExpectedSalaryMin: Float(9000), ExpectedSalaryMax: Float(5000)}
	err := inverted.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}
