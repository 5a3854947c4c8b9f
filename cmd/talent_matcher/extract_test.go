package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-matcher/internal/types"
)

const sampleResume = `Jane Doe
jane.doe@example.com | +1 (555) 123-4567

Summary
Backend engineer building distributed systems in Python and PostgreSQL.

Skills
Python, PostgreSQL, Docker, Kubernetes

Education
Bachelor of Science in Computer Science, State University, 2016
`

func writeResume(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtractCommand(t *testing.T) {
	out, err := execute(t, "extract", "--in", writeResume(t, sampleResume))
	require.NoError(t, err)

	analysis := decodeOutput[types.ResumeAnalysis](t, out)
	require.NotNil(t, analysis.Resume)
	require.NotNil(t, analysis.Quality)
	assert.Equal(t, "jane.doe@example.com", analysis.Resume.Contact.Email)
	assert.Subset(t, analysis.Resume.Skills, []string{"python", "docker"})
	assert.Greater(t, analysis.Quality.OverallScore, 0)
}

func TestExtractCommand_ParsedOnlyToFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "parsed.json")

	out, err := execute(t, "extract", "--in", writeResume(t, sampleResume), "--out", outPath, "--parsed-only")
	require.NoError(t, err)
	assert.Contains(t, out, "Output: "+outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	parsed := decodeOutput[types.ParsedResume](t, string(data))
	assert.Equal(t, "jane.doe@example.com", parsed.Contact.Email)
	assert.NotContains(t, string(data), "overall_score")
}

func TestExtractCommand_Stdin(t *testing.T) {
	out, err := execute(t, "extract", "--in", "-")
	require.NoError(t, err)

	analysis := decodeOutput[types.ResumeAnalysis](t, out)
	assert.Empty(t, analysis.Resume.Skills)
	assert.Equal(t, 0, analysis.Quality.OverallScore)
	assert.False(t, analysis.Quality.IsComplete)
}

func TestExtractCommand_Verbose(t *testing.T) {
	out, err := execute(t, "extract", "-v", "--in", writeResume(t, sampleResume))
	require.NoError(t, err)
	assert.Contains(t, out, "RESUME QUALITY")
}

func TestExtractCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "extract", "--in", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read input file")
}
