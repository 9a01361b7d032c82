package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvac-ats-backend/internal/llm"
)

const samplePDF = "../../internal/extract/testdata/resume.pdf"

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRubricPrintsFramework(t *testing.T) {
	out, err := execute(t, newRubricCmd(), "--position", "HVAC Service Technician", "--years", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "# HVAC Service Technician (service_technician)")
	assert.Greater(t, len(out), 200)
}

func TestRubricJSONIncludesTierBands(t *testing.T) {
	out, err := execute(t, newRubricCmd(), "--position", "Dispatcher", "--json", "--strict")
	require.NoError(t, err)
	assert.Contains(t, out, `"greenTier"`)
	assert.Contains(t, out, `"min": 80`)
}

func TestRubricRejectsGenericPosition(t *testing.T) {
	_, err := execute(t, newRubricCmd(), "--position", "Astronaut")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no dedicated rubric")
}

func TestPromptEmbedsResumeText(t *testing.T) {
	out, err := execute(t, newPromptCmd(), "--resume", samplePDF, "--position", "HVAC Service Technician", "--years", "3")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
}

func TestPromptRequiresResume(t *testing.T) {
	_, err := execute(t, newPromptCmd(), "--position", "Dispatcher")
	assert.Error(t, err)
}

type cannedLLM struct{ reply string }

func (c cannedLLM) Complete(ctx context.Context, req llm.Request) (llm.Response, error) {
	return llm.Response{Text: c.reply, Provider: "fake", Model: "fake-1"}, nil
}

const dispatcherReply = `{
  "overallScore": 82,
  "rubricScore": 82,
  "summary": "Three years dispatching for a residential HVAC company.",
  "technicalSkills": {"score": 80},
  "certifications": {"score": 60, "listed": []},
  "experience": {"totalYears": 3, "relevantYears": 3, "tier": "required", "titleMatch": "exact"},
  "presentationQuality": {"score": 75, "rating": "good"},
  "strengths": ["ServiceTitan"],
  "weaknesses": [],
  "recommendations": ["phone screen"],
  "hiringRecommendation": "recommend",
  "isOverqualified": false,
  "giveThemAChance": false
}`

func TestAnalyzeFileKeepsInput(t *testing.T) {
	data, err := os.ReadFile(samplePDF)
	require.NoError(t, err)
	resume := filepath.Join(t.TempDir(), "casey.pdf")
	require.NoError(t, os.WriteFile(resume, data, 0o600))

	flags := &resumeFlags{resume: resume, position: "Dispatcher", years: 2}
	analysis, err := analyzeFile(context.Background(), cannedLLM{reply: dispatcherReply}, flags)
	require.NoError(t, err)
	assert.Equal(t, 82, analysis.Result.OverallScore)
	assert.Equal(t, "fake", analysis.Provider)

	_, err = os.Stat(resume)
	assert.NoError(t, err, "input resume must survive analysis")
}
