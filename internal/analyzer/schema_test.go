package analyzer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocumentAcceptsExample(t *testing.T) {
	doc, err := ExtractJSON(technicianReply)
	require.NoError(t, err)
	assert.NoError(t, ValidateDocument(doc))
}

func TestValidateDocumentReportsFields(t *testing.T) {
	doc := `{"overallScore": 120, "summary": "x", "technicalSkills": {"score": 1}, "certifications": {"score": 1},
	  "experience": {"totalYears": 1, "relevantYears": 1, "tier": "senior"}, "presentationQuality": {"score": 1},
	  "strengths": [], "weaknesses": [], "recommendations": [], "hiringRecommendation": "maybe"}`

	err := ValidateDocument(doc)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "want ValidationError, got %v", err)

	fields := make([]string, 0, len(ve.Errors))
	for _, e := range ve.Errors {
		fields = append(fields, e.Field)
	}
	joined := strings.Join(fields, ",")
	assert.Contains(t, joined, "overallScore")
	assert.Contains(t, joined, "experience.tier")
	assert.Contains(t, joined, "hiringRecommendation")
	assert.Len(t, ve.Problems(), len(ve.Errors))
}

func TestValidateDocumentMissingRequired(t *testing.T) {
	err := ValidateDocument(`{"overallScore": 50}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summary")
}

func TestValidateDocumentMalformed(t *testing.T) {
	err := ValidateDocument(`{"overallScore": }`)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "(root)", ve.Errors[0].Field)
}

func TestExtractJSON(t *testing.T) {
	got, err := ExtractJSON("prefix {\"a\": {\"b\": 1}} suffix")
	require.NoError(t, err)
	assert.Equal(t, `{"a": {"b": 1}}`, got)

	_, err = ExtractJSON("no braces here")
	assert.ErrorIs(t, err, ErrParseResponse)
}

func TestDecodeResultWholeNumbers(t *testing.T) {
	got, err := DecodeResult(`{"overallScore": 85.0, "technicalSkills": {"score": 9e1}, "experience": {"totalYears": 7.5, "relevantYears": 3.0}}`)
	require.NoError(t, err)
	assert.Equal(t, 85, got.OverallScore)
	assert.Equal(t, 90, got.TechnicalSkills.Score)
	assert.Equal(t, 7.5, got.Experience.TotalYears)
	assert.Equal(t, 3.0, got.Experience.RelevantYears)

	_, err = DecodeResult(`{"overallScore": 85.5}`)
	assert.Error(t, err)
}
