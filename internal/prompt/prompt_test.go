package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvac-ats-backend/internal/positions"
)

func TestBuildUsesRubricForKnownFamilies(t *testing.T) {
	p := Build(Input{
		Position:        "HVAC Service Technician",
		RequiredYears:   5,
		FlexibleOnTitle: true,
		ResumeText:      "  7.5 years as Service Technician  ",
		JobLocation:     "Phoenix, AZ",
	})
	require.NotNil(t, p.Rubric)
	assert.Equal(t, positions.TypeServiceTechnician, p.Type)
	assert.Contains(t, p.Text, "HVAC SERVICE TECHNICIAN EVALUATION FRAMEWORK")
	assert.Contains(t, p.Text, "<<<RESUME_START>>>\n7.5 years as Service Technician\n<<<RESUME_END>>>")
	assert.Contains(t, p.Text, "- Job location: Phoenix, AZ")
	assert.Contains(t, p.Text, "STEP-BY-STEP INSTRUCTIONS\n1. ")
	assert.Contains(t, p.Text, `"hiringRecommendation"`)

	framework := strings.Index(p.Text, "EVALUATION FRAMEWORK")
	resume := strings.Index(p.Text, "RESUME_START")
	steps := strings.Index(p.Text, "STEP-BY-STEP")
	output := strings.Index(p.Text, "OUTPUT FORMAT")
	assert.True(t, framework < resume && resume < steps && steps < output, "sections out of order")
}

func TestBuildEveryRubricFamily(t *testing.T) {
	names := map[positions.Type]string{
		positions.TypeServiceTechnician:  "HVAC Technician",
		positions.TypeLeadTechnician:     "Lead HVAC Technician",
		positions.TypeDispatcher:         "HVAC Dispatcher",
		positions.TypeAdminAssistant:     "Administrative Assistant",
		positions.TypeCustomerServiceRep: "Customer Service Representative",
		positions.TypeApprentice:         "HVAC Apprentice",
		positions.TypeBookkeeper:         "Bookkeeper",
		positions.TypeWarehouseAssociate: "Warehouse Associate",
		positions.TypeSalesRep:           "HVAC Sales Representative",
	}
	require.Len(t, names, len(positions.RubricTypes()))
	for typ, name := range names {
		p := Build(Input{Position: name, RequiredYears: 2, FlexibleOnTitle: true, ResumeText: "x"})
		assert.Equal(t, typ, p.Type, name)
		assert.NotNil(t, p.Rubric, name)
		assert.Contains(t, p.Text, "SCORING MATRIX", name)
	}
}

func TestTierYearsMatchRubricFramework(t *testing.T) {
	generic := Build(Input{Position: "HVAC Installer", RequiredYears: 0.25, FlexibleOnTitle: true, ResumeText: "installer"})
	require.Nil(t, generic.Rubric)
	assert.Contains(t, generic.Text, "- not_close: less than 0.13 years")

	tech := Build(Input{Position: "HVAC Service Technician", RequiredYears: 0.25, FlexibleOnTitle: true, ResumeText: "tech"})
	require.NotNil(t, tech.Rubric)
	assert.Contains(t, tech.Text, "- NOT CLOSE: less than 0.13 years")
}

func TestBuildGenericFallback(t *testing.T) {
	p := Build(Input{Position: "HVAC Installer", RequiredYears: 3, FlexibleOnTitle: true, ResumeText: "installer"})
	assert.Equal(t, positions.TypeGeneric, p.Type)
	assert.Nil(t, p.Rubric)
	assert.Contains(t, p.Text, "POSITION CRITERIA (HVAC Installer)")
	assert.Contains(t, p.Text, "Ductwork fabrication")
	assert.NotContains(t, p.Text, "SCORING MATRIX")

	unknown := Build(Input{Position: "Plumber", RequiredYears: 1, ResumeText: "x"})
	assert.Contains(t, unknown.Text, "POSITION CRITERIA (HVAC Technician)")
}

func TestStrictTitleAddsPenaltyStep(t *testing.T) {
	flexible := Build(Input{Position: "HVAC Dispatcher", RequiredYears: 2, FlexibleOnTitle: true}).Text
	strict := Build(Input{Position: "HVAC Dispatcher", RequiredYears: 2, FlexibleOnTitle: false}).Text
	assert.NotContains(t, flexible, "title flexibility penalty (-9")
	assert.Contains(t, strict, "title flexibility penalty (-9, minimum 1)")
	assert.Contains(t, strict, "exact title required")
}

func TestApprenticeStepsIncludeChanceRule(t *testing.T) {
	p := Build(Input{Position: "HVAC Apprentice", RequiredYears: 0, FlexibleOnTitle: true, ResumeText: "6 months helper, OSHA-10"})
	assert.Contains(t, p.Text, "Apply the ENTRY-LEVEL RULE")
	assert.Contains(t, p.Text, "- Required years of experience: 0")
}

func TestMissingLocation(t *testing.T) {
	p := Build(Input{Position: "Bookkeeper", RequiredYears: 2.5})
	assert.Contains(t, p.Text, "not specified (treat distance as <30mi)")
	assert.Contains(t, p.Text, "- Required years of experience: 2.5")
}

func TestRepair(t *testing.T) {
	out := Repair("ORIGINAL", `{"overallScore": "high"}`, []string{"overallScore: Invalid type"})
	assert.True(t, strings.HasPrefix(out, "ORIGINAL"))
	assert.Contains(t, out, "- overallScore: Invalid type")
	assert.Contains(t, out, `{"overallScore": "high"}`)
}
