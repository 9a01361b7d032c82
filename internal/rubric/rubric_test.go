package rubric

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvac-ats-backend/internal/positions"
)

func allGenerators() map[string]Generator {
	return map[string]Generator{
		"service_technician":   ServiceTechnician,
		"lead_technician":      LeadHVACTechnician,
		"dispatcher":           Dispatcher,
		"admin_assistant":      AdminAssistant,
		"customer_service_rep": CustomerServiceRep,
		"apprentice":           Apprentice,
		"bookkeeper":           Bookkeeper,
		"warehouse_associate":  WarehouseAssociate,
		"sales_rep":            SalesRep,
	}
}

func TestTiersBoundaries(t *testing.T) {
	th := TiersFor(5)
	assert.Equal(t, 5.0, th.Required)
	assert.Equal(t, 2.5, th.CloseMin)
	assert.InDelta(t, 4.75, th.CloseMax, 1e-9)
	assert.Equal(t, 10.0, th.Strong)

	tests := []struct {
		years float64
		want  ExperienceTier
	}{
		{5, TierRequired},
		{7.5, TierRequired},
		{4.75, TierClose},
		{4.9, TierClose},
		{2.5, TierClose},
		{2.49, TierNotClose},
		{0, TierNotClose},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, th.Classify(tt.years), "years %v", tt.years)
	}
}

func TestFormatYears(t *testing.T) {
	cases := map[float64]string{
		5:         "5",
		2.5:       "2.5",
		4.75:      "4.75",
		0.95 * 4:  "3.8",
		0.125:     "0.13",
		1.005:     "1",
		0.5 * 0.5: "0.25",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatYears(in), "years %v", in)
	}
}

func TestTiersZeroAndNegativeRequirement(t *testing.T) {
	for _, req := range []float64{0, -3} {
		th := TiersFor(req)
		assert.Equal(t, 0.0, th.Required)
		assert.Equal(t, TierRequired, th.Classify(0))
		assert.Equal(t, TierRequired, th.Classify(0.5))
	}
}

func TestFrameworkStatesTierBoundaries(t *testing.T) {
	for name, gen := range allGenerators() {
		r := gen(4, true)
		assert.Contains(t, r.Framework, "- REQUIRED EXPERIENCE: 4 or more years", name)
		assert.Contains(t, r.Framework, "- CLOSE TO REQUIRED: 2 to 3.8 years", name)
		assert.Contains(t, r.Framework, "- NOT CLOSE: less than 2 years", name)
	}
}

func TestScoringBandsUniform(t *testing.T) {
	want := Scoring{
		GreenTier:  Band{Min: 80, Max: 100},
		YellowTier: Band{Min: 50, Max: 79},
		RedTier:    Band{Min: 0, Max: 49},
	}
	for name, gen := range allGenerators() {
		assert.Equal(t, want, gen(3, true).Scoring, name)
	}
}

func TestFlexibilityPenaltyOnlyWhenStrict(t *testing.T) {
	for name, gen := range allGenerators() {
		flexible := gen(3, true).Framework
		strict := gen(3, false).Framework
		assert.NotContains(t, flexible, "TITLE FLEXIBILITY PENALTY", name)
		assert.NotContains(t, flexible, "subtract 9", name)
		assert.Contains(t, strict, "TITLE FLEXIBILITY PENALTY", name)
		assert.Contains(t, strict, "subtract 9 points", name)
		assert.Contains(t, strict, "minimum final score 1", name)
	}
}

func TestFrameworkSectionsPresent(t *testing.T) {
	sections := []string{
		"EXPERIENCE TIERS",
		"CORE COMPETENCY CATEGORIES",
		"JOB TITLE MATCHING",
		"CERTIFICATIONS AND SKILLS",
		"SCORING MATRIX",
		"OVERQUALIFICATION OVERRIDE",
		"CALCULATION ORDER",
		"TIER BANDS",
	}
	for name, gen := range allGenerators() {
		fw := gen(2, true).Framework
		for _, s := range sections {
			assert.Contains(t, fw, s, "%s missing %s", name, s)
		}
		assert.Contains(t, fw, "70-75", name)
		// four numbered categories plus the closing guidance line
		assert.Equal(t, 4, strings.Count(sectionBody(fw, "CORE COMPETENCY CATEGORIES", "JOB TITLE MATCHING"), "\n"), name)
	}
}

func sectionBody(fw, start, end string) string {
	i := strings.Index(fw, start)
	j := strings.Index(fw, end)
	if i < 0 || j < i {
		return ""
	}
	return strings.TrimSpace(fw[i+len(start) : j])
}

func TestMatrixBlocksHaveEighteenRows(t *testing.T) {
	fw := ServiceTechnician(5, true).Framework
	blocks := strings.Split(sectionBody(fw, "SCORING MATRIX", "OVERQUALIFICATION OVERRIDE"), "### ")
	require.Len(t, blocks, 1+18)
	for _, block := range blocks[1:] {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		assert.Len(t, lines, 1+18, lines[0])
	}
}

func TestBestRowIsNinetyToHundred(t *testing.T) {
	best := Row{Experience: TierRequired, Resume: ResumeGood, CertsListed: true, Gap: GapNone, Distance: DistanceNear}
	for _, typ := range positions.RubricTypes() {
		w, ok := WeightsFor(typ)
		require.True(t, ok)
		assert.Equal(t, Band{Min: 90, Max: 100}, w.Range(best), typ.String())
	}
	fw := ServiceTechnician(5, true).Framework
	assert.Contains(t, fw, "### REQUIRED EXPERIENCE + Good Resume + Certs Listed\n- No gap, Not hoppy, <30mi: 90-100\n")
}

func worsen(r Row) []Row {
	var out []Row
	next := func(mod func(*Row)) {
		c := r
		mod(&c)
		if c != r {
			out = append(out, c)
		}
	}
	next(func(c *Row) { c.Experience = step(experienceOrder, c.Experience) })
	next(func(c *Row) { c.Resume = step(resumeOrder, c.Resume) })
	next(func(c *Row) { c.CertsListed = false })
	next(func(c *Row) { c.Gap = step(gapOrder, c.Gap) })
	next(func(c *Row) { c.JobHoppy = true })
	next(func(c *Row) { c.Distance = step(distanceOrder, c.Distance) })
	return out
}

func step[T comparable](order []T, v T) T {
	for i, o := range order {
		if o == v && i+1 < len(order) {
			return order[i+1]
		}
	}
	return v
}

func TestMatrixMonotonicInEveryDimension(t *testing.T) {
	for _, typ := range positions.RubricTypes() {
		w, _ := WeightsFor(typ)
		require.NoError(t, w.Validate(), typ.String())
		for _, r := range Rows() {
			base := w.Range(r)
			assert.GreaterOrEqual(t, base.Min, 0)
			assert.LessOrEqual(t, base.Max, 100)
			for _, worse := range worsen(r) {
				got := w.Range(worse)
				if got.Max > base.Max || got.Min > base.Min {
					t.Fatalf("%s: %+v -> %+v raised range %v -> %v", typ, r, worse, base, got)
				}
			}
		}
	}
}

func TestRowsCount(t *testing.T) {
	assert.Len(t, Rows(), 3*3*2*18)
}

func TestWeightsValidate(t *testing.T) {
	assert.Error(t, Weights{Close: 10, NotClose: 5, Span: 10}.Validate())
	assert.Error(t, Weights{Span: 0}.Validate())
	assert.Error(t, Weights{JobHoppy: -1, Span: 10}.Validate())
	assert.NoError(t, Weights{Span: 10}.Validate())
}

func TestApprenticeChanceRule(t *testing.T) {
	fw := Apprentice(0, true).Framework
	assert.Contains(t, fw, "GIVE THEM A CHANCE")
	assert.Contains(t, fw, "score 60-79 and set giveThemAChance to true")
	assert.NotContains(t, ServiceTechnician(0, true).Framework, "GIVE THEM A CHANCE")
}

func TestForTypeDispatch(t *testing.T) {
	for _, typ := range positions.RubricTypes() {
		gen, ok := ForType(typ)
		require.True(t, ok, typ.String())
		assert.NotEmpty(t, gen(1, true).Framework)
	}
	gen, ok := ForType(positions.TypeGeneric)
	assert.False(t, ok)
	assert.Nil(t, gen)
}

func TestFrameworkDeterministic(t *testing.T) {
	assert.Equal(t, Dispatcher(2, false), Dispatcher(2, false))
}
