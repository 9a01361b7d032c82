package rubric

import (
	"fmt"
	"strings"
)

// Entry-level rule for apprentice-style roles.
const (
	chanceMaxYears = 1
	chanceMin      = 60
	chanceMax      = 79
	chanceNoCerts  = 59
)

func build(p profile, requiredYears float64, flexibleOnTitle bool) Rubric {
	return Rubric{
		Framework: framework(p, TiersFor(requiredYears), flexibleOnTitle),
		Scoring:   DefaultScoring(),
	}
}

func framework(p profile, t Thresholds, flexible bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s EVALUATION FRAMEWORK ===\n\n", strings.ToUpper(p.position))

	writeExperienceTiers(&b, t)
	writeCompetencies(&b, p)
	writeTitleMatching(&b, p, flexible)
	writeCertifications(&b, p)
	writeDefinitions(&b)

	b.WriteString("SCORING MATRIX\n")
	b.WriteString("Find the block matching experience tier, resume quality and certifications, then the row matching work gap, job hopping and distance. Pick a score inside the row's range.\n\n")
	b.WriteString(Matrix(p.weights, p.certLabel))
	b.WriteString("\n")

	if p.entryLevelRule {
		writeChanceRule(&b, p)
	}
	writeOverqualification(&b, p)
	writeCalculationOrder(&b, p, flexible)
	writeTierBands(&b)
	return b.String()
}

func writeExperienceTiers(b *strings.Builder, t Thresholds) {
	req := FormatYears(t.Required)
	b.WriteString("EXPERIENCE TIERS\n")
	fmt.Fprintf(b, "Required experience for this job: %s years.\n", req)
	fmt.Fprintf(b, "- REQUIRED EXPERIENCE: %s or more years of relevant experience.\n", req)
	fmt.Fprintf(b, "- CLOSE TO REQUIRED: %s to %s years (50%% to 95%% of required). Anything short of %s years but at least %s years is close.\n",
		FormatYears(t.CloseMin), FormatYears(t.CloseMax), req, FormatYears(t.CloseMin))
	fmt.Fprintf(b, "- NOT CLOSE: less than %s years.\n", FormatYears(t.CloseMin))
	if t.Required > 0 {
		fmt.Fprintf(b, "- %s or more years (2x required) is deep experience: still REQUIRED tier, but check the overqualification override.\n", FormatYears(t.Strong))
	}
	b.WriteString("Count only relevant experience. Helper or apprentice time in the same trade counts at half weight. Overlapping jobs are counted once.\n\n")
}

func writeCompetencies(b *strings.Builder, p profile) {
	b.WriteString("CORE COMPETENCY CATEGORIES\n")
	for i, c := range p.competencies {
		fmt.Fprintf(b, "%d. %s: %s.\n", i+1, c.name, c.detail)
	}
	b.WriteString("Use these categories to judge resume quality and technicalSkills.score. They do not replace the matrix.\n\n")
}

func writeTitleMatching(b *strings.Builder, p profile, flexible bool) {
	b.WriteString("JOB TITLE MATCHING\n")
	fmt.Fprintf(b, "Exact titles: %s.\n", strings.Join(p.exactTitles, ", "))
	fmt.Fprintf(b, "Equivalent titles: %s.\n", strings.Join(p.equivalentTitles, ", "))
	b.WriteString("Report experience.titleMatch as \"exact\", \"equivalent\" or \"none\" based on the candidate's relevant experience.\n")
	if flexible {
		b.WriteString("This job is flexible on title: equivalent titles count as full relevant experience. No title penalty applies.\n\n")
		return
	}
	fmt.Fprintf(b, "TITLE FLEXIBILITY PENALTY: this job requires an exact title match. If the candidate's relevant experience comes only from equivalent titles, subtract %d points from the matrix score (minimum final score 1). Apply the penalty after the matrix lookup and before the overqualification override.\n\n", FlexibilityPenalty)
}

func writeCertifications(b *strings.Builder, p profile) {
	fmt.Fprintf(b, "CERTIFICATIONS AND SKILLS (%s)\n", p.certLabel)
	for _, g := range p.certGuidance {
		fmt.Fprintf(b, "- %s.\n", g)
	}
	fmt.Fprintf(b, "Treat \"%s Listed\" as true only when the resume names at least one item above. Do not infer certifications that are not written.\n\n", p.certLabel)
}

func writeDefinitions(b *strings.Builder) {
	b.WriteString("RESUME QUALITY\n")
	b.WriteString("- GOOD: clear job history with dates, concrete duties and results, relevant skills easy to find, no major errors.\n")
	b.WriteString("- MID: job history present but thin on detail, some missing dates, generic duties or formatting problems.\n")
	b.WriteString("- POOR: missing dates or employers, vague or unrelated content, hard to follow, many errors.\n\n")

	b.WriteString("WORK GAP (last 5 years)\n")
	b.WriteString("- No gap: no gap longer than 3 months.\n")
	b.WriteString("- Small gap: longest gap between 3 and 12 months.\n")
	b.WriteString("- Large gap: any gap longer than 12 months.\n")
	b.WriteString("School, military service or documented family leave does not count as a gap.\n\n")

	b.WriteString("JOB HOPPING\n")
	b.WriteString("- Job hoppy: 3 or more employers in the last 3 years with tenures under 1 year each. Contract or seasonal roles labeled as such do not count.\n")
	b.WriteString("- Not hoppy: anything else.\n\n")

	b.WriteString("DISTANCE (candidate location to job location)\n")
	b.WriteString("- <30mi, 30-50mi or >50mi by typical driving distance.\n")
	b.WriteString("- If either location is unknown, use <30mi and say so in distance.notes.\n")
	b.WriteString("- A stated willingness to relocate moves the candidate to <30mi.\n\n")
}

func writeChanceRule(b *strings.Builder, p profile) {
	b.WriteString("ENTRY-LEVEL RULE: GIVE THEM A CHANCE\n")
	fmt.Fprintf(b, "If the candidate has less than %d year of hands-on experience in the trade:\n", chanceMaxYears)
	fmt.Fprintf(b, "- With at least one item from the %s list: score %d-%d and set giveThemAChance to true, regardless of the matrix row.\n", p.certLabel, chanceMin, chanceMax)
	fmt.Fprintf(b, "- Without any: use the matrix row but do not score above %d.\n", chanceNoCerts)
	b.WriteString("Reliability signals (steady attendance, transportation, trade school) move the score toward the top of the range.\n\n")
}

func writeOverqualification(b *strings.Builder, p profile) {
	b.WriteString("OVERQUALIFICATION OVERRIDE\n")
	fmt.Fprintf(b, "If the candidate's current or most recent title is a senior or management role materially above %s (for example: %s), set isOverqualified to true, explain why in overqualificationReason, and set the final score to %d-%d regardless of the computed score.\n",
		p.position, strings.Join(p.overqualifiedTitles, ", "), OverqualifiedMin, OverqualifiedMax)
	b.WriteString("This override is applied last and replaces every other adjustment.\n\n")
}

func writeCalculationOrder(b *strings.Builder, p profile, flexible bool) {
	b.WriteString("CALCULATION ORDER\n")
	steps := []string{
		"Classify experience tier, resume quality, certifications, work gap, job hopping and distance.",
		"Look up the matrix row and pick a score inside its range. Report it as rubricScore.",
	}
	if p.entryLevelRule {
		steps = append(steps, "Apply the entry-level rule when it matches. Report the result as rubricScore.")
	}
	if !flexible {
		steps = append(steps, fmt.Sprintf("If titleMatch is \"equivalent\", subtract %d (minimum 1).", FlexibilityPenalty))
	}
	steps = append(steps,
		fmt.Sprintf("If overqualified, replace the score with %d-%d.", OverqualifiedMin, OverqualifiedMax),
		"Report the result as overallScore.",
	)
	for i, s := range steps {
		fmt.Fprintf(b, "%d. %s\n", i+1, s)
	}
	b.WriteString("\n")
}

func writeTierBands(b *strings.Builder) {
	s := DefaultScoring()
	b.WriteString("TIER BANDS\n")
	fmt.Fprintf(b, "- Green: %d-%d\n", s.GreenTier.Min, s.GreenTier.Max)
	fmt.Fprintf(b, "- Yellow: %d-%d\n", s.YellowTier.Min, s.YellowTier.Max)
	fmt.Fprintf(b, "- Red: %d-%d\n", s.RedTier.Min, s.RedTier.Max)
}
