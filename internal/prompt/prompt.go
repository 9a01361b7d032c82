// Package prompt assembles the resume analysis prompt for a job posting.
package prompt

import (
	"fmt"
	"strings"

	"hvac-ats-backend/internal/positions"
	"hvac-ats-backend/internal/rubric"
)

// Input is everything the prompt depends on.
type Input struct {
	Position        string
	RequiredYears   float64
	FlexibleOnTitle bool
	ResumeText      string
	JobLocation     string
}

// Prompt is an assembled prompt plus the variant that produced it.
type Prompt struct {
	Text   string
	Type   positions.Type
	Rubric *rubric.Rubric
}

// Build assembles the prompt for in.Position. Positions with a dedicated
// rubric embed its framework; anything else gets the catalog criteria.
func Build(in Input) Prompt {
	typ := positions.TypeOf(in.Position)
	gen, ok := rubric.ForType(typ)
	if !ok {
		return Prompt{Text: buildGeneric(in), Type: typ}
	}
	r := gen(in.RequiredYears, in.FlexibleOnTitle)
	return Prompt{Text: buildRubric(in, r), Type: typ, Rubric: &r}
}

func buildRubric(in Input, r rubric.Rubric) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an experienced hiring manager at an HVAC company evaluating a resume for the position of %s.\n", in.Position)
	b.WriteString("Score the candidate strictly by the framework below. Do not invent information that is not in the resume.\n\n")
	b.WriteString(r.Framework)
	b.WriteString("\n")
	writeJobContext(&b, in)
	writeResume(&b, in.ResumeText)
	writeSteps(&b, rubricSteps(in))
	writeOutput(&b)
	return b.String()
}

func buildGeneric(in Input) string {
	c := positions.Criteria(in.Position)
	var b strings.Builder
	fmt.Fprintf(&b, "You are an experienced hiring manager at an HVAC company evaluating a resume for the position of %s.\n\n", in.Position)
	fmt.Fprintf(&b, "POSITION CRITERIA (%s)\n", c.Title)
	b.WriteString("Key skills:\n")
	for _, s := range c.KeySkills {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	fmt.Fprintf(&b, "Experience guidelines: %s\n", c.ExperienceGuidelines)
	fmt.Fprintf(&b, "Additional notes: %s\n\n", c.AdditionalNotes)

	t := rubric.TiersFor(in.RequiredYears)
	b.WriteString("EXPERIENCE TIERS\n")
	fmt.Fprintf(&b, "- required: %s or more years of relevant experience\n", rubric.FormatYears(t.Required))
	fmt.Fprintf(&b, "- close: %s to %s years (50%% to 95%% of required)\n", rubric.FormatYears(t.CloseMin), rubric.FormatYears(t.CloseMax))
	fmt.Fprintf(&b, "- not_close: less than %s years\n\n", rubric.FormatYears(t.CloseMin))

	b.WriteString("SCORING GUIDANCE\n")
	b.WriteString("- 80-100: meets the experience requirement with strong, relevant skills and certifications.\n")
	b.WriteString("- 50-79: partially meets the requirement or has transferable experience worth a conversation.\n")
	b.WriteString("- 0-49: lacks relevant experience or skills for this position.\n")
	if !in.FlexibleOnTitle {
		fmt.Fprintf(&b, "- This job requires an exact title match: if the candidate only holds equivalent titles, subtract %d points (minimum 1).\n", rubric.FlexibilityPenalty)
	}
	fmt.Fprintf(&b, "- If the candidate's current title is a senior or management role materially above this position, set isOverqualified to true and score %d-%d regardless of other factors.\n\n",
		rubric.OverqualifiedMin, rubric.OverqualifiedMax)

	writeJobContext(&b, in)
	writeResume(&b, in.ResumeText)
	writeSteps(&b, genericSteps(in))
	writeOutput(&b)
	return b.String()
}

func writeJobContext(b *strings.Builder, in Input) {
	b.WriteString("JOB DETAILS\n")
	fmt.Fprintf(b, "- Position: %s\n", in.Position)
	fmt.Fprintf(b, "- Required years of experience: %s\n", rubric.FormatYears(rubric.TiersFor(in.RequiredYears).Required))
	if in.FlexibleOnTitle {
		b.WriteString("- Title flexibility: equivalent titles accepted\n")
	} else {
		b.WriteString("- Title flexibility: exact title required\n")
	}
	loc := strings.TrimSpace(in.JobLocation)
	if loc == "" {
		loc = "not specified (treat distance as <30mi)"
	}
	fmt.Fprintf(b, "- Job location: %s\n\n", loc)
}

func writeResume(b *strings.Builder, text string) {
	b.WriteString("RESUME\n<<<RESUME_START>>>\n")
	b.WriteString(strings.TrimSpace(text))
	b.WriteString("\n<<<RESUME_END>>>\n\n")
}

func writeSteps(b *strings.Builder, steps []string) {
	b.WriteString("STEP-BY-STEP INSTRUCTIONS\n")
	for i, s := range steps {
		fmt.Fprintf(b, "%d. %s\n", i+1, s)
	}
	b.WriteString("\n")
}

func writeOutput(b *strings.Builder) {
	b.WriteString("OUTPUT FORMAT\n")
	b.WriteString("Respond with ONLY one JSON object in exactly this shape. No markdown, no commentary before or after.\n")
	b.WriteString(outputExample)
	b.WriteString("\n")
}

func rubricSteps(in Input) []string {
	steps := []string{
		"List every job in the resume with employer, title and start/end dates. Treat \"present\" as today.",
		"Compute totalYears across all jobs and relevantYears for this position, counting overlapping jobs once and helper time at half weight.",
		"Classify the experience tier (required, close, not_close) using the EXPERIENCE TIERS section.",
		"Compare the candidate's relevant titles with the exact and equivalent title lists and set experience.titleMatch.",
		"List certifications and skills that are explicitly written in the resume. Do not infer any.",
		"Rate resume quality as good, mid or poor using the RESUME QUALITY definitions.",
		"Find the longest employment gap in the last 5 years and classify it as none, small or large.",
		"Decide whether the candidate is job hoppy using the JOB HOPPING definition.",
		"Estimate the distance bucket between the candidate's location and the job location.",
		"Look up the SCORING MATRIX row and choose rubricScore inside its range.",
	}
	if positions.TypeOf(in.Position) == positions.TypeApprentice {
		steps = append(steps, "Apply the ENTRY-LEVEL RULE when the candidate has less than 1 year of hands-on experience and set giveThemAChance.")
	}
	if !in.FlexibleOnTitle {
		steps = append(steps, fmt.Sprintf("Apply the title flexibility penalty (-%d, minimum 1) when titleMatch is \"equivalent\".", rubric.FlexibilityPenalty))
	}
	steps = append(steps,
		"Check the OVERQUALIFICATION OVERRIDE against the current title and apply it last.",
		"Set overallScore to the final score and pick hiringRecommendation: strongly_recommend for 90+, recommend for 80-89, consider for 50-79, not_recommended below 50.",
	)
	return steps
}

func genericSteps(in Input) []string {
	steps := []string{
		"List every job in the resume with employer, title and dates.",
		"Compute totalYears and relevantYears for this position and classify the experience tier.",
		"Compare the candidate's titles with the position and set experience.titleMatch.",
		"List explicitly written certifications and match the key skills above.",
		"Rate resume quality, the longest recent work gap and whether the candidate is job hoppy.",
		"Estimate the distance bucket between the candidate and the job location.",
		"Choose rubricScore from the SCORING GUIDANCE.",
	}
	if !in.FlexibleOnTitle {
		steps = append(steps, "Apply the exact-title penalty when titleMatch is \"equivalent\".")
	}
	steps = append(steps,
		"Apply the overqualification rule last.",
		"Set overallScore and hiringRecommendation.",
	)
	return steps
}

// Repair asks the model to fix a response that failed validation.
func Repair(original string, previous string, problems []string) string {
	var b strings.Builder
	b.WriteString(original)
	b.WriteString("\n\nYOUR PREVIOUS RESPONSE WAS INVALID\n")
	b.WriteString("Problems:\n")
	for _, p := range problems {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	b.WriteString("Previous response:\n")
	b.WriteString(previous)
	b.WriteString("\n\nReturn the corrected JSON object only, in the exact OUTPUT FORMAT.\n")
	return b.String()
}
