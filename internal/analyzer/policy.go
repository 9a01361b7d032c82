package analyzer

import (
	"hvac-ats-backend/internal/rubric"
)

// Adjustment records how the deterministic score policy changed a reported
// score. It is stored with the result so reviewers can see both numbers.
type Adjustment struct {
	ReportedScore   int  `json:"reportedScore"`
	RubricScore     int  `json:"rubricScore"`
	FinalScore      int  `json:"finalScore"`
	PenaltyApplied  bool `json:"penaltyApplied"`
	OverrideApplied bool `json:"overrideApplied"`
}

// Changed reports whether the final score differs from what the model sent.
func (a Adjustment) Changed() bool {
	return a.FinalScore != a.ReportedScore
}

// ApplyPolicy recomputes the final score from the rubric score the model
// reported. The title penalty applies only to strict postings with an
// equivalent title match and never goes below 1. The overqualification band
// is applied last and supersedes the penalty.
//
// Without a rubricScore the reported overallScore is kept as the base, since
// the model was already told to apply the penalty itself.
func ApplyPolicy(r *Result, flexibleOnTitle bool) Adjustment {
	adj := Adjustment{ReportedScore: r.OverallScore, RubricScore: r.OverallScore}
	score := r.OverallScore
	if r.RubricScore != nil {
		adj.RubricScore = *r.RubricScore
		score = adj.RubricScore
		if !flexibleOnTitle && r.Experience.TitleMatch == TitleEquivalent {
			score = max(score-rubric.FlexibilityPenalty, 1)
			adj.PenaltyApplied = true
		}
	}
	if r.IsOverqualified {
		score = min(max(adj.RubricScore, rubric.OverqualifiedMin), rubric.OverqualifiedMax)
		adj.OverrideApplied = true
		adj.PenaltyApplied = false
	}
	adj.FinalScore = score

	if adj.Changed() {
		r.OverallScore = score
		r.HiringRecommendation = RecommendationFor(score)
	}
	return adj
}

// RecommendationFor maps a final score to the hiring recommendation bands
// used in the prompt.
func RecommendationFor(score int) string {
	switch {
	case score >= 90:
		return RecommendStrongly
	case score >= 80:
		return Recommend
	case score >= 50:
		return RecommendConsider
	default:
		return RecommendNot
	}
}
