package analyzer

import (
	"math"
)

// Hiring recommendations the model may return.
const (
	RecommendStrongly = "strongly_recommend"
	Recommend         = "recommend"
	RecommendConsider = "consider"
	RecommendNot      = "not_recommended"
)

// Title match values reported under experience.titleMatch.
const (
	TitleExact      = "exact"
	TitleEquivalent = "equivalent"
	TitleNone       = "none"
)

// Result is the validated analysis returned by the model plus derived fields.
type Result struct {
	OverallScore            int                 `json:"overallScore"`
	RubricScore             *int                `json:"rubricScore,omitempty"`
	Summary                 string              `json:"summary"`
	CandidateInfo           CandidateInfo       `json:"candidateInfo"`
	TechnicalSkills         SkillsSection       `json:"technicalSkills"`
	Certifications          CertificationsBlock `json:"certifications"`
	Experience              Experience          `json:"experience"`
	PresentationQuality     Presentation        `json:"presentationQuality"`
	Distance                Distance            `json:"distance"`
	Strengths               []string            `json:"strengths"`
	Weaknesses              []string            `json:"weaknesses"`
	Recommendations         []string            `json:"recommendations"`
	HiringRecommendation    string              `json:"hiringRecommendation"`
	IsOverqualified         bool                `json:"isOverqualified"`
	OverqualificationReason string              `json:"overqualificationReason,omitempty"`
	GiveThemAChance         bool                `json:"giveThemAChance"`
	ScoreOutOf10            int                 `json:"scoreOutOf10"`
	PolicyAdjustment        *Adjustment         `json:"policyAdjustment,omitempty"`
}

type CandidateInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type SkillsSection struct {
	Score  int      `json:"score"`
	Skills []string `json:"skills"`
	Notes  string   `json:"notes"`
}

type CertificationsBlock struct {
	Score  int      `json:"score"`
	Listed []string `json:"listed"`
	Notes  string   `json:"notes"`
}

type Experience struct {
	TotalYears    float64 `json:"totalYears"`
	RelevantYears float64 `json:"relevantYears"`
	Tier          string  `json:"tier"`
	CurrentTitle  string  `json:"currentTitle"`
	TitleMatch    string  `json:"titleMatch"`
	WorkGap       string  `json:"workGap"`
	JobHoppy      bool    `json:"jobHoppy"`
	Notes         string  `json:"notes"`
}

type Presentation struct {
	Score  int    `json:"score"`
	Rating string `json:"rating"`
	Notes  string `json:"notes"`
}

type Distance struct {
	Bucket string `json:"bucket"`
	Notes  string `json:"notes"`
}

// ScoreOutOf10 converts a 0-100 score to the 0-10 display scale.
func ScoreOutOf10(overall int) int {
	return int(math.Round(float64(overall) / 10))
}
