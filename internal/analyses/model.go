package analyses

import (
	"encoding/json"
	"time"

	"hvac-ats-backend/internal/candidates"
	"hvac-ats-backend/internal/pipeline"
)

// Analysis is the persisted model output for one candidate.
type Analysis struct {
	ID                   string          `json:"id"`
	CandidateID          string          `json:"candidateId"`
	Position             string          `json:"position"`
	OverallScore         int             `json:"overallScore"`
	ScoreOutOf10         int             `json:"scoreOutOf10"`
	HiringRecommendation string          `json:"hiringRecommendation"`
	Result               json.RawMessage `json:"result"`
	Provider             string          `json:"provider"`
	Model                string          `json:"model"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// Outcome is everything produced by processing one candidate.
type Outcome struct {
	Candidate candidates.Candidate `json:"candidate"`
	Analysis  *Analysis            `json:"analysis,omitempty"`
	Pipeline  *pipeline.Entry      `json:"pipeline,omitempty"`
}
