// Package analyzer runs one resume through the prompt, the model and the
// response checks, and returns a validated result.
package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hvac-ats-backend/internal/extract"
	"hvac-ats-backend/internal/llm"
	"hvac-ats-backend/internal/positions"
	"hvac-ats-backend/internal/prompt"
	"hvac-ats-backend/internal/shared/storage/object"
	"hvac-ats-backend/internal/shared/telemetry"
)

const cleanupTimeout = 10 * time.Second

// Analyzer scores resumes with an LLM.
type Analyzer struct {
	LLM   llm.Client
	Store object.Store
}

// Request identifies a stored resume and the posting it is scored against.
type Request struct {
	FileKey         string
	FileName        string
	Position        string
	RequiredYears   float64
	FlexibleOnTitle bool
	JobLocation     string
}

// Analysis is a validated result plus the metadata needed to persist it.
type Analysis struct {
	Result     *Result
	Raw        json.RawMessage
	PromptType positions.Type
	Provider   string
	Model      string
	Adjustment Adjustment
}

// AnalyzeResume extracts the stored resume, asks the model to score it and
// validates the reply. The stored file is deleted on every return path, so
// callers must not reuse FileKey afterwards.
func (a *Analyzer) AnalyzeResume(ctx context.Context, req Request) (*Analysis, error) {
	if a.Store == nil {
		return nil, errors.New("analyzer: missing object store")
	}
	defer a.cleanup(ctx, req.FileKey)

	text, err := extract.FromStore(ctx, a.Store, req.FileKey, req.FileName)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeText(ctx, prompt.Input{
		Position:        req.Position,
		RequiredYears:   req.RequiredYears,
		FlexibleOnTitle: req.FlexibleOnTitle,
		ResumeText:      text,
		JobLocation:     req.JobLocation,
	})
}

// AnalyzeText scores already extracted resume text.
func (a *Analyzer) AnalyzeText(ctx context.Context, in prompt.Input) (*Analysis, error) {
	if a.LLM == nil {
		return nil, errors.New("analyzer: missing llm client")
	}
	if strings.TrimSpace(in.ResumeText) == "" {
		return nil, extract.ErrNoText
	}

	p := prompt.Build(in)
	resp, err := a.LLM.Complete(ctx, llm.NewRequest(p.Text))
	if err != nil {
		return nil, fmt.Errorf("llm complete: %w", err)
	}

	doc, result, err := checkResponse(resp.Text)
	if err != nil {
		log.Printf("analysis response rejected attempt=1 position=%q error=%s", in.Position, err)
		repair := prompt.Repair(p.Text, resp.Text, problemsOf(err))
		resp, err = a.LLM.Complete(ctx, llm.NewRequest(repair))
		if err != nil {
			return nil, fmt.Errorf("llm complete repair: %w", err)
		}
		doc, result, err = checkResponse(resp.Text)
		if err != nil {
			log.Printf("analysis response rejected attempt=2 position=%q error=%s", in.Position, err)
			if errors.Is(err, ErrParseResponse) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}

	adj := ApplyPolicy(&result, in.FlexibleOnTitle)
	if adj.Changed() {
		result.PolicyAdjustment = &adj
		telemetry.Info("analysis.policy_adjusted", map[string]any{
			"position":         in.Position,
			"reported_score":   adj.ReportedScore,
			"rubric_score":     adj.RubricScore,
			"final_score":      adj.FinalScore,
			"penalty_applied":  adj.PenaltyApplied,
			"override_applied": adj.OverrideApplied,
		})
	}
	result.ScoreOutOf10 = ScoreOutOf10(result.OverallScore)

	out := &Analysis{
		Result:     &result,
		Raw:        json.RawMessage(doc),
		PromptType: p.Type,
		Provider:   resp.Provider,
		Model:      resp.Model,
		Adjustment: adj,
	}
	if id, ok := a.LLM.(llm.Identity); ok {
		if out.Provider == "" {
			out.Provider = id.Provider()
		}
		if out.Model == "" {
			out.Model = id.Model()
		}
	}
	return out, nil
}

// checkResponse pulls the JSON object out of a reply, validates it and
// decodes it. Every failure is eligible for the repair prompt.
func checkResponse(text string) (string, Result, error) {
	doc, err := ExtractJSON(text)
	if err != nil {
		return "", Result{}, err
	}
	if err := ValidateDocument(doc); err != nil {
		return "", Result{}, err
	}
	result, err := DecodeResult(doc)
	if err != nil {
		return "", Result{}, &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "cannot decode: " + err.Error()}}}
	}
	return doc, result, nil
}

func problemsOf(err error) []string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Problems()
	}
	return []string{"the reply did not contain a JSON object"}
}

// cleanup removes the uploaded resume even when ctx is already cancelled.
func (a *Analyzer) cleanup(ctx context.Context, key string) {
	if key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()
	if err := a.Store.Delete(ctx, key); err != nil && !errors.Is(err, object.ErrNotFound) {
		telemetry.Warn("analysis.cleanup_failed", map[string]any{
			"file_key": key,
			"error":    err.Error(),
		})
	}
}
