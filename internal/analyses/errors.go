package analyses

import "errors"

var (
	ErrNotFound     = errors.New("analysis not found")
	ErrInvalidInput = errors.New("invalid upload")
	ErrTooManyFiles = errors.New("too many files in batch")
	// ErrAlreadyAnalyzed is returned when a candidate already has an analysis.
	ErrAlreadyAnalyzed = errors.New("candidate already analyzed")
)

// Failure codes logged with analysis.failed.
const (
	ErrorCodeUnsupportedFile = "UNSUPPORTED_FILE"
	ErrorCodeLLMTimeout      = "LLM_TIMEOUT"
	ErrorCodeLLMResponse     = "LLM_RESPONSE_INVALID"
	ErrorCodeLLMUpstream     = "LLM_UPSTREAM"
	ErrorCodeStorage         = "STORAGE_ERROR"
	ErrorCodeInternal        = "INTERNAL_ERROR"
)
