package harness

import "github.com/roach88/tenniscalc/internal/ingest"

// TranscriptEntry records one query and what it produced.
type TranscriptEntry struct {
	Query  string `json:"query"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"` // error code when the query failed
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every query and assertion matched.
	Pass bool `json:"pass"`

	// Token is the ingestion token the tournament was saved under.
	Token string `json:"token"`

	// Ingested and Skipped come from the ingestion report.
	Ingested []string         `json:"ingested"`
	Skipped  []ingest.Failure `json:"skipped,omitempty"`

	// IngestError is the error code ingestion failed with, if any.
	IngestError string `json:"ingest_error,omitempty"`

	// Transcript holds every query in execution order.
	Transcript []TranscriptEntry `json:"transcript"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:       true,
		Ingested:   []string{},
		Transcript: []TranscriptEntry{},
		Errors:     []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
