package domain

import "strings"

// OptimizationResult is the parsed output of the strategy stage. It is
// immutable once created and replaced wholesale on each new strategy run.
type OptimizationResult struct {
	ParameterSummary string `json:"parameterSummary"`
	FinalPrompt      string `json:"finalPrompt"`
	ChinesePrompt    string `json:"chinesePrompt"`
	Analysis         string `json:"analysis"`
}

// Complete reports whether the result satisfies the hard requirement of the
// schema: a non-empty finalPrompt.
func (r *OptimizationResult) Complete() bool {
	return r != nil && strings.TrimSpace(r.FinalPrompt) != ""
}

// ReferenceImage is a transport-neutral encoded image used to bias the
// generated cover: either a person likeness or a brand logo. It exists only
// in memory for the duration of one image-generation call.
type ReferenceImage struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64-encoded bytes
}

// Status enumerates the pipeline session states. Exactly one holds at a time.
type Status string

const (
	StatusIdle            Status = "idle"
	StatusAnalyzing       Status = "analyzing"
	StatusPromptSuccess   Status = "prompt_success"
	StatusGeneratingImage Status = "generating_image"
	StatusComplete        Status = "complete"
	StatusError           Status = "error"
)
