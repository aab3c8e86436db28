package domain

import (
	"encoding/json"
	"strings"
)

// Source sentinels used when an answer legitimately cites nothing.
// Validation requires every StructuredAnswer field to be non-empty
// after trimming, so the no-source case carries explicit sentinel
// text rather than empty strings.
const (
	// NoSourceExcerpt marks an answer that used no source excerpt.
	NoSourceExcerpt = "no source"

	// NoSourceFileName marks an answer that used no source file.
	NoSourceFileName = "no source"
)

// StructuredAnswer is the validated result of one query. All three
// fields are non-empty after trimming. An instance is produced once
// per query and never mutated.
type StructuredAnswer struct {
	// Answer is the conversational answer text.
	Answer string `json:"answer"`

	// SourceExcerpt is the text excerpt supporting the answer, or
	// NoSourceExcerpt when nothing was cited.
	SourceExcerpt string `json:"source_excerpt"`

	// SourceFileName is the file the excerpt came from, or
	// NoSourceFileName when nothing was cited.
	SourceFileName string `json:"source_file_name"`
}

// HasSource returns true if the answer cites a real excerpt rather
// than the no-source sentinels.
func (a StructuredAnswer) HasSource() bool {
	return a.SourceExcerpt != NoSourceExcerpt || a.SourceFileName != NoSourceFileName
}

// ValidateAnswer parses a raw model output and validates it against
// the StructuredAnswer shape. The check is independent of whichever
// model produced the text: non-JSON output, wrong field types, and
// fields that are missing or empty after trimming are all rejected
// with a *ValidationError. Nothing is coerced or repaired.
func ValidateAnswer(raw string) (*StructuredAnswer, error) {
	cleaned := stripCodeFence(raw)
	if cleaned == "" {
		return nil, &ValidationError{Field: "output", Reason: "model returned no content"}
	}

	var ans StructuredAnswer
	if err := json.Unmarshal([]byte(cleaned), &ans); err != nil {
		return nil, &ValidationError{Field: "output", Reason: "not a valid JSON object: " + err.Error()}
	}

	fields := []struct {
		name  string
		value string
	}{
		{"answer", ans.Answer},
		{"source_excerpt", ans.SourceExcerpt},
		{"source_file_name", ans.SourceFileName},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return nil, &ValidationError{Field: f.name, Reason: "missing or empty"}
		}
	}

	ans.Answer = strings.TrimSpace(ans.Answer)
	ans.SourceExcerpt = strings.TrimSpace(ans.SourceExcerpt)
	ans.SourceFileName = strings.TrimSpace(ans.SourceFileName)
	return &ans, nil
}

// stripCodeFence removes a surrounding markdown code fence, which
// some models wrap around JSON output even in JSON mode.
func stripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimSuffix(strings.TrimPrefix(t, "```"), "```")
	if i := strings.IndexByte(t, '\n'); i >= 0 && !strings.ContainsAny(t[:i], "{}") {
		// The opening fence line holds only a language tag.
		t = t[i+1:]
	}
	return strings.TrimSpace(t)
}
