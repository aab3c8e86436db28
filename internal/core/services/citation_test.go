package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
)

func TestRenderCitation(t *testing.T) {
	ans := &domain.StructuredAnswer{
		Answer:         "The report covers Q3.",
		SourceExcerpt:  "revenue grew 12% in Q3",
		SourceFileName: "report.pdf",
	}

	got := RenderCitation(ans)

	assert.Equal(t, "Source: report.pdf\n\"revenue grew 12% in Q3\"", got)
}

func TestRenderCitation_NoSource(t *testing.T) {
	ans := &domain.StructuredAnswer{
		Answer:         "The question is unrelated to the provided documents.",
		SourceExcerpt:  domain.NoSourceExcerpt,
		SourceFileName: domain.NoSourceFileName,
	}

	assert.Empty(t, RenderCitation(ans))
}

func TestRenderCitation_Nil(t *testing.T) {
	assert.Empty(t, RenderCitation(nil))
}

func TestRenderCitation_PartialSentinel(t *testing.T) {
	// One concrete field is still a citation.
	ans := &domain.StructuredAnswer{
		Answer:         "See the manual.",
		SourceExcerpt:  "press the red button",
		SourceFileName: domain.NoSourceFileName,
	}

	assert.NotEmpty(t, RenderCitation(ans))
}
