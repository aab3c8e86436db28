package services

import (
	"fmt"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
)

// RenderCitation formats the source block of a validated answer for
// display: the cited file followed by the quoted excerpt. It returns
// an empty string when the answer cites nothing, so shells can skip
// the block entirely.
func RenderCitation(ans *domain.StructuredAnswer) string {
	if ans == nil || !ans.HasSource() {
		return ""
	}
	return fmt.Sprintf("Source: %s\n%q", ans.SourceFileName, ans.SourceExcerpt)
}
