package services

import (
	"strings"

	"github.com/docuask/docuask/models"
)

// ContextSeparator joins the retrieved chunk texts into the single context
// string handed to the language model.
const ContextSeparator = "\n---\n"

// AssembleContext extracts the "texto" metadata field from each match,
// dropping matches that lack it, and joins the survivors in retrieval order.
// An empty match list yields an empty string; the generator's system prompt
// handles the "no information" case.
func AssembleContext(matches []models.Match) string {
	parts := make([]string, 0, len(matches))
	for _, match := range matches {
		if match.Metadata == nil {
			continue
		}
		if texto, ok := match.Metadata["texto"].(string); ok {
			parts = append(parts, texto)
		}
	}
	return strings.Join(parts, ContextSeparator)
}
