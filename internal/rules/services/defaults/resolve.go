package defaults

import (
	"github.com/haukened/rr-gamerules/internal/rules/domain"
	"github.com/haukened/rr-gamerules/internal/rules/repos/ruledoc"
)

// Resolve returns the defaults that apply to (mode, worldType), in document
// order. Entries of matching selector sections are spliced in at the position
// of the specific bucket, so generic and specific entries interleave exactly
// as written. Later entries for the same key win when applied.
func Resolve(doc ruledoc.Document, mode domain.GameMode, worldType string) []domain.DefaultRuleEntry {
	entries := make([]domain.DefaultRuleEntry, 0, doc.Len())
	for _, node := range doc.Nodes {
		switch node.Kind {
		case ruledoc.NodeEntry:
			entries = append(entries, node.Entry)
		case ruledoc.NodeBucket:
			for _, section := range node.Sections {
				if Matches(section.Selector, mode, worldType) {
					entries = append(entries, section.Entries...)
				}
			}
		}
	}
	return entries
}
