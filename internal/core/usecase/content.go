package usecase

import (
	"strconv"
	"strings"

	"github.com/overruled/enforcement-search/internal/core/domain"
)

// Combined content sections appear in a fixed order, each wrapped in explicit
// open/close markers so the synthesizer can attribute facts to a section.
func combineContent(rec domain.DocumentRecord) string {
	parts := make([]string, 0, 5)
	appendSection := func(name, body string) {
		if strings.TrimSpace(body) == "" {
			return
		}
		parts = append(parts, "=== "+name+" ===\n"+body+"\n=== END "+name+" ===")
	}

	appendSection("TITLE", rec.Title)
	appendSection("KEY FACTS", rec.KeyFacts)
	appendSection("DOCUMENT TEXT", rec.DocumentText)
	appendSection("COMMENTARY", rec.Commentary)
	if rec.ReferenceCount != nil {
		appendSection("REFERENCE COUNT", strconv.Itoa(*rec.ReferenceCount))
	}

	return strings.Join(parts, "\n\n")
}

func toRetrievedDocument(rec domain.DocumentRecord) domain.RetrievedDocument {
	return domain.RetrievedDocument{
		ID:               rec.ID,
		Content:          combineContent(rec),
		Title:            rec.Title,
		BrowserFile:      rec.BrowserFile,
		DateIssued:       rec.DateIssued,
		DocumentTypes:    rec.DocumentTypes,
		SettlementAmount: rec.SettlementAmount,
		SanctionPrograms: rec.SanctionPrograms,
		Industries:       rec.Industries,
		ReferenceCount:   rec.ReferenceCount,
		Score:            rec.Score,
	}
}
