package taxonomy

import (
	"testing"

	"github.com/overruled/enforcement-search/internal/core/domain"
)

func TestApplyMapsKnownValuesToCodes(t *testing.T) {
	mapper, err := NewMapper()
	if err != nil {
		t.Fatalf("NewMapper() error = %v", err)
	}

	fs := domain.NewFilterSet()
	fs.DocumentType = []string{"Enforcement Action", "Voluntary Disclosure"}
	fs.Program = []string{"Iran"}
	fs.LegalIssue = []string{"Cuba Sanctions"}
	fs.Industry = []string{"Shipping"}

	mapped := mapper.Apply(fs)

	if mapped.DocumentType[0] != "1" || mapped.DocumentType[1] != "2" {
		t.Fatalf("document types not remapped: %v", mapped.DocumentType)
	}
	if mapped.Program[0] != "2" {
		t.Fatalf("program not remapped: %v", mapped.Program)
	}
	if mapped.LegalIssue[0] != "2" {
		t.Fatalf("legal issue not remapped: %v", mapped.LegalIssue)
	}
	if mapped.Industry[0] != "2" {
		t.Fatalf("industry not remapped: %v", mapped.Industry)
	}
}

func TestApplyPassesUnknownValuesThrough(t *testing.T) {
	mapper, err := NewMapper()
	if err != nil {
		t.Fatalf("NewMapper() error = %v", err)
	}

	fs := domain.NewFilterSet()
	fs.Program = []string{"Venezuela"}
	fs.DocumentType = []string{"Press Release"}

	mapped := mapper.Apply(fs)

	if mapped.Program[0] != "Venezuela" {
		t.Fatalf("unknown program should pass through, got %v", mapped.Program)
	}
	if mapped.DocumentType[0] != "Press Release" {
		t.Fatalf("unknown document type should pass through, got %v", mapped.DocumentType)
	}
}

func TestApplyLeavesUnmappedFieldsAlone(t *testing.T) {
	mapper, err := NewMapper()
	if err != nil {
		t.Fatalf("NewMapper() error = %v", err)
	}

	fs := domain.NewFilterSet()
	fs.RegulatoryProvision = []string{"31 CFR 560.204"}
	fs.KeyWords = `"global distribution system"`

	mapped := mapper.Apply(fs)

	if mapped.RegulatoryProvision[0] != "31 CFR 560.204" {
		t.Fatalf("regulatory provision changed: %v", mapped.RegulatoryProvision)
	}
	if mapped.KeyWords != `"global distribution system"` {
		t.Fatalf("keywords changed: %q", mapped.KeyWords)
	}
}
