package domain

// TriState encodes yes/no/not-stated filter values: 1=yes, 0=no, -1=not stated.
type TriState int

const (
	TriYes       TriState = 1
	TriNo        TriState = 0
	TriNotStated TriState = -1
)

// FilterSet is the structured search parameter payload extracted from a
// question on the structured route. Scalar fields use pointers so that
// "unset" stays distinct from zero values; list fields are always non-nil in
// the emitted payload. The payload is handed back to the caller as-is — no
// search is executed against it inside this service.
type FilterSet struct {
	DateIssuedBegin             *int       `json:"DateIssuedBegin"`
	DateIssuedEnd               *int       `json:"DateIssuedEnd"`
	LegalIssue                  []string   `json:"LegalIssue"`
	Program                     []string   `json:"Program"`
	DocumentType                []string   `json:"DocumentType"`
	RegulatoryProvision         []string   `json:"RegulatoryProvision"`
	Published                   *bool      `json:"Published"`
	EnforcementCharacterization []string   `json:"EnforcementCharacterization"`
	NumberOfViolationsLow       *int       `json:"NumberOfViolationsLow"`
	NumberOfViolationsHigh      *int       `json:"NumberOfViolationsHigh"`
	OFACPenalty                 []string   `json:"OFACPenalty"`
	AggregatePenalty            []string   `json:"AggregatePenalty"`
	Industry                    []string   `json:"Industry"`
	RespondentNationality       []string   `json:"RespondentNationality"`
	VoluntaryDisclosure         []TriState `json:"VoluntaryDisclosure"`
	EgregiousCase               []TriState `json:"EgregiousCase"`
	KeyWords                    string     `json:"KeyWords"`
	ExcludeCommentaries         bool       `json:"ExcludeCommentaries"`
}

// NewFilterSet returns an empty filter set with every list field allocated.
func NewFilterSet() FilterSet {
	return FilterSet{
		LegalIssue:                  []string{},
		Program:                     []string{},
		DocumentType:                []string{},
		RegulatoryProvision:         []string{},
		EnforcementCharacterization: []string{},
		OFACPenalty:                 []string{},
		AggregatePenalty:            []string{},
		Industry:                    []string{},
		RespondentNationality:       []string{},
		VoluntaryDisclosure:         []TriState{},
		EgregiousCase:               []TriState{},
	}
}

// KeywordOnlyFilterSet is the extractor's last-resort fallback: the original
// question carried verbatim in the keyword field, everything else unset.
func KeywordOnlyFilterSet(question string) FilterSet {
	fs := NewFilterSet()
	fs.KeyWords = question
	return fs
}

// Normalize replaces any nil list field with an empty list. Model output that
// omits a list must still serialize as [] on the wire.
func (fs *FilterSet) Normalize() {
	if fs.LegalIssue == nil {
		fs.LegalIssue = []string{}
	}
	if fs.Program == nil {
		fs.Program = []string{}
	}
	if fs.DocumentType == nil {
		fs.DocumentType = []string{}
	}
	if fs.RegulatoryProvision == nil {
		fs.RegulatoryProvision = []string{}
	}
	if fs.EnforcementCharacterization == nil {
		fs.EnforcementCharacterization = []string{}
	}
	if fs.OFACPenalty == nil {
		fs.OFACPenalty = []string{}
	}
	if fs.AggregatePenalty == nil {
		fs.AggregatePenalty = []string{}
	}
	if fs.Industry == nil {
		fs.Industry = []string{}
	}
	if fs.RespondentNationality == nil {
		fs.RespondentNationality = []string{}
	}
	if fs.VoluntaryDisclosure == nil {
		fs.VoluntaryDisclosure = []TriState{}
	}
	if fs.EgregiousCase == nil {
		fs.EgregiousCase = []TriState{}
	}
}
