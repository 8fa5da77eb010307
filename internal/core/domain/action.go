package domain

import "time"

// EnforcementAction is one row of the relational enforcement-actions table
// that backs statistical queries and the bulk import. String fields hold the
// sanitized source text; empty strings persist as NULL. The pointer fields
// are genuinely tri-state in the source data.
type EnforcementAction struct {
	ID          int
	Title       string
	BrowserFile string
	Ordinal     *float64
	DateIssued  *time.Time
	Published   *bool

	DocumentTypes string
	KeyFacts      string
	DocumentText  string
	Commentary    string

	NumberOfViolations *int
	SettlementAmount   *float64
	OfacPenalty        string
	AggregatePenalty   string
	BasePenalty        string
	StatutoryMaximum   string

	VSD               string
	Egregious         string
	WillfulOrReckless string
	Criminal          string

	RegulatoryProvisions         string
	LegalIssues                  string
	SanctionPrograms             string
	EnforcementCharacterizations string
	Industries                   string
	AggravatingFactors           string
	MitigatingFactors            string
}
