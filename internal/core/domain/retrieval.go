package domain

// DocumentRecord is one raw hit as returned by the search backend, before
// the retriever assembles the section-delimited content.
type DocumentRecord struct {
	ID               string
	Title            string
	BrowserFile      string
	DateIssued       string
	DocumentTypes    string
	KeyFacts         string
	DocumentText     string
	Commentary       string
	SettlementAmount float64
	SanctionPrograms string
	Industries       string
	ReferenceCount   *int
	Score            float64
}

// RetrievedDocument is one hit from the hybrid search backend, scoped to a
// single request. Content is the section-delimited concatenation built by the
// retriever; Score is the backend's fused relevance score and the slice order
// returned by the backend is authoritative.
type RetrievedDocument struct {
	ID               string  `json:"id"`
	Content          string  `json:"content"`
	Title            string  `json:"title"`
	BrowserFile      string  `json:"browser_file"`
	DateIssued       string  `json:"date_issued"`
	DocumentTypes    string  `json:"document_types"`
	SettlementAmount float64 `json:"settlement_amount"`
	SanctionPrograms string  `json:"sanction_programs"`
	Industries       string  `json:"industries"`
	ReferenceCount   *int    `json:"reference_count,omitempty"`
	Score            float64 `json:"score"`
}

// Answer is the grounded synthesis output for one request.
type Answer struct {
	Text      string              `json:"text"`
	Documents []RetrievedDocument `json:"documents"`
}
