package cognitive

// Wire types for the search REST API. Field names follow the service
// contract, not Go conventions.

type vectorQuery struct {
	Kind   string    `json:"kind"`
	Vector []float32 `json:"vector"`
	K      int       `json:"k"`
	Fields string    `json:"fields"`
}

type searchRequest struct {
	Search        string        `json:"search"`
	VectorQueries []vectorQuery `json:"vectorQueries"`
	Select        string        `json:"select"`
	Top           int           `json:"top"`
}

type searchResponse struct {
	Value []searchHit `json:"value"`
}

type searchHit struct {
	Score              float64 `json:"@search.score"`
	ID                 string  `json:"ID"`
	BrowserFile        string  `json:"BrowserFile"`
	Title              string  `json:"Title"`
	KeyFacts           string  `json:"KeyFacts"`
	DocumentText       string  `json:"DocumentText"`
	Commentary         string  `json:"Commentary"`
	DateIssued         string  `json:"DateIssued"`
	Published          *bool   `json:"Published"`
	DocumentTypes      string  `json:"DocumentTypes"`
	NumberOfViolations *int    `json:"NumberOfViolations"`
	SettlementAmount   float64 `json:"SettlementAmount"`
	SanctionPrograms   string  `json:"SanctionPrograms"`
	Industries         string  `json:"Industries"`
	ReferenceCount     *int    `json:"ReferenceCount"`
}
