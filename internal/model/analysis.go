package model

import "time"

// Risk is a single identified risk area within an analyzed document.
type Risk struct {
	Clause        string `json:"clause"`
	RiskLevel     string `json:"risk_level"`
	Description   string `json:"description"`
	Justification string `json:"justification"`
}

// Analysis is a persisted legal analysis record. DocumentText stores only an
// excerpt of the analyzed text, capped at 1000 characters.
type Analysis struct {
	ID            string    `json:"analysis_id"`
	DocumentTitle string    `json:"document_title"`
	AnalysisType  string    `json:"analysis_type"`
	AnalysisDate  time.Time `json:"analysis_date"`
	DocumentText  string    `json:"document_text"`
	Clauses       []string  `json:"clauses"`
	Risks         []Risk    `json:"risks"`
	Suggestions   []string  `json:"suggestions"`
	RiskLevel     string    `json:"risk_level"`
	Status        string    `json:"status"`
}
