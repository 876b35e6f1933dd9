package models

// Bid represents an MSME's bid against a buyer's RFP
type Bid struct {
	ID           string   `json:"id"`
	RfpID        string   `json:"rfp_id"`
	MsmeID       string   `json:"msme_id"`
	MsmeName     string   `json:"msme_name"`
	Proposal     string   `json:"proposal"`
	Budget       string   `json:"budget"`
	Price        int      `json:"price"`
	Timeline     string   `json:"timeline"`
	DeliveryTime string   `json:"delivery_time"`
	Status       string   `json:"status"`
	SubmittedAt  string   `json:"submitted_at"`
	CreatedAt    string   `json:"created_at"`
	Score        int      `json:"score"`
	FitScore     int      `json:"fit_score"`
	Notes        string   `json:"notes"`
	Strengths    []string `json:"strengths"`
}
