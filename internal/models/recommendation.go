package models

// Recommendation is one annotated loan offer in a recommendation list
type Recommendation struct {
	Lender         string  `json:"lender"`
	Amount         string  `json:"amount"`
	InterestRate   float64 `json:"interest_rate"`
	Tenure         int     `json:"tenure"`
	MonthlyEMI     int     `json:"monthly_emi"`
	TotalCost      int     `json:"total_cost"`
	ProcessingFee  string  `json:"processing_fee"`
	FitScore       int     `json:"fit_score"`
	Recommendation string  `json:"recommendation"`
}

// Recommendations is the full result of a recommendation pass.
// Available is false when there were no offers to rank; Items is
// never nil.
type Recommendations struct {
	Available bool             `json:"available"`
	Message   string           `json:"message,omitempty"`
	Items     []Recommendation `json:"items"`
}
