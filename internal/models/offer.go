package models

// Offer represents a loan offer made by a lender to an MSME
type Offer struct {
	ID                 string  `json:"id"`
	Lender             string  `json:"lender"`
	LenderName         string  `json:"lender_name"`
	MsmeID             string  `json:"msme_id"`
	Amount             string  `json:"amount"` // Display string, e.g. "₹75 Lakhs"
	LoanAmount         int     `json:"loan_amount"`
	InterestRate       float64 `json:"interest_rate"`
	Tenure             int     `json:"tenure"` // Months
	ProcessingFee      int     `json:"processing_fee"`
	FitScore           int     `json:"fit_score"`
	Type               string  `json:"type"`
	Purpose            string  `json:"purpose"`
	Status             string  `json:"status"`
	CreatedAt          string  `json:"created_at"`
	CollateralRequired bool    `json:"collateral_required"`
	DisbursementTime   string  `json:"disbursement_time"`
}
