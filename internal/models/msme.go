package models

// MsmeProfile represents the detailed profile of a single MSME.
// List-valued fields are always non-nil after normalization.
type MsmeProfile struct {
	BusinessName     string `json:"business_name"`
	Location         string `json:"location"`
	ComplianceRating string `json:"compliance_rating"` // Grade string, e.g. "A+"
	PanVerified      bool   `json:"pan_verified"`
	GstinVerified    bool   `json:"gstin_verified"`
	UdyamVerified    bool   `json:"udyam_verified"`
	GstFiling        []any  `json:"gst_filing"`
	TurnoverData     []any  `json:"turnover_data"`
	CashFlowData     []any  `json:"cash_flow_data"`
}

// MsmeSummary represents one MSME entry in the lender-facing listing
type MsmeSummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Sector           string `json:"sector"`
	Industry         string `json:"industry"`
	Location         string `json:"location"`
	Turnover         int    `json:"turnover"`
	ComplianceRating int    `json:"compliance_rating"`
	StabilityScore   int    `json:"stability_score"`
	Status           string `json:"status"`
	CreatedAt        string `json:"created_at"`
}
