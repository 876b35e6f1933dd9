package models

// MsmeDashboard aggregates everything the MSME view needs
type MsmeDashboard struct {
	Profile         MsmeProfile     `json:"profile"`
	Offers          []Offer         `json:"offers"`
	Rfps            []Rfp           `json:"rfps"`
	Bids            []Bid           `json:"bids"`
	Recommendations Recommendations `json:"recommendations"`
}

// LenderDashboard aggregates everything the lender view needs
type LenderDashboard struct {
	Msmes         []MsmeSummary `json:"msmes"`
	Offers        []Offer       `json:"offers"`
	SuggestedRate float64       `json:"suggested_rate,omitempty"`
}

// BuyerDashboard aggregates everything the buyer view needs
type BuyerDashboard struct {
	Rfps      []Rfp            `json:"rfps"`
	BidsByRfp map[string][]Bid `json:"bids_by_rfp"`
	Profile   MsmeProfile      `json:"msme_profile"`
}
