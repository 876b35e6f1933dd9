package models

// Rfp represents a buyer's request for proposal
type Rfp struct {
	ID                    string `json:"id"`
	Title                 string `json:"title"`
	Description           string `json:"description"`
	Buyer                 string `json:"buyer"`
	Budget                string `json:"budget"`
	Quantity              string `json:"quantity"`
	DeliveryLocation      string `json:"delivery_location"`
	RequiredCertification string `json:"required_certification"`
	Deadline              string `json:"deadline"`
	Status                string `json:"status"`
	CreatedAt             string `json:"created_at"`
}
