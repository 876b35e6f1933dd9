package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/msme-dost/marketplace/internal/models"
)

// Normalizer converts raw decoded collection documents into fully
// populated, typed records. It is a pure transformation: callers decide
// whether the result gets persisted.
type Normalizer struct {
	now func() time.Time
}

// New returns a Normalizer using the wall clock for date defaults.
func New() *Normalizer {
	return &Normalizer{now: time.Now}
}

// NewWithClock returns a Normalizer with an injected clock.
func NewWithClock(now func() time.Time) *Normalizer {
	return &Normalizer{now: now}
}

func (n *Normalizer) today() string {
	return n.now().Format("2006-01-02")
}

// Normalize dispatches on the collection kind. The result is a
// []models.Offer, []models.Bid, models.MsmeProfile, []models.Rfp or
// []models.MsmeSummary respectively.
func (n *Normalizer) Normalize(kind Kind, raw any) (any, error) {
	switch kind {
	case KindOffers:
		return n.Offers(raw), nil
	case KindBids:
		return n.Bids(raw), nil
	case KindMsmeProfile:
		return n.Profile(raw), nil
	case KindRfps:
		return n.Rfps(raw), nil
	case KindMsmes:
		return n.Msmes(raw), nil
	}
	return nil, fmt.Errorf("unknown collection kind %q", kind)
}

// AutoFix decodes a raw collection file, normalizes it and reports whether
// the round-tripped encoding differs from the input, so the caller can
// decide whether to persist the repaired copy.
func (n *Normalizer) AutoFix(kind Kind, raw []byte) (any, bool, error) {
	var decoded any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, false, fmt.Errorf("decode %s: %w", kind, err)
		}
	}

	normalized, err := n.Normalize(kind, decoded)
	if err != nil {
		return nil, false, err
	}
	return normalized, !roundTripsEqual(decoded, normalized), nil
}

// roundTripsEqual reports whether the normalized value re-encodes to the
// same document as the original decoded input.
func roundTripsEqual(original, normalized any) bool {
	enc, err := json.Marshal(normalized)
	if err != nil {
		return false
	}
	var round any
	if err := json.Unmarshal(enc, &round); err != nil {
		return false
	}
	return reflect.DeepEqual(original, round)
}

// records coerces a raw document into its element maps. Anything that is
// not a list yields no records; non-object elements yield an all-defaults
// record.
func records(raw any) ([]map[string]any, bool) {
	items, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	out := make([]map[string]any, len(items))
	for i, item := range items {
		m, _ := item.(map[string]any)
		out[i] = m // nil map is fine: every lookup falls back to defaults
	}
	return out, true
}

// Offers normalizes a raw offers document.
func (n *Normalizer) Offers(raw any) []models.Offer {
	items, ok := records(raw)
	if !ok {
		return []models.Offer{}
	}

	offers := make([]models.Offer, 0, len(items))
	for _, m := range items {
		offers = append(offers, models.Offer{
			ID:                 stringEither(m, "UNKNOWN", "id"),
			Lender:             stringEither(m, "Unknown Lender", "lender"),
			LenderName:         stringEither(m, "Unknown Lender", "lender_name", "lender"),
			MsmeID:             stringEither(m, "UNKNOWN", "msme_id"),
			Amount:             stringEither(m, "₹0", "amount"),
			LoanAmount:         intEither(m, 0, "loan_amount"),
			InterestRate:       floatEither(m, 0, "interest_rate"),
			Tenure:             intEither(m, 0, "tenure"),
			ProcessingFee:      intEither(m, 0, "processing_fee"),
			FitScore:           intEither(m, 0, "fit_score"),
			Type:               stringEither(m, "Term Loan", "type"),
			Purpose:            stringEither(m, "Working Capital", "purpose"),
			Status:             stringEither(m, "Active", "status"),
			CreatedAt:          stringEither(m, n.today(), "created_at"),
			CollateralRequired: boolField(m, "collateral_required", false),
			DisbursementTime:   stringEither(m, "7-10 days", "disbursement_time"),
		})
	}
	return offers
}

// Bids normalizes a raw bids document. score and fit_score default from
// each other, notes defaults from the proposal and created_at from the
// submission date, always resolved against the record's own raw fields.
func (n *Normalizer) Bids(raw any) []models.Bid {
	items, ok := records(raw)
	if !ok {
		return []models.Bid{}
	}

	bids := make([]models.Bid, 0, len(items))
	for _, m := range items {
		bids = append(bids, models.Bid{
			ID:           stringEither(m, "UNKNOWN", "id"),
			RfpID:        stringEither(m, "UNKNOWN", "rfp_id"),
			MsmeID:       stringEither(m, "UNKNOWN", "msme_id"),
			MsmeName:     stringEither(m, "Unknown MSME", "msme_name"),
			Proposal:     stringEither(m, "No proposal provided", "proposal"),
			Budget:       stringEither(m, "₹0", "budget"),
			Price:        intEither(m, 0, "price"),
			Timeline:     stringEither(m, "Not specified", "timeline"),
			DeliveryTime: stringEither(m, "Not specified", "delivery_time"),
			Status:       stringEither(m, "Submitted", "status"),
			SubmittedAt:  stringEither(m, n.today(), "submitted_at"),
			CreatedAt:    stringEither(m, n.today(), "created_at", "submitted_at"),
			Score:        intEither(m, 0, "score", "fit_score"),
			FitScore:     intEither(m, 0, "fit_score", "score"),
			Notes:        stringEither(m, "No notes provided", "notes", "proposal"),
			Strengths:    stringList(m, "strengths", []string{"Quality service"}),
		})
	}
	return bids
}

// Profile normalizes the single MSME profile object.
func (n *Normalizer) Profile(raw any) models.MsmeProfile {
	m, _ := raw.(map[string]any)
	return models.MsmeProfile{
		BusinessName:     stringEither(m, "Unknown Business", "business_name"),
		Location:         stringEither(m, "Not specified", "location"),
		ComplianceRating: stringEither(m, "0", "compliance_rating"),
		PanVerified:      boolField(m, "pan_verified", false),
		GstinVerified:    boolField(m, "gstin_verified", false),
		UdyamVerified:    boolField(m, "udyam_verified", false),
		GstFiling:        anyList(m, "gst_filing"),
		TurnoverData:     anyList(m, "turnover_data"),
		CashFlowData:     anyList(m, "cash_flow_data"),
	}
}

// Rfps normalizes a raw RFPs document. The deadline default is relative to
// normalization time: thirty days out.
func (n *Normalizer) Rfps(raw any) []models.Rfp {
	items, ok := records(raw)
	if !ok {
		return []models.Rfp{}
	}

	deadline := n.now().AddDate(0, 0, 30).Format("2006-01-02")
	rfps := make([]models.Rfp, 0, len(items))
	for _, m := range items {
		rfps = append(rfps, models.Rfp{
			ID:                    stringEither(m, "UNKNOWN", "id"),
			Title:                 stringEither(m, "Untitled RFP", "title"),
			Description:           stringEither(m, "No description provided", "description"),
			Buyer:                 stringEither(m, "Unknown Buyer", "buyer"),
			Budget:                stringEither(m, "₹0", "budget"),
			Quantity:              stringEither(m, "Not specified", "quantity"),
			DeliveryLocation:      stringEither(m, "Not specified", "delivery_location"),
			RequiredCertification: stringEither(m, "None", "required_certification"),
			Deadline:              stringEither(m, deadline, "deadline"),
			Status:                stringEither(m, "Active", "status"),
			CreatedAt:             stringEither(m, n.today(), "created_at"),
		})
	}
	return rfps
}

// Msmes normalizes the lender-facing MSME listing.
func (n *Normalizer) Msmes(raw any) []models.MsmeSummary {
	items, ok := records(raw)
	if !ok {
		return []models.MsmeSummary{}
	}

	msmes := make([]models.MsmeSummary, 0, len(items))
	for _, m := range items {
		msmes = append(msmes, models.MsmeSummary{
			ID:               stringEither(m, "UNKNOWN", "id"),
			Name:             stringEither(m, "Unknown MSME", "name"),
			Sector:           stringEither(m, "Not specified", "sector"),
			Industry:         stringEither(m, "Not specified", "industry", "sector"),
			Location:         stringEither(m, "Not specified", "location"),
			Turnover:         intEither(m, 0, "turnover"),
			ComplianceRating: intEither(m, 0, "compliance_rating"),
			StabilityScore:   intEither(m, 0, "stability_score"),
			Status:           stringEither(m, "Active", "status"),
			CreatedAt:        stringEither(m, n.today(), "created_at"),
		})
	}
	return msmes
}
