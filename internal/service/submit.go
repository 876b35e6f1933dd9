package service

import (
	"fmt"
	"time"

	"github.com/msme-dost/marketplace/internal/models"
	"github.com/msme-dost/marketplace/internal/repository"
)

// OfferInput is a lender's loan offer form
type OfferInput struct {
	MsmeID        string  `json:"msme_id"`
	LoanAmount    int     `json:"loan_amount"`
	InterestRate  float64 `json:"interest_rate"`
	Tenure        int     `json:"tenure"`
	ProcessingFee int     `json:"processing_fee"`
}

// BidInput is an MSME's bid form
type BidInput struct {
	RfpID        string `json:"rfp_id"`
	Price        int    `json:"price"`
	DeliveryTime string `json:"delivery_time"`
	Notes        string `json:"notes"`
}

// RfpInput is a buyer's RFP form
type RfpInput struct {
	Title                 string `json:"title"`
	Quantity              int    `json:"quantity"`
	DeliveryLocation      string `json:"delivery_location"`
	RequiredCertification string `json:"required_certification"`
	Deadline              string `json:"deadline"`
}

// SubmitOffer validates and appends a new loan offer. The offer ID is
// sequential, derived from the current collection length.
func (s *Service) SubmitOffer(lenderEmail string, in OfferInput) (models.Offer, error) {
	if in.MsmeID == "" {
		return models.Offer{}, fmt.Errorf("%w: msme_id is required", ErrValidation)
	}
	if in.LoanAmount < 100000 {
		return models.Offer{}, fmt.Errorf("%w: loan amount must be at least ₹1,00,000", ErrValidation)
	}
	if in.InterestRate < 8 || in.InterestRate > 25 {
		return models.Offer{}, fmt.Errorf("%w: interest rate must be between 8%% and 25%%", ErrValidation)
	}
	if in.Tenure < 12 || in.Tenure > 84 {
		return models.Offer{}, fmt.Errorf("%w: tenure must be between 12 and 84 months", ErrValidation)
	}
	if in.ProcessingFee < 0 {
		return models.Offer{}, fmt.Errorf("%w: processing fee cannot be negative", ErrValidation)
	}

	offers, err := s.loadOffers()
	if err != nil {
		return models.Offer{}, err
	}

	newOffer := s.norm.Offers([]any{map[string]any{
		"id":             fmt.Sprintf("OFFER%03d", len(offers)+1),
		"lender":         lenderEmail,
		"msme_id":        in.MsmeID,
		"loan_amount":    in.LoanAmount,
		"interest_rate":  in.InterestRate,
		"tenure":         in.Tenure,
		"processing_fee": in.ProcessingFee,
	}})[0]

	offers = append(offers, newOffer)
	if err := s.repo.WriteCollection(repository.CollectionOffers, offers); err != nil {
		return models.Offer{}, err
	}
	s.log.Infof("Offer %s submitted by %s for %s", newOffer.ID, lenderEmail, in.MsmeID)

	if s.mail != nil {
		if to, ok := s.userEmailByRole("msme"); ok {
			if err := s.mail.SendOfferReceived(to, newOffer.LenderName, in.LoanAmount, in.InterestRate, in.Tenure); err != nil {
				s.log.Warnf("Offer notification not delivered: %v", err)
			}
		}
	}

	return newOffer, nil
}

// SubmitBid validates a bid, scores its fit against the target RFP and
// appends it.
func (s *Service) SubmitBid(in BidInput) (models.Bid, error) {
	if in.RfpID == "" {
		return models.Bid{}, fmt.Errorf("%w: rfp_id is required", ErrValidation)
	}
	if in.Price < 1000 {
		return models.Bid{}, fmt.Errorf("%w: price must be at least ₹1,000", ErrValidation)
	}
	if in.DeliveryTime == "" || len(in.DeliveryTime) > 100 {
		return models.Bid{}, fmt.Errorf("%w: delivery time must be 1-100 characters", ErrValidation)
	}
	if in.Notes == "" || len(in.Notes) > 500 {
		return models.Bid{}, fmt.Errorf("%w: notes must be 1-500 characters", ErrValidation)
	}

	bids, err := s.loadBids()
	if err != nil {
		return models.Bid{}, err
	}
	rfps, err := s.loadRfps()
	if err != nil {
		return models.Bid{}, err
	}
	profile, err := s.loadProfile()
	if err != nil {
		return models.Bid{}, err
	}

	var rfp *models.Rfp
	for i := range rfps {
		if rfps[i].ID == in.RfpID {
			rfp = &rfps[i]
			break
		}
	}
	if rfp == nil {
		return models.Bid{}, fmt.Errorf("rfp %s: %w", in.RfpID, ErrNotFound)
	}

	fitScore := s.scorer.Score(profile, *rfp)

	newBid := s.norm.Bids([]any{map[string]any{
		"id":            fmt.Sprintf("BID%03d", len(bids)+1),
		"rfp_id":        in.RfpID,
		"msme_id":       CurrentMsmeID,
		"price":         in.Price,
		"delivery_time": in.DeliveryTime,
		"notes":         in.Notes,
		"fit_score":     fitScore,
	}})[0]

	bids = append(bids, newBid)
	if err := s.repo.WriteCollection(repository.CollectionBids, bids); err != nil {
		return models.Bid{}, err
	}
	s.log.Infof("Bid %s submitted on %s with fit score %d", newBid.ID, in.RfpID, fitScore)

	if s.mail != nil && rfp.Buyer != "" {
		if err := s.mail.SendBidReceived(rfp.Buyer, profile.BusinessName, rfp.Title, in.Price, fitScore); err != nil {
			s.log.Warnf("Bid notification not delivered: %v", err)
		}
	}

	return newBid, nil
}

// SubmitRfp validates and appends a new RFP for the given buyer.
func (s *Service) SubmitRfp(buyerEmail string, in RfpInput) (models.Rfp, error) {
	if in.Title == "" || len(in.Title) > 255 {
		return models.Rfp{}, fmt.Errorf("%w: title must be 1-255 characters", ErrValidation)
	}
	if in.Quantity < 1 {
		return models.Rfp{}, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	if in.DeliveryLocation == "" || len(in.DeliveryLocation) > 255 {
		return models.Rfp{}, fmt.Errorf("%w: delivery location must be 1-255 characters", ErrValidation)
	}
	if in.RequiredCertification == "" || len(in.RequiredCertification) > 255 {
		return models.Rfp{}, fmt.Errorf("%w: required certification must be 1-255 characters", ErrValidation)
	}
	deadline, err := time.Parse("2006-01-02", in.Deadline)
	if err != nil {
		return models.Rfp{}, fmt.Errorf("%w: deadline must be a YYYY-MM-DD date", ErrValidation)
	}
	if !deadline.After(time.Now()) {
		return models.Rfp{}, fmt.Errorf("%w: deadline must be after today", ErrValidation)
	}

	rfps, err := s.loadRfps()
	if err != nil {
		return models.Rfp{}, err
	}

	newRfp := s.norm.Rfps([]any{map[string]any{
		"id":                     fmt.Sprintf("RFP%03d", len(rfps)+1),
		"title":                  in.Title,
		"quantity":               in.Quantity,
		"delivery_location":      in.DeliveryLocation,
		"required_certification": in.RequiredCertification,
		"deadline":               in.Deadline,
		"buyer":                  buyerEmail,
	}})[0]

	rfps = append(rfps, newRfp)
	if err := s.repo.WriteCollection(repository.CollectionRfps, rfps); err != nil {
		return models.Rfp{}, err
	}
	s.log.Infof("RFP %s posted by %s", newRfp.ID, buyerEmail)

	return newRfp, nil
}

// userEmailByRole finds the first user carrying a role. Used for
// notification targets in the single-MSME demo dataset.
func (s *Service) userEmailByRole(role string) (string, bool) {
	users, err := s.loadUsers()
	if err != nil {
		s.log.Warnf("Could not load users for notification: %v", err)
		return "", false
	}
	for _, u := range users {
		if u.Role == role {
			return u.Email, true
		}
	}
	return "", false
}
