package service

import (
	"io"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/msme-dost/marketplace/internal/config"
	"github.com/msme-dost/marketplace/internal/insight"
	"github.com/msme-dost/marketplace/internal/models"
	"github.com/msme-dost/marketplace/internal/repository"
)

func newTestService(t *testing.T) (*Service, *repository.Store) {
	t.Helper()

	store, err := repository.NewStore(t.TempDir())
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{JWTSecret: "test-secret"}
	return NewService(store, logger, cfg, insight.NewFitScorer(42)), store
}

func seedUser(t *testing.T, store *repository.Store, email, password, role string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.WriteCollection(repository.CollectionUsers, []models.User{
		{Email: email, Name: "Test User", Role: role, PasswordHash: string(hash)},
	}))
}

func seedMarketplace(t *testing.T, store *repository.Store) {
	t.Helper()

	require.NoError(t, store.WriteCollection(repository.CollectionOffers, []map[string]any{
		{"id": "OFFER001", "lender": "lender@quickcapital.in", "msme_id": "MSME001",
			"amount": "₹75 Lakhs", "interest_rate": 12, "tenure": 36, "processing_fee": 0},
		{"id": "OFFER002", "lender": "lender@slowbank.in", "msme_id": "MSME001",
			"amount": "₹50 Lakhs", "interest_rate": 14, "tenure": 24, "processing_fee": 25000},
		{"id": "OFFER003", "lender": "lender@other.in", "msme_id": "MSME002",
			"amount": "₹10 Lakhs", "interest_rate": 11, "tenure": 12, "processing_fee": 500},
	}))
	require.NoError(t, store.WriteCollection(repository.CollectionRfps, []map[string]any{
		{"id": "RFP001", "title": "Cotton fabric supply", "buyer": "buyer@retailco.in",
			"delivery_location": "Chennai"},
	}))
	require.NoError(t, store.WriteCollection(repository.CollectionBids, []map[string]any{
		{"id": "BID001", "rfp_id": "RFP001", "msme_id": "MSME001", "price": 450000, "fit_score": 85},
	}))
	require.NoError(t, store.WriteCollection(repository.CollectionMsmeProfile, map[string]any{
		"business_name":     "Sharma Textiles",
		"location":          "Chennai, Tamil Nadu",
		"compliance_rating": "A+",
	}))
}

func TestLogin(t *testing.T) {
	svc, store := newTestService(t)
	seedUser(t, store, "msme@sharma.in", "secret123", "msme")

	t.Run("issues a token carrying the role", func(t *testing.T) {
		token, err := svc.Login("msme@sharma.in", "secret123")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims := &Claims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, "msme@sharma.in", claims.Subject)
		assert.Equal(t, "msme", claims.Role)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		_, err := svc.Login("msme@sharma.in", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects an unknown user", func(t *testing.T) {
		_, err := svc.Login("nobody@nowhere.in", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestSubmitOffer(t *testing.T) {
	svc, store := newTestService(t)
	seedMarketplace(t, store)

	valid := OfferInput{
		MsmeID:        "MSME001",
		LoanAmount:    5000000,
		InterestRate:  12.5,
		Tenure:        36,
		ProcessingFee: 10000,
	}

	t.Run("appends with a sequential zero-padded ID", func(t *testing.T) {
		offer, err := svc.SubmitOffer("lender@quickcapital.in", valid)
		require.NoError(t, err)

		assert.Equal(t, "OFFER004", offer.ID)
		assert.Equal(t, "lender@quickcapital.in", offer.Lender)
		assert.Equal(t, "lender@quickcapital.in", offer.LenderName)
		assert.Equal(t, 5000000, offer.LoanAmount)

		offers, err := svc.loadOffers()
		require.NoError(t, err)
		assert.Len(t, offers, 4)
	})

	t.Run("rejects out-of-range terms", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*OfferInput)
		}{
			{"missing msme_id", func(in *OfferInput) { in.MsmeID = "" }},
			{"loan amount too small", func(in *OfferInput) { in.LoanAmount = 50000 }},
			{"rate below floor", func(in *OfferInput) { in.InterestRate = 7.5 }},
			{"rate above ceiling", func(in *OfferInput) { in.InterestRate = 26 }},
			{"tenure too short", func(in *OfferInput) { in.Tenure = 6 }},
			{"tenure too long", func(in *OfferInput) { in.Tenure = 96 }},
			{"negative fee", func(in *OfferInput) { in.ProcessingFee = -1 }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				in := valid
				tt.mutate(&in)
				_, err := svc.SubmitOffer("lender@quickcapital.in", in)
				assert.ErrorIs(t, err, ErrValidation)
			})
		}
	})
}

type notifierStub struct {
	bidCalls   int
	offerCalls int
	lastTo     string
}

func (n *notifierStub) SendBidReceived(to, _, _ string, _, _ int) error {
	n.bidCalls++
	n.lastTo = to
	return nil
}

func (n *notifierStub) SendOfferReceived(to, _ string, _ int, _ float64, _ int) error {
	n.offerCalls++
	n.lastTo = to
	return nil
}

func TestSubmitBid(t *testing.T) {
	svc, store := newTestService(t)
	seedMarketplace(t, store)

	notifier := &notifierStub{}
	svc.WithNotifier(notifier)

	valid := BidInput{
		RfpID:        "RFP001",
		Price:        480000,
		DeliveryTime: "3 weeks",
		Notes:        "Premium cotton, GST compliant.",
	}

	t.Run("scores the bid against the RFP", func(t *testing.T) {
		bid, err := svc.SubmitBid(valid)
		require.NoError(t, err)

		assert.Equal(t, "BID002", bid.ID)
		assert.Equal(t, CurrentMsmeID, bid.MsmeID)
		assert.GreaterOrEqual(t, bid.FitScore, 70)
		assert.LessOrEqual(t, bid.FitScore, 95)
		assert.Equal(t, bid.FitScore, bid.Score, "score cross-defaults from fit_score")
		assert.Equal(t, "Premium cotton, GST compliant.", bid.Notes)

		assert.Equal(t, 1, notifier.bidCalls)
		assert.Equal(t, "buyer@retailco.in", notifier.lastTo)
	})

	t.Run("rejects an unknown RFP", func(t *testing.T) {
		in := valid
		in.RfpID = "RFP999"
		_, err := svc.SubmitBid(in)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rejects an underpriced bid", func(t *testing.T) {
		in := valid
		in.Price = 500
		_, err := svc.SubmitBid(in)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestSubmitRfp(t *testing.T) {
	svc, _ := newTestService(t)

	valid := RfpInput{
		Title:                 "Packaging material",
		Quantity:              5,
		DeliveryLocation:      "Mumbai",
		RequiredCertification: "ISO 9001",
		Deadline:              time.Now().AddDate(0, 0, 14).Format("2006-01-02"),
	}

	t.Run("appends the first RFP", func(t *testing.T) {
		rfp, err := svc.SubmitRfp("buyer@retailco.in", valid)
		require.NoError(t, err)

		assert.Equal(t, "RFP001", rfp.ID)
		assert.Equal(t, "buyer@retailco.in", rfp.Buyer)
		assert.Equal(t, "5", rfp.Quantity)
		assert.Equal(t, "Active", rfp.Status)
	})

	t.Run("rejects a past deadline", func(t *testing.T) {
		in := valid
		in.Deadline = "2020-01-01"
		_, err := svc.SubmitRfp("buyer@retailco.in", in)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects a malformed deadline", func(t *testing.T) {
		in := valid
		in.Deadline = "next month"
		_, err := svc.SubmitRfp("buyer@retailco.in", in)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestMsmeDashboard(t *testing.T) {
	svc, store := newTestService(t)
	seedMarketplace(t, store)

	dash, err := svc.MsmeDashboard("MSME001")
	require.NoError(t, err)

	assert.Len(t, dash.Offers, 2, "offers are filtered to the MSME")
	assert.Equal(t, "Sharma Textiles", dash.Profile.BusinessName)
	require.True(t, dash.Recommendations.Available)
	assert.Len(t, dash.Recommendations.Items, 2)
	assert.Equal(t, "lender@quickcapital.in", dash.Recommendations.Items[0].Lender)
}

func TestBuyerDashboard(t *testing.T) {
	svc, store := newTestService(t)
	seedMarketplace(t, store)

	dash, err := svc.BuyerDashboard()
	require.NoError(t, err)

	require.Len(t, dash.Rfps, 1)
	assert.Len(t, dash.BidsByRfp["RFP001"], 1)
}

func TestCompareOffers(t *testing.T) {
	svc, store := newTestService(t)
	seedMarketplace(t, store)

	insights, err := svc.CompareOffers("MSME001")
	require.NoError(t, err)

	assert.Contains(t, insights, "lowest interest rate")
	assert.Contains(t, insights, "will save ₹")
}

func TestRepairCollections(t *testing.T) {
	svc, store := newTestService(t)

	require.NoError(t, store.WriteCollection(repository.CollectionOffers, []map[string]any{
		{"id": "OFFER001"},
	}))

	t.Run("repairs partial records once", func(t *testing.T) {
		results := svc.RepairCollections(false)
		require.Len(t, results, 1, "missing collections are skipped")
		assert.Equal(t, "offers", results[0].Collection)
		assert.True(t, results[0].Changed)

		offers, err := svc.loadOffers()
		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Equal(t, "Unknown Lender", offers[0].Lender)
	})

	t.Run("second pass is a no-op", func(t *testing.T) {
		results := svc.RepairCollections(false)
		require.Len(t, results, 1)
		assert.False(t, results[0].Changed)
	})
}
