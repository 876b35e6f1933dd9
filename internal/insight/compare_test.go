package insight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msme-dost/marketplace/internal/finance"
	"github.com/msme-dost/marketplace/internal/models"
)

func testOffer(lender string, rate float64, fee int) models.Offer {
	return models.Offer{
		LenderName:    lender,
		Amount:        "₹10 Lakhs",
		InterestRate:  rate,
		Tenure:        12,
		ProcessingFee: fee,
	}
}

func TestCompare(t *testing.T) {
	t.Run("needs at least two offers", func(t *testing.T) {
		for _, offers := range [][]models.Offer{nil, {testOffer("QuickCapital", 10, 0)}} {
			got, err := Compare(offers)
			require.NoError(t, err)
			assert.Equal(t, needMoreOffers, got)
		}
	})

	t.Run("names the lowest rate and the waived fee", func(t *testing.T) {
		got, err := Compare([]models.Offer{
			testOffer("QuickCapital", 10, 0),
			testOffer("SlowBank", 12, 500),
		})
		require.NoError(t, err)

		assert.Contains(t, got, "Offer from QuickCapital has the lowest interest rate at 10%.")
		assert.Contains(t, got, "Offer from QuickCapital has no processing fee.")
		assert.NotContains(t, got, "Offer from SlowBank has no processing fee.")
	})

	t.Run("savings sentence closes the narrative", func(t *testing.T) {
		got, err := Compare([]models.Offer{
			testOffer("QuickCapital", 10, 0),
			testOffer("SlowBank", 12, 500),
		})
		require.NoError(t, err)

		// Same principal and tenure, lower rate and no fee: the first
		// offer is cheaper overall.
		assert.Contains(t, got, "QuickCapital will save ₹")
		assert.True(t, strings.HasSuffix(got, "over 12 months."), got)
	})

	t.Run("rate ties mention every lender", func(t *testing.T) {
		got, err := Compare([]models.Offer{
			testOffer("QuickCapital", 10, 0),
			testOffer("SlowBank", 10, 500),
		})
		require.NoError(t, err)

		assert.Contains(t, got, "Offer from QuickCapital has the lowest interest rate")
		assert.Contains(t, got, "Offer from SlowBank has the lowest interest rate")
	})

	t.Run("head-to-head uses the first two offers, not the best two", func(t *testing.T) {
		offers := []models.Offer{
			testOffer("First", 14, 1000),
			testOffer("Second", 13, 800),
			testOffer("Cheapest", 9, 0),
		}
		got, err := Compare(offers)
		require.NoError(t, err)

		assert.Contains(t, got, "Second will save ₹")
		assert.NotContains(t, got, "Cheapest will save")
	})

	t.Run("invalid loan terms in the pair propagate", func(t *testing.T) {
		broken := testOffer("ZeroTenure", 10, 0)
		broken.Tenure = 0
		_, err := Compare([]models.Offer{broken, testOffer("SlowBank", 12, 500)})
		assert.ErrorIs(t, err, finance.ErrInvalidLoanTerms)
	})
}
