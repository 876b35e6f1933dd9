package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMI(t *testing.T) {
	t.Run("matches closed-form amortization", func(t *testing.T) {
		// ₹10,00,000 at 12% over 12 months: hand-computed reference.
		emi, err := EMI(1000000, 12, 12)
		require.NoError(t, err)
		assert.InDelta(t, 88848.79, emi, 0.01)
	})

	t.Run("longer tenure lowers the installment", func(t *testing.T) {
		short, err := EMI(1000000, 12, 12)
		require.NoError(t, err)
		long, err := EMI(1000000, 12, 36)
		require.NoError(t, err)
		assert.Less(t, long, short)
	})

	t.Run("rejects zero or negative terms", func(t *testing.T) {
		for _, tt := range []struct {
			name   string
			rate   float64
			tenure int
		}{
			{"zero rate", 0, 12},
			{"zero tenure", 12, 0},
			{"negative rate", -1, 12},
			{"negative tenure", 12, -6},
		} {
			t.Run(tt.name, func(t *testing.T) {
				_, err := EMI(1000000, tt.rate, tt.tenure)
				assert.ErrorIs(t, err, ErrInvalidLoanTerms)
			})
		}
	})
}

func TestTotalCost(t *testing.T) {
	emi, err := EMI(1000000, 12, 12)
	require.NoError(t, err)

	total, err := TotalCost(1000000, 12, 12, 2000)
	require.NoError(t, err)
	assert.InDelta(t, emi*12+2000, total, 1e-6)

	_, err = TotalCost(1000000, 0, 12, 2000)
	assert.ErrorIs(t, err, ErrInvalidLoanTerms)
}
