package insight

import (
	"fmt"
	"math"

	"github.com/msme-dost/marketplace/internal/finance"
	"github.com/msme-dost/marketplace/internal/models"
)

const noOffersMessage = "No offers available at the moment."

// Recommend annotates each offer with its monthly EMI, total loan cost and
// a one-line verdict. Input order is preserved; no ranking is applied.
// Offers must carry positive rates and tenures.
func Recommend(offers []models.Offer) (models.Recommendations, error) {
	if len(offers) == 0 {
		return models.Recommendations{
			Message: noOffersMessage,
			Items:   []models.Recommendation{},
		}, nil
	}

	items := make([]models.Recommendation, 0, len(offers))
	for _, o := range offers {
		amount := finance.ParseAmount(o.Amount)
		emi, err := finance.EMI(amount, o.InterestRate, o.Tenure)
		if err != nil {
			return models.Recommendations{}, fmt.Errorf("offer %s: %w", o.ID, err)
		}
		total := emi*float64(o.Tenure) + float64(o.ProcessingFee)

		verdict := "Standard processing fee"
		if o.ProcessingFee == 0 {
			verdict = "No processing fee - excellent option"
		}

		items = append(items, models.Recommendation{
			Lender:         o.LenderName,
			Amount:         o.Amount,
			InterestRate:   o.InterestRate,
			Tenure:         o.Tenure,
			MonthlyEMI:     int(math.Round(emi)),
			TotalCost:      int(math.Round(total)),
			ProcessingFee:  feeDisplay(o.ProcessingFee),
			FitScore:       o.FitScore,
			Recommendation: verdict,
		})
	}

	return models.Recommendations{Available: true, Items: items}, nil
}
