// Package insight produces the analytics shown on marketplace dashboards:
// offer comparison narratives, supplier fit scores and annotated loan
// recommendations.
package insight

import (
	"fmt"
	"strings"

	"github.com/msme-dost/marketplace/internal/finance"
	"github.com/msme-dost/marketplace/internal/models"
)

// needMoreOffers is returned when there is nothing to compare against.
const needMoreOffers = "Only one offer available. Consider waiting for more options."

// Compare produces a human-readable comparison of loan offers: which
// lender carries the lowest rate, which waive the processing fee, and a
// head-to-head savings estimate over the first two offers in input order.
// Offers in the head-to-head pair must carry positive rates and tenures.
func Compare(offers []models.Offer) (string, error) {
	if len(offers) < 2 {
		return needMoreOffers, nil
	}

	bestRate := offers[0].InterestRate
	for _, o := range offers[1:] {
		if o.InterestRate < bestRate {
			bestRate = o.InterestRate
		}
	}

	var insights []string
	for _, o := range offers {
		if o.InterestRate == bestRate {
			insights = append(insights, fmt.Sprintf(
				"Offer from %s has the lowest interest rate at %s%%.", o.LenderName, formatRate(o.InterestRate)))
		}
		if o.ProcessingFee == 0 {
			insights = append(insights, fmt.Sprintf("Offer from %s has no processing fee.", o.LenderName))
		}
	}

	// Head-to-head: always the first two offers, not necessarily the best.
	a, b := offers[0], offers[1]
	totalA, err := finance.TotalCost(finance.ParseAmount(a.Amount), a.InterestRate, a.Tenure, float64(a.ProcessingFee))
	if err != nil {
		return "", fmt.Errorf("offer %s: %w", a.ID, err)
	}
	totalB, err := finance.TotalCost(finance.ParseAmount(b.Amount), b.InterestRate, b.Tenure, float64(b.ProcessingFee))
	if err != nil {
		return "", fmt.Errorf("offer %s: %w", b.ID, err)
	}

	savings := totalA - totalB
	better := b.LenderName
	if totalA < totalB {
		savings = -savings
		better = a.LenderName
	}
	insights = append(insights, fmt.Sprintf(
		"%s will save ₹%s over %d months.", better, formatRupees(savings), a.Tenure))

	return strings.Join(insights, " "), nil
}
