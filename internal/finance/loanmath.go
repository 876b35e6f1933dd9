package finance

import (
	"errors"
	"math"
)

// ErrInvalidLoanTerms is returned when an EMI is requested for a zero or
// negative rate or tenure, where the annuity formula is undefined.
var ErrInvalidLoanTerms = errors.New("interest rate and tenure must be positive")

// EMI computes the equated monthly installment for a loan.
// principal is in rupees, annualRatePct is the yearly rate in percent and
// tenureMonths the repayment period in months.
func EMI(principal, annualRatePct float64, tenureMonths int) (float64, error) {
	if annualRatePct <= 0 || tenureMonths <= 0 {
		return 0, ErrInvalidLoanTerms
	}

	r := annualRatePct / 12 / 100
	growth := math.Pow(1+r, float64(tenureMonths))
	return principal * r * growth / (growth - 1), nil
}

// TotalCost computes the full repayment cost of a loan: EMI over the whole
// tenure plus the processing fee.
func TotalCost(principal, annualRatePct float64, tenureMonths int, processingFee float64) (float64, error) {
	emi, err := EMI(principal, annualRatePct, tenureMonths)
	if err != nil {
		return 0, err
	}
	return emi*float64(tenureMonths) + processingFee, nil
}
