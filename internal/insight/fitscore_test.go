package insight

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/msme-dost/marketplace/internal/models"
)

func TestFitScoreBounds(t *testing.T) {
	scorer := NewFitScorer(1)

	locations := []string{"Chennai, Tamil Nadu", "Pune", "Not specified", ""}
	ratings := []string{"A+", "B", "0", "AAA", ""}

	for i := 0; i < 1000; i++ {
		profile := models.MsmeProfile{
			Location:         locations[i%len(locations)],
			ComplianceRating: ratings[i%len(ratings)],
		}
		rfp := models.Rfp{DeliveryLocation: fmt.Sprintf("City%d", i%7)}
		if i%3 == 0 {
			rfp.DeliveryLocation = "Chennai"
		}

		score := scorer.Score(profile, rfp)
		assert.GreaterOrEqual(t, score, 70)
		assert.LessOrEqual(t, score, 95)
	}
}

func TestFitScoreDeterministicWithSeed(t *testing.T) {
	profile := models.MsmeProfile{Location: "Chennai", ComplianceRating: "A"}
	rfp := models.Rfp{DeliveryLocation: "Chennai"}

	a := NewFitScorer(42)
	b := NewFitScorer(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Score(profile, rfp), b.Score(profile, rfp))
	}
}

func TestFitScoreBonuses(t *testing.T) {
	scorer := NewFitScorer(7)

	t.Run("location and compliance matches lift the floor", func(t *testing.T) {
		profile := models.MsmeProfile{Location: "Chennai, Tamil Nadu", ComplianceRating: "A+"}
		rfp := models.Rfp{DeliveryLocation: "chennai"}
		// 70 + 15 + 10 with a worst-case perturbation of -5.
		for i := 0; i < 200; i++ {
			assert.GreaterOrEqual(t, scorer.Score(profile, rfp), 90)
		}
	})

	t.Run("no matches cap the ceiling", func(t *testing.T) {
		profile := models.MsmeProfile{Location: "Pune", ComplianceRating: "B"}
		rfp := models.Rfp{DeliveryLocation: "Chennai"}
		// 70 with a best-case perturbation of +10.
		for i := 0; i < 200; i++ {
			assert.LessOrEqual(t, scorer.Score(profile, rfp), 80)
		}
	})
}
