package insight

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/msme-dost/marketplace/internal/models"
)

// Fit score bounds.
const (
	fitScoreMin = 70
	fitScoreMax = 95
)

// FitScorer rates how well an MSME profile matches an RFP. The score is
// heuristic: a base value plus location and compliance bonuses plus a
// bounded random perturbation from the injected source, clamped to
// [70, 95]. Safe for concurrent use.
type FitScorer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewFitScorer returns a scorer seeded with the given value, so tests can
// reproduce scores.
func NewFitScorer(seed int64) *FitScorer {
	return &FitScorer{rng: rand.New(rand.NewSource(seed))}
}

// Score computes the fit score for a profile bidding on an RFP.
func (s *FitScorer) Score(profile models.MsmeProfile, rfp models.Rfp) int {
	score := fitScoreMin

	if strings.Contains(strings.ToLower(profile.Location), strings.ToLower(rfp.DeliveryLocation)) {
		score += 15
	}
	// "a" in the rating stands in for an A-grade compliance rating.
	if strings.Contains(strings.ToLower(profile.ComplianceRating), "a") {
		score += 10
	}

	s.mu.Lock()
	score += s.rng.Intn(16) - 5 // [-5, +10]
	s.mu.Unlock()

	if score > fitScoreMax {
		return fitScoreMax
	}
	if score < fitScoreMin {
		return fitScoreMin
	}
	return score
}
