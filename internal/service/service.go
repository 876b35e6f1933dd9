package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/msme-dost/marketplace/internal/config"
	"github.com/msme-dost/marketplace/internal/insight"
	"github.com/msme-dost/marketplace/internal/models"
	"github.com/msme-dost/marketplace/internal/repository"
	"github.com/msme-dost/marketplace/internal/schema"
)

// CurrentMsmeID is the fixed MSME identity of the demo dataset: the
// seeded collections carry a single MSME profile.
const CurrentMsmeID = "MSME001"

var (
	// ErrValidation wraps all submit-form validation failures.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials is returned on failed logins.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
)

// RateSource supplies the benchmark lending rate for the lender dashboard.
type RateSource interface {
	GetBenchmarkRate() (float64, error)
}

// Notifier delivers submission notifications. Delivery is best-effort:
// failures are logged and never fail the submission.
type Notifier interface {
	SendBidReceived(to, msmeName, rfpTitle string, price, fitScore int) error
	SendOfferReceived(to, lenderName string, loanAmount int, interestRate float64, tenure int) error
}

// Claims carries the marketplace role alongside the standard JWT claims.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service handles business logic
type Service struct {
	repo   *repository.Store
	log    *logrus.Logger
	config *config.Config
	norm   *schema.Normalizer
	scorer *insight.FitScorer
	rates  RateSource
	mail   Notifier
}

// NewService initializes a new service
func NewService(repo *repository.Store, log *logrus.Logger, cfg *config.Config, scorer *insight.FitScorer) *Service {
	return &Service{
		repo:   repo,
		log:    log,
		config: cfg,
		norm:   schema.New(),
		scorer: scorer,
	}
}

// WithRates attaches the benchmark rate source used by the lender dashboard.
func (s *Service) WithRates(r RateSource) *Service {
	s.rates = r
	return s
}

// WithNotifier attaches the email notifier used on submissions.
func (s *Service) WithNotifier(n Notifier) *Service {
	s.mail = n
	return s
}

// Login authenticates a user and returns a JWT token carrying their role
func (s *Service) Login(email, password string) (string, error) {
	users, err := s.loadUsers()
	if err != nil {
		return "", err
	}

	var user *models.User
	for i := range users {
		if users[i].Email == email {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s (%s)", user.Email, user.Role)
	return tokenString, nil
}

// MsmeDashboard assembles the MSME view: profile, the MSME's offers,
// open RFPs, bids and loan recommendations.
func (s *Service) MsmeDashboard(msmeID string) (models.MsmeDashboard, error) {
	profile, err := s.loadProfile()
	if err != nil {
		return models.MsmeDashboard{}, err
	}
	offers, err := s.loadOffers()
	if err != nil {
		return models.MsmeDashboard{}, err
	}
	rfps, err := s.loadRfps()
	if err != nil {
		return models.MsmeDashboard{}, err
	}
	bids, err := s.loadBids()
	if err != nil {
		return models.MsmeDashboard{}, err
	}

	msmeOffers := make([]models.Offer, 0, len(offers))
	for _, o := range offers {
		if o.MsmeID == msmeID {
			msmeOffers = append(msmeOffers, o)
		}
	}

	recs, err := insight.Recommend(viableOffers(msmeOffers))
	if err != nil {
		return models.MsmeDashboard{}, err
	}

	return models.MsmeDashboard{
		Profile:         profile,
		Offers:          msmeOffers,
		Rfps:            rfps,
		Bids:            bids,
		Recommendations: recs,
	}, nil
}

// LenderDashboard assembles the lender view: the MSME listing, all offers
// and a suggested base rate when the benchmark feed is reachable.
func (s *Service) LenderDashboard() (models.LenderDashboard, error) {
	msmes, err := s.loadMsmes()
	if err != nil {
		return models.LenderDashboard{}, err
	}
	offers, err := s.loadOffers()
	if err != nil {
		return models.LenderDashboard{}, err
	}

	dash := models.LenderDashboard{Msmes: msmes, Offers: offers}
	if s.rates != nil {
		rate, err := s.rates.GetBenchmarkRate()
		if err != nil {
			s.log.Warnf("Benchmark rate unavailable: %v", err)
		} else {
			dash.SuggestedRate = rate
		}
	}
	return dash, nil
}

// BuyerDashboard assembles the buyer view: RFPs with their bids grouped
// per RFP, plus the bidding MSME's profile.
func (s *Service) BuyerDashboard() (models.BuyerDashboard, error) {
	rfps, err := s.loadRfps()
	if err != nil {
		return models.BuyerDashboard{}, err
	}
	bids, err := s.loadBids()
	if err != nil {
		return models.BuyerDashboard{}, err
	}
	profile, err := s.loadProfile()
	if err != nil {
		return models.BuyerDashboard{}, err
	}

	byRfp := make(map[string][]models.Bid)
	for _, b := range bids {
		byRfp[b.RfpID] = append(byRfp[b.RfpID], b)
	}

	return models.BuyerDashboard{Rfps: rfps, BidsByRfp: byRfp, Profile: profile}, nil
}

// MsmeProfile returns the normalized MSME profile
func (s *Service) MsmeProfile() (models.MsmeProfile, error) {
	return s.loadProfile()
}

// CompareOffers produces the insight narrative over an MSME's offers
func (s *Service) CompareOffers(msmeID string) (string, error) {
	offers, err := s.loadOffers()
	if err != nil {
		return "", err
	}

	msmeOffers := make([]models.Offer, 0, len(offers))
	for _, o := range offers {
		if o.MsmeID == msmeID {
			msmeOffers = append(msmeOffers, o)
		}
	}
	return insight.Compare(viableOffers(msmeOffers))
}

// viableOffers keeps offers whose loan terms support EMI math. Defaulted
// records can legitimately carry zero rates or tenures; the analytics
// engine treats those as errors, so they are filtered here.
func viableOffers(offers []models.Offer) []models.Offer {
	out := make([]models.Offer, 0, len(offers))
	for _, o := range offers {
		if o.InterestRate > 0 && o.Tenure > 0 {
			out = append(out, o)
		}
	}
	return out
}

func (s *Service) loadRaw(name string) (any, error) {
	raw, err := s.repo.ReadCollection(name)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		// Fail-soft: a corrupt collection reads as empty.
		s.log.Warnf("Collection %s is not valid JSON, treating as empty: %v", name, err)
		return nil, nil
	}
	return decoded, nil
}

func (s *Service) loadOffers() ([]models.Offer, error) {
	raw, err := s.loadRaw(repository.CollectionOffers)
	if err != nil {
		return nil, err
	}
	return s.norm.Offers(raw), nil
}

func (s *Service) loadBids() ([]models.Bid, error) {
	raw, err := s.loadRaw(repository.CollectionBids)
	if err != nil {
		return nil, err
	}
	return s.norm.Bids(raw), nil
}

func (s *Service) loadRfps() ([]models.Rfp, error) {
	raw, err := s.loadRaw(repository.CollectionRfps)
	if err != nil {
		return nil, err
	}
	return s.norm.Rfps(raw), nil
}

func (s *Service) loadMsmes() ([]models.MsmeSummary, error) {
	raw, err := s.loadRaw(repository.CollectionMsmes)
	if err != nil {
		return nil, err
	}
	return s.norm.Msmes(raw), nil
}

func (s *Service) loadProfile() (models.MsmeProfile, error) {
	raw, err := s.loadRaw(repository.CollectionMsmeProfile)
	if err != nil {
		return models.MsmeProfile{}, err
	}
	return s.norm.Profile(raw), nil
}

func (s *Service) loadUsers() ([]models.User, error) {
	raw, err := s.repo.ReadCollection(repository.CollectionUsers)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var users []models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}
