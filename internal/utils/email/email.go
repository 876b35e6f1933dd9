package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/msme-dost/marketplace/internal/config"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendBidReceived notifies a buyer that an MSME has bid on their RFP
func (s *Sender) SendBidReceived(to, msmeName, rfpTitle string, price, fitScore int) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "New Bid Received"

	body := fmt.Sprintf(
		"Dear Buyer,\n\n"+
			"%s has submitted a bid on your RFP \"%s\".\n"+
			"Bid price: ₹%d\n"+
			"Fit score: %d%%\n"+
			"\nLog in to your dashboard to review the proposal.\n"+
			"\nBest regards,\nMSME Dost Marketplace",
		msmeName, rfpTitle, price, fitScore,
	)
	e.Text = []byte(body)

	return s.send(e)
}

// SendOfferReceived notifies an MSME that a lender has made a loan offer
func (s *Sender) SendOfferReceived(to, lenderName string, loanAmount int, interestRate float64, tenure int) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "New Loan Offer"

	body := fmt.Sprintf(
		"Dear MSME,\n\n"+
			"%s has made you a loan offer.\n"+
			"Amount: ₹%d\n"+
			"Interest rate: %.2f%%\n"+
			"Tenure: %d months\n"+
			"\nLog in to your dashboard to compare offers.\n"+
			"\nBest regards,\nMSME Dost Marketplace",
		lenderName, loanAmount, interestRate, tenure,
	)
	e.Text = []byte(body)

	return s.send(e)
}

func (s *Sender) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %v: %v", e.To, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %v: %s", e.To, e.Subject)
	return nil
}
