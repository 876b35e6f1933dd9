package rbi

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/msme-dost/marketplace/internal/config"
)

// Client fetches the benchmark repo rate used to suggest a base lending
// rate to lenders.
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new benchmark rate client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.RBIURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// fetch retrieves the raw XML rate feed
func (c *Client) fetch() ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("RBI XML response: %s", string(body))
	return body, nil
}

// parseRate extracts the most recent repo rate from the XML feed
func (c *Client) parseRate(rawBody []byte) (float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return 0, fmt.Errorf("failed to parse XML: %v", err)
	}

	rateElements := doc.FindElements("//RepoRate/Rate")
	if len(rateElements) == 0 {
		return 0, fmt.Errorf("no repo rate data found in XML")
	}

	var rate float64
	if _, err := fmt.Sscanf(rateElements[0].Text(), "%f", &rate); err != nil {
		return 0, fmt.Errorf("failed to parse rate: %v", err)
	}
	return rate, nil
}

// GetBenchmarkRate retrieves the current repo rate and adds the typical
// MSME lending spread on top of it.
func (c *Client) GetBenchmarkRate() (float64, error) {
	body, err := c.fetch()
	if err != nil {
		return 0, err
	}

	rate, err := c.parseRate(body)
	if err != nil {
		return 0, err
	}

	const lendingSpread = 3.5
	rate += lendingSpread

	c.log.Infof("Retrieved benchmark rate: %.2f%% (including %.2f%% lending spread)", rate, lendingSpread)
	return rate, nil
}
