package notify

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// SevenSMSSender sends texts through the seven.io SMS gateway:
// POST <baseURL> with form fields to/text/from and an X-Api-Key header.
type SevenSMSSender struct {
	apiKey  string
	from    string
	baseURL string
	client  *http.Client
}

func NewSevenSMSSender(apiKey, from, baseURL string) (*SevenSMSSender, error) {
	if apiKey == "" {
		return nil, errors.New("empty sms api key")
	}
	if baseURL == "" {
		baseURL = "https://gateway.seven.io/api/sms"
	}

	return &SevenSMSSender{
		apiKey:  apiKey,
		from:    from,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (s *SevenSMSSender) Send(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("to", to)
	form.Set("text", body)
	if s.from != "" {
		form.Set("from", s.from)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "build sms request failed")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "sms send failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	return nil
}
