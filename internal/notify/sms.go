package notify

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

// HTTPSMSSender posts messages to a Twilio-compatible REST endpoint. Missing
// credentials degrade sends to a logged no-op reporting failure; development
// mode simulates success without any network call.
type HTTPSMSSender struct {
	apiURL     string
	accountSID string
	authToken  string
	from       string
	devMode    bool
	httpClient *http.Client
	log        *logrus.Logger
}

func NewHTTPSMSSender(apiURL, accountSID, authToken, from string, devMode bool, httpClient *http.Client, log *logrus.Logger) *HTTPSMSSender {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPSMSSender{
		apiURL:     apiURL,
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		devMode:    devMode,
		httpClient: httpClient,
		log:        log,
	}
}

func (s *HTTPSMSSender) Send(ctx context.Context, to, body string) bool {
	if s.devMode {
		s.log.WithField("to", to).Info("development mode: sms send simulated")
		return true
	}

	if s.apiURL == "" || s.accountSID == "" || s.authToken == "" {
		s.log.Warn("sms send skipped: provider credentials not configured")
		return false
	}
	if to == "" {
		s.log.Warn("sms send skipped: empty recipient")
		return false
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", s.from)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		s.log.WithError(err).Error("sms request build failed")
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.accountSID, s.authToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.WithField("to", to).WithError(err).Error("sms send failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.log.WithFields(logrus.Fields{
			"to":     to,
			"status": resp.StatusCode,
		}).Error("sms provider rejected message")
		return false
	}

	s.log.WithField("to", to).Info("sms sent")
	return true
}
