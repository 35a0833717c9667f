package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// TeamsProvider delivers cards to a Microsoft Teams incoming webhook
type TeamsProvider struct {
	WebhookURL string
	Client     *http.Client
}

// DeliveryError is returned when Teams did not acknowledge the card
type DeliveryError struct {
	StatusCode int    `json:"statusCode"`
	Text       string `json:"text"`
}

func (e *DeliveryError) Error() string {
	response, _ := json.MarshalIndent(e, "", "  ")
	return fmt.Sprintf("failed to send notification to Microsoft Teams.\nResponse:\n%s", response)
}

func NewTeamsProvider(webhookURL string) *TeamsProvider {
	return &TeamsProvider{
		WebhookURL: webhookURL,
		Client:     &http.Client{},
	}
}

// Notify posts the document to the webhook once.
// Teams answers a delivered card with a non-empty text body, anything else is a *DeliveryError.
func (t *TeamsProvider) Notify(ctx context.Context, doc interface{}) error {
	if t.WebhookURL == "" {
		return errors.New("webhook url is not set")
	}

	b := new(bytes.Buffer)
	err := json.NewEncoder(b).Encode(doc)
	if err != nil {
		logrus.Errorf("could not encode message to teams: %v", err)
		return errors.Wrap(err, "cannot encode message card")
	}

	return t.post(ctx, b)
}

func (t *TeamsProvider) post(ctx context.Context, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.WebhookURL, body)
	if err != nil {
		return errors.Wrap(err, "cannot create webhook request")
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	client := t.Client
	if client == nil {
		client = &http.Client{}
	}
	res, err := client.Do(req)
	if err != nil {
		logrus.Errorf("could not post to teams: %v", err)
		return errors.Wrap(err, "could not post to teams")
	}
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "cannot read teams response")
	}
	logrus.Debugf("Teams response: %d %s", res.StatusCode, string(responseBody))

	if res.StatusCode < 200 || res.StatusCode >= 300 || strings.TrimSpace(string(responseBody)) == "" {
		return &DeliveryError{
			StatusCode: res.StatusCode,
			Text:       string(responseBody),
		}
	}

	return nil
}
