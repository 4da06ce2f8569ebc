// Package sms is the Twilio-backed message transport.
package sms

import (
	"context"
	"errors"
	"fmt"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"golang.org/x/time/rate"
)

// Config holds the Twilio account credentials and the send rate.
type Config struct {
	AccountSID string
	AuthToken  string
	RatePerSec float64
}

type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioTransport sends SMS through the Twilio REST API, paced by a token
// bucket so a large fan-out stays under the account's rate limit.
type TwilioTransport struct {
	api     messageCreator
	limiter *rate.Limiter
}

func NewTwilioTransport(cfg Config) *TwilioTransport {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newTransport(client.Api, cfg.RatePerSec)
}

func newTransport(api messageCreator, perSec float64) *TwilioTransport {
	limit := rate.Inf
	if perSec > 0 {
		limit = rate.Limit(perSec)
	}
	return &TwilioTransport{api: api, limiter: rate.NewLimiter(limit, 1)}
}

// Send submits one message and returns the Twilio message SID.
func (t *TwilioTransport) Send(ctx context.Context, to, from, body string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("sms rate limit: %w", err)
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(body)

	resp, err := t.api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("sms send: %w", err)
	}
	if resp == nil || resp.Sid == nil {
		return "", errors.New("sms send: response carried no message sid")
	}
	return *resp.Sid, nil
}
