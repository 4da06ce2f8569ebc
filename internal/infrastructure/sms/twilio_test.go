package sms

import (
	"context"
	"errors"
	"testing"

	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/stagecrew/crew-scheduler/internal/core/ports"
)

var _ ports.MessageTransport = (*TwilioTransport)(nil)

type stubCreator struct {
	last *openapi.CreateMessageParams
	resp *openapi.ApiV2010Message
	err  error
}

func (s *stubCreator) CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	s.last = params
	return s.resp, s.err
}

func TestSend(t *testing.T) {
	sid := "SM123"
	api := &stubCreator{resp: &openapi.ApiV2010Message{Sid: &sid}}
	tr := newTransport(api, 0)

	got, err := tr.Send(context.Background(), "+15551230000", "+15550000000", "hello")
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if got != "SM123" {
		t.Fatalf("unexpected sid: %s", got)
	}
	if *api.last.To != "+15551230000" || *api.last.From != "+15550000000" || *api.last.Body != "hello" {
		t.Fatalf("unexpected params: to=%s from=%s body=%s", *api.last.To, *api.last.From, *api.last.Body)
	}
}

func TestSend_Errors(t *testing.T) {
	boom := errors.New("NetworkError")
	tr := newTransport(&stubCreator{err: boom}, 0)
	if _, err := tr.Send(context.Background(), "+1", "+2", "x"); !errors.Is(err, boom) {
		t.Fatalf("expected transport error, got %v", err)
	}

	tr = newTransport(&stubCreator{resp: &openapi.ApiV2010Message{}}, 0)
	if _, err := tr.Send(context.Background(), "+1", "+2", "x"); err == nil {
		t.Fatal("expected an error when no sid is returned")
	}
}

func TestSend_HonoursCancelledContextWhileWaiting(t *testing.T) {
	sid := "SM1"
	tr := newTransport(&stubCreator{resp: &openapi.ApiV2010Message{Sid: &sid}}, 0.001)

	if _, err := tr.Send(context.Background(), "+1", "+2", "x"); err != nil {
		t.Fatalf("first send should use the burst: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := tr.Send(ctx, "+1", "+2", "x"); err == nil {
		t.Fatal("expected the limiter wait to fail on a cancelled context")
	}
}
