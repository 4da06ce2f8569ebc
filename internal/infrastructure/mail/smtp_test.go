package mail

import "testing"

func TestMessage_RejectsBadAddresses(t *testing.T) {
	m := NewSMTPMailer(Config{Host: "localhost", From: "crew@example.com"})

	if _, err := m.message("not an address", "hi", "body"); err == nil {
		t.Error("expected an invalid recipient to be rejected")
	}

	bad := NewSMTPMailer(Config{Host: "localhost", From: "nope"})
	if _, err := bad.message("ana@example.com", "hi", "body"); err == nil {
		t.Error("expected an invalid sender to be rejected")
	}
}

func TestMessage_Valid(t *testing.T) {
	m := NewSMTPMailer(Config{Host: "localhost", From: "crew@example.com"})
	if _, err := m.message("ana@example.com", "Welcome", "Set your password"); err != nil {
		t.Fatalf("message returned error: %v", err)
	}
}

func TestClientOptions(t *testing.T) {
	anon := NewSMTPMailer(Config{Host: "localhost"})
	if got := len(anon.clientOptions()); got != 1 {
		t.Errorf("expected only the tls option, got %d options", got)
	}

	authed := NewSMTPMailer(Config{Host: "localhost", Port: 2525, Username: "u", Password: "p"})
	if got := len(authed.clientOptions()); got != 5 {
		t.Errorf("expected tls, port and three auth options, got %d", got)
	}
}
