package ports

import "context"

// MessageTransport delivers a single text message and returns the provider's
// message id. Any failure, including a transport-level timeout, is an error.
type MessageTransport interface {
	Send(ctx context.Context, to, from, body string) (string, error)
}
