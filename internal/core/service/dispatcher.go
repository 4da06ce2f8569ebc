package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
	"github.com/stagecrew/crew-scheduler/internal/core/ports"
	"github.com/stagecrew/crew-scheduler/internal/infrastructure/metrics"
)

// Renderer builds the message for one recipient.
type Renderer func(r domain.Recipient) domain.Message

// NotificationDispatcher fans a message out to many recipients. Every attempt
// is independent: one failure never prevents or aborts another.
type NotificationDispatcher struct {
	transport   ports.MessageTransport
	from        string
	concurrency int
	log         zerolog.Logger
}

// NewNotificationDispatcher returns a dispatcher sending from the given
// number. A nil transport makes the dispatcher unavailable. concurrency <= 0
// issues every send at once.
func NewNotificationDispatcher(transport ports.MessageTransport, from string, concurrency int, log zerolog.Logger) *NotificationDispatcher {
	return &NotificationDispatcher{
		transport:   transport,
		from:        from,
		concurrency: concurrency,
		log:         log.With().Str("component", "dispatcher").Logger(),
	}
}

// Available reports whether a transport is configured.
func (d *NotificationDispatcher) Available() bool {
	return d != nil && d.transport != nil
}

// Dispatch sends one message per recipient and waits until every attempt has
// settled. It always returns one outcome per recipient, in recipient order,
// and never returns an error. Callers must check Available first.
func (d *NotificationDispatcher) Dispatch(ctx context.Context, flow string, recipients []domain.Recipient, render Renderer) []domain.DispatchOutcome {
	outcomes := make([]domain.DispatchOutcome, len(recipients))
	if len(recipients) == 0 {
		return outcomes
	}

	// Sends already issued are waited for even if the caller goes away.
	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	var g errgroup.Group
	if d.concurrency > 0 {
		g.SetLimit(d.concurrency)
	}
	for i, rcpt := range recipients {
		g.Go(func() error {
			outcomes[i] = d.sendOne(ctx, rcpt, render)
			return nil
		})
	}
	_ = g.Wait()

	metrics.DispatchDuration.WithLabelValues(flow).Observe(time.Since(start).Seconds())

	sent := domain.CountSent(outcomes)
	metrics.NotificationsTotal.WithLabelValues(flow, "sent").Add(float64(sent))
	metrics.NotificationsTotal.WithLabelValues(flow, "failed").Add(float64(len(outcomes) - sent))

	d.log.Info().
		Str("flow", flow).
		Int("recipients", len(recipients)).
		Int("sent", sent).
		Dur("duration", time.Since(start)).
		Msg("dispatch settled")

	return outcomes
}

func (d *NotificationDispatcher) sendOne(ctx context.Context, rcpt domain.Recipient, render Renderer) (out domain.DispatchOutcome) {
	out.RecipientID = rcpt.ID

	defer func() {
		if r := recover(); r != nil {
			out.Success = false
			out.MessageID = ""
			out.Error = fmt.Sprintf("panic: %v", r)
			d.log.Error().Str("recipient_id", rcpt.ID).Interface("panic", r).Msg("notification send panicked")
		}
	}()

	if d.transport == nil {
		out.Error = domain.ErrServiceUnavailable.Error()
		return out
	}

	msg := render(rcpt)
	id, err := d.transport.Send(ctx, rcpt.Phone, d.from, msg.Body)
	if err != nil {
		out.Error = errorName(err)
		d.log.Warn().Err(err).Str("recipient_id", rcpt.ID).Msg("notification send failed")
		return out
	}

	out.Success = true
	out.MessageID = id
	return out
}

// errorName reports the innermost error's text, which is what the
// transport's callers care about.
func errorName(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
