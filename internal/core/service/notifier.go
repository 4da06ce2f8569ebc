package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
	"github.com/stagecrew/crew-scheduler/internal/core/ports"
	"github.com/stagecrew/crew-scheduler/internal/infrastructure/metrics"
)

const (
	flowAssigned = "assigned"
	flowUpdated  = "updated"
)

type changeNotifier struct {
	shifts     ports.ShiftRepository
	reconciler *AssignmentReconciler
	resolver   *RecipientResolver
	dispatcher *NotificationDispatcher
	formatter  *MessageFormatter
	guard      ports.ChangeGuard // optional
	log        zerolog.Logger
}

// NewChangeNotifier wires the assign and update flows. guard may be nil.
func NewChangeNotifier(
	shifts ports.ShiftRepository,
	reconciler *AssignmentReconciler,
	resolver *RecipientResolver,
	dispatcher *NotificationDispatcher,
	formatter *MessageFormatter,
	guard ports.ChangeGuard,
	log zerolog.Logger,
) ports.ChangeNotifier {
	return &changeNotifier{
		shifts:     shifts,
		reconciler: reconciler,
		resolver:   resolver,
		dispatcher: dispatcher,
		formatter:  formatter,
		guard:      guard,
		log:        log.With().Str("component", "notifier").Logger(),
	}
}

// Assign persists first, then notifies the delta on a best-effort basis.
func (n *changeNotifier) Assign(ctx context.Context, shiftID string, workerIDs []string) (*ports.AssignResult, error) {
	shift, err := n.loadShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	added, err := n.reconciler.Reconcile(ctx, shiftID, workerIDs)
	if err != nil {
		return nil, err
	}

	result := &ports.AssignResult{Added: added, Notifications: ports.NotificationsNone}
	if len(added) == 0 {
		metrics.NotificationsSkippedTotal.WithLabelValues("no_recipients").Inc()
		return result, nil
	}

	recipients, err := n.resolver.Resolve(ctx, added)
	if err != nil {
		// The assignment is committed; losing the notification is not fatal.
		n.log.Error().Err(err).Str("shift_id", shiftID).Msg("resolve recipients after assign failed")
		return result, nil
	}
	if len(recipients) == 0 {
		metrics.NotificationsSkippedTotal.WithLabelValues("no_recipients").Inc()
		return result, nil
	}

	if !n.dispatcher.Available() {
		n.log.Warn().Str("shift_id", shiftID).Int("recipients", len(recipients)).
			Msg("sms transport not configured, assignment notifications skipped")
		metrics.NotificationsSkippedTotal.WithLabelValues("unavailable").Inc()
		result.Notifications = ports.NotificationsUnavailable
		return result, nil
	}

	result.Outcomes = n.dispatcher.Dispatch(ctx, flowAssigned, recipients, n.formatter.Assigned(shift))
	result.Sent = domain.CountSent(result.Outcomes)
	result.Notifications = ports.NotificationsSent
	return result, nil
}

func (n *changeNotifier) Unassign(ctx context.Context, shiftID string, workerIDs []string) error {
	return n.reconciler.Unassign(ctx, shiftID, workerIDs)
}

func (n *changeNotifier) NotifyAssigned(ctx context.Context, shiftID string, workerIDs []string) (*ports.NotifyResult, error) {
	ids := Dedupe(workerIDs)
	if strings.TrimSpace(shiftID) == "" || len(ids) == 0 {
		return nil, fmt.Errorf("%w: shift_id and employee_ids are required", domain.ErrInvalidRequest)
	}
	if !n.dispatcher.Available() {
		metrics.NotificationsSkippedTotal.WithLabelValues("unavailable").Inc()
		return nil, domain.ErrServiceUnavailable
	}

	shift, err := n.loadShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	recipients, err := n.resolver.Resolve(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		metrics.NotificationsSkippedTotal.WithLabelValues("no_recipients").Inc()
		return &ports.NotifyResult{}, nil
	}

	return toNotifyResult(n.dispatcher.Dispatch(ctx, flowAssigned, recipients, n.formatter.Assigned(shift))), nil
}

func (n *changeNotifier) NotifyUpdated(ctx context.Context, shiftID string, changes domain.ShiftChanges) (*ports.NotifyResult, error) {
	if strings.TrimSpace(shiftID) == "" {
		return nil, fmt.Errorf("%w: shift_id is required", domain.ErrInvalidRequest)
	}
	if len(changes.Notifiable()) == 0 {
		return nil, fmt.Errorf("%w: no notifiable field changed", domain.ErrInvalidRequest)
	}
	if !n.dispatcher.Available() {
		metrics.NotificationsSkippedTotal.WithLabelValues("unavailable").Inc()
		return nil, domain.ErrServiceUnavailable
	}

	shift, err := n.loadShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	assignees, err := n.reconciler.Assignees(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	recipients, err := n.resolver.Resolve(ctx, assignees)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		metrics.NotificationsSkippedTotal.WithLabelValues("no_recipients").Inc()
		return &ports.NotifyResult{}, nil
	}

	fp := Fingerprint(changes)
	if n.guard != nil {
		dup, err := n.guard.IsDuplicate(ctx, shiftID, fp)
		if err != nil {
			n.log.Warn().Err(err).Str("shift_id", shiftID).Msg("change guard check failed, dispatching anyway")
		} else if dup {
			n.log.Info().Str("shift_id", shiftID).Msg("identical shift change already notified, skipped")
			metrics.NotificationsSkippedTotal.WithLabelValues("duplicate").Inc()
			return &ports.NotifyResult{Duplicate: true}, nil
		}
	}

	result := toNotifyResult(n.dispatcher.Dispatch(ctx, flowUpdated, recipients, n.formatter.Changed(shift, changes)))

	if n.guard != nil && result.Sent > 0 {
		if err := n.guard.Mark(ctx, shiftID, fp); err != nil {
			n.log.Warn().Err(err).Str("shift_id", shiftID).Msg("failed to record shift change fingerprint")
		}
	}
	return result, nil
}

func (n *changeNotifier) loadShift(ctx context.Context, shiftID string) (*domain.Shift, error) {
	if strings.TrimSpace(shiftID) == "" {
		return nil, fmt.Errorf("%w: shift id is required", domain.ErrInvalidRequest)
	}
	shift, err := n.shifts.FindByID(ctx, shiftID)
	if errors.Is(err, domain.ErrShiftNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("load shift: %w: %w", domain.ErrStorage, err)
	}
	return shift, nil
}

func toNotifyResult(outcomes []domain.DispatchOutcome) *ports.NotifyResult {
	sent := domain.CountSent(outcomes)
	return &ports.NotifyResult{
		Outcomes: outcomes,
		Sent:     sent,
		Failed:   len(outcomes) - sent,
	}
}

// Fingerprint identifies a change set independently of map order.
func Fingerprint(changes domain.ShiftChanges) string {
	h := sha256.New()
	for _, field := range changes.Notifiable() {
		ch := changes[field]
		fmt.Fprintf(h, "%s=%s->%s\n", field, ch.From, ch.To)
	}
	return hex.EncodeToString(h.Sum(nil))
}
