package ports

import "context"

// ChangeGuard remembers the last shift-updated notification dispatched for
// each shift so an immediate replay of it is not sent twice. A different
// change set marked in between makes the earlier one new again.
type ChangeGuard interface {
	IsDuplicate(ctx context.Context, shiftID, fingerprint string) (bool, error)
	Mark(ctx context.Context, shiftID, fingerprint string) error
}
