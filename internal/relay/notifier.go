// Package relay delivers order notifications to a human operator.
//
// A relay is a best-effort side channel, not a system of record: callers
// log failures and carry on.
package relay

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Flame-Codes/jersey-hub-direct/internal/models"
)

// ErrRejected is wrapped by notifiers when the remote side answers with a
// non-success response
var ErrRejected = errors.New("relay rejected notification")

// Notifier sends one order line notification
type Notifier interface {
	Notify(ctx context.Context, payload models.RelayPayload) error
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, payload models.RelayPayload) error

// Notify calls f
func (f NotifierFunc) Notify(ctx context.Context, payload models.RelayPayload) error {
	return f(ctx, payload)
}

// Multi fans a notification out to every notifier and joins their errors
type Multi []Notifier

// Notify sends to all notifiers even when one fails
func (m Multi) Notify(ctx context.Context, payload models.RelayPayload) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard logs the notification and drops it
type Discard struct {
	Log *slog.Logger
}

// Notify logs payload at info level
func (d Discard) Notify(ctx context.Context, payload models.RelayPayload) error {
	if d.Log != nil {
		d.Log.InfoContext(ctx, "order relay disabled, notification dropped",
			"order_id", payload.OrderID,
			"product", payload.ProductName,
			"quantity", payload.Quantity,
		)
	}
	return nil
}
