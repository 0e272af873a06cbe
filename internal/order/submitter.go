// Package order validates checkout requests, prices them and hands them
// to the order relay.
//
// A submission that passes validation is always accepted. Relay delivery
// is reported separately through Delivery and never changes the outcome.
package order

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Flame-Codes/jersey-hub-direct/internal/models"
	"github.com/Flame-Codes/jersey-hub-direct/internal/relay"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// DefaultRelayTimeout bounds one relay attempt
const DefaultRelayTimeout = 15 * time.Second

// Submission is the accepted result of Submit
type Submission struct {
	State       State        `json:"state"`
	Order       models.Order `json:"order"`
	FallbackURL string       `json:"fallbackUrl"`
	Delivery    *Delivery    `json:"-"`
}

// Submitter validates and relays orders
type Submitter struct {
	notifier relay.Notifier
	contact  Contact
	log      *slog.Logger
	timeout  time.Duration
	now      func() time.Time
	newID    func() string
	hook     TransitionHook
	wg       sync.WaitGroup
}

// Option configures a Submitter
type Option func(*Submitter)

// WithLogger sets the logger
func WithLogger(log *slog.Logger) Option {
	return func(s *Submitter) {
		s.log = log
	}
}

// WithRelayTimeout bounds each relay delivery
func WithRelayTimeout(d time.Duration) Option {
	return func(s *Submitter) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock overrides the clock used for order timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Submitter) {
		s.now = now
	}
}

// WithIDGenerator overrides order reference generation
func WithIDGenerator(newID func() string) Option {
	return func(s *Submitter) {
		s.newID = newID
	}
}

// WithTransitionHook observes every state change
func WithTransitionHook(hook TransitionHook) Option {
	return func(s *Submitter) {
		s.hook = hook
	}
}

// NewSubmitter creates a submitter relaying through notifier. A nil
// notifier drops notifications.
func NewSubmitter(notifier relay.Notifier, contact Contact, opts ...Option) *Submitter {
	s := &Submitter{
		notifier: notifier,
		contact:  contact,
		log:      slog.New(slog.DiscardHandler),
		timeout:  DefaultRelayTimeout,
		now:      time.Now,
		newID:    func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = relay.Discard{Log: s.log}
	}
	return s
}

// Contact returns the fallback contact channel
func (s *Submitter) Contact() Contact {
	return s.contact
}

func (s *Submitter) transition(id string, from, to State) State {
	if s.hook != nil {
		s.hook(id, from, to)
	}
	s.log.Debug("order state changed", "order_id", id, "from", from.String(), "to", to.String())
	return to
}

// Submit validates the request and, when valid, accepts it and starts the
// relay in the background. A *ValidationError is the only error returned;
// no relay call is made in that case.
func (s *Submitter) Submit(ctx context.Context, customer models.Customer, items []models.OrderItem) (*Submission, error) {
	state := s.transition("", StateIdle, StateValidating)

	customer, items, err := validate(customer, items)
	if err != nil {
		state = s.transition("", state, StateRejected)
		s.transition("", state, StateIdle)
		s.log.Info("order rejected", "error", err)
		return nil, err
	}

	id := s.newID()
	state = s.transition(id, state, StateSubmitting)

	o := compose(id, customer, items, s.now().UTC())
	delivery := s.relay(ctx, o)

	state = s.transition(id, state, StateSubmitted)
	s.log.Info("order accepted",
		"order_id", o.ID,
		"lines", len(o.Lines),
		"total", o.Total.String(),
	)

	return &Submission{
		State:       state,
		Order:       o,
		FallbackURL: s.contact.OrderLink(o),
		Delivery:    delivery,
	}, nil
}

func compose(id string, customer models.Customer, items []models.OrderItem, at time.Time) models.Order {
	lines := make([]models.OrderLine, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		unit := item.Product.EffectivePrice()
		price := unit.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(price)
		lines = append(lines, models.OrderLine{
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			Category:    item.Product.Category,
			Size:        item.Size,
			Quantity:    item.Quantity,
			UnitPrice:   unit,
			Price:       price,
		})
	}
	return models.Order{
		ID:        id,
		Customer:  customer,
		Lines:     lines,
		Total:     total,
		CreatedAt: at,
	}
}

// relay sends one notification per line in a goroutine detached from the
// caller's cancellation
func (s *Submitter) relay(ctx context.Context, o models.Order) *Delivery {
	d := newDelivery(o.ID)
	payloads := o.RelayPayloads()

	relayCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		report := DeliveryReport{OrderID: o.ID, Attempted: len(payloads)}
		for _, p := range payloads {
			if err := s.notify(relayCtx, p); err != nil {
				report.Failed++
				report.Errors = append(report.Errors, err.Error())
				s.log.Warn("order relay failed",
					"order_id", o.ID,
					"product", p.ProductName,
					"error", err,
				)
				continue
			}
			report.Delivered++
		}
		if report.Failed == 0 {
			s.log.Info("order relay delivered", "order_id", o.ID, "lines", report.Delivered)
		}
		d.finish(report)
	}()

	return d
}

// notify shields the delivery goroutine from a panicking notifier
func (s *Submitter) notify(ctx context.Context, p models.RelayPayload) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("relay panicked")
			s.log.Error("order relay panicked", "order_id", p.OrderID, "panic", r)
		}
	}()
	return s.notifier.Notify(ctx, p)
}

// Wait blocks until every in-flight relay finishes or ctx is done
func (s *Submitter) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
