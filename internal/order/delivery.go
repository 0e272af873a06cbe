package order

import (
	"context"
	"sync"
)

// DeliveryReport summarizes relay attempts for one order
type DeliveryReport struct {
	OrderID   string   `json:"orderId"`
	Attempted int      `json:"attempted"`
	Delivered int      `json:"delivered"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// OK reports whether every line was delivered
func (r DeliveryReport) OK() bool {
	return r.Failed == 0
}

// Delivery is the best-effort relay outcome of an accepted order
type Delivery struct {
	orderID string
	done    chan struct{}
	once    sync.Once
	report  DeliveryReport
}

func newDelivery(orderID string) *Delivery {
	return &Delivery{orderID: orderID, done: make(chan struct{})}
}

func (d *Delivery) finish(report DeliveryReport) {
	d.once.Do(func() {
		d.report = report
		close(d.done)
	})
}

// Done is closed once the relay has finished
func (d *Delivery) Done() <-chan struct{} {
	return d.done
}

// Report returns the report and true once the relay has finished
func (d *Delivery) Report() (DeliveryReport, bool) {
	select {
	case <-d.done:
		return d.report, true
	default:
		return DeliveryReport{OrderID: d.orderID}, false
	}
}

// Wait blocks until the relay finishes or ctx is done
func (d *Delivery) Wait(ctx context.Context) (DeliveryReport, error) {
	select {
	case <-d.done:
		return d.report, nil
	case <-ctx.Done():
		return DeliveryReport{OrderID: d.orderID}, ctx.Err()
	}
}
