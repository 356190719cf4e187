// Package sheet models the native payment sheet: the request configuration
// handed to the browser and the controller reacting to its events.
package sheet

import "errors"

var (
	ErrNoPendingEvent           = errors.New("no payment sheet event awaiting acknowledgment")
	ErrNoShippingOptions        = errors.New("no shipping options available")
	ErrAlreadyCompleted         = errors.New("payment sheet already completed")
	ErrPaymentMethodUnavailable = errors.New("payment method not available")
)

// DisplayItem is one labelled line on the payment sheet, amount in minor
// currency units.
type DisplayItem struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// Option is a shipping option as the sheet displays it, amount in minor
// currency units.
type Option struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Detail string `json:"detail"`
	Amount int64  `json:"amount"`
}

type CompletionStatus string

const (
	CompletionSuccess CompletionStatus = "success"
	CompletionFail    CompletionStatus = "fail"
)

// Request is the sheet handle: the configuration the browser renders plus the
// acknowledgment state of the event currently being handled. While an event
// is pending the browser keeps the sheet in a waiting visual state until the
// handler acknowledges it with UpdateWith or Complete.
type Request struct {
	Country           string        `json:"country"`
	Currency          string        `json:"currency"`
	Total             DisplayItem   `json:"total"`
	DisplayItems      []DisplayItem `json:"displayItems"`
	RequestPayerName  bool          `json:"requestPayerName"`
	RequestPayerEmail bool          `json:"requestPayerEmail"`
	RequestPayerPhone bool          `json:"requestPayerPhone"`
	RequestShipping   bool          `json:"requestShipping"`
	ShippingOptions   []Option      `json:"shippingOptions"`

	pending   bool
	completed CompletionStatus
}

// Update is the payload a handler acknowledges a sheet event with.
type Update struct {
	Total           DisplayItem   `json:"total"`
	DisplayItems    []DisplayItem `json:"displayItems"`
	ShippingOptions []Option      `json:"shippingOptions,omitempty"`
}

func (r *Request) beginEvent() {
	r.pending = true
}

// Pending reports whether an event is still waiting for acknowledgment.
func (r *Request) Pending() bool {
	return r.pending
}

// UpdateWith acknowledges the pending event and applies the refreshed totals
// to the sheet.
func (r *Request) UpdateWith(update *Update) error {
	if !r.pending {
		return ErrNoPendingEvent
	}

	r.Total = update.Total
	r.DisplayItems = update.DisplayItems
	if update.ShippingOptions != nil {
		r.ShippingOptions = update.ShippingOptions
	}
	r.pending = false
	return nil
}

// Complete reports the outcome of the payment back to the sheet. Terminal:
// a completed sheet accepts no further acknowledgment.
func (r *Request) Complete(status CompletionStatus) error {
	if r.completed != "" {
		return ErrAlreadyCompleted
	}

	r.completed = status
	r.pending = false
	return nil
}

// Completion returns the reported outcome, or the empty string while the
// sheet is still open.
func (r *Request) Completion() CompletionStatus {
	return r.completed
}
