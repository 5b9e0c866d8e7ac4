package closure

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/errs"
)

var (
	// ErrClosureIsNotConstructed is returned when a Closure instance was not
	// created through NewClosure.
	ErrClosureIsNotConstructed = errors.New("Closure must be created via NewClosure constructor")
)

// LineItem is one per-day, per-service row of a closure. Delivered and voided
// work is counted separately so the net value is auditable: grossValue covers
// items still standing, cancelledValue covers items voided after billing.
type LineItem struct {
	Date           time.Time
	ServiceKind    delivery.ServiceKind
	DeliveredCount int
	CancelledCount int
	GrossValue     kernel.Money
	CancelledValue kernel.Money
}

// NetValue returns the line's gross value minus its cancelled value.
func (li LineItem) NetValue() kernel.Money {
	return li.GrossValue.Sub(li.CancelledValue)
}

// Closure is an immutable billing rollup for one subject over one period.
// It is a derived snapshot: once generated it is never recomputed; a
// correction produces a new closure and marks this one Readjusted.
type Closure struct {
	// id is the unique identifier for the closure
	id kernel.UUID

	// scope and subject select what the closure rolls up: a courier ID for
	// ScopeCourier, a base name for ScopeBase
	scope   Scope
	subject string

	// periodStart and periodEnd bound the rollup, both inclusive
	periodStart time.Time
	periodEnd   time.Time

	status      Status
	generatedAt time.Time

	// lineItems hold the per-day, per-service breakdown
	lineItems []LineItem

	grossValue     kernel.Money
	cancelledValue kernel.Money
	netValue       kernel.Money

	// isConstructed ensures the closure was created via NewClosure
	isConstructed bool
}

// ClosureParams carries the fields of a closure for construction.
type ClosureParams struct {
	ID          kernel.UUID
	Scope       Scope
	Subject     string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Status      Status
	GeneratedAt time.Time
	LineItems   []LineItem
}

// NewClosure creates a validated closure. Totals are computed from the line
// items, never accepted from the caller, so a closure can never disagree with
// its own breakdown. An empty period (no line items) is valid: a subject with
// no billed work still gets a zero-value closure.
func NewClosure(params ClosureParams) (*Closure, error) {
	c := &Closure{
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(params.ID),
		c.setScope(params.Scope),
		c.setSubject(params.Subject),
		c.setPeriod(params.PeriodStart, params.PeriodEnd),
		c.setStatus(params.Status),
		c.setGeneratedAt(params.GeneratedAt),
	); err != nil {
		return nil, err
	}

	c.lineItems = make([]LineItem, len(params.LineItems))
	copy(c.lineItems, params.LineItems)
	for _, li := range c.lineItems {
		c.grossValue = c.grossValue.Add(li.GrossValue)
		c.cancelledValue = c.cancelledValue.Add(li.CancelledValue)
	}
	c.netValue = c.grossValue.Sub(c.cancelledValue)

	return c, nil
}

// Validate ensures the Closure instance was properly constructed.
func (c *Closure) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrClosureIsNotConstructed
	}
	return nil
}

// ID returns the closure's unique identifier.
func (c *Closure) ID() kernel.UUID {
	return c.id
}

// Scope returns the rollup dimension.
func (c *Closure) Scope() Scope {
	return c.scope
}

// Subject returns the rolled-up subject: a courier ID for ScopeCourier, a
// base name for ScopeBase.
func (c *Closure) Subject() string {
	return c.subject
}

// PeriodStart returns the inclusive start of the period.
func (c *Closure) PeriodStart() time.Time {
	return c.periodStart
}

// PeriodEnd returns the inclusive end of the period.
func (c *Closure) PeriodEnd() time.Time {
	return c.periodEnd
}

// Status returns the closure's status.
func (c *Closure) Status() Status {
	return c.status
}

// GeneratedAt returns the generation instant.
func (c *Closure) GeneratedAt() time.Time {
	return c.generatedAt
}

// LineItems returns a copy of the per-day, per-service breakdown.
func (c *Closure) LineItems() []LineItem {
	out := make([]LineItem, len(c.lineItems))
	copy(out, c.lineItems)
	return out
}

// GrossValue returns the total for items still standing.
func (c *Closure) GrossValue() kernel.Money {
	return c.grossValue
}

// CancelledValue returns the total voided after billing.
func (c *Closure) CancelledValue() kernel.Money {
	return c.cancelledValue
}

// NetValue returns grossValue minus cancelledValue.
func (c *Closure) NetValue() kernel.Money {
	return c.netValue
}

// MarkReadjusted flags the closure as superseded by a correction.
// Valid only once.
func (c *Closure) MarkReadjusted() error {
	if c.status == StatusReadjusted {
		return errs.NewInvalidTransitionError(c.status.String(), StatusReadjusted.String())
	}
	c.status = StatusReadjusted
	return nil
}

// BuildLineItems folds billing items into per-day, per-service line items.
// Standing items count as delivered and accrue to GrossValue; voided items
// count as cancelled and accrue to CancelledValue at the price they were
// billed with. The result is ordered by date, then service kind, so closure
// generation is deterministic.
func BuildLineItems(items []*BillingItem) []LineItem {
	type key struct {
		date time.Time
		kind delivery.ServiceKind
	}

	byKey := make(map[key]*LineItem)
	for _, item := range items {
		k := key{date: item.Date(), kind: item.ServiceKind()}
		li, ok := byKey[k]
		if !ok {
			li = &LineItem{Date: k.date, ServiceKind: k.kind}
			byKey[k] = li
		}
		if item.IsCancelled() {
			li.CancelledCount++
			li.CancelledValue = li.CancelledValue.Add(item.UnitPrice())
		} else {
			li.DeliveredCount++
			li.GrossValue = li.GrossValue.Add(item.UnitPrice())
		}
	}

	out := make([]LineItem, 0, len(byKey))
	for _, li := range byKey {
		out = append(out, *li)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ServiceKind < out[j].ServiceKind
	})
	return out
}

func (c *Closure) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Closure) setScope(scope Scope) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	c.scope = scope
	return nil
}

func (c *Closure) setSubject(subject string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return errs.NewValueIsRequiredError("subject")
	}
	c.subject = subject
	return nil
}

func (c *Closure) setPeriod(start, end time.Time) error {
	if start.IsZero() {
		return errs.NewValueIsRequiredError("periodStart")
	}
	if end.IsZero() {
		return errs.NewValueIsRequiredError("periodEnd")
	}
	start = start.Truncate(24 * time.Hour)
	end = end.Truncate(24 * time.Hour)
	if end.Before(start) {
		return errs.NewValueIsInvalidErrorWithCause("period",
			fmt.Errorf("periodEnd %s precedes periodStart %s",
				end.Format("2006-01-02"), start.Format("2006-01-02")))
	}
	c.periodStart = start
	c.periodEnd = end
	return nil
}

func (c *Closure) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *Closure) setGeneratedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("generatedAt")
	}
	c.generatedAt = at
	return nil
}
