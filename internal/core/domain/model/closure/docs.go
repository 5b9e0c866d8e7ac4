// Package closure provides the billing side of the core: BillingItem, the
// financial record of one delivered parcel, and Closure, an immutable
// per-subject rollup over a period with per-day, per-service line items.
//
// Key business rules:
//   - Billing items are written in the same transaction as the delivery
//     outcome and priced at that moment
//   - Financial records are never deleted: voiding flips a cancelled flag
//     and closure math subtracts the voided value
//   - Closures are never regenerated; a correction produces a new closure
//     and marks the old one Readjusted
package closure
