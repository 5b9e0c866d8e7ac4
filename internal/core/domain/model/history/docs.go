// Package history provides the append-only audit ledger for deliveries.
// Every lifecycle event of a parcel (creation, courier assignment,
// reassignment, terminal outcomes, administrative corrections) is recorded
// as an immutable Entry, so the full chain of custody can be reconstructed
// at any time.
package history
